package debris

const (
	// DefaultCooldown is the minimum time between two spawns of one kind.
	DefaultCooldown = 0.5
	// DefaultSpawnChance is the per-frame spawn probability once the
	// cooldown has elapsed. The check is frame-coupled.
	DefaultSpawnChance = 0.02
)

// Observer is notified when particles enter and leave the live set.
type Observer interface {
	OnSpawn(p *Particle)
	OnRetire(p *Particle)
}

type Config struct {
	Cooldown    float64
	SpawnChance float64
	Disabled    bool
}

func DefaultConfig() Config {
	return Config{
		Cooldown:    DefaultCooldown,
		SpawnChance: DefaultSpawnChance,
	}
}

// Manager owns the live shooting stars and meteorites. Each kind has its
// own collection and spawn timer.
type Manager struct {
	cfg       Config
	rng       Source
	live      map[Kind][]*Particle
	timers    map[Kind]float64
	points    *PointPool
	observers []Observer
	spawned   map[Kind]int
	retired   map[Kind]int
}

func NewManager(cfg Config, rng Source) *Manager {
	m := &Manager{
		cfg:     cfg,
		rng:     rng,
		live:    make(map[Kind][]*Particle, len(Kinds)),
		timers:  make(map[Kind]float64, len(Kinds)),
		points:  NewPointPool(GeometryOf(Meteorite).MaxPoints),
		spawned: make(map[Kind]int, len(Kinds)),
		retired: make(map[Kind]int, len(Kinds)),
	}
	for _, k := range Kinds {
		m.live[k] = make([]*Particle, 0, 16)
	}
	return m
}

func (m *Manager) AddObserver(o Observer) { m.observers = append(m.observers, o) }

// Update ages every live particle by dt and retires expired ones. Iteration
// runs from the back so swap-free removal never skips a particle. A large dt
// may push a particle past its lifetime in one step; it is still retired in
// this call.
func (m *Manager) Update(dt float64) {
	for _, k := range Kinds {
		list := m.live[k]
		for i := len(list) - 1; i >= 0; i-- {
			p := list[i]
			p.advance(dt)
			if p.Expired() {
				list = append(list[:i], list[i+1:]...)
				m.retire(p)
			}
		}
		m.live[k] = list
	}
}

// MaybeSpawn accumulates dt on both spawn timers. A kind spawns exactly one
// particle when its timer exceeds the cooldown and a random draw succeeds;
// the draw is only taken once the cooldown has elapsed.
func (m *Manager) MaybeSpawn(dt float64) {
	for _, k := range Kinds {
		m.timers[k] += dt
		if m.cfg.Disabled {
			continue
		}
		if m.timers[k] > m.cfg.Cooldown && m.rng.Float64() < m.cfg.SpawnChance {
			m.Spawn(k)
			m.timers[k] = 0
		}
	}
}

// Spawn adds one particle of kind k regardless of timers.
func (m *Manager) Spawn(k Kind) *Particle {
	p := newParticle(k, m.rng, m.points)
	m.live[k] = append(m.live[k], p)
	m.spawned[k]++
	for _, o := range m.observers {
		o.OnSpawn(p)
	}
	return p
}

func (m *Manager) retire(p *Particle) {
	m.retired[p.Kind]++
	for _, o := range m.observers {
		o.OnRetire(p)
	}
	if p.Points != nil {
		m.points.Put(p.Points)
		p.Points = nil
	}
}

// Live returns the live particles of kind k. The slice must not be modified.
func (m *Manager) Live(k Kind) []*Particle { return m.live[k] }

// Count is the number of live particles across both kinds.
func (m *Manager) Count() int {
	n := 0
	for _, k := range Kinds {
		n += len(m.live[k])
	}
	return n
}

// Timer returns the seconds accumulated since the last spawn of kind k.
func (m *Manager) Timer(k Kind) float64 { return m.timers[k] }

func (m *Manager) Spawned(k Kind) int { return m.spawned[k] }
func (m *Manager) Retired(k Kind) int { return m.retired[k] }

// Each calls fn for every live particle, shooting stars first.
func (m *Manager) Each(fn func(p *Particle)) {
	for _, k := range Kinds {
		for _, p := range m.live[k] {
			fn(p)
		}
	}
}
