package celestial

import "github.com/go-gl/mathgl/mgl64"

const (
	// SunRadius is the display radius of the sun.
	SunRadius = 20.0
	// SunSpinSpeed is the sun's self-rotation in rad/s (0.001 per frame at 60fps).
	SunSpinSpeed = 0.001 * 60

	MoonRadius      = 0.8
	MoonOrbitSpeed  = 0.02
	MoonOrbitOffset = 6.0

	RingInnerMargin = 0.5
	RingOuterMargin = 2.0
)

// planetSpec is the literal form of a catalogue entry.
type planetSpec struct {
	id          ID
	name        string
	size        float64
	distance    float64
	texture     string
	color       string
	orbitSpeed  float64
	spinSpeed   float64
	axialTilt   float64
	description string
}

var planetCatalogue = []planetSpec{
	{
		id: Mercury, name: "Mercury", size: 3, distance: 40,
		texture: "textures/mercury.jpg", color: "#b5b5b5",
		orbitSpeed: 0.02, spinSpeed: 0.005,
		description: `<h2>Overview</h2>
<p>Mercury is the smallest and innermost planet in our Solar System.</p>
<h2>Surface & Temperature</h2>
<p>It experiences extreme temperature fluctuations, soaring above 400°C (750°F) in the day and plunging to -180°C (-290°F) at night, and its surface is heavily cratered.</p>
<h2>Orbit & Rotation</h2>
<p>Mercury is in a 3:2 spin-orbit resonance, rotating three times for every two orbits around the Sun. A solar day lasts about 176 Earth days.</p>
<h2>Magnetic Field & Dimensions</h2>
<p>It possesses a weak magnetic field (about 1% of Earth's) and has a diameter of roughly 4,880 km.</p>`,
	},
	{
		id: Venus, name: "Venus", size: 4, distance: 60,
		texture: "textures/venus.jpg", color: "#e8cda2",
		orbitSpeed: 0.015, spinSpeed: 0.005,
		description: `<h2>Overview</h2>
<p>Venus is the second planet from the Sun and is known for its scorching temperatures and thick atmosphere.</p>
<h2>Surface & Atmosphere</h2>
<p>Surface temperatures reach around 465°C (869°F) due to a runaway greenhouse effect, and its dense atmosphere is composed mainly of carbon dioxide with clouds of sulfuric acid.</p>
<h2>Rotation & Orbit</h2>
<p>Venus rotates very slowly in a retrograde direction, leading to unusual day-night cycles.</p>
<h2>Dimensions</h2>
<p>Venus is similar in size to Earth, with a diameter of about 12,104 km.</p>`,
	},
	{
		id: Earth, name: "Earth", size: 4.5, distance: 80,
		texture: "textures/earth.jpg", color: "#2e86ab",
		orbitSpeed: 0.012, spinSpeed: 0.005, axialTilt: 23.5,
		description: `<h2>Overview</h2>
<p>Earth is the only planet known to support life, with abundant water and a protective atmosphere.</p>
<h2>Surface & Atmosphere</h2>
<p>About 70% of Earth's surface is covered by water, and its atmosphere regulates temperature and shields life from harmful solar radiation.</p>
<h2>Orbit & Rotation</h2>
<p>Earth completes one orbit around the Sun every 365.25 days and rotates once every 24 hours.</p>
<h2>Magnetic Field & Dimensions</h2>
<p>Earth has a strong magnetic field and a diameter of approximately 12,742 km.</p>`,
	},
	{
		id: Mars, name: "Mars", size: 3.5, distance: 100,
		texture: "textures/mars.jpg", color: "#c1440e",
		orbitSpeed: 0.01, spinSpeed: 0.005,
		description: `<h2>Overview</h2>
<p>Mars, known as the Red Planet, has captivated scientists with its potential for past water activity.</p>
<h2>Surface & Temperature</h2>
<p>Mars has a cold, desert-like surface marked by iron oxide, the largest volcano (Olympus Mons), and deep canyons.</p>
<h2>Orbit & Rotation</h2>
<p>It orbits the Sun in about 687 Earth days and experiences seasonal changes.</p>
<h2>Dimensions</h2>
<p>Mars has a diameter of roughly 6,779 km.</p>`,
	},
	{
		id: Jupiter, name: "Jupiter", size: 10, distance: 130,
		texture: "textures/jupiter.jpg", color: "#d8ca9d",
		orbitSpeed: 0.007, spinSpeed: 0.005,
		description: `<h2>Overview</h2>
<p>Jupiter is the largest planet in our Solar System, a gas giant with a dramatic presence.</p>
<h2>Atmosphere & Storms</h2>
<p>Its atmosphere is characterized by swirling storms, including the Great Red Spot, a massive and persistent storm.</p>
<h2>Rotation & Orbit</h2>
<p>Jupiter rotates very rapidly (about 10 hours per day) and has an extensive system of moons.</p>
<h2>Dimensions</h2>
<p>Its diameter is approximately 139,820 km.</p>`,
	},
	{
		id: Saturn, name: "Saturn", size: 9, distance: 160,
		texture: "textures/saturn.jpg", color: "#e3c16f",
		orbitSpeed: 0.005, spinSpeed: 0.005,
		description: `<h2>Overview</h2>
<p>Saturn is renowned for its spectacular ring system, making it one of the most visually striking planets.</p>
<h2>Atmosphere & Rings</h2>
<p>This gas giant has a beautiful atmosphere with banded cloud patterns, and its rings are composed of ice and rock particles.</p>
<h2>Rotation & Orbit</h2>
<p>Saturn rotates rapidly and is orbited by numerous moons.</p>
<h2>Dimensions</h2>
<p>Its diameter is about 116,460 km.</p>`,
	},
	{
		id: Uranus, name: "Uranus", size: 8, distance: 190,
		texture: "textures/uranus.jpg", color: "#7de3f4",
		orbitSpeed: 0.003, spinSpeed: 0.005,
		description: `<h2>Overview</h2>
<p>Uranus is an ice giant notable for its extreme axial tilt, causing it to rotate on its side.</p>
<h2>Atmosphere & Appearance</h2>
<p>The planet's blue-green hue is due to methane in its atmosphere, and it has a faint ring system.</p>
<h2>Rotation & Orbit</h2>
<p>Uranus has a long orbital period and a unique tilt of about 98°.</p>
<h2>Dimensions</h2>
<p>Its diameter is roughly 50,724 km.</p>`,
	},
	{
		id: Neptune, name: "Neptune", size: 8, distance: 220,
		texture: "textures/neptune.jpg", color: "#3f54ba",
		orbitSpeed: 0.002, spinSpeed: 0.005,
		description: `<h2>Overview</h2>
<p>Neptune is known for its deep blue color and dynamic weather, including the fastest winds in the Solar System.</p>
<h2>Atmosphere & Weather</h2>
<p>This ice giant features a turbulent atmosphere with supersonic winds and large storms.</p>
<h2>Orbit & Rotation</h2>
<p>Neptune has a very long orbit and a relatively short day.</p>
<h2>Dimensions</h2>
<p>Its diameter is around 49,244 km.</p>`,
	},
}

// Default builds the full solar system: the sun, the eight planets in
// catalogue order, Saturn's ring and Earth's moon. All planets start at
// orbit angle 0; use Randomize for scattered start positions.
func Default() *Registry {
	r := NewRegistry()

	r.Add(&Body{
		ID:      Sun,
		Name:    "Sun",
		Kind:    KindSun,
		Radius:  SunRadius,
		Texture: "textures/sun.jpg",
		Color:   "#fdb813",
	})

	for _, p := range planetCatalogue {
		b := &Body{
			ID:          p.id,
			Name:        p.name,
			Kind:        KindPlanet,
			Radius:      p.size,
			OrbitRadius: p.distance,
			OrbitSpeed:  p.orbitSpeed,
			SpinSpeed:   p.spinSpeed,
			AxialTilt:   p.axialTilt,
			Texture:     p.texture,
			Color:       p.color,
			Description: p.description,
		}
		b.PlaceOnOrbit()
		r.Add(b)
	}

	if saturn, ok := r.Lookup(Saturn); ok {
		saturn.Ring = &Ring{
			Inner:   saturn.Radius + RingInnerMargin,
			Outer:   saturn.Radius + RingOuterMargin,
			Texture: "textures/saturn_ring.png",
		}
	}

	if earth, ok := r.Lookup(Earth); ok {
		moon := &Body{
			ID:     Moon,
			Name:   "Moon",
			Kind:   KindMoon,
			Radius: MoonRadius,
			Color:  "#888888",
			Satellite: &Satellite{
				Parent: Earth,
				Offset: mgl64.Vec3{MoonOrbitOffset, 0, 0},
				Speed:  MoonOrbitSpeed,
			},
		}
		moon.Position = earth.Position.Add(earth.Frame().Mul3x1(moon.Satellite.Offset))
		r.Add(moon)
	}

	return r
}
