package celestial

import (
	"math"
	"math/rand"
	"testing"
)

func TestDefaultCatalogue(t *testing.T) {
	r := Default()

	if r.Len() != 10 {
		t.Fatalf("expected 10 bodies, got %d", r.Len())
	}

	planets := r.Planets()
	want := []string{"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}
	if len(planets) != len(want) {
		t.Fatalf("expected %d planets, got %d", len(want), len(planets))
	}
	for i, name := range want {
		if planets[i].Name != name {
			t.Errorf("planet %d: expected %s, got %s", i, name, planets[i].Name)
		}
	}
}

func TestDefaultSpecialBodies(t *testing.T) {
	r := Default()

	sun, ok := r.Lookup(Sun)
	if !ok {
		t.Fatal("sun missing")
	}
	if sun.Orbits() {
		t.Error("sun should not orbit")
	}

	saturn, _ := r.Lookup(Saturn)
	if saturn.Ring == nil {
		t.Fatal("saturn has no ring")
	}
	if saturn.Ring.Inner != 9.5 || saturn.Ring.Outer != 11 {
		t.Errorf("unexpected ring bounds %.1f..%.1f", saturn.Ring.Inner, saturn.Ring.Outer)
	}

	earth, _ := r.Lookup(Earth)
	if earth.AxialTilt != 23.5 {
		t.Errorf("expected earth tilt 23.5, got %f", earth.AxialTilt)
	}

	moon, ok := r.Lookup(Moon)
	if !ok {
		t.Fatal("moon missing")
	}
	if moon.Satellite == nil || moon.Satellite.Parent != Earth {
		t.Fatal("moon should be a satellite of earth")
	}
	if d := moon.Position.Sub(earth.Position).Len(); math.Abs(d-MoonOrbitOffset) > 1e-9 {
		t.Errorf("expected moon %.1f from earth, got %f", MoonOrbitOffset, d)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Add(&Body{ID: "a", Name: "Alpha", Kind: KindPlanet})

	if _, ok := r.Lookup("missing"); ok {
		t.Error("expected lookup miss")
	}
	if b, ok := r.FindByName("alpha"); !ok || b.ID != "a" {
		t.Error("case-insensitive name lookup failed")
	}

	r.Add(&Body{ID: "a", Name: "Replaced", Kind: KindPlanet})
	if r.Len() != 1 {
		t.Errorf("replacing a body should not grow the registry, got %d", r.Len())
	}
}

func TestRandomize(t *testing.T) {
	r := Default()
	r.Randomize(rand.New(rand.NewSource(7)))

	for _, b := range r.Planets() {
		if b.OrbitAngle < 0 || b.OrbitAngle >= 2*math.Pi {
			t.Errorf("%s: angle %f out of [0, 2π)", b.Name, b.OrbitAngle)
		}
		if d := math.Hypot(b.Position.X(), b.Position.Z()); math.Abs(d-b.OrbitRadius) > 1e-9 {
			t.Errorf("%s: expected distance %f, got %f", b.Name, b.OrbitRadius, d)
		}
		if b.Position.Y() != 0 {
			t.Errorf("%s: expected y=0, got %f", b.Name, b.Position.Y())
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindSun, "sun"},
		{KindPlanet, "planet"},
		{KindMoon, "moon"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
