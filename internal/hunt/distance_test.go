package hunt

import (
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := Coordinates{Lat: 48.8584, Lng: 2.2945}
	if d := Distance(p, p); d != 0 {
		t.Errorf("distance(p, p) = %f, want 0", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := []struct{ a, b Coordinates }{
		{Coordinates{48.8584, 2.2945}, Coordinates{48.8606, 2.3376}},
		{Coordinates{-33.8688, 151.2093}, Coordinates{51.5074, -0.1278}},
		{Coordinates{0, 179.9}, Coordinates{0, -179.9}},
	}
	for _, tt := range pairs {
		ab := Distance(tt.a, tt.b)
		ba := Distance(tt.b, tt.a)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestDistanceOneDegreeAtEquator(t *testing.T) {
	// One degree of longitude on the equator is R * pi/180.
	got := Distance(Coordinates{0, 0}, Coordinates{0, 1})
	want := 111194.93
	if math.Abs(got-want) > 1 {
		t.Errorf("distance = %f, want %f", got, want)
	}
}

func TestDistanceCityScale(t *testing.T) {
	// Eiffel Tower to the Louvre, roughly 3.2 km.
	got := Distance(Coordinates{48.8584, 2.2945}, Coordinates{48.8606, 2.3376})
	if got < 3100 || got > 3250 {
		t.Errorf("distance = %f, want ~3170", got)
	}
}
