package sidereal

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/civil"
)

func clockSeconds(t civil.Time) float64 {
	return t.Decimal() * 3600
}

func TestGSTFromUT(t *testing.T) {
	ut := civil.DateTime{
		Date: civil.Date{Year: 1980, Month: time.April, Day: 22},
		Time: civil.Time{Hour: 14, Minute: 36, Second: 51.67},
	}
	got := GSTFromUT(ut)
	want := civil.Time{Hour: 4, Minute: 40, Second: 5.23}

	if math.Abs(clockSeconds(got)-clockSeconds(want)) > 1e-2 {
		t.Errorf("GSTFromUT() = %s, want %s", got, want)
	}
}

func TestUTFromGST(t *testing.T) {
	gst := civil.DateTime{
		Date: civil.Date{Year: 1980, Month: time.April, Day: 22},
		Time: civil.Time{Hour: 4, Minute: 40, Second: 5.23},
	}
	got := UTFromGST(gst)
	want := civil.Time{Hour: 14, Minute: 36, Second: 51.67}

	if math.Abs(clockSeconds(got)-clockSeconds(want)) > 1e-2 {
		t.Errorf("UTFromGST() = %s, want %s", got, want)
	}
}

func TestT0(t *testing.T) {
	got := T0(civil.Date{Year: 1980, Month: time.April, Day: 22.75})
	if math.Abs(got-14.013754) > 1e-6 {
		t.Errorf("T0() = %v, want ~14.013754", got)
	}
}

func TestLSTFromGST(t *testing.T) {
	gst := civil.Time{Hour: 4, Minute: 40, Second: 5.23}
	got := LSTFromGST(gst, 64, West)
	want := civil.Time{Minute: 24, Second: 5.23}

	if math.Abs(clockSeconds(got)-clockSeconds(want)) > 1e-6 {
		t.Errorf("LSTFromGST() = %s, want %s", got, want)
	}

	back := GSTFromLST(got, 64, West)
	if math.Abs(clockSeconds(back)-clockSeconds(gst)) > 1e-6 {
		t.Errorf("GSTFromLST() = %s, want %s", back, gst)
	}
}

func TestLSTHours_Directions(t *testing.T) {
	tests := []struct {
		name string
		gst  float64
		lng  float64
		dir  Direction
		want float64
	}{
		{"east", 4, 30, East, 6},
		{"west", 4, 30, West, 2},
		{"west wraps", 1, 30, West, 23},
		{"east wraps", 23, 30, East, 1},
		{"north means no offset", 4, 30, North, 4},
		{"south means no offset", 4, 30, South, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LSTHours(tt.gst, tt.lng, tt.dir)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("LSTHours(%v, %v, %s) = %v, want %v", tt.gst, tt.lng, tt.dir, got, tt.want)
			}
			if got < 0 || got >= 24 {
				t.Errorf("LSTHours() = %v, outside [0, 24)", got)
			}
		})
	}
}

func TestEastWestComplementary(t *testing.T) {
	for _, gst := range []float64{0, 5.5, 12, 23.9} {
		east := LSTHours(gst, 75, East)
		back := LSTHours(east, 75, West)
		if math.Abs(back-gst) > 1e-9 {
			t.Errorf("east then west of %v gave %v", gst, back)
		}
	}
}

func TestSplitLongitude(t *testing.T) {
	if lng, dir := SplitLongitude(-64); lng != 64 || dir != West {
		t.Errorf("SplitLongitude(-64) = %v, %s", lng, dir)
	}
	if lng, dir := SplitLongitude(2.35); lng != 2.35 || dir != East {
		t.Errorf("SplitLongitude(2.35) = %v, %s", lng, dir)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"W": West, "east": East, " s ": South, "North": North} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("ParseDirection(\"up\") should fail")
	}
}
