package civil

import (
	"errors"
	"math"
	"testing"
)

func TestCarryOver(t *testing.T) {
	tests := []struct {
		value   float64
		wantRem float64
		wantQuo float64
	}{
		{59, 59, 0},
		{60, 0, 1},
		{120, 0, 2},
		{121, 1, 2},
		{120.1, 0.1, 2},
		{-60, 0, -1},
		{-120, 0, -2},
		{-59, 1, -1},
		{-61, 59, -2},
		{-60.1, 59.9, -2},
		{0, 0, 0},
	}

	for _, tt := range tests {
		rem, quo := CarryOver(tt.value, 60)
		if math.Abs(rem-tt.wantRem) > 1e-9 || quo != tt.wantQuo {
			t.Errorf("CarryOver(%v, 60) = (%v, %v), want (%v, %v)",
				tt.value, rem, quo, tt.wantRem, tt.wantQuo)
		}
		if rem < 0 || rem >= 60 {
			t.Errorf("CarryOver(%v, 60) remainder %v outside [0, 60)", tt.value, rem)
		}
	}
}

func TestNormalizeSigned(t *testing.T) {
	tests := []struct {
		value, want float64
	}{
		{190, -170},
		{-180, 180},
		{180, 180},
		{-190, 170},
		{720, 0},
	}
	for _, tt := range tests {
		if got := NormalizeSigned(tt.value, 360); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeSigned(%v, 360) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestTimeDecimal(t *testing.T) {
	got := Time{Hour: 18, Minute: 31, Second: 27}.Decimal()
	if math.Abs(got-18.524166667) > 1e-6 {
		t.Errorf("Decimal() = %v, want ~18.52417", got)
	}
}

func TestTimeFromDecimal(t *testing.T) {
	got := TimeFromDecimal(18.52417)
	if got.Hour != 18 || got.Minute != 31 {
		t.Fatalf("TimeFromDecimal(18.52417) = %+v, want 18:31:27", got)
	}
	if math.Abs(got.Second-27.012) > 1e-3 {
		t.Errorf("seconds = %v, want ~27.012", got.Second)
	}
}

func TestTimeFromDecimal_NoSixtySeconds(t *testing.T) {
	got := TimeFromDecimal(10.35)
	if got.Hour != 10 || got.Minute != 21 || math.Abs(got.Second) > 1e-6 {
		t.Errorf("TimeFromDecimal(10.35) = %+v, want 10:21:00", got)
	}
}

func TestTimeFromDecimal_SignOnFirstNonZero(t *testing.T) {
	tests := []struct {
		name    string
		decimal float64
		want    Time
	}{
		{"negative hour", -1.5, Time{Hour: -1, Minute: 30}},
		{"negative minute", -0.5, Time{Minute: -30}},
		{"negative second", -15.0 / 3600, Time{Second: -15}},
		{"positive", 5.25, Time{Hour: 5, Minute: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeFromDecimal(tt.decimal)
			if got.Hour != tt.want.Hour || got.Minute != tt.want.Minute ||
				math.Abs(got.Second-tt.want.Second) > 1e-6 {
				t.Errorf("TimeFromDecimal(%v) = %+v, want %+v", tt.decimal, got, tt.want)
			}
		})
	}
}

func TestTime_RoundTrip(t *testing.T) {
	times := []Time{
		{Hour: 12},
		{Hour: 23, Minute: 59, Second: 59.5},
		{Hour: 14, Minute: 36, Second: 51.67},
		{Minute: -30},
		{Hour: -1, Minute: 30},
		{Second: -15.5},
		{Hour: -23, Minute: 13, Second: 10},
		{Hour: 0, Minute: 0, Second: 0.001},
	}

	for _, want := range times {
		got := TimeFromDecimal(want.Decimal())
		if got.Hour != want.Hour || got.Minute != want.Minute ||
			math.Abs(got.Second-want.Second) > 1e-6 {
			t.Errorf("round trip of %+v gave %+v", want, got)
		}
	}
}

func TestAngle_RoundTrip(t *testing.T) {
	angles := []Angle{
		{Degree: -8, Minute: 13, Second: 30},
		{Degree: 283, Minute: 16, Second: 16},
		{Minute: -2, Second: 42},
		{Degree: 89, Minute: 59, Second: 59.9},
	}

	for _, want := range angles {
		got := AngleFromDecimal(want.Decimal())
		if got.Degree != want.Degree || got.Minute != want.Minute ||
			math.Abs(got.Second-want.Second) > 1e-6 {
			t.Errorf("round trip of %+v gave %+v", want, got)
		}
	}
}

func TestNewTime_Validation(t *testing.T) {
	tests := []struct {
		name    string
		h, m    int
		s       float64
		wantErr bool
	}{
		{"ok", 12, 30, 15, false},
		{"negative hour", -8, 13, 30, false},
		{"minute overflow", 1, 61, 0, true},
		{"second overflow", 1, 0, 60, true},
		{"two signs", -1, -2, 0, true},
		{"nan seconds", 0, 0, math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTime(tt.h, tt.m, tt.s)
			if tt.wantErr && !errors.Is(err, ErrInvalidTime) {
				t.Errorf("NewTime(%d, %d, %v) error = %v, want ErrInvalidTime", tt.h, tt.m, tt.s, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("NewTime(%d, %d, %v) unexpected error: %v", tt.h, tt.m, tt.s, err)
			}
		})
	}

	if _, err := NewAngle(10, 75, 0); !errors.Is(err, ErrInvalidAngle) {
		t.Errorf("NewAngle(10, 75, 0) error = %v, want ErrInvalidAngle", err)
	}
}

func TestStringFormats(t *testing.T) {
	if got := (Time{Hour: 4, Minute: 40, Second: 5.23}).String(); got != "04:40:05.23" {
		t.Errorf("Time.String() = %q", got)
	}
	if got := (Time{Minute: -30}).String(); got != "-00:30:00.00" {
		t.Errorf("Time.String() = %q", got)
	}
	if got := TimeFromDecimal(10.3499999).String(); got != "10:21:00.00" {
		t.Errorf("Time.String() near a carry = %q, want 10:21:00.00", got)
	}
	if got := (Angle{Degree: -8, Minute: 13, Second: 30}).String(); got != "-8°13'30.0\"" {
		t.Errorf("Angle.String() = %q", got)
	}
}
