package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/state"
)

func testSky() *state.Sky {
	obs := astro.Observer{Name: "Goldstone", LatDeg: 35.4267, LonDeg: -116.89}
	return &state.Sky{
		Time:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		JD:       2460324.9375,
		GST:      17.5,
		LST:      9.7073,
		DeltaT:   74.0,
		Observer: obs,
		Bodies: []state.BodyPosition{
			{Name: "Sun", Kind: state.KindSun, Eq: astro.Equatorial{RA: 19.8, Dec: -21.2}, Hz: astro.Horizon{Alt: -40, Az: 20}, Mag: -26.74},
			{Name: "Sirius", Kind: state.KindStar, Eq: astro.Equatorial{RA: 6.752, Dec: -16.716}, Hz: astro.Horizon{Alt: 30.5, Az: 220}, Mag: -1.46},
		},
	}
}

func TestExportSky(t *testing.T) {
	sky := testSky()
	events := []state.Event{{Type: state.EventRise, Body: "Sirius", Timestamp: sky.Time}}

	export := ExportSky(sky, events)

	assert.Equal(t, sky.Time, export.Timestamp)
	assert.Equal(t, "Goldstone", export.Observer.Name)
	assert.Equal(t, sky.JD, export.JD)
	require.Len(t, export.Bodies, 2)
	require.Len(t, export.Events, 1)

	sirius := export.Bodies[1]
	assert.Equal(t, "Sirius", sirius.Name)
	assert.Equal(t, "star", sirius.Kind)
	assert.True(t, sirius.Up)
	assert.False(t, export.Bodies[0].Up)
	assert.NotEmpty(t, sirius.RA)
	assert.NotContains(t, sirius.RA, "%!")
	assert.NotContains(t, sirius.Dec, "%!")
}

func TestExportSky_Nil(t *testing.T) {
	export := ExportSky(nil, nil)
	require.NotNil(t, export)
	assert.Empty(t, export.Bodies)
}

func TestSkyExport_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportSky(testSky(), nil).WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Contains(t, decoded, "jd")
	assert.Contains(t, decoded, "bodies")
	assert.NotContains(t, decoded, "events", "empty events are omitted")
	assert.True(t, strings.Contains(buf.String(), "\n  \""), "output should be indented")
}

func TestFormatRAAndDec(t *testing.T) {
	ra := FormatRA(10.35)
	assert.Contains(t, ra, "10")
	assert.Contains(t, ra, "21")

	dec := FormatDec(-8.225)
	assert.True(t, strings.HasPrefix(dec, "-"), "FormatDec(-8.225) = %q", dec)
	assert.Contains(t, dec, "13")
}

func TestGenerateSummaryRows_VisibleFirst(t *testing.T) {
	rows := GenerateSummaryRows(testSky())
	require.Len(t, rows, 2)

	assert.Equal(t, "Sirius", rows[0].Name)
	assert.True(t, rows[0].Up)
	assert.Equal(t, "06:45:07.20", rows[0].RA)
	assert.Equal(t, "Sun", rows[1].Name)

	assert.Nil(t, GenerateSummaryRows(nil))
}

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, testSky())
	out := buf.String()

	assert.Contains(t, out, "Sky @ 2024-01-15T10:30:00Z")
	assert.Contains(t, out, "Goldstone")
	assert.Contains(t, out, "GST 17:30:00.00")
	assert.Contains(t, out, "Sirius")
	assert.Contains(t, out, "Total: 2 bodies, 1 above the horizon")
}

func TestWriteSummaryTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, nil)
	assert.Equal(t, "No sky data\n", buf.String())
}

func TestWriteRiseSet(t *testing.T) {
	rise := time.Date(2024, 6, 21, 3, 43, 5, 0, time.UTC)
	window := astro.VisibilityWindow{
		Rise:         rise,
		Transit:      rise.Add(8 * time.Hour),
		Set:          rise.Add(16*time.Hour + 38*time.Minute),
		MaxElevation: 61.9,
		Valid:        true,
	}

	var buf bytes.Buffer
	WriteRiseSet(&buf, "Sun", window)
	out := buf.String()

	assert.Contains(t, out, "03:43:05 UT")
	assert.Contains(t, out, "20:21:05 UT")
	assert.Contains(t, out, "61.90°")
}

func TestWriteRiseSet_Circumpolar(t *testing.T) {
	var buf bytes.Buffer
	WriteRiseSet(&buf, "Polaris", astro.VisibilityWindow{Valid: true, AlwaysVisible: true, MaxElevation: 52})
	out := buf.String()

	assert.Contains(t, out, "Circumpolar")
	assert.Contains(t, out, "Rise       —")
}

func TestWritePasses(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	plan := &astro.PassPlan{
		Body:        "Sirius",
		WindowStart: start,
		WindowEnd:   start.Add(24 * time.Hour),
		Passes: []astro.Pass{{
			Site:      "Canberra",
			Start:     start.Add(2 * time.Hour),
			Peak:      start.Add(8 * time.Hour),
			End:       start.Add(14 * time.Hour),
			MaxElDeg:  71.3,
			SunMinSep: 160.2,
			SunTier:   astro.SunSepClear,
			Status:    astro.PassNext,
		}},
	}

	var buf bytes.Buffer
	WritePasses(&buf, plan)
	out := buf.String()

	assert.Contains(t, out, "Sirius passes")
	assert.Contains(t, out, "NEXT   Canberra")
	assert.Contains(t, out, "02:00:00 UT")
	assert.Contains(t, out, "71.30")
	assert.Contains(t, out, "160.2 clear")
	assert.Contains(t, out, "Next: Canberra at 02:00:00 UT")
	assert.NotContains(t, out, "Up now")
}

func TestWritePasses_CurrentPass(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	plan := &astro.PassPlan{
		Body:        "Sun",
		WindowStart: start,
		WindowEnd:   start.Add(24 * time.Hour),
		Passes: []astro.Pass{{
			Site:    "Madrid",
			Start:   start.Add(7 * time.Hour),
			Peak:    start.Add(12 * time.Hour),
			End:     start.Add(17 * time.Hour),
			SunTier: astro.SunSepLost,
			Status:  astro.PassNow,
		}},
	}

	var buf bytes.Buffer
	WritePasses(&buf, plan)
	out := buf.String()

	assert.Contains(t, out, " lost\n")
	assert.Contains(t, out, "Up now from Madrid until 17:00:00 UT")
	assert.Contains(t, out, "Next: none in window")
}

func TestWritePasses_Empty(t *testing.T) {
	var buf bytes.Buffer
	WritePasses(&buf, &astro.PassPlan{Body: "Sirius"})
	assert.Equal(t, "No passes\n", buf.String())
}

func TestWriteFields(t *testing.T) {
	var buf bytes.Buffer
	WriteFields(&buf, []Field{{"JD", "2446113.75"}, {"Weekday", "Friday"}})
	assert.Equal(t, "JD       2446113.75\nWeekday  Friday\n", buf.String())
}

func TestWriteEvents(t *testing.T) {
	ts := time.Date(2024, 6, 21, 3, 43, 0, 0, time.UTC)
	var buf bytes.Buffer
	WriteEvents(&buf, []state.Event{
		{Type: state.EventRise, Timestamp: ts, Body: "Sun", Alt: -0.8, Az: 49.5},
		{Type: state.EventObserverChanged, Timestamp: ts, Body: "Sydney"},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "03:43:00 RISE"))
	assert.Contains(t, lines[0], "az  49.50")
	assert.Equal(t, "03:43:00 OBSERVER Sydney", lines[1])
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Sirius", 14, "Sirius"},
		{"Alpha Centauri A", 14, "Alpha Centau.."},
		{"Vega", 3, "Veg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateStr(tt.in, tt.maxLen))
	}
}
