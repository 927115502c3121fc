package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/civil"
	"github.com/litescript/ls-almanac/internal/report"
)

// frame is a coordinate system accepted by convert.
type frame string

const (
	frameEquatorial frame = "equatorial"
	frameHourAngle  frame = "hour-angle"
	frameHorizon    frame = "horizon"
	frameEcliptic   frame = "ecliptic"
	frameGalactic   frame = "galactic"
)

var frameAliases = map[string]frame{
	"equatorial": frameEquatorial, "eq": frameEquatorial, "radec": frameEquatorial,
	"hour-angle": frameHourAngle, "ha": frameHourAngle,
	"horizon": frameHorizon, "hz": frameHorizon, "altaz": frameHorizon,
	"ecliptic": frameEcliptic, "ecl": frameEcliptic,
	"galactic": frameGalactic, "gal": frameGalactic,
}

func parseFrame(s string) (frame, error) {
	f, ok := frameAliases[strings.ToLower(s)]
	if !ok {
		return "", fmt.Errorf("%w: unknown frame %q", errInvalidInput, s)
	}
	return f, nil
}

// axes names the two inputs of a frame; the first of equatorial and
// hour-angle is in hours.
func (f frame) axes() (string, string) {
	switch f {
	case frameEquatorial:
		return "RA", "Dec"
	case frameHourAngle:
		return "HA", "Dec"
	case frameHorizon:
		return "Alt", "Az"
	case frameEcliptic:
		return "Lng", "Lat"
	default:
		return "l", "b"
	}
}

func (f frame) hoursFirst() bool {
	return f == frameEquatorial || f == frameHourAngle
}

// converter moves positions through the equatorial frame. Horizon and hour
// angle need the observer and instant.
type converter struct {
	obs astro.Observer
	ut  civil.DateTime
}

func (c converter) toEquatorial(f frame, x, y float64) astro.Equatorial {
	lng, dir := c.obs.Longitude()
	switch f {
	case frameHourAngle:
		return astro.Equatorial{RA: astro.RightAscensionFromUT(x, c.ut, lng, dir), Dec: y}
	case frameHorizon:
		ha := astro.EquatorialFromHorizon(astro.Horizon{Alt: x, Az: y}, c.obs.LatDeg)
		return astro.Equatorial{RA: astro.RightAscensionFromUT(ha.HA, c.ut, lng, dir), Dec: ha.Dec}
	case frameEcliptic:
		return astro.EquatorialFromEclipticAt(astro.Ecliptic{Lng: x, Lat: y}, c.ut.Date)
	case frameGalactic:
		return astro.EquatorialFromGalactic(astro.Galactic{Lng: x, Lat: y})
	default:
		return astro.Equatorial{RA: civil.Wrap(x, 24), Dec: y}
	}
}

func (c converter) fromEquatorial(f frame, eq astro.Equatorial) (float64, float64) {
	lng, dir := c.obs.Longitude()
	switch f {
	case frameHourAngle:
		return astro.HourAngleFromUT(eq.RA, c.ut, lng, dir), eq.Dec
	case frameHorizon:
		ha := astro.HourAngleFromUT(eq.RA, c.ut, lng, dir)
		hz := astro.HorizonFromEquatorial(astro.EquatorialHA{HA: ha, Dec: eq.Dec}, c.obs.LatDeg)
		return hz.Alt, hz.Az
	case frameEcliptic:
		ecl := astro.EclipticFromEquatorialAt(eq, c.ut.Date)
		return ecl.Lng, ecl.Lat
	case frameGalactic:
		gal := astro.GalacticFromEquatorial(eq)
		return gal.Lng, gal.Lat
	default:
		return eq.RA, eq.Dec
	}
}

// convert maps (x, y) in one frame to another. The hour-angle to equatorial
// pair shortcuts through RA = LST − H.
func (c converter) convert(from, to frame, x, y float64) (float64, float64) {
	if from == to {
		return x, y
	}
	if from == frameHorizon && to == frameHourAngle {
		ha := astro.EquatorialFromHorizon(astro.Horizon{Alt: x, Az: y}, c.obs.LatDeg)
		return ha.HA, ha.Dec
	}
	if from == frameHourAngle && to == frameHorizon {
		hz := astro.HorizonFromEquatorial(astro.EquatorialHA{HA: x, Dec: y}, c.obs.LatDeg)
		return hz.Alt, hz.Az
	}
	return c.fromEquatorial(to, c.toEquatorial(from, x, y))
}

func formatAxis(v float64, hours bool) string {
	if hours {
		return report.FormatRA(v)
	}
	return report.FormatDec(v)
}

func convertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert FROM TO X Y",
		Short: "Convert a position between coordinate frames",
		Long: `Convert a position between coordinate frames.

Frames: equatorial (RA hours, Dec), hour-angle (HA hours, Dec),
horizon (Alt, Az), ecliptic (Lng, Lat), galactic (l, b).
Angles are decimal or sexagesimal (H:M:S, D:M:S). Horizon and hour
angle use the observer and --at instant; ecliptic uses the mean
obliquity of the --at date.`,
		Example: `  ls-almanac convert equatorial galactic 10:21:00 10:03:11
  ls-almanac convert horizon equatorial 19.3347 283.2711 --lat 52 --lon -64 --at 1980-04-22T14:36:51.67`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseFrame(args[0])
			if err != nil {
				return err
			}
			to, err := parseFrame(args[1])
			if err != nil {
				return err
			}

			var x float64
			if from.hoursFirst() {
				x, err = parseHours(args[2])
			} else {
				x, err = parseDegrees(args[2])
			}
			if err != nil {
				return err
			}
			y, err := parseDegrees(args[3])
			if err != nil {
				return err
			}

			ut, err := a.instant()
			if err != nil {
				return err
			}

			c := converter{obs: a.observer, ut: ut}
			ox, oy := c.convert(from, to, x, y)
			a.logger.Debug("convert: %s (%g, %g) -> %s (%g, %g)", from, x, y, to, ox, oy)

			xName, yName := to.axes()
			out := struct {
				Frame string  `json:"frame"`
				X     float64 `json:"x"`
				Y     float64 `json:"y"`
			}{string(to), ox, oy}

			return a.emit(cmd, []report.Field{
				{Label: "Frame", Value: string(to)},
				{Label: xName, Value: fmt.Sprintf("%s  (%.6f)", formatAxis(ox, to.hoursFirst()), ox)},
				{Label: yName, Value: fmt.Sprintf("%s  (%.6f)", formatAxis(oy, false), oy)},
			}, out)
		},
	}
}
