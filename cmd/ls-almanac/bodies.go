package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/civil"
	"github.com/litescript/ls-almanac/internal/report"
)

// moonElevation is the geocentric altitude of the Moon's centre at rise and
// set, allowing for refraction, semi-diameter and horizontal parallax.
const moonElevation = 0.125

// bodyResult is the JSON form of a single body position.
type bodyResult struct {
	Name      string  `json:"name"`
	UT        string  `json:"ut"`
	RAHours   float64 `json:"ra_hours"`
	DecDeg    float64 `json:"dec_deg"`
	EclLng    float64 `json:"ecliptic_lng"`
	EclLat    float64 `json:"ecliptic_lat"`
	Altitude  float64 `json:"altitude"`
	Azimuth   float64 `json:"azimuth"`
	SunSep    float64 `json:"sun_separation,omitempty"`
	GalLng    float64 `json:"galactic_lng,omitempty"`
	GalLat    float64 `json:"galactic_lat,omitempty"`
	EoTMinute float64 `json:"equation_of_time_min,omitempty"`
	Apparent  string  `json:"apparent_ut,omitempty"`
}

// positionOf resolves "sun", "moon" or a catalog star name at a UT instant.
func positionOf(name string, ut civil.DateTime) (string, astro.Equatorial, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sun":
		eq, err := astro.SunEquatorialPosition(ut)
		return "Sun", eq, err
	case "moon":
		eq, err := astro.MoonEquatorialPosition(ut)
		return "Moon", eq, err
	}
	star, err := astro.DefaultStarCatalog().Find(name)
	if err != nil {
		return "", astro.Equatorial{}, err
	}
	return star.Name, star.Equatorial(), nil
}

func (a *app) bodyFields(r bodyResult) []report.Field {
	fields := []report.Field{
		{Label: "Body", Value: r.Name},
		{Label: "UT", Value: r.UT},
		{Label: "Observer", Value: a.observer.Name},
		{Label: "RA", Value: report.FormatRA(r.RAHours)},
		{Label: "Dec", Value: report.FormatDec(r.DecDeg)},
		{Label: "Ecliptic λ", Value: deg(r.EclLng)},
		{Label: "Ecliptic β", Value: deg(r.EclLat)},
		{Label: "Altitude", Value: deg(r.Altitude)},
		{Label: "Azimuth", Value: deg(r.Azimuth)},
	}
	if r.GalLng != 0 || r.GalLat != 0 {
		fields = append(fields,
			report.Field{Label: "Galactic l", Value: deg(r.GalLng)},
			report.Field{Label: "Galactic b", Value: deg(r.GalLat)},
		)
	}
	if r.SunSep != 0 {
		fields = append(fields, report.Field{Label: "Sun separation", Value: deg(r.SunSep)})
	}
	if r.EoTMinute != 0 {
		fields = append(fields, report.Field{Label: "Equation of time", Value: fmt.Sprintf("%+.2f min", r.EoTMinute)})
	}
	if r.Apparent != "" {
		fields = append(fields, report.Field{Label: "Apparent solar UT", Value: r.Apparent})
	}
	return fields
}

// locate fills the frame-dependent parts of a body result.
func (a *app) locate(name string, eq astro.Equatorial, ut civil.DateTime) bodyResult {
	ecl := astro.EclipticFromEquatorialAt(eq, ut.Date)
	hz := astro.HorizonAt(eq, a.observer, ut.UTC())
	return bodyResult{
		Name:     name,
		UT:       ut.String(),
		RAHours:  eq.RA,
		DecDeg:   eq.Dec,
		EclLng:   ecl.Lng,
		EclLat:   ecl.Lat,
		Altitude: hz.Alt,
		Azimuth:  hz.Az,
	}
}

func sunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sun [DATETIME]",
		Short: "Position of the Sun and the equation of time",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ut, err := a.instantArg(args)
			if err != nil {
				return err
			}
			eq, err := astro.SunEquatorialPosition(ut)
			if err != nil {
				return fmt.Errorf("sun position: %w", err)
			}
			eot, err := astro.EquationOfTime(ut.Date)
			if err != nil {
				return fmt.Errorf("equation of time: %w", err)
			}

			// Read back the observer's local clock and correct it to sundial time
			apparent, err := astro.ApparentUTFromLocal(civil.LocalFromUT(ut, a.zone), a.zone)
			if err != nil {
				return err
			}

			r := a.locate("Sun", eq, ut)
			r.EoTMinute = eot * 60
			r.Apparent = apparent.String()
			return a.emit(cmd, a.bodyFields(r), r)
		},
	}
}

func moonCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "moon [DATETIME]",
		Short: "Position of the Moon",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ut, err := a.instantArg(args)
			if err != nil {
				return err
			}
			eq, err := astro.MoonEquatorialPosition(ut)
			if err != nil {
				return fmt.Errorf("moon position: %w", err)
			}
			sep, err := astro.SunSeparation(eq, ut)
			if err != nil {
				return fmt.Errorf("sun separation: %w", err)
			}

			r := a.locate("Moon", eq, ut)
			r.SunSep = sep
			return a.emit(cmd, a.bodyFields(r), r)
		},
	}
}

func starCmd(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "star NAME",
		Short: "Position of a catalog star",
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := astro.DefaultStarCatalog()
			if list {
				fields := make([]report.Field, 0, len(catalog.Stars))
				for _, s := range catalog.Stars {
					eq := s.Equatorial()
					fields = append(fields, report.Field{
						Label: s.Name,
						Value: fmt.Sprintf("%s  %s  mag %5.2f", report.FormatRA(eq.RA), report.FormatDec(eq.Dec), s.Mag),
					})
				}
				return a.emit(cmd, fields, catalog.Stars)
			}

			star, err := catalog.Find(args[0])
			if err != nil {
				return err
			}
			ut, err := a.instant()
			if err != nil {
				return err
			}
			eq := star.Equatorial()
			sep, err := astro.SunSeparation(eq, ut)
			if err != nil {
				return fmt.Errorf("sun separation: %w", err)
			}
			gal := astro.GalacticFromEquatorial(eq)

			r := a.locate(star.Name, eq, ut)
			r.SunSep = sep
			r.GalLng, r.GalLat = gal.Lng, gal.Lat
			return a.emit(cmd, a.bodyFields(r), r)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list the catalog")
	return cmd
}

func separationCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "separation BODY BODY",
		Short: "Angular separation of two bodies (sun, moon or star names)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ut, err := a.instant()
			if err != nil {
				return err
			}
			nameA, posA, err := positionOf(args[0], ut)
			if err != nil {
				return err
			}
			nameB, posB, err := positionOf(args[1], ut)
			if err != nil {
				return err
			}
			sep := astro.AngularSeparation(posA, posB)

			out := struct {
				A          string  `json:"a"`
				B          string  `json:"b"`
				UT         string  `json:"ut"`
				Separation float64 `json:"separation_deg"`
			}{nameA, nameB, ut.String(), sep}

			return a.emit(cmd, []report.Field{
				{Label: "Bodies", Value: nameA + " – " + nameB},
				{Label: "UT", Value: out.UT},
				{Label: "Separation", Value: fmt.Sprintf("%s  (%.4f°)", report.FormatDec(sep), sep)},
			}, out)
		},
	}
}

func riseSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "riseset BODY",
		Short: "Rise, transit and set for the UT day of --at",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ut, err := a.instant()
			if err != nil {
				return err
			}

			name, window, err := a.riseSet(args[0], ut.Date)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return report.WriteJSON(cmd.OutOrStdout(), struct {
					Body   string                 `json:"body"`
					Date   string                 `json:"date"`
					Window astro.VisibilityWindow `json:"window"`
				}{name, fmt.Sprintf("%04d-%02d-%02d", ut.Year, int(ut.Month), int(ut.Day)), window})
			}
			report.WriteRiseSet(cmd.OutOrStdout(), fmt.Sprintf("%s @ %s", name, a.observer.Name), window)
			return nil
		},
	}
}

func (a *app) riseSet(body string, date civil.Date) (string, astro.VisibilityWindow, error) {
	switch strings.ToLower(strings.TrimSpace(body)) {
	case "sun":
		w, err := astro.SunRiseSet(a.observer, date)
		return "Sun", w, err
	case "moon":
		start := civil.DateTime{Date: civil.Date{Year: date.Year, Month: date.Month, Day: math.Floor(date.Day)}}.UTC()
		name, samples, threshold, err := trackBody(body, start, 24*time.Hour)
		if err != nil {
			return "", astro.VisibilityWindow{}, err
		}
		w, err := astro.RiseSet(a.observer, samples, threshold)
		return name, w, err
	}

	star, err := astro.DefaultStarCatalog().Find(body)
	if err != nil {
		return "", astro.VisibilityWindow{}, err
	}
	w, err := astro.StarRiseSet(a.observer, star, date)
	return star.Name, w, err
}

// trackBody samples a body every 10 minutes from start and returns the
// altitude it rises and sets at.
func trackBody(body string, start time.Time, span time.Duration) (string, []astro.Sample, float64, error) {
	name, _, err := positionOf(body, civil.FromInstant(start))
	if err != nil {
		return "", nil, 0, err
	}
	threshold := astro.MinElevation
	switch name {
	case "Sun":
		threshold = astro.SunElevation
	case "Moon":
		threshold = moonElevation
	}
	samples, err := astro.Track(start, span, 10*time.Minute, func(t time.Time) (astro.Equatorial, error) {
		_, pos, err := positionOf(body, civil.FromInstant(t))
		return pos, err
	})
	if err != nil {
		return "", nil, 0, err
	}
	return name, samples, threshold, nil
}
