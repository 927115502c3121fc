package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/civil"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/sidereal"
)

// instantArg reads an optional positional instant, falling back to --at.
func (a *app) instantArg(args []string) (civil.DateTime, error) {
	if len(args) > 0 {
		a.at = args[0]
	}
	return a.instant()
}

func jdCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "jd [DATETIME]",
		Short: "Julian Day of an instant",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ut, err := a.instantArg(args)
			if err != nil {
				return err
			}
			jd := ut.JulianDay()
			a.logger.Debug("jd: %s -> %.6f", ut, jd)

			out := struct {
				UT        string  `json:"ut"`
				JD        float64 `json:"jd"`
				MJD       float64 `json:"mjd"`
				J2000     float64 `json:"j2000_days"`
				Since1990 float64 `json:"days_since_1990"`
			}{ut.String(), jd, civil.ModifiedJulianDay(jd), civil.J2000Days(jd), civil.DaysSince1990Epoch(jd)}

			return a.emit(cmd, []report.Field{
				{Label: "UT", Value: out.UT},
				{Label: "Julian Day", Value: fmt.Sprintf("%.6f", out.JD)},
				{Label: "MJD", Value: fmt.Sprintf("%.6f", out.MJD)},
				{Label: "J2000 days", Value: fmt.Sprintf("%.6f", out.J2000)},
				{Label: "Days since 1990", Value: fmt.Sprintf("%.6f", out.Since1990)},
			}, out)
		},
	}
}

func dateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "date JD",
		Short: "Calendar date of a Julian Day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jd, err := strconv.ParseFloat(args[0], 64)
			if err != nil || math.IsNaN(jd) || math.IsInf(jd, 0) {
				return fmt.Errorf("%w: Julian Day %q", errInvalidInput, args[0])
			}
			dt := civil.DateTimeFromJulianDay(jd)

			calendar := "Gregorian"
			if dt.IsJulianCalendarDate() {
				calendar = "Julian"
			}

			out := struct {
				JD       float64 `json:"jd"`
				UT       string  `json:"ut"`
				Calendar string  `json:"calendar"`
				Weekday  string  `json:"weekday"`
			}{jd, dt.String(), calendar, dt.Weekday().String()}

			return a.emit(cmd, []report.Field{
				{Label: "Julian Day", Value: fmt.Sprintf("%.6f", jd)},
				{Label: "UT", Value: out.UT},
				{Label: "Calendar", Value: out.Calendar},
				{Label: "Weekday", Value: out.Weekday},
			}, out)
		},
	}
}

func weekdayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weekday [DATE]",
		Short: "Day of week, day number and leap year of a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ut, err := a.instantArg(args)
			if err != nil {
				return err
			}
			d := ut.Date

			out := struct {
				Date      string `json:"date"`
				Weekday   string `json:"weekday"`
				DayNumber int    `json:"day_number"`
				LeapYear  bool   `json:"leap_year"`
			}{fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), int(d.Day)), d.Weekday().String(), d.DayNumber(), civil.IsLeapYear(d.Year)}

			return a.emit(cmd, []report.Field{
				{Label: "Date", Value: out.Date},
				{Label: "Weekday", Value: out.Weekday},
				{Label: "Day number", Value: strconv.Itoa(out.DayNumber)},
				{Label: "Leap year", Value: strconv.FormatBool(out.LeapYear)},
			}, out)
		},
	}
}

func gstCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gst [DATETIME]",
		Short: "Greenwich sidereal time of a UT instant",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ut, err := a.instantArg(args)
			if err != nil {
				return err
			}
			t0 := sidereal.T0(ut.Date)
			gst := sidereal.GSTHours(ut)
			a.logger.Debug("gst: T0 %.6f h, GST %.6f h", t0, gst)

			out := struct {
				UT  string  `json:"ut"`
				T0  float64 `json:"t0_hours"`
				GST float64 `json:"gst_hours"`
			}{ut.String(), t0, gst}

			return a.emit(cmd, []report.Field{
				{Label: "UT", Value: out.UT},
				{Label: "T0", Value: report.FormatHours(t0)},
				{Label: "GST", Value: report.FormatHours(gst)},
			}, out)
		},
	}
}

func utCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ut GST",
		Short: "Universal Time of a Greenwich sidereal time on the --at date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.instant()
			if err != nil {
				return err
			}
			gst, err := parseClock(args[0])
			if err != nil {
				return err
			}
			if _, err := civil.NewDateTime(day.Date, gst); err != nil {
				return err
			}

			date := civil.Date{Year: day.Year, Month: day.Month, Day: math.Floor(day.Day)}
			ut := sidereal.UTFromGST(civil.DateTime{Date: date, Time: gst})

			out := struct {
				Date string  `json:"date"`
				GST  float64 `json:"gst_hours"`
				UT   float64 `json:"ut_hours"`
			}{fmt.Sprintf("%04d-%02d-%02d", date.Year, int(date.Month), int(date.Day)), gst.Decimal(), ut.Decimal()}

			return a.emit(cmd, []report.Field{
				{Label: "Date", Value: out.Date},
				{Label: "GST", Value: gst.String()},
				{Label: "UT", Value: ut.String()},
			}, out)
		},
	}
}

func lstCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lst [DATETIME]",
		Short: "Local sidereal time for the observer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ut, err := a.instantArg(args)
			if err != nil {
				return err
			}
			lng, dir := a.observer.Longitude()
			gst := sidereal.GSTHours(ut)
			lst := sidereal.LSTHours(gst, lng, dir)

			out := struct {
				UT        string  `json:"ut"`
				Observer  string  `json:"observer"`
				Longitude string  `json:"longitude"`
				GST       float64 `json:"gst_hours"`
				LST       float64 `json:"lst_hours"`
			}{ut.String(), a.observer.Name, fmt.Sprintf("%.4f %s", lng, dir), gst, lst}

			return a.emit(cmd, []report.Field{
				{Label: "UT", Value: out.UT},
				{Label: "Observer", Value: out.Observer},
				{Label: "Longitude", Value: out.Longitude},
				{Label: "GST", Value: report.FormatHours(gst)},
				{Label: "LST", Value: report.FormatHours(lst)},
			}, out)
		},
	}
}

func deltaTCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deltat [YEAR]",
		Short: "ΔT = TT − UT in seconds for a decimal year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var year float64
			if len(args) > 0 {
				y, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("%w: year %q", errInvalidInput, args[0])
				}
				year = y
			} else {
				ut, err := a.instant()
				if err != nil {
					return err
				}
				year = ut.DecimalYear()
			}

			branch := sidereal.BranchFor(year)
			dt := branch.Eval(year)
			a.logger.Debug("deltat: year %.3f branch %q", year, branch.Name)

			out := struct {
				Year   float64 `json:"year"`
				DeltaT float64 `json:"delta_t_seconds"`
				Branch string  `json:"branch"`
			}{year, dt, branch.Name}

			return a.emit(cmd, []report.Field{
				{Label: "Year", Value: fmt.Sprintf("%.3f", year)},
				{Label: "ΔT", Value: fmt.Sprintf("%.2f s", dt)},
				{Label: "Model", Value: branch.Name},
			}, out)
		},
	}
}
