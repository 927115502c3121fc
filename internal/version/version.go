// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - Live sky clock TUI, scheduled watch mode, config hot reload
// 0.3.0 - Moon model, rise/transit/set search, bright-star catalog
// 0.2.0 - Coordinate transforms (horizon, ecliptic, galactic), Sun model
// 0.1.0 - Initial release: Julian Day, sidereal time, ΔT
