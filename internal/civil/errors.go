package civil

import "errors"

// Domain errors returned by constructors and Validate methods. Callers should
// match them with errors.Is; the wrapped message names the offending field.
var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidTime  = errors.New("invalid time")
	ErrInvalidAngle = errors.New("invalid angle")
)
