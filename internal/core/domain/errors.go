package domain

import "errors"

var (
	// ErrInvalidArgument marks caller or data-integrity bugs: malformed dates,
	// negative week numbers, broken phase lists. It is never retried.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized access")

	ErrCoachUnavailable = errors.New("coach is unavailable, try again later")
)
