package model

import "errors"

// Error kinds. Callers wrap these with fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrDoesNotExist  = errors.New("does not exist")
	ErrInvalidFormat = errors.New("invalid league format")
	ErrLeagueLoader  = errors.New("no league data available")
	ErrNoData        = errors.New("no qualifying matchups")

	ErrInvalidArgument = errors.New("invalid argument")
)
