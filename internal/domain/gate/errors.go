package gate

import (
	"errors"
)

// Sentinel kinds for submission errors. These allow errors.Is from the API
// layer when translating to status codes.
var (
	ErrInvalidRecord     = errors.New("invalid rating record")
	ErrInvalidScore      = errors.New("score out of range")
	ErrUnknownCompetency = errors.New("unknown competency")
	ErrAlreadySubmitted  = errors.New("rating already submitted")
	ErrRaterCapReached   = errors.New("rater cap reached")
)
