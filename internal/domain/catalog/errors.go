package catalog

import (
	"errors"
)

// Sentinel kinds for catalog errors.
var (
	ErrParseCatalog  = errors.New("parse catalog failed")
	ErrUnknownScheme = errors.New("unknown tier scheme")
)
