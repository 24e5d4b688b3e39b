package core

import (
	"errors"
)

var (
	ErrInvalidEncoding  = errors.New("dtmkey: invalid encoding")
	ErrInvalidKeyLength = errors.New("dtmkey: invalid key length")
	ErrInvalidURN       = errors.New("dtmkey: invalid model urn")
	ErrInvalidInput     = errors.New("dtmkey: invalid input")
	ErrNotFound         = errors.New("dtmkey: not found")
	ErrCorrupt          = errors.New("dtmkey: corrupt data")
	ErrClosed           = errors.New("dtmkey: index closed")
)
