package dtmkey

import (
	"github.com/agenthands/dtmkey/pkg/core"
)

var (
	ErrInvalidEncoding  = core.ErrInvalidEncoding
	ErrInvalidKeyLength = core.ErrInvalidKeyLength
	ErrInvalidURN       = core.ErrInvalidURN
	ErrInvalidInput     = core.ErrInvalidInput
	ErrNotFound         = core.ErrNotFound
	ErrCorrupt          = core.ErrCorrupt
	ErrClosed           = core.ErrClosed
)
