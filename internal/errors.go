package internal

import (
	"errors"
)

var (
	ENOTSUP          = errors.New("not supported")
	ErrTransport     = errors.New("fetch transport error")
	ErrStreamRead    = errors.New("fetch stream error")
	ErrCanceled      = errors.New("fetch canceled")
	ErrInvalidConfig = errors.New("invalid config")
)
