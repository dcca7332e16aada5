package flow

import "errors"

var ErrIllegalTransition = errors.New("illegal stage transition")
