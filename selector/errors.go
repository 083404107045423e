package selector

import "errors"

var ErrBadOperatingPoint = errors.New("bad operating point")
