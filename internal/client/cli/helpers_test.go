package cli

import "errors"

var errBoom = errors.New("boom")
