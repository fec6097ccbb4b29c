package daemon

import "errors"

// ErrNilConfig is returned by New without a configuration.
var ErrNilConfig = errors.New("config is nil")
