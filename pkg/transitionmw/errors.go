package transitionmw

import "errors"

var (
	ErrNilRegisterer   = errors.New("transitionmw: prometheus registerer cannot be nil")
	ErrRegisterMetrics = errors.New("transitionmw: failed to register metrics")
)
