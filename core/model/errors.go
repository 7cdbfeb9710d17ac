package model

import "errors"

// ErrInvalidConfiguration reports a constructor-time parameter outside its
// valid domain range, e.g. a non-positive battery capacity. Wrapped errors
// name the offending parameter; callers branch with errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrInvalidArgument reports a call-time parameter violation, e.g. a
// non-positive timestep. These indicate a caller bug, never a transient
// condition, so there is no retry semantic attached.
var ErrInvalidArgument = errors.New("invalid argument")
