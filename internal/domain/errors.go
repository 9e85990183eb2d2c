package domain

import "errors"

// ErrInvalidConfiguration marks planning inputs rejected before any work starts:
// negative counts, non-positive or non-finite caps, malformed instances.
var ErrInvalidConfiguration = errors.New("invalid configuration")
