package learning

import "errors"

// Sentinel errors for the learning package.
// Check with errors.Is: errors.Is(err, learning.ErrAlreadyEnrolled)
var (
	ErrAlreadyEnrolled = errors.New("learning: user already enrolled in algorithm")
	ErrNotFound        = errors.New("learning: record not found")
)
