package picture

import "errors"

var (
	// ErrInvalidMediaType is returned when a frame handed to a picture
	// buffer does not carry image data.
	ErrInvalidMediaType = errors.New("frame does not contain video data")

	// ErrAllocation is returned when a picture buffer cannot be allocated.
	ErrAllocation = errors.New("unable to allocate picture buffer")

	// ErrReleased is returned when a released picture buffer is reused.
	ErrReleased = errors.New("picture buffer has been released")
)
