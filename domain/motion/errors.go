package motion

import "errors"

var (
	// ErrNoRegionSelected blocks Start until the user has picked a region.
	ErrNoRegionSelected = errors.New("no region selected")

	// ErrFrameSizeMismatch means two consecutive frames differ in size; the
	// iteration is skipped.
	ErrFrameSizeMismatch = errors.New("frame size mismatch")

	// ErrAlreadyRunning is returned by Start while a run is active.
	ErrAlreadyRunning = errors.New("detector already running")
)
