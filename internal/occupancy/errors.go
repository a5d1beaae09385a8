package occupancy

import "errors"

var (
	// ErrMalformedZoneData is returned when a zone record cannot be loaded.
	ErrMalformedZoneData = errors.New("malformed zone data")
	// ErrInvalidZonePolygon is returned by Classify for a zone without exactly 4 points.
	ErrInvalidZonePolygon = errors.New("invalid zone polygon")
	// ErrClassColorExhausted is returned when no class color satisfies the table constraints.
	ErrClassColorExhausted = errors.New("class color exhausted")
	ErrUnknownUnit         = errors.New("unknown coordinate unit")
	ErrFrameSize           = errors.New("invalid frame size")
	ErrMalformedDetection  = errors.New("malformed detection")
)
