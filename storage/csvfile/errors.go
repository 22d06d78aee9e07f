package csvfile

import "errors"

var (
	// ErrMalformedTable indicates a file that is not valid CSV.
	ErrMalformedTable = errors.New("malformed csv table")

	// ErrPathRequired is returned when a store is opened without a file path.
	ErrPathRequired = errors.New("csv file path required")
)
