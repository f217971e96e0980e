package stations

import "fmt"

// FormatError indicates the station artifact does not contain the expected
// stationData assignment at all. Nothing can be fetched in that case.
type FormatError struct {
	Path string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("no %q assignment found in %s", Marker, e.Path)
}

func NewFormatError(path string) *FormatError {
	return &FormatError{Path: path}
}

// ParseError indicates the assignment was found but the literal after it is
// not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing station data in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func NewParseError(path string, err error) *ParseError {
	return &ParseError{Path: path, Err: err}
}
