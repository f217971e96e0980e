package usgs

import "fmt"

// FetchError wraps a per-station failure against the water services API.
// Callers treat it as non-fatal: log the station, move on to the next one.
type FetchError struct {
	SiteNo string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching daily values for site %s: %v", e.SiteNo, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func NewFetchError(siteNo string, err error) *FetchError {
	return &FetchError{SiteNo: siteNo, Err: err}
}
