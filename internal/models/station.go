package models

// StationRecord is one entry from the legacy stationData list. Everything
// except the site number is optional in the source data, so optional fields
// stay pointers (or empty strings) to distinguish absent from zero.
type StationRecord struct {
	SiteNo    string   `json:"site_no"`
	TempBegin string   `json:"temp_begin,omitempty"`
	TempEnd   string   `json:"temp_end,omitempty"`
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lon,omitempty"`
}

// Eligible reports whether the station carries enough metadata to be
// queried: a site number, a temperature period of record, and coordinates.
func (s StationRecord) Eligible() bool {
	return s.SiteNo != "" &&
		s.TempBegin != "" && s.TempEnd != "" &&
		s.Latitude != nil && s.Longitude != nil
}
