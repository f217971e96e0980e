package models

// ObservationSeries holds the daily labels and temperature values for one
// station. The slices are index-aligned and always equal in length; both
// empty means the service returned no usable data.
type ObservationSeries struct {
	Labels []string  `json:"labels"`
	Temps  []float64 `json:"temps"`
}

// Empty reports whether the series carries no observations.
func (s ObservationSeries) Empty() bool {
	return len(s.Labels) == 0
}

// TempCache accumulates the per-station series plus the list of stations
// that answered with no usable data. A site number lands in exactly one of
// the two, and at most once.
type TempCache struct {
	Series map[string]ObservationSeries
	NoData []string
}

func NewTempCache() *TempCache {
	return &TempCache{Series: make(map[string]ObservationSeries)}
}

// Add records the fetch outcome for one station: a non-empty series joins
// the cache, an empty one puts the station on the no-data list.
func (c *TempCache) Add(siteNo string, series ObservationSeries) {
	if series.Empty() {
		c.NoData = append(c.NoData, siteNo)
		return
	}
	c.Series[siteNo] = series
}
