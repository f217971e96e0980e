package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/riverwatch/tempcache/internal/models"
	"github.com/riverwatch/tempcache/internal/usgs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls    []string
	series   map[string]models.ObservationSeries
	failures map[string]error
}

func (f *fakeFetcher) FetchDailyTemps(_ context.Context, siteNo, _, _ string) (models.ObservationSeries, error) {
	f.calls = append(f.calls, siteNo)
	if err, ok := f.failures[siteNo]; ok {
		return models.ObservationSeries{}, err
	}
	return f.series[siteNo], nil
}

func float64Ptr(f float64) *float64 {
	return &f
}

func eligibleRecord(siteNo string) models.StationRecord {
	return models.StationRecord{
		SiteNo:    siteNo,
		TempBegin: "2020-01-01",
		TempEnd:   "2020-01-02",
		Latitude:  float64Ptr(1.0),
		Longitude: float64Ptr(2.0),
	}
}

func newPipeline(t *testing.T, fetcher Fetcher) *Pipeline {
	t.Helper()
	p, err := New(fetcher, Options{})
	require.NoError(t, err)
	return p
}

func TestRunSkipsIneligibleStations(t *testing.T) {
	fetcher := &fakeFetcher{}
	p := newPipeline(t, fetcher)

	records := []models.StationRecord{
		{SiteNo: "NO_DATES"},
		{SiteNo: "", TempBegin: "2020-01-01", TempEnd: "2020-01-02", Latitude: float64Ptr(1), Longitude: float64Ptr(2)},
		{SiteNo: "NO_COORDS", TempBegin: "2020-01-01", TempEnd: "2020-01-02"},
	}

	cache := p.Run(context.Background(), records)

	assert.Empty(t, fetcher.calls, "ineligible stations must never be queried")
	assert.Empty(t, cache.Series)
	assert.Empty(t, cache.NoData)
}

func TestRunRoutesResults(t *testing.T) {
	fetcher := &fakeFetcher{
		series: map[string]models.ObservationSeries{
			"WITH_DATA": {Labels: []string{"2020-01-01"}, Temps: []float64{5.5}},
			"EMPTY":     {},
		},
	}
	p := newPipeline(t, fetcher)

	cache := p.Run(context.Background(), []models.StationRecord{
		eligibleRecord("WITH_DATA"),
		eligibleRecord("EMPTY"),
	})

	assert.Equal(t, []string{"WITH_DATA", "EMPTY"}, fetcher.calls)
	assert.Contains(t, cache.Series, "WITH_DATA")
	assert.Equal(t, []string{"EMPTY"}, cache.NoData)
	assert.NotContains(t, cache.Series, "EMPTY")
}

func TestRunContinuesPastFetchErrors(t *testing.T) {
	fetcher := &fakeFetcher{
		series: map[string]models.ObservationSeries{
			"OK": {Labels: []string{"2020-01-01"}, Temps: []float64{3.0}},
		},
		failures: map[string]error{
			"BROKEN": usgs.NewFetchError("BROKEN", errors.New("connection refused")),
		},
	}
	p := newPipeline(t, fetcher)

	cache := p.Run(context.Background(), []models.StationRecord{
		eligibleRecord("BROKEN"),
		eligibleRecord("OK"),
	})

	assert.Equal(t, []string{"BROKEN", "OK"}, fetcher.calls)
	assert.NotContains(t, cache.Series, "BROKEN")
	assert.NotContains(t, cache.NoData, "BROKEN")
	assert.Contains(t, cache.Series, "OK")
}

func TestRunFetchesDuplicateSitesOnce(t *testing.T) {
	fetcher := &fakeFetcher{
		series: map[string]models.ObservationSeries{
			"DUP": {Labels: []string{"2020-01-01"}, Temps: []float64{4.0}},
		},
	}
	p := newPipeline(t, fetcher)

	cache := p.Run(context.Background(), []models.StationRecord{
		eligibleRecord("DUP"),
		eligibleRecord("DUP"),
	})

	assert.Equal(t, []string{"DUP"}, fetcher.calls)
	assert.Len(t, cache.Series, 1)
	assert.Empty(t, cache.NoData)
}

func TestRunEmptyStationList(t *testing.T) {
	p := newPipeline(t, &fakeFetcher{})

	cache := p.Run(context.Background(), nil)

	assert.Empty(t, cache.Series)
	assert.Empty(t, cache.NoData)
}
