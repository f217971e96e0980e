package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/riverwatch/tempcache/internal/models"
	"github.com/rs/zerolog/log"
)

// Fetcher is the one operation the pipeline needs from the USGS client.
type Fetcher interface {
	FetchDailyTemps(ctx context.Context, siteNo, startDate, endDate string) (models.ObservationSeries, error)
}

type Options struct {
	// Throttle is the pause between station fetches. Zero disables it.
	Throttle time.Duration
	// MemoSize caps the duplicate-site memo.
	MemoSize int
}

const defaultMemoSize = 4096

type Pipeline struct {
	fetcher  Fetcher
	throttle time.Duration
	memo     *lru.Cache[string, struct{}]
}

func New(fetcher Fetcher, opts Options) (*Pipeline, error) {
	if opts.MemoSize <= 0 {
		opts.MemoSize = defaultMemoSize
	}

	memo, err := lru.New[string, struct{}](opts.MemoSize)
	if err != nil {
		return nil, fmt.Errorf("creating fetch memo: %w", err)
	}

	return &Pipeline{
		fetcher:  fetcher,
		throttle: opts.Throttle,
		memo:     memo,
	}, nil
}

// Run walks the station list in order and fetches the daily temperature
// series for each eligible station, one request at a time. Fetch failures
// are logged and skipped; the run always finishes the list.
func (p *Pipeline) Run(ctx context.Context, records []models.StationRecord) *models.TempCache {
	cache := models.NewTempCache()

	for _, rec := range records {
		if !rec.Eligible() {
			log.Debug().Str("site_no", rec.SiteNo).Msg("skipping station without period of record or coordinates")
			continue
		}

		if _, seen := p.memo.Get(rec.SiteNo); seen {
			log.Debug().Str("site_no", rec.SiteNo).Msg("duplicate site entry, already fetched")
			continue
		}

		log.Info().
			Str("site_no", rec.SiteNo).
			Str("start", rec.TempBegin).
			Str("end", rec.TempEnd).
			Msg("fetching daily temperatures")

		series, err := p.fetcher.FetchDailyTemps(ctx, rec.SiteNo, rec.TempBegin, rec.TempEnd)
		if err != nil {
			log.Error().Err(err).Str("site_no", rec.SiteNo).Msg("fetch failed, skipping station")
			continue
		}

		p.memo.Add(rec.SiteNo, struct{}{})
		cache.Add(rec.SiteNo, series)

		// Courtesy throttle between requests; the service is shared.
		if p.throttle > 0 {
			time.Sleep(p.throttle)
		}
	}

	log.Info().
		Int("with_data", len(cache.Series)).
		Int("no_data", len(cache.NoData)).
		Msg("station fetches complete")

	return cache
}
