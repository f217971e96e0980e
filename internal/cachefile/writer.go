package cachefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/riverwatch/tempcache/internal/models"
	"github.com/rs/zerolog/log"
)

// Variable names the artifact binds its two literals to. The front-end
// loads the file as a script and reads both globals.
const (
	CacheVar  = "staticTempCache"
	NoDataVar = "staticTempNoDv"
)

// WriteError indicates the artifact could not be produced. This is fatal:
// everything fetched during the run is lost.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing cache artifact %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write serializes the cache and no-data list as two compact JSON
// assignments and replaces whatever is at path. The body is encoded fully
// in memory first so a failure never leaves a truncated artifact behind.
func Write(path string, cache *models.TempCache) error {
	body, err := Encode(cache)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	log.Debug().Str("path", path).Int("bytes", len(body)).Msg("cache artifact written")
	return nil
}

// Encode renders the artifact body. Map keys come out sorted, so two runs
// over the same input and responses produce byte-identical artifacts.
func Encode(cache *models.TempCache) ([]byte, error) {
	seriesJSON, err := json.Marshal(cache.Series)
	if err != nil {
		return nil, fmt.Errorf("encoding series map: %w", err)
	}

	noData := cache.NoData
	if noData == nil {
		noData = []string{}
	}
	noDataJSON, err := json.Marshal(noData)
	if err != nil {
		return nil, fmt.Errorf("encoding no-data list: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "var %s = %s;\n", CacheVar, seriesJSON)
	fmt.Fprintf(&buf, "var %s = %s;\n", NoDataVar, noDataJSON)
	return buf.Bytes(), nil
}

// ReadCache parses the first assignment back out of an artifact body. The
// front-end evaluates the file directly; this exists for round-trip checks.
func ReadCache(body []byte) (map[string]models.ObservationSeries, error) {
	marker := fmt.Sprintf("var %s =", CacheVar)

	text := string(body)
	idx := strings.Index(text, marker)
	if idx == -1 {
		return nil, fmt.Errorf("no %s assignment in artifact", CacheVar)
	}

	literal := strings.TrimSpace(text[idx+len(marker):])
	if nl := strings.IndexByte(literal, '\n'); nl != -1 {
		literal = literal[:nl]
	}
	literal = strings.TrimSuffix(strings.TrimSpace(literal), ";")

	var series map[string]models.ObservationSeries
	if err := json.Unmarshal([]byte(literal), &series); err != nil {
		return nil, fmt.Errorf("decoding cache literal: %w", err)
	}

	return series, nil
}
