package stations

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/riverwatch/tempcache/internal/models"
	"github.com/rs/zerolog/log"
)

// Marker is the assignment the station list is bound to inside the legacy
// JS artifact. Everything after it, minus one trailing semicolon, must be a
// plain JSON array of station objects.
const Marker = "var stationData ="

// Load reads the station artifact at path and returns the stationData
// records in their original order.
func Load(path string) ([]models.StationRecord, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading station file: %w", err)
	}

	records, err := Parse(string(text), path)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("station_count", len(records)).Str("path", path).Msg("station list parsed")
	return records, nil
}

// Parse extracts the stationData assignment from a script blob. The marker
// convention is a compatibility shim for the existing front-end artifact;
// the literal itself goes straight to the JSON decoder.
func Parse(text, path string) ([]models.StationRecord, error) {
	idx := strings.Index(text, Marker)
	if idx == -1 {
		return nil, NewFormatError(path)
	}

	literal := strings.TrimSpace(text[idx+len(Marker):])
	if strings.HasSuffix(literal, ";") {
		literal = strings.TrimSpace(strings.TrimSuffix(literal, ";"))
	}

	var records []models.StationRecord
	if err := json.Unmarshal([]byte(literal), &records); err != nil {
		return nil, NewParseError(path, err)
	}

	return records, nil
}
