// Package normalize reshapes parsed observations into one canonical per-day
// series for a target zone.
package normalize

import (
	"errors"
	"time"

	"nuclear-grid-lab/internal/domain"
)

// ErrNoData is returned when zero records survive filtering: the payload was
// well-formed but carried nothing for the target zone. Distinct from the
// parser's empty-document error so the pipeline can tell "right format,
// wrong zone" from a malformed response.
var ErrNoData = errors.New("no records for target zone")

// Target describes the series a normalization pass should produce.
type Target struct {
	Provider string
	Country  string
	Zone     string // exact-match filter for feeds that mix zones
	Metric   domain.Metric
	Day      time.Time
}

// Normalize filters observations to the target zone and deduplicates them by
// interval position, last write wins. Records without a zone are kept: the
// zone-scoped document feeds never set one. Original interval ordering is
// preserved through the pass.
func Normalize(observations []domain.Observation, resolution domain.Resolution, target Target) (*domain.Series, error) {
	byPosition := make(map[int]int) // position → index in kept
	var kept []domain.Observation

	for _, obs := range observations {
		if obs.Zone != "" && obs.Zone != target.Zone {
			continue
		}
		if idx, seen := byPosition[obs.Position]; seen {
			kept[idx] = obs
			continue
		}
		byPosition[obs.Position] = len(kept)
		kept = append(kept, obs)
	}

	if len(kept) == 0 {
		return nil, ErrNoData
	}

	return &domain.Series{
		Provider:     target.Provider,
		Country:      target.Country,
		Metric:       target.Metric,
		Day:          target.Day,
		Resolution:   resolution,
		Observations: kept,
	}, nil
}
