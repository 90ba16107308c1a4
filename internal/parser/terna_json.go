package parser

import (
	"encoding/json"
	"fmt"

	"nuclear-grid-lab/internal/domain"
)

// totalLoadDocument is the Terna load endpoint's JSON body: a named array
// of per-interval records carrying an explicit bidding zone. No error-reason
// handling is needed here; the HTTP status already signals failure.
type totalLoadDocument struct {
	TotalLoad []totalLoadRecord `json:"totalLoad"`
}

type totalLoadRecord struct {
	Position   int         `json:"position"`
	QuantityMW json.Number `json:"quantity_MW"`
	Zone       string      `json:"bidding_zone"`
}

// ParseTotalLoadJSON extracts observations from a Terna total-load payload.
// Quantities are coerced to numeric; a non-numeric value is a parse error.
// Records missing a position are assigned a per-zone ordinal. Terna publishes
// load at 15-minute resolution.
func ParseTotalLoadJSON(data []byte) ([]domain.Observation, domain.Resolution, error) {
	var doc totalLoadDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("decode document: %w", err)
	}

	if len(doc.TotalLoad) == 0 {
		return nil, 0, ErrEmptyDocument
	}

	ordinals := make(map[string]int)
	observations := make([]domain.Observation, 0, len(doc.TotalLoad))
	for i, rec := range doc.TotalLoad {
		quantity, err := rec.QuantityMW.Float64()
		if err != nil {
			return nil, 0, fmt.Errorf("record %d: non-numeric quantity %q", i, rec.QuantityMW.String())
		}

		position := rec.Position
		if position == 0 {
			ordinals[rec.Zone]++
			position = ordinals[rec.Zone]
		}

		obs, err := domain.NewObservation(position, quantity, domain.PSRTypeTotalLoad, rec.Zone)
		if err != nil {
			return nil, 0, fmt.Errorf("record %d: %w", i, err)
		}
		observations = append(observations, obs)
	}

	return observations, domain.ResolutionQuarterHour, nil
}
