package pipeline

import (
	"nuclear-grid-lab/internal/connector"
	"nuclear-grid-lab/internal/domain"
	"nuclear-grid-lab/internal/normalize"
)

// ParseFunc converts a raw provider payload into observations plus the
// native interval resolution of the data.
type ParseFunc func(data []byte) ([]domain.Observation, domain.Resolution, error)

// Source binds one provider fetch to its parser, normalization target and
// persistence slot. The driver is provider-agnostic and just iterates a
// configured list of these.
type Source struct {
	Name       string              // e.g. "italy-load"
	Connector  connector.Connector // provider protocol
	Parse      ParseFunc           // payload format
	Target     normalize.Target    // zone filter and series identity
	Collection string              // raw-data collection, e.g. "daily_load_italy"
	Mandatory  bool                // feeds the national demand simulation
}
