package domain

import "errors"

// ErrInvalidObservation is returned when observation validation fails.
var ErrInvalidObservation = errors.New("invalid observation")

// PSRTypeTotalLoad is the sentinel category for load feeds, which carry no
// MktPSRType element.
const PSRTypeTotalLoad = "TotalLoad"

// Observation is a single parsed data point: one quantity for one reporting
// interval. Zone is only set by feeds that mix bidding zones in one payload;
// the ENTSO-E document feeds are already scoped to one domain per request.
type Observation struct {
	Position   int     `json:"position"`       // 1-based interval index within the reporting day
	QuantityMW float64 `json:"quantity_MW"`    // average power over the interval
	PSRType    string  `json:"psrType"`        // energy-source category code (B01..B27) or TotalLoad
	Zone       string  `json:"zone,omitempty"` // bidding zone code, empty when feed is zone-scoped
}

// NewObservation validates and builds an Observation.
// Position must be >= 1 and quantity must be non-negative.
func NewObservation(position int, quantityMW float64, psrType, zone string) (Observation, error) {
	if position < 1 {
		return Observation{}, ErrInvalidObservation
	}
	if quantityMW < 0 {
		return Observation{}, ErrInvalidObservation
	}
	if psrType == "" {
		psrType = PSRTypeTotalLoad
	}
	return Observation{
		Position:   position,
		QuantityMW: quantityMW,
		PSRType:    psrType,
		Zone:       zone,
	}, nil
}
