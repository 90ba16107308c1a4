package domain

import "time"

// Resolution is the native interval resolution of a series, carried
// explicitly so the demand aggregation never has to guess the divisor from
// which provider produced the data.
type Resolution int

// Supported interval resolutions.
const (
	ResolutionQuarterHour Resolution = 4 // 15-minute data, 96 intervals per day
	ResolutionHourly      Resolution = 1 // hourly data, 24 intervals per day
)

// IntervalsPerHour returns the number of reporting intervals per hour.
func (r Resolution) IntervalsPerHour() int {
	if r <= 0 {
		return 1
	}
	return int(r)
}

// Series is a normalized per-day time series for one
// (provider, country, metric) combination. Positions are unique after
// normalization; original interval ordering is preserved.
type Series struct {
	Provider     string
	Country      string
	Metric       Metric
	Day          time.Time
	Resolution   Resolution
	Observations []Observation
}

// IsEmpty reports whether the series carries no observations.
func (s *Series) IsEmpty() bool {
	return s == nil || len(s.Observations) == 0
}

// TotalMWh sums the series quantities into daily energy, dividing by the
// native intervals-per-hour (4 for 15-minute data, 1 for hourly data).
func (s *Series) TotalMWh() float64 {
	if s.IsEmpty() {
		return 0
	}
	var sumMW float64
	for _, obs := range s.Observations {
		sumMW += obs.QuantityMW
	}
	return sumMW / float64(s.Resolution.IntervalsPerHour())
}
