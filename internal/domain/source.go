package domain

// Metric identifies the ENTSO-E document type requested from a provider.
type Metric string

// Supported document types.
const (
	MetricLoad       Metric = "A65" // total load
	MetricGeneration Metric = "A75" // actual generation per type
)

// ProcessTypeRealised is the fixed ENTSO-E process type for realised data.
const ProcessTypeRealised = "A16"

// EIC codes for the bidding zones covered by the pipeline.
const (
	ZoneItaly  = "10YIT-GRTN-----B"
	ZoneFrance = "10YFR-RTE------C"
	ZoneSpain  = "10YES-REE------0"
)

// Provider identifiers, used for logging and persistence slot naming.
const (
	ProviderENTSOE = "entsoe"
	ProviderTerna  = "terna"
)
