package connector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"nuclear-grid-lab/internal/domain"
)

// entsoePeriodLayout is the yyyyMMddHHmm timestamp format the transparency
// platform expects for periodStart/periodEnd.
const entsoePeriodLayout = "200601021504"

// ENTSOEClient fetches generation/load documents from the ENTSO-E
// transparency platform. Authentication is a security token carried as a
// query parameter on a single signed GET.
type ENTSOEClient struct {
	baseURL  string
	token    string
	metric   domain.Metric
	settings settings
}

// NewENTSOEClient creates a client bound to one document type.
// If baseURL is empty, the public transparency endpoint is used.
func NewENTSOEClient(baseURL, token string, metric domain.Metric, opts ...Option) *ENTSOEClient {
	if baseURL == "" {
		baseURL = "https://web-api.tp.entsoe.eu/api"
	}
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &ENTSOEClient{
		baseURL:  baseURL,
		token:    token,
		metric:   metric,
		settings: s,
	}
}

// Compile-time interface check.
var _ Connector = (*ENTSOEClient)(nil)

// Fetch retrieves the raw XML document for one reporting day.
// The window is half-open: [day 00:00, day+1 00:00).
func (c *ENTSOEClient) Fetch(ctx context.Context, day time.Time, zone string) ([]byte, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	// The zone-domain parameter name depends on the document type.
	domainParam := "in_Domain"
	if c.metric == domain.MetricLoad {
		domainParam = "outBiddingZone_Domain"
	}

	q := url.Values{}
	q.Set("securityToken", c.token)
	q.Set("documentType", string(c.metric))
	q.Set("processType", domain.ProcessTypeRealised)
	q.Set(domainParam, zone)
	q.Set("periodStart", start.Format(entsoePeriodLayout))
	q.Set("periodEnd", end.Format(entsoePeriodLayout))

	endpoint := c.baseURL + "?" + q.Encode()

	return c.settings.do(ctx, domain.ProviderENTSOE, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	})
}
