package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nuclear-grid-lab/internal/domain"
)

// ternaDateLayout is the dd/mm/yyyy format the load endpoint expects.
const ternaDateLayout = "02/01/2006"

// TernaClient fetches total load from the Terna developer API.
// Authentication is a two-step OAuth2 client-credentials exchange: the
// short-lived bearer token is obtained per fetch, and a token-step failure
// aborts before the data request is attempted.
type TernaClient struct {
	tokenURL        string
	dataURL         string
	clientID        string
	clientSecret    string
	subscriptionKey string
	settings        settings
}

// TernaOptions contains the endpoints and credentials for a TernaClient.
type TernaOptions struct {
	TokenURL        string
	DataURL         string
	ClientID        string
	ClientSecret    string
	SubscriptionKey string // optional Ocp-Apim-Subscription-Key header
}

// NewTernaClient creates a Terna total-load client.
func NewTernaClient(opts TernaOptions, clientOpts ...Option) *TernaClient {
	s := defaultSettings()
	for _, opt := range clientOpts {
		opt(&s)
	}
	return &TernaClient{
		tokenURL:        opts.TokenURL,
		dataURL:         opts.DataURL,
		clientID:        opts.ClientID,
		clientSecret:    opts.ClientSecret,
		subscriptionKey: opts.SubscriptionKey,
		settings:        s,
	}
}

// Compile-time interface check.
var _ Connector = (*TernaClient)(nil)

// tokenResponse is the token endpoint's JSON body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Fetch retrieves one day's total load as raw JSON.
func (c *TernaClient) Fetch(ctx context.Context, day time.Time, zone string) ([]byte, error) {
	token, err := c.exchangeToken(ctx)
	if err != nil {
		return nil, err
	}

	dateStr := day.Format(ternaDateLayout)
	q := url.Values{}
	q.Set("dateFrom", dateStr)
	q.Set("dateTo", dateStr)
	endpoint := c.dataURL + "?" + q.Encode()

	return c.settings.do(ctx, domain.ProviderTerna, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if c.subscriptionKey != "" {
			req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)
		}
		return req, nil
	})
}

// exchangeToken performs the client-credentials grant and returns the
// bearer token.
func (c *TernaClient) exchangeToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	body, err := c.settings.do(ctx, domain.ProviderTerna, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", &ConnectivityError{Provider: domain.ProviderTerna, Err: fmt.Errorf("decode token response: %w", err)}
	}
	if tok.AccessToken == "" {
		return "", &ConnectivityError{Provider: domain.ProviderTerna, Err: fmt.Errorf("token response missing access_token")}
	}
	return tok.AccessToken, nil
}
