package connector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"nuclear-grid-lab/internal/domain"
)

var fetchDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestENTSOEClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if q.Get("securityToken") != "test-token" {
			t.Errorf("expected security token, got %q", q.Get("securityToken"))
		}
		if q.Get("documentType") != "A65" {
			t.Errorf("expected documentType A65, got %q", q.Get("documentType"))
		}
		if q.Get("processType") != "A16" {
			t.Errorf("expected processType A16, got %q", q.Get("processType"))
		}
		// Load documents carry the zone as outBiddingZone_Domain
		if q.Get("outBiddingZone_Domain") != domain.ZoneItaly {
			t.Errorf("expected italy zone, got %q", q.Get("outBiddingZone_Domain"))
		}
		if q.Get("periodStart") != "202503100000" || q.Get("periodEnd") != "202503110000" {
			t.Errorf("unexpected period: %s - %s", q.Get("periodStart"), q.Get("periodEnd"))
		}

		w.Write([]byte("<GL_MarketDocument/>"))
	}))
	defer server.Close()

	client := NewENTSOEClient(server.URL, "test-token", domain.MetricLoad)

	body, err := client.Fetch(context.Background(), fetchDay, domain.ZoneItaly)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(body) != "<GL_MarketDocument/>" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestENTSOEClient_GenerationUsesInDomain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("documentType") != "A75" {
			t.Errorf("expected documentType A75, got %q", q.Get("documentType"))
		}
		if q.Get("in_Domain") != domain.ZoneFrance {
			t.Errorf("expected in_Domain zone, got %q", q.Get("in_Domain"))
		}
		if q.Get("outBiddingZone_Domain") != "" {
			t.Error("generation request must not carry outBiddingZone_Domain")
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewENTSOEClient(server.URL, "test-token", domain.MetricGeneration)

	if _, err := client.Fetch(context.Background(), fetchDay, domain.ZoneFrance); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
}

func TestENTSOEClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewENTSOEClient(server.URL, "test-token", domain.MetricLoad,
		WithRetryDelay(time.Millisecond))

	body, err := client.Fetch(context.Background(), fetchDay, domain.ZoneItaly)
	if err != nil {
		t.Fatalf("Fetch failed after retries: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("unexpected body %q", body)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestENTSOEClient_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid security token"))
	}))
	defer server.Close()

	client := NewENTSOEClient(server.URL, "bad-token", domain.MetricLoad,
		WithRetryDelay(time.Millisecond))

	_, err := client.Fetch(context.Background(), fetchDay, domain.ZoneItaly)

	var ce *ConnectivityError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectivityError, got %v", err)
	}
	if ce.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", ce.Status)
	}
	if calls.Load() != 1 {
		t.Errorf("401 must not be retried, got %d attempts", calls.Load())
	}
}

func TestENTSOEClient_RetriesExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewENTSOEClient(server.URL, "test-token", domain.MetricLoad,
		WithMaxRetries(1), WithRetryDelay(time.Millisecond))

	_, err := client.Fetch(context.Background(), fetchDay, domain.ZoneItaly)

	var ce *ConnectivityError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectivityError, got %v", err)
	}
	if ce.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", ce.Status)
	}
}
