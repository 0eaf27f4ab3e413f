package rating

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() ShipmentSpec {
	return ShipmentSpec{
		PickupDate:   "2026-05-14",
		OriginZip:    "54701",
		DestZip:      "60601",
		PalletCount:  3,
		GrossWeight:  2500,
		FreightClass: 70,
	}
}

func TestRateQuoteCost(t *testing.T) {
	q := RateQuote{BaseRate: 100, FuelSurcharge: 22, PremiumsAndDiscounts: -5}

	assert.InDelta(t, 117.0, q.Cost(), 1e-9)
}

func TestGetQuotes(t *testing.T) {
	var gotReq QuoteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/quotes", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(QuoteResponse{Quotes: []RateQuote{
			{CarrierID: "carrier-exla", CarrierCode: "EXLA", BaseRate: 200, FuelSurcharge: 44},
		}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	quotes, err := client.GetQuotes(context.Background(), testSpec(), []string{"carrier-exla"})

	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "EXLA", quotes[0].CarrierCode)
	assert.Equal(t, []string{"carrier-exla"}, gotReq.CarrierIDs)
	assert.Empty(t, gotReq.GroupID)
}

func TestGetQuotesForGroup(t *testing.T) {
	var gotReq QuoteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(QuoteResponse{Quotes: []RateQuote{
			{CarrierCode: "EXLA"}, {CarrierCode: "SAIA"},
		}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	quotes, err := client.GetQuotesForGroup(context.Background(), testSpec(), "group-ltl")

	require.NoError(t, err)
	assert.Len(t, quotes, 2)
	assert.Equal(t, "group-ltl", gotReq.GroupID)
	assert.Empty(t, gotReq.CarrierIDs)
}

func TestGetQuotes_EmptyResultIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(QuoteResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	quotes, err := client.GetQuotes(context.Background(), testSpec(), []string{"carrier-exla"})

	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestGetQuotes_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.GetQuotes(context.Background(), testSpec(), []string{"carrier-exla"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestGetQuotes_APIErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(QuoteResponse{Errors: []APIError{{Message: "invalid zip"}}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.GetQuotes(context.Background(), testSpec(), []string{"carrier-exla"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid zip")
}

func TestMockMode(t *testing.T) {
	client := NewClient("", "")

	require.True(t, client.IsUsingMockData())

	quotes, err := client.GetQuotes(context.Background(), testSpec(), []string{"carrier-target"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Greater(t, quotes[0].Cost(), 0.0)

	// Mock quotes are deterministic for a given shipment and carrier.
	again, err := client.GetQuotes(context.Background(), testSpec(), []string{"carrier-target"})
	require.NoError(t, err)
	assert.Equal(t, quotes, again)

	groupQuotes, err := client.GetQuotesForGroup(context.Background(), testSpec(), "group-ltl")
	require.NoError(t, err)
	assert.Len(t, groupQuotes, len(mockCompetitorCarriers))
}
