package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "info": {"statuscode": 0, "messages": []},
  "results": [{
    "providedLocation": {"location": "233 S Wacker Dr, Chicago"},
    "locations": [{
      "street": "233 S Wacker Dr",
      "adminArea5": "Chicago",
      "adminArea3": "IL",
      "adminArea1": "US",
      "postalCode": "60606",
      "latLng": {"lat": 41.878876, "lng": -87.635915}
    }]
  }]
}`

func TestGeocodeParsesFirstResult(t *testing.T) {
	var gotKey, gotLocation string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotLocation = r.URL.Query().Get("location")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", 0)
	locs, err := c.Geocode(context.Background(), "233 S Wacker Dr, Chicago")
	require.NoError(t, err)
	require.Len(t, locs, 1)

	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "233 S Wacker Dr, Chicago", gotLocation)
	assert.InDelta(t, 41.878876, locs[0].Latitude, 1e-9)
	assert.InDelta(t, -87.635915, locs[0].Longitude, 1e-9)
	assert.Equal(t, "Chicago", locs[0].City)
	assert.Equal(t, "IL", locs[0].StateCode)
	assert.Equal(t, "60606", locs[0].Zipcode)
	assert.Equal(t, "US", locs[0].CountryCode)
	assert.Equal(t, "233 S Wacker Dr, Chicago, IL 60606, US", locs[0].FormattedAddress)
}

func TestGeocodeNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"info":{"statuscode":0},"results":[{"locations":[]}]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k", 0).Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestGeocodeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"info":{"statuscode":403,"messages":["The AppKey submitted with this request is invalid."]}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "bad", 0).Geocode(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
	assert.Contains(t, err.Error(), "AppKey")
}

func TestGeocodeHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k", 5).Geocode(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
