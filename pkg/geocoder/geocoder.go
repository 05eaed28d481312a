// Package geocoder resolves free-text addresses through a MapQuest-compatible
// geocoding API.
package geocoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const DefaultURL = "https://www.mapquestapi.com/geocoding/v1/address"

// ErrNoMatch is returned when the provider found no candidate for an address.
var ErrNoMatch = errors.New("geocoder: no match for address")

// Location is one geocoding candidate.
type Location struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	StreetName       string
	City             string
	StateCode        string
	Zipcode          string
	CountryCode      string
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]Location, error)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// New builds a client. rps <= 0 disables outbound throttling.
func New(baseURL, apiKey string, rps float64) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	if rps > 0 {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return c
}

func (c *Client) Geocode(ctx context.Context, address string) ([]Location, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("geocoder: wait: %w", err)
		}
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("location", address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocoder: build request: %w", err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder: request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("geocoder: read body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder: provider returned %d", res.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("geocoder: malformed response")
	}
	return parse(body)
}

func parse(body []byte) ([]Location, error) {
	doc := gjson.ParseBytes(body)
	if code := doc.Get("info.statuscode").Int(); code != 0 {
		msg := doc.Get("info.messages.0").String()
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("geocoder: status %d: %s", code, msg)
	}

	var out []Location
	doc.Get("results.0.locations").ForEach(func(_, loc gjson.Result) bool {
		l := Location{
			Latitude:    loc.Get("latLng.lat").Float(),
			Longitude:   loc.Get("latLng.lng").Float(),
			StreetName:  loc.Get("street").String(),
			City:        loc.Get("adminArea5").String(),
			StateCode:   loc.Get("adminArea3").String(),
			Zipcode:     loc.Get("postalCode").String(),
			CountryCode: loc.Get("adminArea1").String(),
		}
		l.FormattedAddress = formatAddress(l)
		out = append(out, l)
		return true
	})
	if len(out) == 0 {
		return nil, ErrNoMatch
	}
	return out, nil
}

func formatAddress(l Location) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{l.StreetName, l.City, strings.TrimSpace(l.StateCode + " " + l.Zipcode), l.CountryCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
