package services

import (
	"context"
	"errors"

	"github.com/gosimple/slug"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/pkg/geocoder"
	"github.com/bigbadbobbo/foodtruck-api/pkg/metrics"
)

// locate resolves address into a point using the first candidate.
func locate(ctx context.Context, g geocoder.Geocoder, address string) (entity.GeoPoint, error) {
	if g == nil {
		metrics.GeocodesTotal.WithLabelValues("error").Inc()
		return entity.GeoPoint{}, apperr.Internal(errors.New("no geocoder configured"), "Could not geocode address")
	}
	locs, err := g.Geocode(ctx, address)
	switch {
	case errors.Is(err, geocoder.ErrNoMatch), err == nil && len(locs) == 0:
		metrics.GeocodesTotal.WithLabelValues("no_match").Inc()
		return entity.GeoPoint{}, apperr.Validation("Could not find a location for address %q", address)
	case err != nil:
		metrics.GeocodesTotal.WithLabelValues("error").Inc()
		return entity.GeoPoint{}, apperr.Internal(err, "Could not geocode address")
	}
	metrics.GeocodesTotal.WithLabelValues("ok").Inc()

	l := locs[0]
	return entity.GeoPoint{
		Type:             "Point",
		Longitude:        l.Longitude,
		Latitude:         l.Latitude,
		FormattedAddress: l.FormattedAddress,
		Street:           l.StreetName,
		City:             l.City,
		State:            l.StateCode,
		Zipcode:          l.Zipcode,
		Country:          l.CountryCode,
	}, nil
}

func slugOf(name string) string {
	return slug.Make(name)
}
