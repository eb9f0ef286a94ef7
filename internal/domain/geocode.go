package domain

import (
	"context"
	"log/slog"
	"strings"
)

// GeoSource values recorded by EnrichWithGeocoding.
const (
	GeoSourceForward    = "forward"
	GeoSourceNoLocation = "no_location"
	GeoSourceNotFound   = "not_found"
	GeoSourceFailed     = "failed"
)

// GeocodeQuery joins the resolved location parts into a provider query.
// It returns "" when there is nothing to look up.
func GeocodeQuery(rec AccidentRecord) string {
	var parts []string
	for _, p := range []*string{rec.LocationCity, rec.LocationState, rec.LocationCountryCanonical} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, ", ")
}

// EnrichWithGeocoding attaches coordinates for the record's location. A nil
// geocoder leaves the record untouched; lookup failures only set GeoSource.
func EnrichWithGeocoding(ctx context.Context, rec AccidentRecord, geocoder Geocoder, logger *slog.Logger) AccidentRecord {
	if geocoder == nil {
		return rec
	}

	query := GeocodeQuery(rec)
	if query == "" {
		rec.GeoSource = GeoSourceNoLocation
		return rec
	}

	result, err := geocoder.ForwardGeocode(ctx, query)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"record_id", rec.ID,
			"query", query,
			"error", err,
		)
		rec.GeoSource = GeoSourceFailed
		return rec
	}
	if result.Lat == 0 && result.Lon == 0 {
		rec.GeoSource = GeoSourceNotFound
		return rec
	}

	rec.Geo = &Geo{Lat: result.Lat, Lon: result.Lon}
	rec.FormattedAddress = result.FormattedAddress
	rec.GeoSource = GeoSourceForward
	return rec
}
