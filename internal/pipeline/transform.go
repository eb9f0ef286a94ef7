package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/crash-data-etl/internal/domain"
	"github.com/couchcryptid/crash-data-etl/internal/observability"
)

// RecordTransformer implements Transformer with the normalization engine and
// optional geocoding enrichment.
type RecordTransformer struct {
	engine   *domain.Engine
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates a RecordTransformer. Pass a nil geocoder to disable
// geocoding enrichment.
func NewTransformer(engine *domain.Engine, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *RecordTransformer {
	return &RecordTransformer{
		engine:   engine,
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

// Transform decodes a source message and normalizes it. Only undecodable
// payloads return an error.
func (t *RecordTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.AccidentRecord, error) {
	rec, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.AccidentRecord{}, err
	}
	return t.Normalize(ctx, rec), nil
}

// Normalize runs the engine and geocoder over an already decoded record.
func (t *RecordTransformer) Normalize(ctx context.Context, raw domain.RawRecord) domain.AccidentRecord {
	out := t.engine.Normalize(raw)
	out = domain.EnrichWithGeocoding(ctx, out, t.geocoder, t.logger)
	t.observe(out)
	return out
}

func (t *RecordTransformer) observe(rec domain.AccidentRecord) {
	nulls := domain.NullFields(rec)
	for _, field := range nulls {
		t.metrics.DerivedNulls.WithLabelValues(field).Inc()
	}
	fallbacks := domain.FallbackLabels(rec)
	for _, field := range fallbacks {
		t.metrics.FallbackLabels.WithLabelValues(field).Inc()
	}
	t.metrics.Categories.WithLabelValues("aircraft_category", rec.AircraftCategory).Inc()
	t.metrics.Categories.WithLabelValues("phase_clean", rec.PhaseClean).Inc()
	t.metrics.Categories.WithLabelValues("weather_condition", rec.WeatherCondition).Inc()

	if len(nulls) > 0 || len(fallbacks) > 0 {
		t.logger.Debug("record normalized with gaps",
			"record_id", rec.ID,
			"null_fields", nulls,
			"fallback_labels", fallbacks,
		)
	}
}
