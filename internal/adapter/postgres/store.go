// Package postgres stores normalized accident records in PostgreSQL through
// gorm. It is the alternative to the Kafka sink when SINK=postgres.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/crash-data-etl/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

const defaultBatchSize = 100

// accidentRow is the table layout of one normalized record. The canonical
// source columns are kept as a JSON document next to the derived values.
type accidentRow struct {
	ID                       string     `gorm:"primaryKey;type:text"`
	DateParsed               *time.Time `gorm:"type:date;index"`
	Year                     *int
	Decade                   *int
	TimeRaw                  *string `gorm:"type:text"`
	TimeHHMM                 *string `gorm:"column:time_hhmm;type:text"`
	Hour                     *int
	FatalitiesTotal          *int
	FatalitiesPassengers     *int
	FatalitiesCrew           *int
	AboardTotal              *int
	AboardPassengers         *int
	AboardCrew               *int
	GroundFatalities         *float64
	FatalityRatio            *float64
	IsFatal                  bool
	LocationCity             *string `gorm:"type:text"`
	LocationState            *string `gorm:"type:text"`
	LocationCountry          *string `gorm:"type:text"`
	LocationCountryCanonical *string `gorm:"type:text;index"`
	AircraftCategory         string  `gorm:"type:text;not null;index"`
	PhaseClean               string  `gorm:"type:text;not null;index"`
	WeatherCondition         string  `gorm:"type:text;not null;index"`
	WeatherAdverse           bool
	GeoLat                   *float64
	GeoLon                   *float64
	FormattedAddress         string    `gorm:"type:text"`
	GeoSource                string    `gorm:"type:text"`
	Source                   string    `gorm:"type:jsonb;not null"`
	ProcessedAt              time.Time `gorm:"type:timestamp with time zone;not null"`
}

func (accidentRow) TableName() string {
	return "accident_records"
}

// Store writes accident records to PostgreSQL. It implements
// pipeline.BatchLoader.
type Store struct {
	db        *gorm.DB
	logger    *slog.Logger
	batchSize int
}

// Open connects to the database at dsn.
func Open(dsn string, batchSize int, logger *slog.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return New(db, batchSize, logger), nil
}

// New wraps an existing gorm handle.
func New(db *gorm.DB, batchSize int, logger *slog.Logger) *Store {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Store{db: db, logger: logger, batchSize: batchSize}
}

// Migrate creates or updates the accident_records table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&accidentRow{}); err != nil {
		return fmt.Errorf("migrate accident_records: %w", err)
	}
	return nil
}

// LoadBatch inserts the records. IDs are deterministic, so a replayed record
// conflicts with its earlier copy and is skipped.
func (s *Store) LoadBatch(ctx context.Context, records []domain.AccidentRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]accidentRow, 0, len(records))
	for _, rec := range records {
		row, err := toRow(rec)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, s.batchSize)
	if result.Error != nil {
		return fmt.Errorf("insert accident records: %w", result.Error)
	}

	s.logger.Debug("records stored",
		"count", len(rows),
		"inserted", result.RowsAffected,
	)
	return nil
}

// CheckReadiness pings the database.
func (s *Store) CheckReadiness(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(rec domain.AccidentRecord) (accidentRow, error) {
	src := rec.Source
	if src == nil {
		src = domain.CanonicalRecord{}
	}
	source, err := json.Marshal(src)
	if err != nil {
		return accidentRow{}, fmt.Errorf("encode source of %s: %w", rec.ID, err)
	}

	row := accidentRow{
		ID:                       rec.ID,
		DateParsed:               rec.DateParsed,
		Year:                     rec.Year,
		Decade:                   rec.Decade,
		TimeRaw:                  rec.TimeRaw,
		TimeHHMM:                 rec.TimeHHMM,
		Hour:                     rec.Hour,
		FatalitiesTotal:          rec.FatalitiesTotal,
		FatalitiesPassengers:     rec.FatalitiesPassengers,
		FatalitiesCrew:           rec.FatalitiesCrew,
		AboardTotal:              rec.AboardTotal,
		AboardPassengers:         rec.AboardPassengers,
		AboardCrew:               rec.AboardCrew,
		GroundFatalities:         rec.GroundFatalities,
		FatalityRatio:            rec.FatalityRatio,
		IsFatal:                  rec.IsFatal,
		LocationCity:             rec.LocationCity,
		LocationState:            rec.LocationState,
		LocationCountry:          rec.LocationCountry,
		LocationCountryCanonical: rec.LocationCountryCanonical,
		AircraftCategory:         rec.AircraftCategory,
		PhaseClean:               rec.PhaseClean,
		WeatherCondition:         rec.WeatherCondition,
		WeatherAdverse:           rec.WeatherAdverse,
		FormattedAddress:         rec.FormattedAddress,
		GeoSource:                rec.GeoSource,
		Source:                   string(source),
		ProcessedAt:              rec.ProcessedAt,
	}
	if rec.Geo != nil {
		row.GeoLat, row.GeoLon = &rec.Geo.Lat, &rec.Geo.Lon
	}
	return row, nil
}
