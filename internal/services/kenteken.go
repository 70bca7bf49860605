package services

import (
	"context"
	"errors"
	"sync"

	"rdw-backend/internal/models"
	"rdw-backend/internal/rdw"
	"rdw-backend/pkg/logging"
	"rdw-backend/pkg/utils"

	"github.com/rs/zerolog"
)

var (
	// ErrInvalidKenteken indicates the input fails the format check.
	// The upstream API is never contacted for invalid input.
	ErrInvalidKenteken = errors.New("invalid kenteken format")

	// ErrKentekenNotFound indicates a valid kenteken with zero
	// matching rows for the requested dataset.
	ErrKentekenNotFound = errors.New("kenteken not found")
)

// VehicleFetcher is the slice of the RDW client the services depend on.
type VehicleFetcher interface {
	FetchVehicle(ctx context.Context, kenteken string) (models.Row, error)
	FetchDataset(ctx context.Context, dataset, kenteken string, limit int) ([]models.Row, error)
	Ping(ctx context.Context) bool
}

// KentekenService orchestrates vehicle lookups: one primary fetch
// plus five related dataset fetches, merged into a single record.
type KentekenService struct {
	fetcher VehicleFetcher
	logger  zerolog.Logger
}

// NewKentekenService creates a new kenteken lookup service.
func NewKentekenService(fetcher VehicleFetcher) *KentekenService {
	return &KentekenService{
		fetcher: fetcher,
		logger:  logging.NewLogger("kenteken-service"),
	}
}

// Lookup resolves a kenteken to its merged vehicle record. The five
// related datasets are fetched concurrently once the primary record is
// found; a failed related fetch degrades to an empty collection and
// never fails the lookup.
func (s *KentekenService) Lookup(ctx context.Context, raw string) (models.Row, error) {
	if !utils.IsValidKenteken(raw) {
		return nil, ErrInvalidKenteken
	}
	kenteken := utils.NormalizeKenteken(raw)

	vehicle, err := s.fetcher.FetchVehicle(ctx, kenteken)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		// Related datasets are meaningless without a primary match,
		// so none of them are fetched.
		return nil, ErrKentekenNotFound
	}

	related := s.fetchRelated(ctx, kenteken)

	return models.MergeVehicle(vehicle, related), nil
}

// fetchRelated issues the five related dataset fetches concurrently
// and waits until all of them have settled. Failures are downgraded to
// empty collections so one broken dataset cannot spoil the rest.
func (s *KentekenService) fetchRelated(ctx context.Context, kenteken string) models.RelatedDatasets {
	var related models.RelatedDatasets

	targets := []struct {
		dataset string
		dest    *[]models.Row
	}{
		{rdw.DatasetAxles, &related.Axles},
		{rdw.DatasetFuel, &related.Fuel},
		{rdw.DatasetBody, &related.Body},
		{rdw.DatasetBodySpecifics, &related.BodySpecifics},
		{rdw.DatasetVehicleClass, &related.VehicleClass},
	}

	var wg sync.WaitGroup
	for _, target := range targets {
		wg.Add(1)
		go func(dataset string, dest *[]models.Row) {
			defer wg.Done()

			rows, err := s.fetcher.FetchDataset(ctx, dataset, kenteken, rdw.DefaultLimit)
			if err != nil {
				s.logger.Warn().Err(err).Str("dataset", dataset).Str("kenteken", kenteken).
					Msg("related dataset fetch failed, substituting empty collection")
				*dest = []models.Row{}
				return
			}
			*dest = rows
		}(target.dataset, target.dest)
	}
	wg.Wait()

	return related
}

// LookupAxles returns the axle rows for a kenteken.
func (s *KentekenService) LookupAxles(ctx context.Context, raw string) ([]models.Row, error) {
	return s.lookupDataset(ctx, raw, rdw.DatasetAxles)
}

// LookupFuel returns the fuel rows for a kenteken.
func (s *KentekenService) LookupFuel(ctx context.Context, raw string) ([]models.Row, error) {
	return s.lookupDataset(ctx, raw, rdw.DatasetFuel)
}

// LookupBody returns the body rows for a kenteken.
func (s *KentekenService) LookupBody(ctx context.Context, raw string) ([]models.Row, error) {
	return s.lookupDataset(ctx, raw, rdw.DatasetBody)
}

// LookupBodySpecifics returns the body-specifics rows for a kenteken.
func (s *KentekenService) LookupBodySpecifics(ctx context.Context, raw string) ([]models.Row, error) {
	return s.lookupDataset(ctx, raw, rdw.DatasetBodySpecifics)
}

// LookupVehicleClass returns the vehicle-class rows for a kenteken.
func (s *KentekenService) LookupVehicleClass(ctx context.Context, raw string) ([]models.Row, error) {
	return s.lookupDataset(ctx, raw, rdw.DatasetVehicleClass)
}

// lookupDataset applies the shared validation and caching discipline
// to a single dataset. Unlike the aggregate lookup, a fetch failure
// here propagates to the caller.
func (s *KentekenService) lookupDataset(ctx context.Context, raw, dataset string) ([]models.Row, error) {
	if !utils.IsValidKenteken(raw) {
		return nil, ErrInvalidKenteken
	}
	kenteken := utils.NormalizeKenteken(raw)

	rows, err := s.fetcher.FetchDataset(ctx, dataset, kenteken, rdw.DefaultLimit)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrKentekenNotFound
	}

	return rows, nil
}
