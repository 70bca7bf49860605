package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"rdw-backend/internal/models"
	"rdw-backend/internal/rdw"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFetcher implements VehicleFetcher with per-dataset canned
// responses and call counting.
type mockFetcher struct {
	mu sync.Mutex

	vehicle    models.Row
	vehicleErr error

	datasets    map[string][]models.Row
	datasetErrs map[string]error

	reachable bool

	vehicleCalls int
	datasetCalls map[string]int
	lastKenteken string
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		datasets:     make(map[string][]models.Row),
		datasetErrs:  make(map[string]error),
		datasetCalls: make(map[string]int),
		reachable:    true,
	}
}

func (m *mockFetcher) FetchVehicle(_ context.Context, kenteken string) (models.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicleCalls++
	m.lastKenteken = kenteken
	return m.vehicle, m.vehicleErr
}

func (m *mockFetcher) FetchDataset(_ context.Context, dataset, kenteken string, _ int) ([]models.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasetCalls[dataset]++
	m.lastKenteken = kenteken
	if err, ok := m.datasetErrs[dataset]; ok {
		return nil, err
	}
	return m.datasets[dataset], nil
}

func (m *mockFetcher) Ping(_ context.Context) bool {
	return m.reachable
}

func (m *mockFetcher) totalDatasetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.datasetCalls {
		total += n
	}
	return total
}

func TestLookup(t *testing.T) {
	t.Run("InvalidKenteken", func(t *testing.T) {
		fetcher := newMockFetcher()
		service := NewKentekenService(fetcher)

		_, err := service.Lookup(context.Background(), "AB.12.CD")
		assert.ErrorIs(t, err, ErrInvalidKenteken)
		assert.Equal(t, 0, fetcher.vehicleCalls, "invalid input must never reach upstream")
	})

	t.Run("NormalizesBeforeFetching", func(t *testing.T) {
		fetcher := newMockFetcher()
		fetcher.vehicle = models.Row{"kenteken": "AB12CD"}
		service := NewKentekenService(fetcher)

		_, err := service.Lookup(context.Background(), "ab-12-cd")
		require.NoError(t, err)
		assert.Equal(t, "AB12CD", fetcher.lastKenteken)
	})

	t.Run("NotFoundShortCircuits", func(t *testing.T) {
		fetcher := newMockFetcher()
		fetcher.vehicle = nil
		service := NewKentekenService(fetcher)

		_, err := service.Lookup(context.Background(), "ZZ-99-ZZ")
		assert.ErrorIs(t, err, ErrKentekenNotFound)
		assert.Equal(t, 1, fetcher.vehicleCalls)
		assert.Equal(t, 0, fetcher.totalDatasetCalls(), "no related fetches without a primary match")
	})

	t.Run("PrimaryFailurePropagates", func(t *testing.T) {
		fetcher := newMockFetcher()
		fetcher.vehicleErr = &rdw.UpstreamError{StatusCode: http.StatusBadGateway, Message: "bad gateway"}
		service := NewKentekenService(fetcher)

		_, err := service.Lookup(context.Background(), "AB-12-CD")
		var upstreamErr *rdw.UpstreamError
		require.True(t, errors.As(err, &upstreamErr))
		assert.Equal(t, 0, fetcher.totalDatasetCalls())
	})

	t.Run("MergesAllRelatedDatasets", func(t *testing.T) {
		fetcher := newMockFetcher()
		fetcher.vehicle = models.Row{"kenteken": "AB12CD", "merk": "VOLVO"}
		fetcher.datasets[rdw.DatasetAxles] = []models.Row{{"as_nummer": "1"}}
		fetcher.datasets[rdw.DatasetFuel] = []models.Row{{"brandstof_omschrijving": "Benzine"}}
		fetcher.datasets[rdw.DatasetBody] = []models.Row{{"carrosserietype": "AB"}}
		fetcher.datasets[rdw.DatasetBodySpecifics] = []models.Row{{"carrosserie_voertuig_nummer_code_volgnummer": "1"}}
		fetcher.datasets[rdw.DatasetVehicleClass] = []models.Row{{"voertuigklasse": "M1"}}
		service := NewKentekenService(fetcher)

		merged, err := service.Lookup(context.Background(), "AB-12-CD")
		require.NoError(t, err)

		assert.Equal(t, "VOLVO", merged["merk"])
		assert.Equal(t, 5, fetcher.totalDatasetCalls())

		// Friendly and legacy keys must carry the same collections.
		assert.Equal(t, merged["axles"], merged["api_gekentekende_voertuigen_assen"])
		assert.Equal(t, merged["fuel"], merged["api_gekentekende_voertuigen_brandstof"])
		assert.Equal(t, merged["body"], merged["api_gekentekende_voertuigen_carrosserie"])
		assert.Equal(t, merged["bodySpecifics"], merged["api_gekentekende_voertuigen_carrosserie_specifiek"])
		assert.Equal(t, merged["vehicleClass"], merged["api_gekentekende_voertuigen_voertuigklasse"])

		fuel, ok := merged["fuel"].([]models.Row)
		require.True(t, ok)
		require.Len(t, fuel, 1)
		assert.Equal(t, "Benzine", fuel[0]["brandstof_omschrijving"])
	})

	t.Run("PartialFailureToleratedAsEmptyCollections", func(t *testing.T) {
		fetcher := newMockFetcher()
		fetcher.vehicle = models.Row{"kenteken": "AB12CD"}
		fetcher.datasets[rdw.DatasetAxles] = []models.Row{{"as_nummer": "1"}}
		fetcher.datasets[rdw.DatasetBody] = []models.Row{{"carrosserietype": "AB"}}
		fetcher.datasets[rdw.DatasetVehicleClass] = []models.Row{{"voertuigklasse": "M1"}}
		fetcher.datasetErrs[rdw.DatasetFuel] = &rdw.UpstreamError{StatusCode: http.StatusBadGateway, Message: "bad gateway"}
		fetcher.datasetErrs[rdw.DatasetBodySpecifics] = &rdw.UpstreamError{Message: "request failed", Err: errors.New("connection refused")}
		service := NewKentekenService(fetcher)

		merged, err := service.Lookup(context.Background(), "AB-12-CD")
		require.NoError(t, err, "related failures must not fail the lookup")

		assert.Equal(t, []models.Row{{"as_nummer": "1"}}, merged["axles"])
		assert.Equal(t, []models.Row{{"carrosserietype": "AB"}}, merged["body"])
		assert.Equal(t, []models.Row{{"voertuigklasse": "M1"}}, merged["vehicleClass"])
		assert.Equal(t, []models.Row{}, merged["fuel"])
		assert.Equal(t, []models.Row{}, merged["bodySpecifics"])
		assert.Equal(t, []models.Row{}, merged["api_gekentekende_voertuigen_brandstof"])
	})

	t.Run("MissingCollectionsAreEmptyArraysNotNull", func(t *testing.T) {
		fetcher := newMockFetcher()
		fetcher.vehicle = models.Row{"kenteken": "AB12CD"}
		service := NewKentekenService(fetcher)

		merged, err := service.Lookup(context.Background(), "AB12CD")
		require.NoError(t, err)

		for _, key := range []string{"axles", "fuel", "body", "bodySpecifics", "vehicleClass"} {
			rows, ok := merged[key].([]models.Row)
			require.True(t, ok, "key %s", key)
			assert.NotNil(t, rows, "key %s", key)
			assert.Empty(t, rows, "key %s", key)
		}
	})
}

func TestLookupSingleDatasets(t *testing.T) {
	t.Run("ReturnsRows", func(t *testing.T) {
		fetcher := newMockFetcher()
		fetcher.datasets[rdw.DatasetAxles] = []models.Row{{"as_nummer": "1"}, {"as_nummer": "2"}}
		service := NewKentekenService(fetcher)

		rows, err := service.LookupAxles(context.Background(), "AB-12-CD")
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("EmptyCollectionIsNotFound", func(t *testing.T) {
		fetcher := newMockFetcher()
		service := NewKentekenService(fetcher)

		_, err := service.LookupFuel(context.Background(), "AB-12-CD")
		assert.ErrorIs(t, err, ErrKentekenNotFound)
	})

	t.Run("InvalidKenteken", func(t *testing.T) {
		fetcher := newMockFetcher()
		service := NewKentekenService(fetcher)

		_, err := service.LookupBody(context.Background(), "!!")
		assert.ErrorIs(t, err, ErrInvalidKenteken)
		assert.Equal(t, 0, fetcher.totalDatasetCalls())
	})

	t.Run("UpstreamErrorPropagates", func(t *testing.T) {
		fetcher := newMockFetcher()
		fetcher.datasetErrs[rdw.DatasetVehicleClass] = &rdw.UpstreamError{StatusCode: http.StatusBadGateway, Message: "bad gateway"}
		service := NewKentekenService(fetcher)

		_, err := service.LookupVehicleClass(context.Background(), "AB-12-CD")
		var upstreamErr *rdw.UpstreamError
		require.True(t, errors.As(err, &upstreamErr))
	})

	t.Run("BodySpecificsUsesItsOwnDataset", func(t *testing.T) {
		fetcher := newMockFetcher()
		fetcher.datasets[rdw.DatasetBodySpecifics] = []models.Row{{"carrosserie_volgnummer": "1"}}
		service := NewKentekenService(fetcher)

		rows, err := service.LookupBodySpecifics(context.Background(), "AB-12-CD")
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, 1, fetcher.datasetCalls[rdw.DatasetBodySpecifics])
	})
}

func TestHealthService(t *testing.T) {
	t.Run("Reachable", func(t *testing.T) {
		fetcher := newMockFetcher()
		fetcher.reachable = true
		assert.True(t, NewHealthService(fetcher).Probe(context.Background()))
	})

	t.Run("Unreachable", func(t *testing.T) {
		fetcher := newMockFetcher()
		fetcher.reachable = false
		assert.False(t, NewHealthService(fetcher).Probe(context.Background()))
	})
}
