package services

import (
	"context"
)

// HealthService probes upstream reachability for the liveness surface.
type HealthService struct {
	fetcher VehicleFetcher
}

// NewHealthService creates a new health service.
func NewHealthService(fetcher VehicleFetcher) *HealthService {
	return &HealthService{fetcher: fetcher}
}

// Probe reports whether the RDW API is reachable. It never fails with
// an error; unreachable is an ordinary outcome.
func (s *HealthService) Probe(ctx context.Context) bool {
	return s.fetcher.Ping(ctx)
}
