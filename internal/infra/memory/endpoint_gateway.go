package memory

import (
	"sync"

	"provenance/internal/domain"
)

type endpointGateway struct {
	mu        sync.RWMutex
	endpoints []domain.EndpointRecord
}

// NewEndpointGateway creates an endpoint store holding records.
func NewEndpointGateway(records []domain.EndpointRecord) domain.EndpointRepository {
	g := &endpointGateway{}
	g.endpoints = append(g.endpoints, records...)
	return g
}

// FindReady returns the endpoints whose status equals status.
func (g *endpointGateway) FindReady(status string) []domain.EndpointRecord {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]domain.EndpointRecord, 0, len(g.endpoints))
	for _, e := range g.endpoints {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}
