package domain

// EndpointStatusReady marks an endpoint that should be collected by the
// worker of the same name.
const EndpointStatusReady = "ready"

// EndpointRecord is a feed endpoint registered for collection.
// Status selects the worker that picks it up.
type EndpointRecord struct {
	ID     int    `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// EndpointTask asks a worker to fetch Endpoint with the given Accept header.
type EndpointTask struct {
	Endpoint string
	Accept   string
}

// EndpointRepository lists registered endpoints.
type EndpointRepository interface {
	FindReady(status string) []EndpointRecord
}
