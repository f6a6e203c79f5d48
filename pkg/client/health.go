package client

import "context"

// HealthService handles health check API calls
type HealthService struct {
	client *Client
}

// Check verifies the API is alive
func (s *HealthService) Check(ctx context.Context) error {
	return s.client.doRequest(ctx, "GET", "/healthz", nil, nil)
}

// Ready verifies the API and its database are ready to serve requests
func (s *HealthService) Ready(ctx context.Context) error {
	return s.client.doRequest(ctx, "GET", "/readyz", nil, nil)
}
