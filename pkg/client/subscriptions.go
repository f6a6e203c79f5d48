package client

import (
	"context"
	"fmt"
	"net/url"
)

// SubscriptionService handles subscription API calls
type SubscriptionService struct {
	client *Client
}

// UpgradeRequest represents a tier change request
type UpgradeRequest struct {
	Tier string `json:"tier"`
}

// Get retrieves a user's subscription summary
func (s *SubscriptionService) Get(ctx context.Context, userID string) (*Subscription, error) {
	var sub Subscription
	path := fmt.Sprintf("/api/v1/users/%s/subscription", url.PathEscape(userID))
	if err := s.client.doRequest(ctx, "GET", path, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upgrade changes a user's subscription tier
func (s *SubscriptionService) Upgrade(ctx context.Context, userID, tier string) (*User, error) {
	var u User
	path := fmt.Sprintf("/api/v1/users/%s/subscription", url.PathEscape(userID))
	if err := s.client.doRequest(ctx, "PUT", path, &UpgradeRequest{Tier: tier}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
