package client

import (
	"context"
	"net/url"
)

// AccessService handles subscription access checks
type AccessService struct {
	client *Client
}

// Check reports whether the authenticated user may use feature
func (s *AccessService) Check(ctx context.Context, feature string) (*AccessDecision, error) {
	var d AccessDecision
	if err := s.client.doRequest(ctx, "GET", "/api/access/"+url.PathEscape(feature), nil, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
