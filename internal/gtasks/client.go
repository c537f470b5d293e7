// Package gtasks is the Google Tasks collaborator.
package gtasks

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// Client wraps the Google Tasks API client
type Client struct {
	service *tasks.Service
	token   *oauth2.Token
	config  *oauth2.Config
}

// NewClient creates a new Tasks client using an existing OAuth2 config and token.
// This reuses the same credentials as Google Calendar.
func NewClient(config *oauth2.Config, token *oauth2.Token) (*Client, error) {
	if token == nil {
		return &Client{config: config}, nil
	}

	client := &Client{
		config: config,
		token:  token,
	}

	if err := client.initService(context.Background()); err != nil {
		return nil, err
	}

	return client, nil
}

// initService initializes the Tasks service with the current token
func (c *Client) initService(ctx context.Context) error {
	if c.token == nil {
		return fmt.Errorf("no token available")
	}

	httpClient := c.config.Client(ctx, c.token)
	service, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("failed to create Tasks service: %w", err)
	}

	c.service = service
	return nil
}

// IsAuthenticated returns true if the client has a valid service
func (c *Client) IsAuthenticated() bool {
	return c.service != nil
}
