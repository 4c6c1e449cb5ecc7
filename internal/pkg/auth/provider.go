package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ProviderClient talks to the identity provider's session endpoints.
type ProviderClient struct {
	logoutURL  string
	httpClient *http.Client
}

// NewProviderClient creates a client. An empty logoutURL disables remote sign-out.
func NewProviderClient(logoutURL string, timeout time.Duration) *ProviderClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ProviderClient{
		logoutURL:  logoutURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SignOut revokes the access token at the provider.
func (c *ProviderClient) SignOut(ctx context.Context, accessToken string) error {
	if c == nil || c.logoutURL == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.logoutURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build provider logout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider logout failed: %w", err)
	}
	defer resp.Body.Close()

	// 401 means the token is already gone at the provider.
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusUnauthorized {
		return fmt.Errorf("provider logout returned status %d", resp.StatusCode)
	}
	return nil
}
