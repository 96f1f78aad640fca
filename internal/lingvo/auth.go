package lingvo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const authenticateMethod = "authenticate"

// Authenticator exchanges an API key for a bearer token. It makes exactly one
// round trip per call and never retries.
type Authenticator struct {
	httpClient *http.Client
	authURL    string
	apiKey     string
}

// NewAuthenticator creates an Authenticator posting to authURL + "authenticate".
func NewAuthenticator(httpClient *http.Client, authURL, apiKey string) *Authenticator {
	return &Authenticator{
		httpClient: httpClient,
		authURL:    authURL,
		apiKey:     apiKey,
	}
}

// Authenticate returns a fresh bearer token.
func (a *Authenticator) Authenticate(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.authURL+authenticateMethod, strings.NewReader(""))
	if err != nil {
		return "", fmt.Errorf("create authenticate request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+a.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Method: authenticateMethod, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Method: authenticateMethod, Err: err}
	}

	if !isSuccess(resp.StatusCode) {
		authErr := &AuthenticationError{StatusCode: resp.StatusCode}
		if resp.StatusCode != http.StatusUnauthorized {
			authErr.Body = strings.TrimSpace(string(body))
		}
		return "", authErr
	}

	// The service answers with the raw token, occasionally as a JSON string.
	token := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if token == "" {
		return "", &AuthenticationError{StatusCode: resp.StatusCode, Body: "empty token"}
	}
	return token, nil
}
