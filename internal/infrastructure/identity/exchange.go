package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultExchangeEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithCustomToken"

// RESTTokenExchanger exchanges custom tokens for id tokens through the
// provider's REST token endpoint.
type RESTTokenExchanger struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewRESTTokenExchanger(apiKey string) *RESTTokenExchanger {
	return &RESTTokenExchanger{
		apiKey:     apiKey,
		endpoint:   defaultExchangeEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithEndpoint overrides the token endpoint, used against emulators.
func (e *RESTTokenExchanger) WithEndpoint(endpoint string) *RESTTokenExchanger {
	e.endpoint = endpoint
	return e
}

func (e *RESTTokenExchanger) Exchange(ctx context.Context, customToken string) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"token":             customToken,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", e.endpoint, e.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("token exchange returned status %d: %s", resp.StatusCode, body)
	}

	var result struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode token exchange response: %w", err)
	}
	if result.IDToken == "" {
		return "", fmt.Errorf("token exchange response missing id token")
	}
	return result.IDToken, nil
}
