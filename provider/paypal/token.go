package paypal

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/centpay/paygate/provider"
)

// tokenExpirySlack refreshes the token slightly before PayPal expires it
// so in-flight requests never carry a token about to die.
const tokenExpirySlack = 60 * time.Second

// tokenSource fetches and caches the OAuth2 client-credentials token the
// REST API requires. The cached token is shared by all operations on one
// gateway instance.
type tokenSource struct {
	clientID     string
	clientSecret string
	client       *provider.ProviderHTTPClient

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func newTokenSource(clientID, clientSecret string, client *provider.ProviderHTTPClient) *tokenSource {
	return &tokenSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       client,
	}
}

// Token returns a valid bearer token, fetching a fresh one when the
// cached token is missing or about to expire.
func (t *tokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.accessToken != "" && time.Now().Before(t.expiresAt) {
		return t.accessToken, nil
	}

	auth := base64.StdEncoding.EncodeToString([]byte(t.clientID + ":" + t.clientSecret))
	resp, err := t.client.SendForm(ctx, &provider.HTTPRequest{
		Method:   http.MethodPost,
		Endpoint: endpointOAuthToken,
		Headers:  map[string]string{"Authorization": "Basic " + auth},
		FormData: map[string]string{"grant_type": "client_credentials"},
	})
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var raw map[string]any
		_ = t.client.ParseJSONResponse(resp, &raw)
		return "", provider.NewGatewayError(resp.StatusCode, raw)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := t.client.ParseJSONResponse(resp, &body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", errors.New("paypal: token response carries no access token")
	}

	ttl := time.Duration(body.ExpiresIn)*time.Second - tokenExpirySlack
	if ttl < 0 {
		ttl = 0
	}

	t.accessToken = body.AccessToken
	t.expiresAt = time.Now().Add(ttl)

	return t.accessToken, nil
}
