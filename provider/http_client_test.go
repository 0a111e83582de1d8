package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderHTTPClientSendJSON(t *testing.T) {
	var gotContentType, gotAuth, gotUserAgent string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer server.Close()

	client := NewProviderHTTPClient(CreateHTTPClientConfig(server.URL, true, 5*time.Second))

	resp, err := client.SendJSON(context.Background(), &HTTPRequest{
		Method:   http.MethodPost,
		Endpoint: "/v1/things",
		Headers:  map[string]string{"Authorization": "Bearer token"},
		Body:     map[string]string{"name": "test"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Bearer token", gotAuth)
	assert.Equal(t, "PayGate/1.0", gotUserAgent)
	assert.Equal(t, map[string]any{"name": "test"}, gotBody)

	var parsed map[string]string
	require.NoError(t, client.ParseJSONResponse(resp, &parsed))
	assert.Equal(t, "abc", parsed["id"])
}

func TestProviderHTTPClientSendForm(t *testing.T) {
	var gotContentType, gotGrant string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = r.ParseForm()
		gotGrant = r.PostFormValue("grant_type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewProviderHTTPClient(CreateHTTPClientConfig(server.URL, true, 5*time.Second))

	resp, err := client.SendForm(context.Background(), &HTTPRequest{
		Method:   http.MethodPost,
		Endpoint: "/token",
		FormData: map[string]string{"grant_type": "client_credentials"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "client_credentials", gotGrant)
}

func TestProviderHTTPClientErrorStatusReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"name":"VALIDATION_ERROR"}`))
	}))
	defer server.Close()

	client := NewProviderHTTPClient(CreateHTTPClientConfig(server.URL, true, 5*time.Second))

	// Error statuses come back as responses, not errors; classification
	// belongs to the adapter
	resp, err := client.SendJSON(context.Background(), &HTTPRequest{
		Method:   http.MethodPost,
		Endpoint: "/v1/payments",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "VALIDATION_ERROR")
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base     string
		endpoint string
		expected string
	}{
		{"https://api.example.com", "/v1/payments", "https://api.example.com/v1/payments"},
		{"https://api.example.com/", "/v1/payments", "https://api.example.com/v1/payments"},
		{"https://api.example.com", "v1/payments", "https://api.example.com/v1/payments"},
		{"https://api.example.com/", "v1/payments", "https://api.example.com/v1/payments"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, joinURL(tt.base, tt.endpoint))
	}
}
