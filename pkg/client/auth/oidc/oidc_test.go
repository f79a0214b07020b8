package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// provider serves discovery and a token endpoint issuing "token-<n>".
type provider struct {
	server *httptest.Server

	mu    sync.Mutex
	forms []map[string]string
}

func newProvider(t *testing.T) *provider {
	p := &provider{}
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"issuer":                 p.server.URL,
			"authorization_endpoint": p.server.URL + "/auth",
			"token_endpoint":         p.server.URL + "/token",
			"jwks_uri":               p.server.URL + "/keys",
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		form := map[string]string{}
		for key := range r.PostForm {
			form[key] = r.PostForm.Get(key)
		}
		if form["password"] == "wrong" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
			return
		}
		p.mu.Lock()
		p.forms = append(p.forms, form)
		n := len(p.forms)
		p.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": fmt.Sprintf("token-%d", n),
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	return p
}

func (p *provider) requests() []map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]map[string]string{}, p.forms...)
}

func TestAuthenticateWithPassword(t *testing.T) {
	p := newProvider(t)

	creds, err := AuthenticateWithPassword(ClientPasswordDetails{
		ProviderUrl: p.server.URL,
		ClientId:    "arroyoctl",
		Username:    "alice",
		Password:    "secret",
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		metadata, err := creds.GetRequestMetadata(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer token-1", metadata["authorization"])
	}

	requests := p.requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "password", requests[0]["grant_type"])
	assert.Equal(t, "alice", requests[0]["username"])
}

func TestAuthenticateWithPassword_BadCredentials(t *testing.T) {
	p := newProvider(t)

	_, err := AuthenticateWithPassword(ClientPasswordDetails{
		ProviderUrl: p.server.URL,
		ClientId:    "arroyoctl",
		Username:    "alice",
		Password:    "wrong",
	})
	assert.Error(t, err)
}

func TestAuthenticateWithClientCredentials(t *testing.T) {
	p := newProvider(t)

	creds, err := AuthenticateWithClientCredentials(ClientCredentialsDetails{
		ProviderUrl:  p.server.URL,
		ClientId:     "pipeline-bot",
		ClientSecret: "shh",
	})
	require.NoError(t, err)
	assert.Empty(t, p.requests())

	metadata, err := creds.GetRequestMetadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", metadata["authorization"])

	requests := p.requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "client_credentials", requests[0]["grant_type"])
}

func TestDiscovery_UnknownProvider(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := AuthenticateWithClientCredentials(ClientCredentialsDetails{ProviderUrl: server.URL})
	assert.ErrorContains(t, err, "discovering openid provider")
}
