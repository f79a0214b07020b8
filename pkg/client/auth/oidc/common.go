// Package oidc authenticates against an OpenID Connect provider and sends the
// resulting access token with every RPC.
package oidc

import (
	"context"

	openId "github.com/coreos/go-oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

type TokenCredentials struct {
	TokenSource oauth2.TokenSource
}

func (c *TokenCredentials) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	token, err := c.TokenSource.Token()
	if err != nil {
		return nil, errors.WithMessage(err, "fetching access token")
	}
	return map[string]string{
		"authorization": "Bearer " + token.AccessToken,
	}, nil
}

func (c *TokenCredentials) RequireTransportSecurity() bool {
	return false
}

type FunctionTokenSource struct {
	GetToken func() (*oauth2.Token, error)
}

func (f *FunctionTokenSource) Token() (*oauth2.Token, error) {
	return f.GetToken()
}

// discoverEndpoint reads the token endpoint from the provider's discovery document.
func discoverEndpoint(ctx context.Context, providerUrl string) (oauth2.Endpoint, error) {
	provider, err := openId.NewProvider(ctx, providerUrl)
	if err != nil {
		return oauth2.Endpoint{}, errors.Wrapf(err, "discovering openid provider %s", providerUrl)
	}
	return provider.Endpoint(), nil
}
