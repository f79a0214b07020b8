package oidc

import (
	"context"

	"golang.org/x/oauth2"
)

// ClientPasswordDetails configures the resource owner password flow.
type ClientPasswordDetails struct {
	ProviderUrl string
	ClientId    string
	Scopes      []string
	Username    string
	Password    string
}

// AuthenticateWithPassword fetches a first token up front, so that bad
// credentials fail the connection rather than the first RPC.
func AuthenticateWithPassword(config ClientPasswordDetails) (*TokenCredentials, error) {
	ctx := context.Background()

	endpoint, err := discoverEndpoint(ctx, config.ProviderUrl)
	if err != nil {
		return nil, err
	}
	authConfig := &oauth2.Config{
		ClientID: config.ClientId,
		Scopes:   config.Scopes,
		Endpoint: endpoint,
	}

	source := &FunctionTokenSource{
		GetToken: func() (*oauth2.Token, error) {
			return authConfig.PasswordCredentialsToken(ctx, config.Username, config.Password)
		},
	}
	token, err := source.Token()
	if err != nil {
		return nil, err
	}
	return &TokenCredentials{TokenSource: oauth2.ReuseTokenSource(token, source)}, nil
}
