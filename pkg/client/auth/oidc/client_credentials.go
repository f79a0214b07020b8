package oidc

import (
	"context"

	"golang.org/x/oauth2/clientcredentials"
)

type ClientCredentialsDetails struct {
	ProviderUrl  string
	ClientId     string
	ClientSecret string
	Scopes       []string
}

func AuthenticateWithClientCredentials(config ClientCredentialsDetails) (*TokenCredentials, error) {
	ctx := context.Background()

	endpoint, err := discoverEndpoint(ctx, config.ProviderUrl)
	if err != nil {
		return nil, err
	}
	authConfig := &clientcredentials.Config{
		ClientID:     config.ClientId,
		ClientSecret: config.ClientSecret,
		Scopes:       config.Scopes,
		TokenURL:     endpoint.TokenURL,
	}
	return &TokenCredentials{TokenSource: authConfig.TokenSource(ctx)}, nil
}
