package client

import (
	"strings"
	"time"

	grpc_retry "github.com/grpc-ecosystem/go-grpc-middleware/retry"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/jacksonrnewhouse/arroyo/internal/common"
	"github.com/jacksonrnewhouse/arroyo/pkg/api"
	"github.com/jacksonrnewhouse/arroyo/pkg/client/auth/exec"
	"github.com/jacksonrnewhouse/arroyo/pkg/client/auth/oidc"
)

type ApiConnectionDetails struct {
	ApiUrl                      string
	BasicAuth                   common.LoginCredentials
	OpenIdPasswordAuth          oidc.ClientPasswordDetails
	OpenIdClientCredentialsAuth oidc.ClientCredentialsDetails
	ExecAuth                    exec.CommandDetails
	ForceNoTls                  bool
	// Content subtype used on the wire, "cbor" or "json". Defaults to cbor.
	Codec string
}

type ConnectionDetails func() *ApiConnectionDetails

func CreateApiConnection(config *ApiConnectionDetails, additionalDialOptions ...grpc.DialOption) (*grpc.ClientConn, error) {
	return CreateApiConnectionWithCallOptions(config, []grpc.CallOption{}, additionalDialOptions...)
}

func CreateApiConnectionWithCallOptions(
	config *ApiConnectionDetails,
	additionalDefaultCallOptions []grpc.CallOption,
	additionalDialOptions ...grpc.DialOption,
) (*grpc.ClientConn, error) {
	api.EnsureCodecs()

	retryOpts := []grpc_retry.CallOption{
		grpc_retry.WithBackoff(grpc_retry.BackoffExponential(1 * time.Second)),
		grpc_retry.WithMax(3),
	}

	callOptions := append(additionalDefaultCallOptions, grpc.WaitForReady(true), grpc.CallContentSubtype(codec(config)))

	defaultCallOptions := grpc.WithDefaultCallOptions(callOptions...)
	unaryInterceptors := grpc.WithChainUnaryInterceptor(grpc_retry.UnaryClientInterceptor(retryOpts...))
	streamInterceptors := grpc.WithChainStreamInterceptor(grpc_retry.StreamClientInterceptor(retryOpts...))

	dialOpts := append(additionalDialOptions,
		defaultCallOptions,
		unaryInterceptors,
		streamInterceptors,
		transportCredentials(config))

	creds, err := perRpcCredentials(config)
	if err != nil {
		return nil, err
	}
	if creds != nil {
		dialOpts = append(dialOpts, grpc.WithPerRPCCredentials(creds))
	}

	return grpc.Dial(config.ApiUrl, dialOpts...)
}

func codec(config *ApiConnectionDetails) string {
	if config.Codec == "" {
		return api.CodecCBOR
	}
	return config.Codec
}

// perRpcCredentials picks the first configured way of authenticating, or
// none.
func perRpcCredentials(config *ApiConnectionDetails) (credentials.PerRPCCredentials, error) {
	switch {
	case config.BasicAuth.Username != "":
		return &config.BasicAuth, nil
	case config.OpenIdPasswordAuth.ProviderUrl != "":
		return oidc.AuthenticateWithPassword(config.OpenIdPasswordAuth)
	case config.OpenIdClientCredentialsAuth.ProviderUrl != "":
		return oidc.AuthenticateWithClientCredentials(config.OpenIdClientCredentialsAuth)
	case config.ExecAuth.Cmd != "":
		return exec.NewAuthenticator(config.ExecAuth), nil
	}
	return nil, nil
}

func transportCredentials(config *ApiConnectionDetails) grpc.DialOption {
	if !config.ForceNoTls && !strings.Contains(config.ApiUrl, "localhost") {
		return grpc.WithTransportCredentials(credentials.NewClientTLSFromCert(nil, ""))
	}
	return grpc.WithTransportCredentials(insecure.NewCredentials())
}
