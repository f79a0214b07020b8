package client

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonrnewhouse/arroyo/internal/common"
	"github.com/jacksonrnewhouse/arroyo/pkg/client/auth/exec"
	"github.com/jacksonrnewhouse/arroyo/pkg/client/auth/oidc"
)

func TestPerRpcCredentials(t *testing.T) {
	creds, err := perRpcCredentials(&ApiConnectionDetails{})
	require.NoError(t, err)
	assert.Nil(t, creds)

	creds, err = perRpcCredentials(&ApiConnectionDetails{BasicAuth: common.LoginCredentials{Username: "alice"}})
	require.NoError(t, err)
	assert.IsType(t, &common.LoginCredentials{}, creds)

	creds, err = perRpcCredentials(&ApiConnectionDetails{ExecAuth: exec.CommandDetails{Cmd: "arroyo-token"}})
	require.NoError(t, err)
	assert.IsType(t, &exec.Authenticator{}, creds)
}

func TestCreateApiConnection_FailsWhenProviderIsUnreachable(t *testing.T) {
	_, err := CreateApiConnection(&ApiConnectionDetails{
		ApiUrl:                      "localhost:8001",
		OpenIdClientCredentialsAuth: oidc.ClientCredentialsDetails{ProviderUrl: "http://127.0.0.1:1"},
	})
	assert.ErrorContains(t, err, "discovering openid provider")
}

func TestExtractCommandlineApiConnectionDetails_ExecAuth(t *testing.T) {
	defer viper.Reset()
	viper.Set("execAuth.cmd", "arroyo-token")
	viper.Set("execAuth.args", []string{"--audience", "arroyo"})
	viper.Set("execAuth.interactive", true)

	details, err := ExtractCommandlineApiConnectionDetails()
	require.NoError(t, err)
	assert.Equal(t, exec.CommandDetails{Cmd: "arroyo-token", Args: []string{"--audience", "arroyo"}, Interactive: true}, details.ExecAuth)
}
