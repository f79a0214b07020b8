package common

import (
	gocontext "context"
	"encoding/base64"
	"time"

	"github.com/jacksonrnewhouse/arroyo/internal/common/consolecontext"
)

const DefaultRequestTimeout = 10 * time.Second

func ContextWithDefaultTimeout() (*consolecontext.Context, gocontext.CancelFunc) {
	return consolecontext.WithTimeout(consolecontext.Background(), DefaultRequestTimeout)
}

// LoginCredentials are sent as HTTP basic auth with every RPC.
type LoginCredentials struct {
	Username string
	Password string
}

func (c *LoginCredentials) GetRequestMetadata(gocontext.Context, ...string) (map[string]string, error) {
	return map[string]string{
		"authorization": "basic " + base64.StdEncoding.EncodeToString([]byte(c.Username+":"+c.Password)),
	}, nil
}

func (c *LoginCredentials) RequireTransportSecurity() bool {
	return false
}
