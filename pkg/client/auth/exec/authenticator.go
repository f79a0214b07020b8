// Package exec gets a bearer token from the stdout of a user supplied
// command, in the manner of kubectl credential plugins.
package exec

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type CommandDetails struct {
	Cmd  string
	Args []string
	// Extra environment in KEY=VALUE form, appended to the process environment.
	Env []string
	// Connect the command's stdin to ours, for commands that prompt.
	Interactive bool
}

type Authenticator struct {
	details CommandDetails

	stdin   io.Reader
	stderr  io.Writer
	environ func() []string

	// An interactive command must not be run twice at once.
	mu sync.Mutex
}

func NewAuthenticator(details CommandDetails) *Authenticator {
	return &Authenticator{
		details: details,
		stdin:   os.Stdin,
		stderr:  os.Stderr,
		environ: os.Environ,
	}
}

func (a *Authenticator) token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	stdout := &bytes.Buffer{}
	cmd := exec.CommandContext(ctx, a.details.Cmd, a.details.Args...)
	cmd.Env = append(a.environ(), a.details.Env...)
	cmd.Stdout = stdout
	cmd.Stderr = a.stderr
	if a.details.Interactive {
		cmd.Stdin = a.stdin
	}

	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "running credentials command %s", a.details.Cmd)
	}
	token := strings.TrimSpace(stdout.String())
	if token == "" {
		return "", errors.Errorf("credentials command %s printed no token", a.details.Cmd)
	}
	return token, nil
}

func (a *Authenticator) GetRequestMetadata(ctx context.Context, _ ...string) (map[string]string, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"authorization": "Bearer " + token,
	}, nil
}

func (a *Authenticator) RequireTransportSecurity() bool {
	return false
}
