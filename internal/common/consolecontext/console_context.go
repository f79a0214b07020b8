// Package consolecontext pairs a context.Context with the logrus entry of the
// session, request or job it belongs to.
package consolecontext

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/logrus/ctxlogrus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Context is a context.Context whose Log carries the fields of the work it
// scopes. Derived contexts keep the parent's Log.
type Context struct {
	context.Context
	Log *logrus.Entry
}

// Background logs through the standard logrus logger with no fields.
func Background() *Context {
	return New(context.Background(), logrus.NewEntry(logrus.StandardLogger()))
}

func New(ctx context.Context, log *logrus.Entry) *Context {
	return &Context{Context: ctx, Log: log}
}

// FromGrpcCtx picks up the entry a logrus server interceptor stored in ctx.
// Without one, Log discards everything.
func FromGrpcCtx(ctx context.Context) *Context {
	return New(ctx, ctxlogrus.Extract(ctx))
}

func WithCancel(parent *Context) (*Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent.Context)
	return New(ctx, parent.Log), cancel
}

func WithTimeout(parent *Context, timeout time.Duration) (*Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent.Context, timeout)
	return New(ctx, parent.Log), cancel
}

func WithLogField(parent *Context, key string, val interface{}) *Context {
	return New(parent.Context, parent.Log.WithField(key, val))
}

func WithLogFields(parent *Context, fields logrus.Fields) *Context {
	return New(parent.Context, parent.Log.WithFields(fields))
}

// ErrGroup is errgroup.WithContext keeping the logger of ctx.
func ErrGroup(ctx *Context) (*errgroup.Group, *Context) {
	group, groupCtx := errgroup.WithContext(ctx.Context)
	return group, New(groupCtx, ctx.Log)
}
