package tokenswap

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is just the standard context, with some helpers to store and
// retrieve values that belong to the kernel, such as the logger. Each
// extension may add its own keys to enrich the context.
type Context = context.Context

// DefaultLogger is used for all contexts that have not set anything
// themselves.
var DefaultLogger = log.NewNopLogger()

type contextKey int // local to the tokenswap module

const (
	contextKeyLogger contextKey = iota
)

// WithLogger sets the logger for this context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger stored in the context, or DefaultLogger if
// none was set.
func GetLogger(ctx Context) log.Logger {
	if logger, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return logger
	}
	return DefaultLogger
}

// WithLogInfo accepts keyvalue pairs, and returns another context like
// this, after passing all the keyvals to the Logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}
