package middleware

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/election-backend/internal/config"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middleware into a single Middleware.
// Middleware are applied in the order given: Chain(mw1, mw2)(handler)
// results in mw1(mw2(handler)), so mw1 executes first (outermost).
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// StackOptions configures the server-wide middleware stack.
type StackOptions struct {
	Logger     *slog.Logger
	CORS       config.CORSConfig
	TrustProxy bool
	Tokens     tokenValidator
	Metrics    httpObserver // optional
}

// Stack builds the middleware every request passes through, outermost first:
// panic recovery, request id, client IP, access log, CORS, authentication and
// route metrics. Metrics sits directly on the mux so it sees the matched
// route pattern.
func Stack(opts StackOptions) Middleware {
	mws := []Middleware{
		Recovery(opts.Logger),
		RequestID(),
		ClientIP(opts.TrustProxy),
		Logger(opts.Logger),
		CORS(opts.CORS),
		Auth(opts.Tokens),
	}
	if opts.Metrics != nil {
		mws = append(mws, Metrics(opts.Metrics))
	}
	return Chain(mws...)
}
