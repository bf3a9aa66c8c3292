package tokenkey

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Option configures a Client in New.
type Option func(*Client)

// WithHTTPClient sets the client used by the nethttp transport.
// Config.Timeout and Config.MaxIdleConnsPerHost are not applied to it.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpc = c
	}
}

// WithFastHTTPClient sets the client used by the fasthttp transport.
func WithFastHTTPClient(c *fasthttp.Client) Option {
	return func(cl *Client) {
		cl.fastc = c
	}
}

// WithLogger sets the logger. Header values are never logged.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) {
		cl.log = l
	}
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(cl *Client) {
		cl.reg = reg
	}
}
