package tokenkey

import (
	"errors"
	"time"
)

// TransportKind names the HTTP client a Client sends requests with.
type TransportKind string

const (
	// TransportNetHTTP uses net/http.
	TransportNetHTTP TransportKind = "nethttp"
	// TransportFastHTTP uses github.com/valyala/fasthttp.
	TransportFastHTTP TransportKind = "fasthttp"
)

const (
	defaultTimeout             = 5 * time.Second
	defaultMaxResponseSize     = 1 << 20 // 1 MB
	defaultMaxIdleConnsPerHost = 16
)

// Config configures a Client. Zero values select the defaults.
type Config struct {
	// Transport selects the HTTP client implementation. Default: nethttp.
	Transport TransportKind

	// Timeout bounds a single request including reading the body. Default: 5s.
	Timeout time.Duration

	// MaxResponseSize limits the accepted key set size in bytes. Default: 1 MB.
	MaxResponseSize int64

	// MaxIdleConnsPerHost limits the idle keep-alive connections the nethttp
	// transport keeps per identity provider. It does not cap concurrent
	// requests. Default: 16.
	MaxIdleConnsPerHost int
}

func (c *Config) setDefaults() {
	if c.Transport == "" {
		c.Transport = TransportNetHTTP
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxResponseSize == 0 {
		c.MaxResponseSize = defaultMaxResponseSize
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost
	}
}

// Validate reports whether c is usable. Zero values are valid.
func (c Config) Validate() error {
	switch c.Transport {
	case "", TransportNetHTTP, TransportFastHTTP:
	default:
		return errors.New("unsupported transport")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if c.MaxResponseSize < 0 {
		return errors.New("max_response_bytes must not be negative")
	}
	if c.MaxIdleConnsPerHost < 0 {
		return errors.New("max_idle_conns_per_host must not be negative")
	}
	return nil
}
