package common

import (
	"net/http"
	"time"
)

const DefaultTimeout = 60 * time.Second

type ClientConfig struct {
	Timeout time.Duration
	Headers map[string]string
}

func DefaultConfig() ClientConfig {
	return ClientConfig{
		Timeout: DefaultTimeout,
		Headers: make(map[string]string),
	}
}

// NewHTTPClient returns a client that adds config.Headers to every request.
func NewHTTPClient(config ClientConfig) *http.Client {
	return &http.Client{
		Timeout: config.Timeout,
		Transport: &headerTransport{
			base:    http.DefaultTransport,
			headers: config.Headers,
		},
	}
}

type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	return t.base.RoundTrip(req)
}
