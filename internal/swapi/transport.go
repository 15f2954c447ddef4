package swapi

import (
	"errors"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout   = 20 * time.Second
	defaultRetryMax  = 2
	defaultRetryWait = 250 * time.Millisecond
)

// Transport applies a fixed User-Agent and bounded retries to idempotent requests.
type Transport struct {
	Base http.RoundTripper

	// RetryMax is the number of retries after the first attempt.
	RetryMax int

	// RetryWait is multiplied by the attempt number between retries.
	RetryWait time.Duration

	UserAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	// Only replayable requests are retried.
	canRetry := (req.Method == http.MethodGet || req.Method == http.MethodHead) && req.Body == nil
	maxRetries := max(t.RetryMax, 0)
	if !canRetry {
		maxRetries = 0
	}

	var (
		resp    *http.Response
		lastErr error
	)
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 && !t.wait(req, attempt) {
			return nil, req.Context().Err()
		}

		r := req.Clone(req.Context())
		if r.Header.Get("User-Agent") == "" && t.UserAgent != "" {
			r.Header.Set("User-Agent", t.UserAgent)
		}

		resp, lastErr = base.RoundTrip(r)
		if lastErr == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}
		if req.Context().Err() != nil {
			break
		}
		if lastErr == nil && attempt < maxRetries {
			// Drain so the connection can be reused by the next attempt.
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return resp, nil
}

// wait sleeps before a retry, returning false if the request context ends first.
func (t *Transport) wait(req *http.Request, attempt int) bool {
	delay := t.RetryWait * time.Duration(attempt)
	if delay <= 0 {
		return req.Context().Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-req.Context().Done():
		return false
	case <-timer.C:
		return true
	}
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// HTTPOptions configures NewHTTPClient.
type HTTPOptions struct {
	Timeout   time.Duration
	RetryMax  int
	RetryWait time.Duration
	UserAgent string
}

// NewHTTPClient builds the http.Client used to talk to SWAPI.
func NewHTTPClient(opts HTTPOptions) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retryWait := opts.RetryWait
	if retryWait <= 0 {
		retryWait = defaultRetryWait
	}

	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		MaxIdleConnsPerHost:   16,
	}

	return &http.Client{
		Transport: &Transport{
			Base:      base,
			RetryMax:  opts.RetryMax,
			RetryWait: retryWait,
			UserAgent: opts.UserAgent,
		},
		Timeout: timeout,
	}
}

// DefaultHTTPOptions returns the options used when none are configured.
func DefaultHTTPOptions() HTTPOptions {
	return HTTPOptions{
		Timeout:   defaultTimeout,
		RetryMax:  defaultRetryMax,
		RetryWait: defaultRetryWait,
	}
}
