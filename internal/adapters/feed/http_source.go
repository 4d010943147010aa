package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"location-lookup/internal/platform/obs"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// HTTPSource fetches the published spreadsheet export over HTTP(S).
//
// Transient failures (network errors, 429 and 5xx responses) are retried
// with exponential backoff up to MaxAttempts; everything else fails on the
// first attempt.
type HTTPSource struct {
	URL         string
	MaxAttempts int
	Backoff     time.Duration

	session *http.Client
	log     *zap.Logger
}

func NewHTTPSource(url string, timeout time.Duration, maxAttempts int, backoff time.Duration, log *zap.Logger) (*HTTPSource, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("new http source: url is empty")
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &HTTPSource{
		URL:         url,
		MaxAttempts: maxAttempts,
		Backoff:     backoff,
		session:     &http.Client{Timeout: timeout},
		log:         log,
	}, nil
}

func (s *HTTPSource) String() string { return s.URL }

// Open performs the GET request and returns the response body.
func (s *HTTPSource) Open(ctx context.Context) (_ io.ReadCloser, err error) {
	defer obs.Time(ctx, s.log, "feed.http.Open")(&err)

	resp, err := s.doWithRetry(ctx, func() (*http.Request, error) {
		return s.newRequest(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("open feed %s: %w", s.URL, err)
	}

	return resp.Body, nil
}

func (s *HTTPSource) newRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "text/csv, application/vnd.openxmlformats-officedocument.spreadsheetml.sheet, */*")

	return req, nil
}

func (s *HTTPSource) do(req *http.Request) (*http.Response, error) {
	resp, err := s.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx responses)
// using exponential backoff while respecting context cancellation.
func (s *HTTPSource) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := s.Backoff

	var lastErr error

	for attempt := 1; attempt <= s.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := s.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == s.MaxAttempts {
			return nil, lastErr
		}

		s.log.Warn("feed fetch failed, retrying",
			zap.String("run_id", obs.RunID(ctx)),
			zap.String("url", s.URL),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
