// Package lexicon loads the word->polarity sentiment lexicon, either from
// local word-list files or over HTTP from a published copy of the lists.
package lexicon

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"guestpulse/internal/adapters/observability"
	"guestpulse/internal/analytics"
	"guestpulse/internal/domain"
)

var (
	ErrNotFound     = errors.New("lexicon: not found")
	ErrUnauthorized = errors.New("lexicon: unauthorized")
	ErrForbidden    = errors.New("lexicon: forbidden")
)

// FileSource reads the positive and negative word lists from disk.
type FileSource struct {
	PositivePath string
	NegativePath string
}

func (s FileSource) Load(_ context.Context) (domain.Lexicon, error) {
	pos, err := os.Open(s.PositivePath)
	if err != nil {
		return nil, fmt.Errorf("open positive word list: %w", err)
	}
	defer pos.Close()
	neg, err := os.Open(s.NegativePath)
	if err != nil {
		return nil, fmt.Errorf("open negative word list: %w", err)
	}
	defer neg.Close()
	return analytics.NewLexicon(pos, neg)
}

// HTTPSource fetches the word lists with client-side rate limiting and
// retries. The lists are static content; the fetch happens once per run.
type HTTPSource struct {
	positiveURL string
	negativeURL string
	hc          *http.Client
	rl          *rate.Limiter
}

func NewHTTPSource(positiveURL, negativeURL string, rps int) (*HTTPSource, error) {
	if positiveURL == "" || negativeURL == "" {
		return nil, fmt.Errorf("both word list URLs are required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &HTTPSource{
		positiveURL: positiveURL,
		negativeURL: negativeURL,
		hc:          &http.Client{Timeout: 20 * time.Second},
		rl:          rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (s *HTTPSource) Load(ctx context.Context) (domain.Lexicon, error) {
	pos, err := s.get(ctx, s.positiveURL)
	if err != nil {
		return nil, fmt.Errorf("fetch positive word list: %w", err)
	}
	neg, err := s.get(ctx, s.negativeURL)
	if err != nil {
		return nil, fmt.Errorf("fetch negative word list: %w", err)
	}
	return analytics.NewLexicon(bytes.NewReader(pos), bytes.NewReader(neg))
}

// get performs a GET with client-side rate limiting and retries on 429 and
// transient 5xx, honoring Retry-After when provided.
func (s *HTTPSource) get(ctx context.Context, url string) ([]byte, error) {
	if err := s.rl.Wait(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/plain")
		req.Header.Set("User-Agent", "guestpulse/1.0")

		start := time.Now()
		resp, err := s.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr
		}
		observability.ObserveExternal("lexicon", url, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			b, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			return b, err

		case http.StatusNotFound:
			resp.Body.Close()
			return nil, ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return nil, ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return nil, ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return nil, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms, 800ms...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0                  // 0..1
	j := time.Duration(0.5 * f * float64(base)) // up to +50%
	return base + j
}
