package lexicon_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"guestpulse/internal/adapters/lexicon"
	"guestpulse/internal/domain"
)

func TestHTTPSource_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			if r.URL.Path == "/positive.txt" {
				fmt.Fprintln(w, "; comment line\ngreat\nspotless")
			} else {
				fmt.Fprintln(w, "awful\ndirty")
			}
		}
	}))
	defer ts.Close()

	src, err := lexicon.NewHTTPSource(ts.URL+"/positive.txt", ts.URL+"/negative.txt", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lex, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(lex) != 4 {
		t.Fatalf("expected 4 lexicon entries, got %d: %v", len(lex), lex)
	}
	if lex["great"] != domain.Positive || lex["dirty"] != domain.Negative {
		t.Fatalf("unexpected polarities: %v", lex)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestHTTPSource_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	src, err := lexicon.NewHTTPSource(ts.URL+"/positive.txt", ts.URL+"/negative.txt", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = src.Load(context.Background())
	if !errors.Is(err, lexicon.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewHTTPSource_RequiresURLs(t *testing.T) {
	if _, err := lexicon.NewHTTPSource("", "http://example.com/n.txt", 5); err == nil {
		t.Fatal("expected error for missing positive URL")
	}
}
