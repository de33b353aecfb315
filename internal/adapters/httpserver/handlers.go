package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"guestpulse/internal/app"
	"guestpulse/internal/domain"
)

type Handlers struct{ Q *app.ReportService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reports/run", h.latestRun)
	s.mux.Get("/v1/reports/nps", h.getNPS)
	s.mux.Get("/v1/reports/nps/monthly", h.monthNPS)
	s.mux.Get("/v1/reports/nps/trip-types", h.tripTypeNPS)
	s.mux.Get("/v1/reports/departments", h.departments)
	s.mux.Get("/v1/reports/words/{polarity}", h.words)
	s.mux.Get("/v1/reports/response-buckets", h.responseBuckets)
	s.mux.Get("/v1/reports/ratings/wide", h.ratingsWide)
	s.mux.Get("/v1/reports/ratings/long", h.ratingsLong)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// respond writes v as JSON with a weak ETag, short-circuiting to 304 when
// the client already holds the current version.
func respond(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// respondErr maps repository misses to 404 and everything else to 500.
func respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "no completed analysis run")
		return
	}
	writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
}

func (h *Handlers) latestRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.Q.LatestRun(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, r, run)
}

func (h *Handlers) getNPS(w http.ResponseWriter, r *http.Request) {
	row, err := h.Q.GetNPS(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, r, row)
}

func (h *Handlers) monthNPS(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.MonthNPS(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, r, out)
}

func (h *Handlers) tripTypeNPS(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.TripTypeNPS(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, r, out)
}

func (h *Handlers) departments(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.Departments(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, r, out)
}

func (h *Handlers) words(w http.ResponseWriter, r *http.Request) {
	var p domain.Polarity
	switch chi.URLParam(r, "polarity") {
	case "positive":
		p = domain.Positive
	case "negative":
		p = domain.Negative
	default:
		writeProblem(w, http.StatusBadRequest, "Invalid polarity", "polarity must be positive or negative")
		return
	}

	limit := 15
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	out, err := h.Q.Words(r.Context(), p, limit)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, r, out)
}

func (h *Handlers) responseBuckets(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ResponseBuckets(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, r, out)
}

func (h *Handlers) ratingsWide(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.RatingsWide(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, r, out)
}

func (h *Handlers) ratingsLong(w http.ResponseWriter, r *http.Request) {
	limit := 500
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 10000 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 10000")
			return
		}
		limit = l
	}
	out, err := h.Q.RatingsLong(r.Context(), limit)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, r, out)
}
