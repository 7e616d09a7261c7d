package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gamotph/adr-intelligence/internal/domain/report"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/database/redis"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

// Limit bounds per endpoint.
const (
	defaultTopADRLimit      = 10
	maxTopADRLimit          = 100
	defaultTopMedicineLimit = 50
	maxTopMedicineLimit     = 500
)

// AnalyticsService is the application-layer contract the handler calls.
type AnalyticsService interface {
	TopADRs(ctx context.Context, limit *int) (*report.LabelDistribution, error)
	TopMedicines(ctx context.Context, limit *int) ([]report.MedicineCount, error)
	MedicineNames(ctx context.Context) ([]string, error)
	ReactionSummary(ctx context.Context, filter report.SummaryFilter) (*report.ReactionSummary, error)
}

// ReactionCleaner normalizes ad-hoc reaction buckets for the POST endpoint.
type ReactionCleaner interface {
	NormalizeReactionItems(ctx context.Context, buckets []report.ReactionBucket) *report.LabelDistribution
}

// AnalyticsHandler serves the /api/v1/analytics endpoints. The cache is
// optional; when present, distribution reads go through it.
type AnalyticsHandler struct {
	svc      AnalyticsService
	cleaner  ReactionCleaner
	cache    redis.Cache
	cacheTTL time.Duration
	logger   logging.Logger
}

// NewAnalyticsHandler wires the handler. cache may be nil.
func NewAnalyticsHandler(svc AnalyticsService, cleaner ReactionCleaner, cache redis.Cache, cacheTTL time.Duration, log logging.Logger) *AnalyticsHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AnalyticsHandler{
		svc:      svc,
		cleaner:  cleaner,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log.Named("analytics_handler"),
	}
}

// TopADRs handles GET /api/v1/analytics/top-adrs?limit=1..100.
func (h *AnalyticsHandler) TopADRs(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultTopADRLimit, maxTopADRLimit)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var dist report.LabelDistribution
	load := func(ctx context.Context) (interface{}, error) {
		return h.svc.TopADRs(ctx, limit)
	}
	if err := h.cached(r.Context(), fmt.Sprintf("top-adrs:limit=%d", *limit), &dist, load); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dist)
}

// TopMedicines handles GET /api/v1/analytics/top-medicines?limit=1..500.
func (h *AnalyticsHandler) TopMedicines(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultTopMedicineLimit, maxTopMedicineLimit)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var counts []report.MedicineCount
	load := func(ctx context.Context) (interface{}, error) {
		return h.svc.TopMedicines(ctx, limit)
	}
	if err := h.cached(r.Context(), fmt.Sprintf("top-medicines:limit=%d", *limit), &counts, load); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": counts})
}

// MedicineNames handles GET /api/v1/analytics/medicine-names.
func (h *AnalyticsHandler) MedicineNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.MedicineNames(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"names": names})
}

// ReactionSummary handles GET /api/v1/analytics/reaction-summary with
// optional from, to (RFC 3339) and medicine_id query parameters.
func (h *AnalyticsHandler) ReactionSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSummaryFilter(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	summary, err := h.svc.ReactionSummary(r.Context(), filter)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// normalizeRequest is the POST /normalize-reactions body.
type normalizeRequest struct {
	Items []report.ReactionBucket `json:"items"`
}

// NormalizeReactions handles POST /api/v1/analytics/normalize-reactions:
// ad-hoc cleaning of caller-supplied buckets, no persistence involved.
func (h *AnalyticsHandler) NormalizeReactions(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, errors.InvalidParam("request body must be JSON with an items array"))
		return
	}
	dist := h.cleaner.NormalizeReactionItems(r.Context(), req.Items)
	writeJSON(w, http.StatusOK, dist)
}

// cached reads through the cache when one is configured, otherwise calls
// the loader directly.
func (h *AnalyticsHandler) cached(ctx context.Context, key string, dest interface{}, load func(ctx context.Context) (interface{}, error)) error {
	if h.cache == nil {
		value, err := load(ctx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return errors.Wrap(err, errors.CodeSerialization, "encode analytics result")
		}
		return json.Unmarshal(raw, dest)
	}
	return h.cache.GetOrSet(ctx, key, dest, h.cacheTTL, load)
}

func parseSummaryFilter(r *http.Request) (report.SummaryFilter, error) {
	var filter report.SummaryFilter
	q := r.URL.Query()

	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.InvalidParam("from must be an RFC 3339 timestamp")
		}
		filter.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.InvalidParam("to must be an RFC 3339 timestamp")
		}
		filter.To = t
	}
	if raw := q.Get("medicine_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.InvalidParam("medicine_id must be a UUID")
		}
		filter.MedicineID = &id
	}
	return filter, nil
}
