package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gamotph/adr-intelligence/internal/domain/report"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

type mockAnalytics struct {
	mock.Mock
}

func (m *mockAnalytics) TopADRs(ctx context.Context, limit *int) (*report.LabelDistribution, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.(*report.LabelDistribution), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalytics) TopMedicines(ctx context.Context, limit *int) ([]report.MedicineCount, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]report.MedicineCount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalytics) MedicineNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalytics) ReactionSummary(ctx context.Context, filter report.SummaryFilter) (*report.ReactionSummary, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.(*report.ReactionSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

type stubCleaner struct {
	got  []report.ReactionBucket
	dist *report.LabelDistribution
}

func (s *stubCleaner) NormalizeReactionItems(_ context.Context, buckets []report.ReactionBucket) *report.LabelDistribution {
	s.got = buckets
	return s.dist
}

func newHandler(svc AnalyticsService, cleaner ReactionCleaner) *AnalyticsHandler {
	return NewAnalyticsHandler(svc, cleaner, nil, 0, nil)
}

func TestTopADRs_DefaultLimit(t *testing.T) {
	svc := &mockAnalytics{}
	svc.On("TopADRs", mock.Anything, mock.MatchedBy(func(l *int) bool {
		return l != nil && *l == 10
	})).Return(&report.LabelDistribution{Items: []report.NormalizedLabel{
		{Label: "Fever", Count: 5},
	}}, nil)

	rec := httptest.NewRecorder()
	newHandler(svc, nil).TopADRs(rec, httptest.NewRequest(http.MethodGet, "/top-adrs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body report.LabelDistribution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Fever", body.Items[0].Label)
	svc.AssertExpectations(t)
}

func TestTopADRs_ExplicitLimit(t *testing.T) {
	svc := &mockAnalytics{}
	svc.On("TopADRs", mock.Anything, mock.MatchedBy(func(l *int) bool {
		return l != nil && *l == 25
	})).Return(&report.LabelDistribution{}, nil)

	rec := httptest.NewRecorder()
	newHandler(svc, nil).TopADRs(rec, httptest.NewRequest(http.MethodGet, "/top-adrs?limit=25", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTopADRs_LimitOutOfRange(t *testing.T) {
	for _, q := range []string{"limit=0", "limit=101", "limit=abc", "limit=-3"} {
		rec := httptest.NewRecorder()
		newHandler(&mockAnalytics{}, nil).TopADRs(rec,
			httptest.NewRequest(http.MethodGet, "/top-adrs?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query=%s", q)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, errors.CodeInvalidParam.String(), body.Code)
	}
}

func TestTopADRs_ServiceErrorMasked(t *testing.T) {
	svc := &mockAnalytics{}
	svc.On("TopADRs", mock.Anything, mock.Anything).
		Return(nil, errors.New(errors.CodeDatabaseError, "connection refused to 10.0.0.5"))

	rec := httptest.NewRecorder()
	newHandler(svc, nil).TopADRs(rec, httptest.NewRequest(http.MethodGet, "/top-adrs", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestTopMedicines_DefaultLimit(t *testing.T) {
	svc := &mockAnalytics{}
	svc.On("TopMedicines", mock.Anything, mock.MatchedBy(func(l *int) bool {
		return l != nil && *l == 50
	})).Return([]report.MedicineCount{{Name: "Paracetamol", Count: 7}}, nil)

	rec := httptest.NewRecorder()
	newHandler(svc, nil).TopMedicines(rec, httptest.NewRequest(http.MethodGet, "/top-medicines", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Paracetamol")
}

func TestTopMedicines_AllowsLargerLimit(t *testing.T) {
	svc := &mockAnalytics{}
	svc.On("TopMedicines", mock.Anything, mock.MatchedBy(func(l *int) bool {
		return l != nil && *l == 400
	})).Return([]report.MedicineCount{}, nil)

	rec := httptest.NewRecorder()
	newHandler(svc, nil).TopMedicines(rec,
		httptest.NewRequest(http.MethodGet, "/top-medicines?limit=400", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMedicineNames(t *testing.T) {
	svc := &mockAnalytics{}
	svc.On("MedicineNames", mock.Anything).Return([]string{"Ibuprofen", "Paracetamol"}, nil)

	rec := httptest.NewRecorder()
	newHandler(svc, nil).MedicineNames(rec, httptest.NewRequest(http.MethodGet, "/medicine-names", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Ibuprofen", "Paracetamol"}, body["names"])
}

func TestReactionSummary_ParsesFilter(t *testing.T) {
	medID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	svc := &mockAnalytics{}
	svc.On("ReactionSummary", mock.Anything, mock.MatchedBy(func(f report.SummaryFilter) bool {
		return f.From.Equal(from) && f.MedicineID != nil && *f.MedicineID == medID
	})).Return(&report.ReactionSummary{Total: 1}, nil)

	url := "/reaction-summary?from=2026-01-01T00:00:00Z&medicine_id=" + medID.String()
	rec := httptest.NewRecorder()
	newHandler(svc, nil).ReactionSummary(rec, httptest.NewRequest(http.MethodGet, url, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestReactionSummary_RejectsBadParams(t *testing.T) {
	for _, q := range []string{"from=yesterday", "to=tomorrow", "medicine_id=not-a-uuid"} {
		rec := httptest.NewRecorder()
		newHandler(&mockAnalytics{}, nil).ReactionSummary(rec,
			httptest.NewRequest(http.MethodGet, "/reaction-summary?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query=%s", q)
	}
}

func TestNormalizeReactions(t *testing.T) {
	cleaner := &stubCleaner{dist: &report.LabelDistribution{Items: []report.NormalizedLabel{
		{Label: "Fever", Count: 3},
	}}}

	body := `{"items":[{"text":"fever","count":3}]}`
	rec := httptest.NewRecorder()
	newHandler(&mockAnalytics{}, cleaner).NormalizeReactions(rec,
		httptest.NewRequest(http.MethodPost, "/normalize-reactions", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []report.ReactionBucket{{Text: "fever", Count: 3}}, cleaner.got)
	assert.Contains(t, rec.Body.String(), "Fever")
}

func TestNormalizeReactions_BadBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(&mockAnalytics{}, &stubCleaner{}).NormalizeReactions(rec,
		httptest.NewRequest(http.MethodPost, "/normalize-reactions", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
