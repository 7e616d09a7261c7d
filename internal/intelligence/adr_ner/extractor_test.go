package adr_ner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamotph/adr-intelligence/internal/intelligence/common"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

// fakeBackend returns a canned response, or a canned error.
type fakeBackend struct {
	resp    *common.PredictResponse
	err     error
	called  bool
	lastReq *common.PredictRequest
}

func (f *fakeBackend) Predict(_ context.Context, req *common.PredictRequest) (*common.PredictResponse, error) {
	f.called = true
	f.lastReq = req
	return f.resp, f.err
}

func (f *fakeBackend) Healthy(context.Context) error { return nil }
func (f *fakeBackend) Close() error                  { return nil }

func newExtractor(b common.ModelBackend) *ModelExtractor {
	return NewModelExtractor(b, "adr-mbert-ner-v1", 256, nil)
}

func TestExtractMentions_MergesWordpieces(t *testing.T) {
	b := &fakeBackend{resp: &common.PredictResponse{
		Tokens: []string{"[CLS]", "head", "##ache", "and", "skin", "rash", "[SEP]"},
		Labels: []string{"O", "B-ADR", "I-ADR", "O", "B-ADR", "I-ADR", "O"},
	}}

	got, err := newExtractor(b).ExtractMentions(context.Background(), "headache and skin rash")
	require.NoError(t, err)
	assert.Equal(t, []string{"headache", "skin rash"}, got)
}

func TestExtractMentions_BLabelStartsNewMention(t *testing.T) {
	b := &fakeBackend{resp: &common.PredictResponse{
		Tokens: []string{"fever", "nausea"},
		Labels: []string{"B-ADR", "B-ADR"},
	}}

	got, err := newExtractor(b).ExtractMentions(context.Background(), "fever nausea")
	require.NoError(t, err)
	assert.Equal(t, []string{"fever", "nausea"}, got)
}

func TestExtractMentions_SpecialTokenFlushes(t *testing.T) {
	b := &fakeBackend{resp: &common.PredictResponse{
		Tokens: []string{"fever", "[SEP]", "rash"},
		Labels: []string{"B-ADR", "I-ADR", "I-ADR"},
	}}

	got, err := newExtractor(b).ExtractMentions(context.Background(), "fever rash")
	require.NoError(t, err)
	assert.Equal(t, []string{"fever", "rash"}, got)
}

func TestExtractMentions_DedupsCaseInsensitively(t *testing.T) {
	b := &fakeBackend{resp: &common.PredictResponse{
		Tokens: []string{"Fever", "then", "fever"},
		Labels: []string{"B-ADR", "O", "B-ADR"},
	}}

	got, err := newExtractor(b).ExtractMentions(context.Background(), "Fever then fever")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fever"}, got)
}

func TestExtractMentions_BlankInputSkipsModel(t *testing.T) {
	b := &fakeBackend{}

	got, err := newExtractor(b).ExtractMentions(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, b.called)
}

func TestExtractMentions_BackendErrorWrapped(t *testing.T) {
	b := &fakeBackend{err: errors.New(errors.CodeExternalService, "boom")}

	_, err := newExtractor(b).ExtractMentions(context.Background(), "fever")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNERBackendFailed))
}

func TestExtractMentions_PassesModelConfig(t *testing.T) {
	b := &fakeBackend{resp: &common.PredictResponse{}}

	_, err := newExtractor(b).ExtractMentions(context.Background(), "fever")
	require.NoError(t, err)
	require.NotNil(t, b.lastReq)
	assert.Equal(t, "adr-mbert-ner-v1", b.lastReq.ModelID)
	assert.Equal(t, 256, b.lastReq.MaxSequenceLength)
}
