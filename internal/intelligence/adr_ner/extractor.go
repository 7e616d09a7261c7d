// Package adr_ner adapts a token-classification model into reaction-mention
// extraction. The model emits wordpiece tokens with BIO labels; this package
// reassembles them into surface phrases.
package adr_ner

import (
	"context"
	"strings"

	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/internal/intelligence/common"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

// BIO labels emitted by the reaction NER model.
const (
	LabelO    = "O"
	LabelBADR = "B-ADR"
	LabelIADR = "I-ADR"
)

// specialTokens are tokenizer artifacts, never part of a mention. Any of
// them terminates the phrase under construction.
var specialTokens = map[string]struct{}{
	"[CLS]": {},
	"[SEP]": {},
	"[PAD]": {},
	"[UNK]": {},
}

// Extractor pulls reaction mentions out of free text.
//
// A nil Extractor is the "not configured" state; callers that can work
// without NER (the cleaning pipeline) must tolerate it.
type Extractor interface {
	ExtractMentions(ctx context.Context, text string) ([]string, error)
}

// ModelExtractor is the ModelBackend-based Extractor.
type ModelExtractor struct {
	backend common.ModelBackend
	modelID string
	maxSeq  int
	logger  logging.Logger
}

// NewModelExtractor constructs an Extractor over the given backend.
func NewModelExtractor(backend common.ModelBackend, modelID string, maxSeq int, log logging.Logger) *ModelExtractor {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ModelExtractor{
		backend: backend,
		modelID: modelID,
		maxSeq:  maxSeq,
		logger:  log.Named("adr_ner"),
	}
}

// ExtractMentions runs the model and merges its token output into mentions.
// Blank input short-circuits to an empty result without touching the model.
func (e *ModelExtractor) ExtractMentions(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	resp, err := e.backend.Predict(ctx, &common.PredictRequest{
		ModelID:           e.modelID,
		Text:              text,
		MaxSequenceLength: e.maxSeq,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeNERBackendFailed, "reaction NER prediction failed")
	}

	mentions := mergeMentions(resp.Tokens, resp.Labels)
	e.logger.Debug("mentions extracted",
		logging.Int("tokens", len(resp.Tokens)), logging.Int("mentions", len(mentions)))
	return mentions, nil
}

// mergeMentions walks parallel token/label slices and reassembles entity
// phrases: "##" continuations glue to the previous word, special tokens and
// non-entity labels flush, a B- label starts a fresh phrase. Output keeps
// first-seen order with case-insensitive dedup.
func mergeMentions(tokens, labels []string) []string {
	n := len(tokens)
	if len(labels) < n {
		n = len(labels)
	}

	var mentions []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			mentions = append(mentions, strings.Join(current, " "))
			current = nil
		}
	}

	for i := 0; i < n; i++ {
		tok, label := tokens[i], labels[i]
		if _, special := specialTokens[tok]; special {
			flush()
			continue
		}
		if label == LabelO || label == "" {
			flush()
			continue
		}
		if strings.HasPrefix(tok, "##") {
			if len(current) > 0 {
				current[len(current)-1] += strings.TrimPrefix(tok, "##")
			} else {
				current = append(current, strings.TrimPrefix(tok, "##"))
			}
			continue
		}
		if strings.HasPrefix(label, "B-") {
			flush()
		}
		current = append(current, tok)
	}
	flush()

	return dedupFold(mentions)
}

// dedupFold removes case-insensitive duplicates, keeping first-seen order
// and first-seen casing.
func dedupFold(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
