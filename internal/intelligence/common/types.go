// Package common holds the shared contract between the intelligence
// adapters and the model serving infrastructure they call.
package common

import "context"

// ModelBackend is the interface for invoking an external token-classification
// model. Implementations own transport, serialization, and timeouts; adapters
// above only see tokens and labels.
type ModelBackend interface {
	Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error)
	Healthy(ctx context.Context) error
	Close() error
}

// PredictRequest carries one text to classify.
type PredictRequest struct {
	ModelID           string `json:"model_id"`
	Text              string `json:"text"`
	MaxSequenceLength int    `json:"max_sequence_length,omitempty"`
}

// PredictResponse is the model's token-level output. Tokens and Labels are
// parallel slices; Labels uses the BIO scheme.
type PredictResponse struct {
	Tokens []string `json:"tokens"`
	Labels []string `json:"labels"`
}
