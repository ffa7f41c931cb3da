package server

import (
	"github.com/lox/handrank/poker"
	"github.com/lox/handrank/ranktable"
)

// ScoreRequest asks for the strength and rank score of one hand.
type ScoreRequest struct {
	ID    string `json:"id"`
	Cards string `json:"cards"`
}

// ScoreResponse answers a ScoreRequest. Error is set instead of the result
// fields when the hand cannot be scored.
type ScoreResponse struct {
	ID       string   `json:"id"`
	HandType string   `json:"hand_type,omitempty"`
	Key      []string `json:"key,omitempty"`
	Score    uint32   `json:"score,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func newScoreResponse(id string, s poker.Strength, score ranktable.Score) *ScoreResponse {
	key := make([]string, s.Key.Len())
	for i := range key {
		key[i] = s.Key.At(i).String()
	}
	return &ScoreResponse{
		ID:       id,
		HandType: s.Type.String(),
		Key:      key,
		Score:    uint32(score),
	}
}

func newErrorResponse(id string, err error) *ScoreResponse {
	return &ScoreResponse{ID: id, Error: err.Error()}
}
