// ABOUTME: Tests for knowledge, intent and error models
// ABOUTME: Verifies validation, top-k clamping and intent labels
package models

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestKnowledgeDocument_Validate(t *testing.T) {
	tests := []struct {
		name    string
		doc     KnowledgeDocument
		dim     int
		wantErr bool
	}{
		{
			name:    "valid document",
			doc:     KnowledgeDocument{ID: "doc_1", Text: "Water early", Embedding: []float64{1, 0, 0}},
			dim:     3,
			wantErr: false,
		},
		{
			name:    "empty id",
			doc:     KnowledgeDocument{Text: "Water early", Embedding: []float64{1, 0, 0}},
			dim:     3,
			wantErr: true,
		},
		{
			name:    "whitespace text",
			doc:     KnowledgeDocument{ID: "doc_1", Text: "   ", Embedding: []float64{1, 0, 0}},
			dim:     3,
			wantErr: true,
		},
		{
			name:    "missing embedding",
			doc:     KnowledgeDocument{ID: "doc_1", Text: "Water early"},
			dim:     3,
			wantErr: true,
		},
		{
			name:    "dimension mismatch",
			doc:     KnowledgeDocument{ID: "doc_1", Text: "Water early", Embedding: []float64{1, 0}},
			dim:     3,
			wantErr: true,
		},
		{
			name:    "dimension unchecked",
			doc:     KnowledgeDocument{ID: "doc_1", Text: "Water early", Embedding: []float64{1, 0}},
			dim:     0,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate(tt.dim)
			if tt.wantErr {
				gt.Error(t, err).Is(ErrValidation)
				return
			}
			gt.NoError(t, err)
		})
	}
}

func TestNormalizeTopK(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 3},
		{-4, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{50, 5},
	}
	for _, tt := range tests {
		gt.Value(t, NormalizeTopK(tt.in)).Equal(tt.want)
	}
}

func TestNewQueryResult(t *testing.T) {
	empty := NewQueryResult(nil)
	gt.Value(t, empty.Count).Equal(0)
	gt.Value(t, empty.Results).NotNil()

	res := NewQueryResult([]string{"a", "b"})
	gt.Value(t, res.Count).Equal(2)
}

func TestIntentCategory(t *testing.T) {
	conversational := []IntentCategory{IntentGreeting, IntentThanks, IntentFarewell, IntentAffirmation, IntentNegation}
	for _, c := range conversational {
		gt.Bool(t, c.IsConversational()).True()
	}

	topics := []IntentCategory{
		IntentTopicDisease, IntentTopicWater, IntentTopicFertilizer, IntentTopicPlanting,
		IntentTopicPest, IntentTopicSoil, IntentTopicHarvest, IntentTopicCropSpecific, IntentGeneral,
	}
	for _, c := range topics {
		gt.Bool(t, c.IsConversational()).False()
	}

	gt.Value(t, IntentTopicWater.String()).Equal("topic_water")
	gt.Value(t, IntentCategory(99).String()).Equal("general")
}

func TestIntent_String(t *testing.T) {
	gt.Value(t, Intent{Category: IntentTopicCropSpecific, Crop: CropPotato}.String()).Equal("topic_crop_specific:potato")
	gt.Value(t, Intent{Category: IntentGreeting}.String()).Equal("greeting")
}

func TestIntentCategory_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Intent{Category: IntentTopicSoil})
	gt.NoError(t, err).Required()
	gt.String(t, string(data)).Contains(`"category":"topic_soil"`)
}

func TestIsClientError(t *testing.T) {
	gt.Bool(t, IsClientError(ErrValidation)).True()
	gt.Bool(t, IsClientError(ErrEmptyInput)).True()
	gt.Bool(t, IsClientError(ErrEmbedderUnavailable)).False()
}

func TestTreatment_IsEmpty(t *testing.T) {
	gt.Bool(t, Treatment{}.IsEmpty()).True()
	gt.Bool(t, Treatment{Organic: "neem"}.IsEmpty()).False()
}
