// ABOUTME: Intent categories assigned to user utterances
// ABOUTME: Conversational categories short-circuit, topic categories drive retrieval and fallbacks
package models

// IntentCategory is the classified purpose of an utterance
type IntentCategory int

const (
	IntentGeneral IntentCategory = iota
	IntentGreeting
	IntentThanks
	IntentFarewell
	IntentAffirmation
	IntentNegation
	IntentTopicDisease
	IntentTopicWater
	IntentTopicFertilizer
	IntentTopicPlanting
	IntentTopicPest
	IntentTopicSoil
	IntentTopicHarvest
	IntentTopicCropSpecific
)

var intentNames = map[IntentCategory]string{
	IntentGeneral:           "general",
	IntentGreeting:          "greeting",
	IntentThanks:            "thanks",
	IntentFarewell:          "farewell",
	IntentAffirmation:       "affirmation",
	IntentNegation:          "negation",
	IntentTopicDisease:      "topic_disease",
	IntentTopicWater:        "topic_water",
	IntentTopicFertilizer:   "topic_fertilizer",
	IntentTopicPlanting:     "topic_planting",
	IntentTopicPest:         "topic_pest",
	IntentTopicSoil:         "topic_soil",
	IntentTopicHarvest:      "topic_harvest",
	IntentTopicCropSpecific: "topic_crop_specific",
}

// String returns the snake_case label used in metadata
func (c IntentCategory) String() string {
	if name, ok := intentNames[c]; ok {
		return name
	}
	return "general"
}

// MarshalText lets the category serialize as its label
func (c IntentCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// IsConversational reports whether the category gets a canned reply
func (c IntentCategory) IsConversational() bool {
	switch c {
	case IntentGreeting, IntentThanks, IntentFarewell, IntentAffirmation, IntentNegation:
		return true
	}
	return false
}

// CropVariant names a crop with dedicated guidance
type CropVariant string

const (
	CropNone   CropVariant = ""
	CropTomato CropVariant = "tomato"
	CropPotato CropVariant = "potato"
	CropPepper CropVariant = "pepper"
)

// Intent is a category plus the crop variant for crop-specific questions
type Intent struct {
	Category IntentCategory `json:"category"`
	Crop     CropVariant    `json:"crop,omitempty"`
}

// IsConversational delegates to the category
func (i Intent) IsConversational() bool {
	return i.Category.IsConversational()
}

// String returns the category label, suffixed with the crop when present
func (i Intent) String() string {
	if i.Category == IntentTopicCropSpecific && i.Crop != CropNone {
		return i.Category.String() + ":" + string(i.Crop)
	}
	return i.Category.String()
}
