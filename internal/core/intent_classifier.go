// ABOUTME: Rule-based intent classifier for chat utterances
// ABOUTME: Matches whole words and phrases against keyword sets in fixed precedence order
package core

import (
	"strings"

	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/util"
)

// shortUtteranceTokens bounds affirmation/negation matching to brief replies
const shortUtteranceTokens = 3

// keywordSet matches single words and multi-word phrases
type keywordSet struct {
	words   map[string]struct{}
	phrases [][]string
}

func newKeywordSet(entries ...string) keywordSet {
	ks := keywordSet{words: make(map[string]struct{})}
	for _, e := range entries {
		parts := strings.Fields(e)
		if len(parts) == 1 {
			ks.words[parts[0]] = struct{}{}
			continue
		}
		ks.phrases = append(ks.phrases, parts)
	}
	return ks
}

func (ks keywordSet) matches(tokens []string) bool {
	for _, tok := range tokens {
		if _, ok := ks.words[tok]; ok {
			return true
		}
	}
	for _, phrase := range ks.phrases {
		if containsPhrase(tokens, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(tokens, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, p := range phrase {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// intentRule assigns category when keywords match; shortOnly rules apply to brief utterances only
type intentRule struct {
	category  models.IntentCategory
	keywords  keywordSet
	shortOnly bool
}

type cropRule struct {
	crop     models.CropVariant
	keywords keywordSet
}

var intentRules = []intentRule{
	{category: models.IntentGreeting, keywords: newKeywordSet(
		"hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening")},
	{category: models.IntentThanks, keywords: newKeywordSet(
		"thank", "thanks", "thankyou", "thx", "appreciate", "appreciated", "grateful", "helpful")},
	{category: models.IntentFarewell, keywords: newKeywordSet(
		"bye", "goodbye", "farewell", "see you", "see ya")},
	{category: models.IntentAffirmation, shortOnly: true, keywords: newKeywordSet(
		"yes", "yeah", "yep", "sure", "ok", "okay", "alright", "correct")},
	{category: models.IntentNegation, shortOnly: true, keywords: newKeywordSet(
		"no", "nope", "not", "don't", "doesn't", "isn't", "aren't")},
	{category: models.IntentTopicDisease, keywords: newKeywordSet(
		"disease", "diseases", "diseased", "sick", "infected", "infection", "problem", "problems",
		"issue", "issues", "wrong", "yellow", "yellowing", "brown", "spot", "spots", "mold", "mould",
		"blight", "wilt", "wilting", "mildew", "rot", "fungus", "fungal")},
	{category: models.IntentTopicWater, keywords: newKeywordSet(
		"water", "watering", "watered", "irrigation", "irrigate", "moisture", "dry", "thirsty", "dehydrated")},
	{category: models.IntentTopicFertilizer, keywords: newKeywordSet(
		"fertilizer", "fertilizers", "fertiliser", "fertilize", "fertilizing", "nutrient", "nutrients",
		"feed", "feeding", "npk", "compost", "manure")},
	{category: models.IntentTopicPlanting, keywords: newKeywordSet(
		"plant", "plants", "planting", "grow", "growing", "seed", "seeds", "sow", "sowing",
		"transplant", "transplanting", "seedling", "seedlings")},
	{category: models.IntentTopicPest, keywords: newKeywordSet(
		"pest", "pests", "insect", "insects", "bug", "bugs", "aphid", "aphids", "mite", "mites",
		"caterpillar", "caterpillars", "worm", "worms", "infestation")},
	{category: models.IntentTopicSoil, keywords: newKeywordSet(
		"soil", "dirt", "ground", "ph", "clay", "sandy", "loam")},
	{category: models.IntentTopicHarvest, keywords: newKeywordSet(
		"harvest", "harvesting", "harvested", "pick", "picking", "collect", "ripe", "ripen", "mature", "ready")},
}

var cropRules = []cropRule{
	{crop: models.CropTomato, keywords: newKeywordSet("tomato", "tomatoes")},
	{crop: models.CropPotato, keywords: newKeywordSet("potato", "potatoes")},
	{crop: models.CropPepper, keywords: newKeywordSet("pepper", "peppers")},
}

// IntentClassifier maps utterances to intents. The zero value is ready to use.
type IntentClassifier struct{}

// NewIntentClassifier returns a classifier
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{}
}

// Classify returns the first matching intent; unmatched utterances are General
func (c *IntentClassifier) Classify(utterance string) models.Intent {
	tokens := util.Tokenize(utterance)

	for _, rule := range intentRules {
		if rule.shortOnly && len(tokens) > shortUtteranceTokens {
			continue
		}
		if rule.keywords.matches(tokens) {
			return models.Intent{Category: rule.category}
		}
	}

	if crop := DetectCrop(tokens); crop != models.CropNone {
		return models.Intent{Category: models.IntentTopicCropSpecific, Crop: crop}
	}
	return models.Intent{Category: models.IntentGeneral}
}

// DetectCrop returns the first crop with dedicated guidance named in tokens
func DetectCrop(tokens []string) models.CropVariant {
	for _, rule := range cropRules {
		if rule.keywords.matches(tokens) {
			return rule.crop
		}
	}
	return models.CropNone
}
