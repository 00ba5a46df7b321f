// ABOUTME: Fixed reply texts, topic lead-ins and fallback advice for chat advisories
// ABOUTME: Fallback paragraphs are returned verbatim when retrieval yields nothing
package core

import "github.com/harper/agri-advisor/internal/models"

const (
	greetingReply    = "Hello! I'm your AI agricultural advisor. I'm here to help you with farming questions, crop management, disease detection, weather advice, and more. How can I assist you today?"
	farewellReply    = "Goodbye! Take care of your crops and feel free to come back anytime you need agricultural advice. Happy farming!"
	affirmationReply = "Great! Is there anything specific about farming or crop management you'd like to know more about?"
	negationReply    = "I understand. If you have any questions about farming, crops, diseases, weather, or agricultural practices, I'm here to help!"

	closingTip = "\n\n💡 Tip: For more specific advice, you can mention your crop type, location, or upload images for disease detection!"

	// GenericComprehensiveAdvice is returned when a comprehensive advisory has no parts
	GenericComprehensiveAdvice = "Continue monitoring your crops regularly and maintain good agricultural practices."
)

// ThanksReplies are the interchangeable replies to thanks
var ThanksReplies = [...]string{
	"You're very welcome! I'm glad I could help. Feel free to ask if you have any other farming questions.",
	"You're welcome! Happy to assist with your agricultural needs. Don't hesitate to reach out if you need more advice.",
	"My pleasure! I'm here whenever you need agricultural guidance. Good luck with your farming!",
	"You're welcome! Wishing you a successful harvest. Let me know if you have any other questions.",
}

// topicTemplate describes how retrieved passages are presented for a topic
type topicTemplate struct {
	leadIn      string
	extraHeader string
	relevance   []string
	fallback    string
}

var topicTemplates = map[models.IntentCategory]topicTemplate{
	models.IntentTopicDisease: {
		leadIn:      "Regarding your question about plant diseases:",
		extraHeader: "Additional advice:",
		relevance:   []string{"disease", "blight", "fung", "mildew"},
		fallback:    "For plant disease issues, I recommend:\n\n• Remove infected plant parts immediately to prevent spread\n• Apply appropriate fungicides or pesticides as needed\n• Ensure good air circulation by proper spacing\n• Avoid overhead watering that wets leaves\n• Use disease-resistant varieties when possible\n• Practice crop rotation to prevent disease buildup\n\nYou can also use the Disease Detection feature to upload an image and get an AI-powered diagnosis!",
	},
	models.IntentTopicWater: {
		leadIn:      "About irrigation and watering:",
		extraHeader: "More tips:",
		relevance:   []string{"irrigation"},
		fallback:    "Watering best practices:\n\n• Water early in the morning (before 10 AM) to reduce evaporation\n• Use drip irrigation or soaker hoses for efficiency\n• Water at the base of plants, not overhead\n• Check soil moisture by inserting finger 2-3 inches deep\n• Most vegetables need 1-2 inches of water per week\n• Avoid overwatering which can cause root rot\n• Mulch around plants to retain moisture",
	},
	models.IntentTopicFertilizer: {
		leadIn:      "Regarding fertilization:",
		extraHeader: "Additional information:",
		relevance:   []string{"fertil", "nutrient", "compost"},
		fallback:    "Fertilization tips:\n\n• Test your soil first to determine specific nutrient needs\n• Use organic compost to improve soil structure naturally\n• Apply fertilizers during active growth periods\n• Common NPK ratios: 10-10-10 for general use, 5-10-10 for root crops\n• Avoid over-fertilization which can burn plant roots\n• Water after applying fertilizers to help absorption\n• Organic options: compost, manure, bone meal (slow release)\n• Chemical fertilizers work faster but use carefully",
	},
	models.IntentTopicPlanting: {
		leadIn:      "About planting:",
		extraHeader: "More planting tips:",
		relevance:   []string{"plant", "seed", "grow"},
		fallback:    "Planting guidance:\n\n• Prepare soil well before planting (loosen, add compost)\n• Plant at the right depth (usually 2-3 times seed size)\n• Follow proper spacing guidelines for your crop\n• Choose the appropriate season (check Seasonal Guide)\n• Ensure good drainage to prevent waterlogging\n• Water thoroughly after planting\n• Start seeds indoors 6-8 weeks before last frost for warm-season crops\n• Harden off seedlings before transplanting outdoors",
	},
	models.IntentTopicPest: {
		leadIn:      "Regarding pest management:",
		extraHeader: "More pest control tips:",
		relevance:   []string{"pest"},
		fallback:    "Pest management:\n\n• Monitor crops regularly for early pest detection\n• Use Integrated Pest Management (IPM) approach\n• Introduce beneficial insects (ladybugs, lacewings)\n• Remove heavily infested leaves or plants\n• Use neem oil or insecticidal soap for organic control\n• Apply chemical pesticides only when necessary\n• Follow label instructions carefully and safely\n• Common pests: aphids, spider mites, whiteflies, caterpillars",
	},
	models.IntentTopicSoil: {
		leadIn:      "About soil management:",
		extraHeader: "More soil tips:",
		relevance:   []string{"soil"},
		fallback:    "Soil health tips:\n\n• Test soil pH regularly (most crops prefer 6.0-7.0)\n• Add organic matter through compost to improve structure\n• Practice crop rotation to maintain nutrients\n• Avoid soil compaction by not walking on beds\n• Maintain proper drainage (well-draining soil)\n• Improve clay soil: add sand and organic matter\n• Improve sandy soil: add compost and clay\n• Mulch to retain moisture and suppress weeds",
	},
	models.IntentTopicHarvest: {
		leadIn:      "Regarding harvesting:",
		extraHeader: "More harvesting tips:",
		relevance:   []string{"harvest"},
		fallback:    "Harvesting best practices:\n\n• Harvest at peak maturity for best flavor and nutrition\n• Pick in the morning when temperatures are cool\n• Handle produce gently to avoid bruising\n• Store properly to maintain quality (cool, dry place)\n• Use sharp, clean tools for clean cuts\n• Regular harvesting encourages more production\n• Tomatoes: firm but yield slightly to pressure\n• Leafy greens: harvest when young and tender\n• Root crops: ready when roots reach desired size",
	},
}

// cropTemplates are used for crop-specific questions
var cropTemplates = map[models.CropVariant]topicTemplate{
	models.CropTomato: {
		leadIn:      "About growing tomatoes:",
		extraHeader: "More tomato tips:",
		relevance:   []string{"tomato"},
		fallback:    "Tomato growing tips:\n\n• Need full sun (6-8 hours daily) and well-draining soil\n• Stake or cage plants for support\n• Water consistently at the base\n• Remove suckers (side shoots) for better fruit production\n• Watch for blight, especially in humid conditions\n• Harvest when firm but slightly yielding to pressure",
	},
	models.CropPotato: {
		leadIn:      "About growing potatoes:",
		extraHeader: "More potato tips:",
		relevance:   []string{"potato"},
		fallback:    "Potato growing tips:\n\n• Grow in loose, well-drained soil (pH 5.0-6.0)\n• Plant seed potatoes 3-4 inches deep, 12 inches apart\n• Hill soil around plants as they grow\n• Keep soil consistently moist but not waterlogged\n• Harvest when foliage dies back\n• Store in cool, dark, dry place",
	},
	models.CropPepper: {
		leadIn:      "About growing peppers:",
		extraHeader: "More pepper tips:",
		relevance:   []string{"pepper"},
		fallback:    "Pepper growing tips:\n\n• Need warm temperatures (70-85°F) and full sun\n• Start seeds indoors 8-10 weeks before transplanting\n• Space plants 18-24 inches apart\n• Keep soil consistently moist\n• Harvest when peppers reach desired size and color\n• Peppers are ready when they're firm and fully colored",
	},
}

// General questions list up to three passages under ordinal lead-ins
var generalLeadIns = [...]string{
	"Based on your question:",
	"Additional information:",
	"You might also find this helpful:",
}

const generalFallback = "Here's some general agricultural advice:\n\n• Practice crop rotation to maintain soil health\n• Monitor your crops regularly for issues\n• Use appropriate spacing for good air circulation\n• Maintain proper irrigation and fertilization\n• Test soil pH and nutrients regularly\n• Use disease-resistant varieties when possible\n• Consult local agricultural extension services for region-specific advice\n\nFeel free to ask about specific crops, diseases, pests, or farming practices!"

// FallbackText returns the fixed advice for an intent when retrieval finds nothing
func FallbackText(intent models.Intent) string {
	if tmpl, ok := topicTemplates[intent.Category]; ok {
		return tmpl.fallback
	}
	if tmpl, ok := cropTemplates[intent.Crop]; ok {
		return tmpl.fallback
	}
	return generalFallback
}

// templateFor returns the presentation template for a topic or crop intent
func templateFor(intent models.Intent) (topicTemplate, bool) {
	if intent.Category == models.IntentTopicCropSpecific {
		tmpl, ok := cropTemplates[intent.Crop]
		return tmpl, ok
	}
	tmpl, ok := topicTemplates[intent.Category]
	return tmpl, ok
}

// conversationalReply returns the canned reply for a conversational category
func conversationalReply(category models.IntentCategory, pick func(n int) int) string {
	switch category {
	case models.IntentGreeting:
		return greetingReply
	case models.IntentThanks:
		return ThanksReplies[pick(len(ThanksReplies))]
	case models.IntentFarewell:
		return farewellReply
	case models.IntentAffirmation:
		return affirmationReply
	case models.IntentNegation:
		return negationReply
	}
	return ""
}
