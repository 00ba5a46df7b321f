// ABOUTME: Built-in agronomy corpus seeded into an empty knowledge store
// ABOUTME: Fixed ids make repeated seeding an idempotent upsert
package storage

import "github.com/harper/agri-advisor/internal/models"

// SeedCorpusVersion identifies the default corpus contents
const SeedCorpusVersion = "2024.1"

// DefaultCorpus returns the curated default knowledge passages
func DefaultCorpus() []models.SeedDocument {
	out := make([]models.SeedDocument, len(defaultCorpus))
	copy(out, defaultCorpus)
	return out
}

var defaultCorpus = []models.SeedDocument{
	{
		ID:        "crop_rotation_1",
		SourceTag: "agricultural_best_practices",
		Text:      "Crop rotation is essential for maintaining soil health. Rotate crops every season to prevent disease buildup and nutrient depletion. Common rotations include: legumes → grains → root crops. For example, plant beans one season, then corn, then potatoes.",
	},
	{
		ID:        "irrigation_1",
		SourceTag: "irrigation_guide",
		Text:      "Proper irrigation is crucial for crop health. Water early in the morning to reduce evaporation. Use drip irrigation for water efficiency. Avoid overwatering which can lead to root rot. Most vegetables need 1-2 inches of water per week.",
	},
	{
		ID:        "irrigation_2",
		SourceTag: "irrigation_guide",
		Text:      "Signs of overwatering include yellowing leaves, wilting despite wet soil, and root rot. Signs of underwatering include dry, brittle leaves and stunted growth. Check soil moisture by inserting your finger 2-3 inches into the soil.",
	},
	{
		ID:        "fertilization_1",
		SourceTag: "fertilization_guide",
		Text:      "Apply fertilizers based on soil test results. Use organic compost to improve soil structure. Apply nitrogen fertilizers during active growth periods. Avoid over-fertilization which can burn plants. Common NPK ratios: 10-10-10 for general use, 5-10-10 for root crops.",
	},
	{
		ID:        "fertilization_2",
		SourceTag: "fertilization_guide",
		Text:      "Organic fertilizers like compost, manure, and bone meal release nutrients slowly. Chemical fertilizers work faster but can burn plants if overused. Always follow package instructions and water after applying fertilizers.",
	},
	{
		ID:        "pest_management_1",
		SourceTag: "pest_management",
		Text:      "Integrated Pest Management (IPM) combines biological, cultural, and chemical methods. Monitor crops regularly for pests. Use beneficial insects when possible. Apply pesticides only when necessary and follow label instructions. Neem oil is an effective organic pesticide.",
	},
	{
		ID:        "pest_management_2",
		SourceTag: "pest_management",
		Text:      "Common garden pests include aphids, spider mites, whiteflies, and caterpillars. Natural predators like ladybugs and lacewings can help control pests. Remove heavily infested leaves. Use insecticidal soap for soft-bodied insects.",
	},
	{
		ID:        "soil_health_1",
		SourceTag: "soil_management",
		Text:      "Healthy soil is the foundation of good crops. Test soil pH regularly (most crops prefer 6.0-7.0). Add organic matter through compost. Practice no-till farming to preserve soil structure. Well-draining soil prevents root diseases.",
	},
	{
		ID:        "soil_health_2",
		SourceTag: "soil_management",
		Text:      "Improve clay soil by adding sand and organic matter. Improve sandy soil by adding compost and clay. Soil should be loose and crumbly, not compacted. Mulching helps retain moisture and suppress weeds.",
	},
	{
		ID:        "seasonal_planting_1",
		SourceTag: "seasonal_guide",
		Text:      "Plant crops according to their season. Cool-season crops (lettuce, broccoli, carrots, spinach) grow best in spring and fall when temperatures are 60-70°F. Warm-season crops (tomatoes, peppers, corn, beans) need summer heat above 70°F. Check local planting calendars for your region.",
	},
	{
		ID:        "seasonal_planting_2",
		SourceTag: "seasonal_guide",
		Text:      "Start seeds indoors 6-8 weeks before last frost for warm-season crops. Harden off seedlings by gradually exposing them to outdoor conditions. Plant after danger of frost has passed. Use row covers to protect early plantings.",
	},
	{
		ID:        "disease_prevention_1",
		SourceTag: "disease_management",
		Text:      "Prevent plant diseases by using disease-resistant varieties, proper spacing for air circulation, crop rotation, removing infected plant material, and avoiding overhead watering that wets leaves. Water at the base of plants.",
	},
	{
		ID:        "disease_prevention_2",
		SourceTag: "disease_management",
		Text:      "Common plant diseases include blight, powdery mildew, rust, and leaf spot. Early detection is key. Remove and destroy infected plant parts immediately. Use fungicides preventatively for susceptible crops. Copper-based fungicides are effective for many fungal diseases.",
	},
	{
		ID:        "harvesting_1",
		SourceTag: "harvesting_guide",
		Text:      "Harvest crops at their peak maturity. Most vegetables are best harvested in the morning when temperatures are cool. Handle produce gently to avoid bruising. Store properly to maintain quality. Tomatoes should be firm but yield slightly to pressure.",
	},
	{
		ID:        "harvesting_2",
		SourceTag: "harvesting_guide",
		Text:      "Leafy greens should be harvested when leaves are young and tender. Root crops are ready when roots reach desired size. Fruits like tomatoes and peppers should be fully colored. Regular harvesting encourages more production.",
	},
	{
		ID:        "tomato_care_1",
		SourceTag: "crop_specific",
		Text:      "Tomatoes need full sun (6-8 hours daily), well-draining soil, and consistent watering. Stake or cage plants for support. Remove suckers (side shoots) for better fruit production. Watch for signs of blight, especially in humid conditions.",
	},
	{
		ID:        "potato_care_1",
		SourceTag: "crop_specific",
		Text:      "Potatoes grow best in loose, well-drained soil with pH 5.0-6.0. Plant seed potatoes 3-4 inches deep, 12 inches apart. Hill soil around plants as they grow. Harvest when foliage dies back. Store in cool, dark, dry place.",
	},
	{
		ID:        "pepper_care_1",
		SourceTag: "crop_specific",
		Text:      "Peppers need warm temperatures (70-85°F), full sun, and consistent moisture. Start seeds indoors 8-10 weeks before transplanting. Space plants 18-24 inches apart. Harvest when peppers reach desired size and color.",
	},
	{
		ID:        "composting_1",
		SourceTag: "soil_management",
		Text:      "Composting improves soil fertility and structure. Use a mix of green materials (kitchen scraps, grass clippings) and brown materials (leaves, straw). Turn compost regularly to aerate. Finished compost should be dark, crumbly, and earthy-smelling.",
	},
	{
		ID:        "spacing_1",
		SourceTag: "planting_guide",
		Text:      "Proper plant spacing prevents disease spread and competition. Tomatoes need 24-36 inches between plants. Peppers need 18-24 inches. Leafy greens can be closer at 6-12 inches. Check seed packets for specific spacing requirements.",
	},
}
