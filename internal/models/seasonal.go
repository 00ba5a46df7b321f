// ABOUTME: Seasonal recommendation bucket types
package models

// Season is one of the four calendar buckets
type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

// SeasonalRecommendation is the fixed guidance for a season
type SeasonalRecommendation struct {
	Season         Season   `json:"season"`
	Recommendation string   `json:"recommendation"`
	SuitableCrops  []string `json:"suitable_crops"`
	Activities     []string `json:"activities"`
}
