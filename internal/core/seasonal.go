// ABOUTME: Month-based seasonal planting and management guidance
// ABOUTME: Pure functions over four fixed northern-hemisphere buckets
package core

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/harper/agri-advisor/internal/models"
)

var seasonalGuides = map[models.Season]models.SeasonalRecommendation{
	models.SeasonWinter: {
		Season:         models.SeasonWinter,
		Recommendation: "Focus on planning, soil preparation, and greenhouse crops. Protect sensitive plants from frost.",
		SuitableCrops:  []string{"Lettuce", "Spinach", "Carrots", "Cabbage", "Broccoli"},
		Activities:     []string{"Soil testing", "Planning next season", "Greenhouse maintenance", "Tool maintenance"},
	},
	models.SeasonSpring: {
		Season:         models.SeasonSpring,
		Recommendation: "Ideal time for planting most crops. Prepare soil, start seedlings, and begin main planting season.",
		SuitableCrops:  []string{"Tomatoes", "Peppers", "Corn", "Beans", "Squash", "Cucumbers"},
		Activities:     []string{"Soil preparation", "Planting", "Fertilization", "Irrigation setup"},
	},
	models.SeasonSummer: {
		Season:         models.SeasonSummer,
		Recommendation: "Maintain irrigation, monitor for pests and diseases, and harvest early crops. Provide shade for sensitive plants.",
		SuitableCrops:  []string{"Tomatoes", "Peppers", "Corn", "Okra", "Eggplant"},
		Activities:     []string{"Regular watering", "Pest monitoring", "Disease control", "Harvesting"},
	},
	models.SeasonFall: {
		Season:         models.SeasonFall,
		Recommendation: "Harvest season. Plant cool-season crops. Prepare for winter. Collect seeds for next year.",
		SuitableCrops:  []string{"Lettuce", "Spinach", "Radishes", "Carrots", "Beets"},
		Activities:     []string{"Harvesting", "Planting cool-season crops", "Soil preparation", "Composting"},
	},
}

// SeasonFor maps a calendar month to its season
func SeasonFor(month time.Month) models.Season {
	switch month {
	case time.December, time.January, time.February:
		return models.SeasonWinter
	case time.March, time.April, time.May:
		return models.SeasonSpring
	case time.June, time.July, time.August:
		return models.SeasonSummer
	}
	return models.SeasonFall
}

// SeasonalGuide returns the recommendation for month 1-12
func SeasonalGuide(month int) (models.SeasonalRecommendation, error) {
	if month < 1 || month > 12 {
		return models.SeasonalRecommendation{}, goerr.Wrap(models.ErrValidation, "month must be 1-12", goerr.V("month", month))
	}
	return guideFor(SeasonFor(time.Month(month))), nil
}

// guideFor returns a copy so callers cannot mutate the shared lists
func guideFor(season models.Season) models.SeasonalRecommendation {
	rec := seasonalGuides[season]
	rec.SuitableCrops = append([]string(nil), rec.SuitableCrops...)
	rec.Activities = append([]string(nil), rec.Activities...)
	return rec
}
