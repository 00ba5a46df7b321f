// ABOUTME: Comprehensive advisory combining weather, disease, knowledge and seasonal guidance
// ABOUTME: Independent sources are gathered concurrently and each degrades on its own
package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/harper/agri-advisor/internal/adapters"
	"github.com/harper/agri-advisor/internal/models"
)

// Comprehensive gathers every applicable source for a structured request
func (a *Aggregator) Comprehensive(ctx context.Context, req models.AdvisoryRequest) (models.ComprehensiveAdvisory, error) {
	month := req.Month
	if month == 0 {
		month = int(a.now().Month())
	}
	seasonal, err := SeasonalGuide(month)
	if err != nil {
		return models.ComprehensiveAdvisory{}, err
	}

	location := strings.TrimSpace(req.Location)
	crop := strings.TrimSpace(req.CropType)
	disease := strings.TrimSpace(req.DetectedDisease)
	query := strings.TrimSpace(req.Query)

	out := models.ComprehensiveAdvisory{Seasonal: seasonal}

	if disease != "" {
		out.DiseaseAdvice = &models.DiseaseAdvice{
			Disease:   disease,
			Treatment: a.treatments.Lookup(disease),
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if location != "" {
		g.Go(func() error {
			if report, ok := a.fetchWeather(gctx, location); ok {
				out.WeatherAdvice = report.ToAdvice()
			}
			return nil
		})
	}

	if query != "" || crop != "" {
		searchQuery := query
		if searchQuery == "" {
			searchQuery = fmt.Sprintf("Best practices for growing %s", crop)
		}
		g.Go(func() error {
			out.KnowledgeAdvice = a.gatherKnowledge(gctx, searchQuery)
			return nil
		})
	}

	if disease == "" && len(req.Image) > 0 && a.diseases != nil {
		g.Go(func() error {
			out.DiseaseAdvice = a.diagnose(gctx, req.Image)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return models.ComprehensiveAdvisory{}, err
	}

	out.ComprehensiveAdvice = composeComprehensive(out)
	return out, nil
}

// SeasonalNow returns the recommendation for the current month
func (a *Aggregator) SeasonalNow() models.SeasonalRecommendation {
	return guideFor(SeasonFor(a.now().Month()))
}

func (a *Aggregator) gatherKnowledge(ctx context.Context, query string) *models.KnowledgeAdvice {
	if a.retriever == nil {
		return nil
	}
	res := adapters.Fetch(ctx, a.retrievalTimeout, func(ctx context.Context) ([]string, error) {
		return a.retriever.Query(ctx, query, a.topK)
	})
	if !res.OK() {
		a.logger.Warn("knowledge retrieval degraded", zap.String("query", query), zap.Error(res.Err))
		return nil
	}
	return &models.KnowledgeAdvice{Query: query, Results: res.Value}
}

func (a *Aggregator) diagnose(ctx context.Context, image []byte) *models.DiseaseAdvice {
	res := adapters.Fetch(ctx, a.classifyTimeout, func(ctx context.Context) (models.DiseasePrediction, error) {
		return a.diseases.ClassifyImage(ctx, image)
	})
	if !res.OK() {
		a.logger.Warn("disease classifier degraded", zap.Error(res.Err))
		return nil
	}
	pred := res.Value
	return &models.DiseaseAdvice{
		Disease:    pred.PredictedClass,
		Treatment:  a.treatments.ForPrediction(pred.PredictedClass),
		Prediction: &pred,
	}
}

// composeComprehensive joins the non-empty segments in fixed order
func composeComprehensive(adv models.ComprehensiveAdvisory) string {
	parts := make([]string, 0, 4)

	if adv.WeatherAdvice != nil && adv.WeatherAdvice.Advice != "" {
		parts = append(parts, "Weather: "+adv.WeatherAdvice.Advice)
	}
	if adv.DiseaseAdvice != nil && adv.DiseaseAdvice.Treatment.General != "" {
		parts = append(parts, "Disease Management: "+adv.DiseaseAdvice.Treatment.General)
	}
	if adv.KnowledgeAdvice != nil && len(adv.KnowledgeAdvice.Results) > 0 {
		parts = append(parts, "Best Practices: "+adv.KnowledgeAdvice.Results[0])
	}
	if adv.Seasonal.Recommendation != "" {
		parts = append(parts, "Seasonal: "+adv.Seasonal.Recommendation)
	}

	if len(parts) == 0 {
		return GenericComprehensiveAdvice
	}
	return strings.Join(parts, " ")
}
