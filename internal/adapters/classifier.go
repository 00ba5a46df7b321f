// ABOUTME: Boundary for image-based disease classifiers
// ABOUTME: Implementations live outside this module; ErrModelNotFound means no trained model
package adapters

import (
	"context"

	"github.com/harper/agri-advisor/internal/models"
)

// DiseaseClassifier predicts a disease class from a leaf image
type DiseaseClassifier interface {
	ClassifyImage(ctx context.Context, image []byte) (models.DiseasePrediction, error)
}

// DiseaseClassifierFunc adapts a function to DiseaseClassifier
type DiseaseClassifierFunc func(ctx context.Context, image []byte) (models.DiseasePrediction, error)

// ClassifyImage calls f
func (f DiseaseClassifierFunc) ClassifyImage(ctx context.Context, image []byte) (models.DiseasePrediction, error) {
	return f(ctx, image)
}

// WeatherFunc adapts a function to WeatherProvider
type WeatherFunc func(ctx context.Context, location string) (models.WeatherReport, error)

// GetWeather calls f
func (f WeatherFunc) GetWeather(ctx context.Context, location string) (models.WeatherReport, error) {
	return f(ctx, location)
}
