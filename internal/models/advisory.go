// ABOUTME: Request and response shapes for chat and comprehensive advisories
// ABOUTME: AdvisoryContext lives for one call and is never persisted
package models

// AdvisoryContext is the per-request input to a chat advisory
type AdvisoryContext struct {
	Location        string `json:"location,omitempty"`
	CropType        string `json:"crop_type,omitempty"`
	DetectedDisease string `json:"detected_disease,omitempty"`
	RawMessage      string `json:"message"`
}

// ResponseMetadata describes how a chat advisory was assembled
type ResponseMetadata struct {
	Intent          string `json:"intent"`
	RetrievalCount  int    `json:"retrieval_count"`
	UsedFallback    bool   `json:"used_fallback"`
	WeatherAttached bool   `json:"weather_attached"`
}

// AdvisoryResponse is the composed chat reply
type AdvisoryResponse struct {
	Text     string           `json:"response"`
	Metadata ResponseMetadata `json:"metadata"`
}

// AdvisoryRequest is the structured input for a comprehensive advisory.
// Month 0 means the current month.
type AdvisoryRequest struct {
	Location        string `json:"location,omitempty"`
	CropType        string `json:"crop_type,omitempty"`
	DetectedDisease string `json:"detected_disease,omitempty"`
	Query           string `json:"query,omitempty"`
	Image           []byte `json:"-"`
	Month           int    `json:"month,omitempty"`
}

// WeatherAdvice is the weather part of a comprehensive advisory
type WeatherAdvice struct {
	Location       string  `json:"location"`
	Temperature    float64 `json:"temperature"`
	Humidity       int     `json:"humidity"`
	Description    string  `json:"description"`
	RainPrediction string  `json:"rain_prediction"`
	Advice         string  `json:"advice"`
}

// DiseaseAdvice is the disease part of a comprehensive advisory
type DiseaseAdvice struct {
	Disease    string             `json:"disease"`
	Treatment  Treatment          `json:"treatment"`
	Prediction *DiseasePrediction `json:"prediction,omitempty"`
}

// KnowledgeAdvice is the retrieval part of a comprehensive advisory
type KnowledgeAdvice struct {
	Query   string   `json:"query"`
	Results []string `json:"results"`
}

// ComprehensiveAdvisory gathers every source plus the combined advice string
type ComprehensiveAdvisory struct {
	WeatherAdvice       *WeatherAdvice         `json:"weather_advice,omitempty"`
	DiseaseAdvice       *DiseaseAdvice         `json:"disease_advice,omitempty"`
	KnowledgeAdvice     *KnowledgeAdvice       `json:"knowledge_advice,omitempty"`
	Seasonal            SeasonalRecommendation `json:"seasonal_advice"`
	ComprehensiveAdvice string                 `json:"comprehensive_advice"`
}
