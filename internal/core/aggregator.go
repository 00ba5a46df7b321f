// ABOUTME: Advisory aggregator composing chat replies from intent, retrieval and weather
// ABOUTME: Source failures degrade their contribution; only empty input fails a request
package core

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"

	"github.com/harper/agri-advisor/internal/adapters"
	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/util"
)

// Default per-source timeouts
const (
	DefaultWeatherTimeout   = 5 * time.Second
	DefaultRetrievalTimeout = 30 * time.Second
	DefaultClassifyTimeout  = 10 * time.Second
)

// Retriever returns the texts of the passages most similar to query
type Retriever interface {
	Query(ctx context.Context, query string, topK int) ([]string, error)
}

// Aggregator is safe for concurrent use once constructed
type Aggregator struct {
	retriever  Retriever
	weather    adapters.WeatherProvider
	treatments *adapters.TreatmentTable
	diseases   adapters.DiseaseClassifier
	classifier *IntentClassifier
	logger     *zap.Logger
	pick       func(n int) int
	now        func() time.Time

	topK             int
	weatherTimeout   time.Duration
	retrievalTimeout time.Duration
	classifyTimeout  time.Duration
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithWeather sets the weather source
func WithWeather(p adapters.WeatherProvider) Option {
	return func(a *Aggregator) { a.weather = p }
}

// WithTreatments sets the disease treatment table
func WithTreatments(t *adapters.TreatmentTable) Option {
	return func(a *Aggregator) {
		if t != nil {
			a.treatments = t
		}
	}
}

// WithDiseaseClassifier sets the image classifier used by comprehensive advisories
func WithDiseaseClassifier(c adapters.DiseaseClassifier) Option {
	return func(a *Aggregator) { a.diseases = c }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRandom sets the source used to pick among equivalent replies; pick(n) returns [0,n)
func WithRandom(pick func(n int) int) Option {
	return func(a *Aggregator) {
		if pick != nil {
			a.pick = pick
		}
	}
}

// WithClock sets the clock used for the current month
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithTopK sets how many passages chat replies retrieve
func WithTopK(k int) Option {
	return func(a *Aggregator) { a.topK = models.NormalizeTopK(k) }
}

// WithWeatherTimeout bounds each weather lookup
func WithWeatherTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.weatherTimeout = d
		}
	}
}

// WithRetrievalTimeout bounds each knowledge query
func WithRetrievalTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.retrievalTimeout = d
		}
	}
}

// WithClassifyTimeout bounds each image classification
func WithClassifyTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.classifyTimeout = d
		}
	}
}

// NewAggregator builds an aggregator over retriever; a nil retriever always yields fallbacks
func NewAggregator(retriever Retriever, opts ...Option) *Aggregator {
	a := &Aggregator{
		retriever:        retriever,
		treatments:       adapters.NewTreatmentTable(nil),
		classifier:       NewIntentClassifier(),
		logger:           zap.NewNop(),
		pick:             rand.IntN,
		now:              time.Now,
		topK:             models.DefaultTopK,
		weatherTimeout:   DefaultWeatherTimeout,
		retrievalTimeout: DefaultRetrievalTimeout,
		classifyTimeout:  DefaultClassifyTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Classify exposes the intent classifier
func (a *Aggregator) Classify(utterance string) models.Intent {
	return a.classifier.Classify(utterance)
}

// Respond composes a chat reply for one message
func (a *Aggregator) Respond(ctx context.Context, req models.AdvisoryContext) (models.AdvisoryResponse, error) {
	message := strings.TrimSpace(req.RawMessage)
	if message == "" {
		return models.AdvisoryResponse{}, goerr.Wrap(models.ErrEmptyInput, "chat message is empty")
	}

	intent := a.classifier.Classify(message)
	meta := models.ResponseMetadata{Intent: intent.String()}

	if intent.IsConversational() {
		return models.AdvisoryResponse{
			Text:     conversationalReply(intent.Category, a.pick),
			Metadata: meta,
		}, nil
	}

	results := a.retrieve(ctx, RetrievalQuery(req))
	meta.RetrievalCount = len(results)

	var body string
	if len(results) > 0 {
		body = composeRetrieved(intent, results)
	} else {
		body = fallbackFor(intent, req.CropType)
		meta.UsedFallback = true
	}

	if location := strings.TrimSpace(req.Location); location != "" {
		if block, ok := a.weatherContext(ctx, location); ok {
			body += block
			meta.WeatherAttached = true
		}
	}

	body += closingTip

	a.logger.Debug("composed advisory",
		zap.String("intent", meta.Intent),
		zap.Int("retrieved", meta.RetrievalCount),
		zap.Bool("fallback", meta.UsedFallback),
		zap.Bool("weather", meta.WeatherAttached))

	return models.AdvisoryResponse{Text: body, Metadata: meta}, nil
}

// RetrievalQuery is the text a chat reply retrieves with: the message, followed by
// the declared crop when the message does not name it and the diagnosed disease
func RetrievalQuery(req models.AdvisoryContext) string {
	query := strings.TrimSpace(req.RawMessage)
	if crop := strings.TrimSpace(req.CropType); crop != "" &&
		!strings.Contains(strings.ToLower(query), strings.ToLower(crop)) {
		query += " " + crop
	}
	if disease := strings.TrimSpace(req.DetectedDisease); disease != "" {
		query += " " + strings.Join(strings.Fields(strings.ReplaceAll(disease, "_", " ")), " ")
	}
	return query
}

// retrieve queries the knowledge source; any failure counts as no results
func (a *Aggregator) retrieve(ctx context.Context, query string) []string {
	if a.retriever == nil {
		return nil
	}
	res := adapters.Fetch(ctx, a.retrievalTimeout, func(ctx context.Context) ([]string, error) {
		return a.retriever.Query(ctx, query, a.topK)
	})
	if !res.OK() {
		a.logger.Warn("knowledge retrieval degraded", zap.Error(res.Err))
		return nil
	}
	return res.Value
}

// weatherContext fetches the weather block appended to chat replies
func (a *Aggregator) weatherContext(ctx context.Context, location string) (string, bool) {
	report, ok := a.fetchWeather(ctx, location)
	if !ok {
		return "", false
	}

	var b strings.Builder
	b.WriteString("\n\n--- Weather Context for ")
	b.WriteString(location)
	b.WriteString(" ---\n")
	b.WriteString("Current conditions: ")
	b.WriteString(formatTemperature(report.Temperature))
	b.WriteString("°C, ")
	b.WriteString(report.Description)
	b.WriteString("\nWeather advice: ")
	b.WriteString(report.Advice)
	return b.String(), true
}

func (a *Aggregator) fetchWeather(ctx context.Context, location string) (models.WeatherReport, bool) {
	if a.weather == nil {
		return models.WeatherReport{}, false
	}
	res := adapters.Fetch(ctx, a.weatherTimeout, func(ctx context.Context) (models.WeatherReport, error) {
		return a.weather.GetWeather(ctx, location)
	})
	if !res.OK() {
		a.logger.Warn("weather source degraded",
			zap.String("location", location),
			zap.Bool("timeout", res.TimedOut()),
			zap.Error(res.Err))
		return models.WeatherReport{}, false
	}
	return res.Value, true
}

// composeRetrieved presents retrieved passages for the intent
func composeRetrieved(intent models.Intent, results []string) string {
	tmpl, ok := templateFor(intent)
	if !ok {
		parts := make([]string, 0, len(generalLeadIns))
		for i, r := range results {
			if i >= len(generalLeadIns) {
				break
			}
			if i == 0 {
				parts = append(parts, generalLeadIns[i]+"\n\n"+r)
				continue
			}
			parts = append(parts, "\n\n"+generalLeadIns[i]+"\n"+r)
		}
		return strings.Join(parts, "\n")
	}

	parts := []string{tmpl.leadIn + "\n\n" + results[0]}
	if len(results) > 1 && relevant(results[1], tmpl.relevance) {
		parts = append(parts, "\n\n"+tmpl.extraHeader+"\n"+results[1])
	}
	return strings.Join(parts, "\n")
}

// relevant reports whether text mentions any of the keyword stems
func relevant(text string, stems []string) bool {
	lower := strings.ToLower(text)
	for _, s := range stems {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// fallbackFor picks the fixed advice; general questions from a grower who declared a crop get crop tips
func fallbackFor(intent models.Intent, declaredCrop string) string {
	if intent.Category == models.IntentGeneral {
		if crop := DetectCrop(util.Tokenize(declaredCrop)); crop != models.CropNone {
			return FallbackText(models.Intent{Category: models.IntentTopicCropSpecific, Crop: crop})
		}
	}
	return FallbackText(intent)
}

func formatTemperature(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
