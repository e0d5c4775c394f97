package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"flight-agent/config"
	"flight-agent/models"
	"flight-agent/utils"

	openai "github.com/sashabaranov/go-openai"
)

const extractionPrompt = `Extract flight details from the user's query.
Identify:
- Origin city
- Destination city
- Departure date (or a flexible date like "next weekend")
- Return date (if mentioned)
- Preferred airline (if mentioned)
- Class of travel (economy, business, first)
- Number of stops (if specified)

Query: "%s"

Respond with a single JSON object with keys: origin, destination, departure_date, return_date, airline, travel_class, stops.
If any value is unknown, use null. Do not include any text outside the JSON object.`

const extractionSystemPrompt = "You are a travel assistant that extracts structured flight search parameters from free text. Return valid JSON only. Use null for fields not found."

// ChatCompleter is the slice of the OpenAI client the extractor needs.
// *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Extractor turns a free-text travel query into a TripRequest with one
// language-model call.
type Extractor struct {
	client  ChatCompleter
	model   string
	timeout time.Duration
	logger  *utils.Logger
}

// NewExtractor creates a new Extractor
func NewExtractor(client ChatCompleter, cfg *config.Config, logger *utils.Logger) *Extractor {
	return &Extractor{
		client:  client,
		model:   cfg.OpenAIModel,
		timeout: cfg.LLMTimeout,
		logger:  logger,
	}
}

// tripPayload mirrors the JSON shape the prompt mandates. Every field is a
// pointer so explicit nulls and absent keys both decode cleanly; the
// basic shape (origin/destination/departure_date/return_date only) just
// leaves the extended fields nil. Stops may arrive as a number or a string
// depending on the model's mood.
type tripPayload struct {
	Origin        *string     `json:"origin"`
	Destination   *string     `json:"destination"`
	DepartureDate *string     `json:"departure_date"`
	ReturnDate    *string     `json:"return_date"`
	Airline       *string     `json:"airline"`
	TravelClass   *string     `json:"travel_class"`
	Stops         interface{} `json:"stops"`
}

// Extract issues one completion request and coerces the response into a
// TripRequest. It makes a single attempt; retry policy belongs to the
// caller.
func (e *Extractor) Extract(ctx context.Context, query string) (*models.TripRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(extractionPrompt, query)},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, &models.ExtractionError{Reason: "model request failed: " + err.Error()}
	}
	if len(resp.Choices) == 0 {
		return nil, &models.ExtractionError{Reason: "empty model response"}
	}

	raw := resp.Choices[0].Message.Content
	e.logger.Debug("Model response: %s", raw)

	block := jsonObject(raw)
	if block == "" {
		return nil, &models.ExtractionError{Reason: "unparseable model output"}
	}

	var payload tripPayload
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil, &models.ExtractionError{Reason: "unparseable model output"}
	}

	trip := &models.TripRequest{
		Origin:        deref(payload.Origin),
		Destination:   deref(payload.Destination),
		DepartureDate: deref(payload.DepartureDate),
		ReturnDate:    deref(payload.ReturnDate),
		Airline:       deref(payload.Airline),
		TravelClass:   normalizeClass(deref(payload.TravelClass)),
		Stops:         coerceStops(payload.Stops),
	}

	// Required fields, checked in a fixed order so the reported field is
	// deterministic when several are missing.
	for _, rf := range []struct{ name, val string }{
		{"origin", trip.Origin},
		{"destination", trip.Destination},
		{"departure_date", trip.DepartureDate},
	} {
		if strings.TrimSpace(rf.val) == "" {
			return nil, &models.ExtractionError{Reason: "missing required field", Field: rf.name}
		}
	}

	e.logger.Info("Extracted trip: %s -> %s, departing %q (return %q)",
		trip.Origin, trip.Destination, trip.DepartureDate, trip.ReturnDate)
	return trip, nil
}

// jsonObject slices the first '{' through the last '}' out of the model's
// text, tolerating code fences and surrounding prose. Returns "" when no
// object is present.
func jsonObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// normalizeClass folds model phrasings onto the travel-class enum.
// Unrecognized values are dropped rather than failed — class is optional.
func normalizeClass(s string) models.TravelClass {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "economy":
		return models.ClassEconomy
	case "business", "business class", "business-class":
		return models.ClassBusiness
	case "first", "first class", "first-class":
		return models.ClassFirst
	}
	return ""
}

func coerceStops(v interface{}) *int {
	switch n := v.(type) {
	case float64:
		stops := int(n)
		return &stops
	case string:
		if stops, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return &stops
		}
	}
	return nil
}
