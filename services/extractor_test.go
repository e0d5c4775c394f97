package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"flight-agent/config"
	"flight-agent/models"
	"flight-agent/utils"

	openai "github.com/sashabaranov/go-openai"
)

type fakeCompleter struct {
	content string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{OpenAIModel: "gpt-3.5-turbo", LLMTimeout: time.Second}
}

func newTestExtractor(content string, err error) (*Extractor, *fakeCompleter) {
	fake := &fakeCompleter{content: content, err: err}
	return NewExtractor(fake, testConfig(), utils.NewLogger()), fake
}

func TestExtractFullResponse(t *testing.T) {
	t.Parallel()

	e, fake := newTestExtractor(`{
		"origin": "New York",
		"destination": "London",
		"departure_date": "next weekend",
		"return_date": null,
		"airline": "Emirates",
		"travel_class": "business",
		"stops": 1
	}`, nil)

	trip, err := e.Extract(context.Background(), "cheapest business-class flight from New York to London next weekend on Emirates with one stop")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if trip.Origin != "New York" || trip.Destination != "London" {
		t.Fatalf("route = %s -> %s, want New York -> London", trip.Origin, trip.Destination)
	}
	if trip.DepartureDate != "next weekend" || trip.ReturnDate != "" {
		t.Fatalf("dates = %q / %q", trip.DepartureDate, trip.ReturnDate)
	}
	if trip.Airline != "Emirates" || trip.TravelClass != models.ClassBusiness {
		t.Fatalf("preferences = %q / %q", trip.Airline, trip.TravelClass)
	}
	if trip.Stops == nil || *trip.Stops != 1 {
		t.Fatalf("stops = %v, want 1", trip.Stops)
	}
	if fake.lastReq.Model != "gpt-3.5-turbo" {
		t.Fatalf("model = %q", fake.lastReq.Model)
	}
	if !strings.Contains(fake.lastReq.Messages[1].Content, "New York to London") {
		t.Fatal("prompt does not contain the query text")
	}
}

func TestExtractBasicShape(t *testing.T) {
	t.Parallel()

	// The minimal response shape has no extended keys at all.
	e, _ := newTestExtractor(`{"origin":"London","destination":"Dubai","departure_date":"April","return_date":null}`, nil)

	trip, err := e.Extract(context.Background(), "Find me the cheapest flight from London to Dubai in April")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if trip.Origin != "London" || trip.Destination != "Dubai" || trip.DepartureDate != "April" {
		t.Fatalf("unexpected trip: %+v", trip)
	}
	if trip.Airline != "" || trip.TravelClass != "" || trip.Stops != nil {
		t.Fatalf("extended fields should be empty: %+v", trip)
	}
}

func TestExtractToleratesCodeFences(t *testing.T) {
	t.Parallel()

	e, _ := newTestExtractor("Here you go:\n```json\n{\"origin\":\"Paris\",\"destination\":\"Rome\",\"departure_date\":\"May 3\"}\n```", nil)

	trip, err := e.Extract(context.Background(), "flight from Paris to Rome on May 3")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if trip.Destination != "Rome" {
		t.Fatalf("destination = %q", trip.Destination)
	}
}

func TestExtractUnparseableOutput(t *testing.T) {
	t.Parallel()

	e, _ := newTestExtractor("Sure! The origin is London and the destination is Dubai.", nil)

	_, err := e.Extract(context.Background(), "whatever")
	var extractErr *models.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extractErr.Reason != "unparseable model output" {
		t.Fatalf("reason = %q", extractErr.Reason)
	}
}

func TestExtractMissingRequiredField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		field   string
	}{
		{
			name:    "null departure date",
			content: `{"origin":"London","destination":"Dubai","departure_date":null}`,
			field:   "departure_date",
		},
		{
			name:    "absent origin",
			content: `{"destination":"Dubai","departure_date":"April"}`,
			field:   "origin",
		},
		{
			name:    "whitespace destination",
			content: `{"origin":"London","destination":"  ","departure_date":"April"}`,
			field:   "destination",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e, _ := newTestExtractor(tc.content, nil)
			_, err := e.Extract(context.Background(), "some query")
			var extractErr *models.ExtractionError
			if !errors.As(err, &extractErr) {
				t.Fatalf("expected ExtractionError, got %v", err)
			}
			if extractErr.Reason != "missing required field" || extractErr.Field != tc.field {
				t.Fatalf("got reason=%q field=%q, want field %q", extractErr.Reason, extractErr.Field, tc.field)
			}
		})
	}
}

func TestExtractClassAndStopsCoercion(t *testing.T) {
	t.Parallel()

	e, _ := newTestExtractor(`{"origin":"A","destination":"B","departure_date":"June","travel_class":"First Class","stops":"2"}`, nil)

	trip, err := e.Extract(context.Background(), "q")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if trip.TravelClass != models.ClassFirst {
		t.Fatalf("class = %q, want first", trip.TravelClass)
	}
	if trip.Stops == nil || *trip.Stops != 2 {
		t.Fatalf("stops = %v, want 2", trip.Stops)
	}
}

func TestExtractUnknownClassDropped(t *testing.T) {
	t.Parallel()

	e, _ := newTestExtractor(`{"origin":"A","destination":"B","departure_date":"June","travel_class":"premium plus"}`, nil)

	trip, err := e.Extract(context.Background(), "q")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if trip.TravelClass != "" {
		t.Fatalf("class = %q, want empty", trip.TravelClass)
	}
}

func TestExtractRequestError(t *testing.T) {
	t.Parallel()

	e, _ := newTestExtractor("", errors.New("connection refused"))

	_, err := e.Extract(context.Background(), "q")
	var extractErr *models.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if !strings.Contains(extractErr.Reason, "model request failed") {
		t.Fatalf("reason = %q", extractErr.Reason)
	}
}
