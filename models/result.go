package models

import "fmt"

// FailureKind classifies terminal pipeline failures.
type FailureKind string

const (
	FailureExtraction FailureKind = "extraction"
	FailureRender     FailureKind = "render"
	FailureFatal      FailureKind = "fatal"
)

// Status is the tag of a PipelineResult.
type Status string

const (
	StatusSuccess Status = "success"
	StatusEmpty   Status = "empty"
	StatusFailure Status = "failure"
)

// PipelineResult is the single terminal outcome of one pipeline run.
// Exactly one of the three statuses applies: Success carries Selected,
// Empty carries Reason, Failure carries Kind and Err. Trip and Offers are
// filled as far as the run got, for reporting and recording.
type PipelineResult struct {
	Status   Status
	Selected *SelectedOffer
	Reason   string
	Kind     FailureKind
	Err      error

	Trip     *TripRequest
	Listings []RawListing
	Offers   []NormalizedOffer
}

// Succeeded reports whether the run produced an offer.
func (r PipelineResult) Succeeded() bool { return r.Status == StatusSuccess }

// ExtractionError reports that the language model's output could not be
// turned into a valid TripRequest.
type ExtractionError struct {
	Reason string
	Field  string // set when Reason is "missing required field"
}

func (e *ExtractionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("extraction failed: %s: %s", e.Reason, e.Field)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

// RenderErrorKind distinguishes browser failure modes.
type RenderErrorKind string

const (
	RenderTimeout    RenderErrorKind = "timeout"
	RenderLaunch     RenderErrorKind = "launch"
	RenderNavigation RenderErrorKind = "navigation"
)

// RenderError reports that the browser session could not produce a
// rendered page. Launch errors mean the environment is broken (no Chrome,
// allocator failure); timeouts mean this particular navigation gave up.
type RenderError struct {
	Kind RenderErrorKind
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed (%s): %v", e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
