package metrics

import "time"

// ResultLabel enumerates page render outcomes for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel enumerates whole-site build outcomes.
type BuildOutcomeLabel string

const (
	BuildSuccess  BuildOutcomeLabel = "success"
	BuildFailed   BuildOutcomeLabel = "failed"
	BuildCanceled BuildOutcomeLabel = "canceled"
)

// Page kinds used as the "kind" label.
const (
	KindSheet = "sheet"
	KindIndex = "index"
	KindPDF   = "pdf"
)

// Recorder defines observability hooks for page renders and site builds.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObservePageDuration(kind string, d time.Duration)
	IncPageResult(kind string, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	SetDocuments(n int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObservePageDuration(string, time.Duration)  {}
func (NoopRecorder) IncPageResult(string, ResultLabel)          {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) SetDocuments(int)                           {}

var _ Recorder = NoopRecorder{}
