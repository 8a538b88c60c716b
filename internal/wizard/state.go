package wizard

// Step is a stage of the upload wizard.
type Step int

const (
	StepUpload Step = iota
	StepPreview
	StepSigning
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepPreview:
		return "preview"
	case StepSigning:
		return "signing"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// Document is the in-memory representation of the currently selected PDF
// and its declared metadata. Replaced wholesale on any new selection.
type Document struct {
	Name      string
	MediaType string
	Size      int64
	Data      []byte
}

// State is the single source of truth the presentation layer reads. The
// wizard hands out copies only.
type State struct {
	Step       Step
	Doc        *Document
	PreviewURL string
	SignedURL  string
	Busy       bool
	Message    string
}

// CurrentStepIndex returns the zero-based step index.
func (s State) CurrentStepIndex() int {
	return int(s.Step)
}

// IsBusy reports whether a validate or sign operation is in flight.
func (s State) IsBusy() bool {
	return s.Busy
}

// CanGoBack reports whether backward navigation is currently allowed.
func (s State) CanGoBack() bool {
	return s.Step > StepUpload && !s.Busy
}

// Severity grades a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)
