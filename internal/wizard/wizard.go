// Package wizard implements the upload → preview → signing → done state
// machine that drives the signing portal's client flow. The Wizard owns the
// state; the presentation layer only reads derived flags and dispatches
// events.
package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/inkstamp/sign-portal/internal/signclient"
	"github.com/inkstamp/sign-portal/internal/validate"
)

var (
	// ErrBusy is returned when an event arrives while an operation is in
	// flight. Concurrent events are rejected, never queued.
	ErrBusy = errors.New("wizard: operation in flight")

	// ErrInvalidTransition is returned for events the current step does not
	// accept.
	ErrInvalidTransition = errors.New("wizard: invalid transition")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("wizard: closed")
)

// Validator decides whether a selected file may enter preview.
type Validator interface {
	Validate(mediaType string, size int64, data []byte) validate.Outcome
}

// Signer performs one signing attempt against the remote service.
type Signer interface {
	Sign(ctx context.Context, name string, data []byte) signclient.Result
}

// Notifier delivers fire-and-forget user notifications.
type Notifier interface {
	Notify(severity Severity, message string)
}

// PreviewProvider creates and revokes opaque preview handles. Every handle
// the wizard creates is released exactly once.
type PreviewProvider interface {
	CreateHandle(data []byte) string
	ReleaseHandle(url string)
}

// HistorySink records completed signing results. The sink owns the handle it
// is given and is responsible for releasing it.
type HistorySink interface {
	Record(name string, signedAt time.Time, handle string)
}

// Wizard is the finite-state controller. All methods are safe for
// concurrent use; the busy guard serializes validate→sign sequences.
type Wizard struct {
	mu sync.Mutex

	validator Validator
	signer    Signer
	notifier  Notifier
	previews  PreviewProvider
	history   HistorySink

	st     State
	closed bool
}

// New wires a Wizard with its collaborators. notifier and history may be nil.
func New(validator Validator, signer Signer, previews PreviewProvider, notifier Notifier, history HistorySink) *Wizard {
	return &Wizard{
		validator: validator,
		signer:    signer,
		previews:  previews,
		notifier:  notifier,
		history:   history,
		st:        State{Step: StepUpload},
	}
}

// State returns a copy of the current state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	st := w.st
	if w.st.Doc != nil {
		doc := *w.st.Doc
		st.Doc = &doc
	}
	return st
}

// SelectFile handles a single file selection at any step. Any prior
// document and derived handles are discarded before the new file is
// validated, so stale handles cannot leak across selections.
func (w *Wizard) SelectFile(doc Document) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.st.Busy {
		return ErrBusy
	}

	w.resetLocked()

	outcome := w.validator.Validate(doc.MediaType, doc.Size, doc.Data)
	if !outcome.Accepted {
		w.notify(SeverityError, rejectionMessage(outcome))
		return nil
	}

	d := doc
	w.st.Doc = &d
	w.st.PreviewURL = w.previews.CreateHandle(d.Data)
	w.st.Step = StepPreview
	w.st.Message = ""
	return nil
}

// SelectFiles handles a drop selection. Anything other than exactly one
// file yields the generic not-supported message; a single file follows the
// normal selection path.
func (w *Wizard) SelectFiles(docs []Document) error {
	if len(docs) == 1 {
		return w.SelectFile(docs[0])
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if w.st.Busy {
		return ErrBusy
	}
	w.notify(SeverityError, "file type or size not supported")
	return nil
}

// RequestSign submits the previewed document to the signing service. The
// call blocks until the attempt resolves; meanwhile the wizard reports
// Signing and busy, and every other event is rejected. The busy flag is
// cleared on every exit path.
func (w *Wizard) RequestSign(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.st.Busy {
		w.mu.Unlock()
		return ErrBusy
	}
	if w.st.Step != StepPreview || w.st.Doc == nil {
		w.mu.Unlock()
		return ErrInvalidTransition
	}
	doc := w.st.Doc
	w.st.Busy = true
	w.st.Step = StepSigning
	w.mu.Unlock()

	res := w.signer.Sign(ctx, doc.Name, doc.Data)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.st.Busy = false
	if w.closed {
		// Torn down while the request was in flight; nothing to apply.
		return nil
	}

	if !res.Signed {
		w.st.Step = StepPreview
		w.notify(SeverityError, "signing failed: "+res.Message)
		return nil
	}

	w.st.SignedURL = w.previews.CreateHandle(res.Bytes)
	w.st.Step = StepDone
	if w.history != nil {
		// The history entry gets its own handle; the sink releases it.
		w.history.Record(doc.Name, time.Now(), w.previews.CreateHandle(res.Bytes))
	}
	w.notify(SeveritySuccess, "document signed successfully")
	return nil
}

// Back navigates one step backwards: Preview→Upload (discarding the
// document), Signing→Preview, Done→Signing (releasing the signed handle,
// keeping the document). Blocked while busy.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.st.Busy {
		return ErrBusy
	}

	switch w.st.Step {
	case StepPreview:
		w.resetLocked()
	case StepSigning:
		w.st.Step = StepPreview
	case StepDone:
		w.previews.ReleaseHandle(w.st.SignedURL)
		w.st.SignedURL = ""
		w.st.Step = StepSigning
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Reset discards the document and all derived handles and returns to
// Upload. Calling it repeatedly is idempotent.
func (w *Wizard) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.st.Busy {
		return ErrBusy
	}
	w.resetLocked()
	return nil
}

// NewUpload starts over after completion. Identical to Reset; named for the
// Done-step affordance.
func (w *Wizard) NewUpload() error {
	return w.Reset()
}

// ActivateStep handles a click on a step indicator. Only already-completed
// steps can be re-entered, and only before Done; activating step zero is a
// full reset. Clicks on the current or a future step, or any click while
// Done, are no-ops.
func (w *Wizard) ActivateStep(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.st.Busy {
		return ErrBusy
	}
	if w.st.Step == StepDone {
		// Once finished the only forward action is starting over.
		return nil
	}

	target := Step(index)
	if target < StepUpload || target >= w.st.Step {
		return nil
	}
	if target == StepUpload {
		w.resetLocked()
		return nil
	}
	w.st.Step = target
	return nil
}

// Close releases all held handles. The component-teardown counterpart of the
// per-transition release paths.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.resetLocked()
	w.closed = true
}

func (w *Wizard) resetLocked() {
	if w.st.PreviewURL != "" {
		w.previews.ReleaseHandle(w.st.PreviewURL)
	}
	if w.st.SignedURL != "" {
		w.previews.ReleaseHandle(w.st.SignedURL)
	}
	w.st = State{Step: StepUpload}
}

func (w *Wizard) notify(severity Severity, message string) {
	w.st.Message = message
	if w.notifier != nil {
		w.notifier.Notify(severity, message)
	}
}

func rejectionMessage(o validate.Outcome) string {
	switch o.Reason {
	case validate.ReasonNotPDF:
		return "file type not supported: only PDF documents can be signed"
	case validate.ReasonTooLarge:
		return "file exceeds the 10 MiB size limit"
	case validate.ReasonEncrypted:
		return "document is encrypted or password protected"
	case validate.ReasonUnreadable:
		if o.Detail != "" {
			return "file could not be read as a PDF: " + o.Detail
		}
		return "file could not be read as a PDF"
	default:
		return "file type or size not supported"
	}
}
