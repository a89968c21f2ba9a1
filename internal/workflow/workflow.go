// Package workflow owns the lifecycle of one scan: selecting a file,
// submitting it for analysis and holding the outcome until the user
// starts over. It is the only writer of the current-state cell; display
// code just reads whatever it exposes.
package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ajaydixit/finsight/config"
	"github.com/ajaydixit/finsight/internal/client"
	"github.com/ajaydixit/finsight/internal/schema"
)

// State of the upload workflow.
type State int

const (
	// Idle means no file has been chosen.
	Idle State = iota
	// FileSelected means a file is chosen but not yet submitted.
	FileSelected
	// Submitting means the one allowed request is in flight.
	Submitting
	// Succeeded means the workflow holds a validated result.
	Succeeded
	// Failed means the workflow holds an error; the selected file is
	// kept so the same file can be resubmitted without re-choosing.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FileSelected:
		return "file selected"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrNoFileSelected rejects a submit with nothing chosen.
	ErrNoFileSelected = errors.New("no file selected")
	// ErrAlreadySubmitting rejects a re-entrant submit; at most one
	// analysis request is in flight at a time.
	ErrAlreadySubmitting = errors.New("an analysis request is already in flight")
)

// TransitionError reports an action attempted from the wrong state.
type TransitionError struct {
	Action string
	From   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Action, e.From)
}

// SelectedFile is the statement export chosen for the next scan.
type SelectedFile struct {
	Name string
	Data []byte
}

// Analyzer performs the single network exchange for one submission.
type Analyzer interface {
	Analyze(ctx context.Context, req client.Request) (*schema.AnalysisResult, error)
}

// Workflow is the state machine governing one scan at a time.
type Workflow struct {
	mu       sync.Mutex
	analyzer Analyzer

	state        State
	file         *SelectedFile
	businessType string
	language     string

	scanID  string
	result  *schema.AnalysisResult
	lastErr error
}

// New returns a workflow in Idle with the given request parameters.
func New(analyzer Analyzer, businessType, language string) *Workflow {
	if businessType == "" {
		businessType = config.DefaultBusinessType
	}
	if language == "" {
		language = config.LanguageEnglish
	}
	return &Workflow{
		analyzer:     analyzer,
		state:        Idle,
		businessType: businessType,
		language:     language,
	}
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// File returns the currently selected file, or nil.
func (w *Workflow) File() *SelectedFile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file
}

// Result returns the held result; non-nil only in Succeeded.
func (w *Workflow) Result() *schema.AnalysisResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// Err returns the held failure; non-nil only in Failed.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// ScanID identifies the current scan attempt. Empty before the first
// submit and after a reset.
func (w *Workflow) ScanID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scanID
}

// Language returns the language the next request will carry.
func (w *Workflow) Language() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.language
}

// BusinessType returns the category the next request will carry.
func (w *Workflow) BusinessType() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.businessType
}

// SetLanguage switches the display language for subsequent requests.
// An in-flight request is unaffected.
func (w *Workflow) SetLanguage(lang string) error {
	if lang != config.LanguageEnglish && lang != config.LanguageHindi {
		return fmt.Errorf("unsupported language %q", lang)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.language = lang
	return nil
}

// SetBusinessType sets the category for subsequent requests.
func (w *Workflow) SetBusinessType(businessType string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if businessType != "" {
		w.businessType = businessType
	}
}

// SelectFile chooses the file for the next scan, replacing any previous
// selection. Valid from Idle and FileSelected.
func (w *Workflow) SelectFile(name string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != Idle && w.state != FileSelected {
		return &TransitionError{Action: "select a file", From: w.state}
	}
	w.file = &SelectedFile{Name: name, Data: data}
	w.state = FileSelected
	return nil
}

// Submit sends the selected file for analysis and blocks until the one
// network exchange resolves. Valid from FileSelected, and from Failed
// as the explicit retry (the failed scan's file is still selected).
// The workflow always lands in exactly one of Succeeded or Failed.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	switch w.state {
	case Submitting:
		w.mu.Unlock()
		return ErrAlreadySubmitting
	case Idle:
		w.mu.Unlock()
		return ErrNoFileSelected
	case FileSelected, Failed:
		if w.file == nil {
			w.mu.Unlock()
			return ErrNoFileSelected
		}
	default:
		st := w.state
		w.mu.Unlock()
		return &TransitionError{Action: "submit", From: st}
	}

	w.state = Submitting
	w.scanID = uuid.NewString()
	w.result = nil
	w.lastErr = nil

	req := client.Request{
		FileName:     w.file.Name,
		File:         bytes.NewReader(w.file.Data),
		BusinessType: w.businessType,
		Language:     w.language,
	}
	w.mu.Unlock()

	// The only suspension point. State stays Submitting for the whole
	// exchange; re-entrant submits are rejected above.
	result, err := w.analyzer.Analyze(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		// Keep the selected file so the same file can be resubmitted.
		w.state = Failed
		w.lastErr = err
		return err
	}
	w.state = Succeeded
	w.result = result
	w.file = nil
	return nil
}

// Reset discards the held result or error and returns to Idle. Valid
// from Succeeded and Failed.
func (w *Workflow) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != Succeeded && w.state != Failed {
		return &TransitionError{Action: "reset", From: w.state}
	}
	w.state = Idle
	w.file = nil
	w.result = nil
	w.lastErr = nil
	w.scanID = ""
	return nil
}
