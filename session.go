package srcpatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// ErrNoSource is reported when a save runs before, or after a failed,
// source load.
var ErrNoSource = errors.New("source buffer unavailable")

// SourceFunc obtains the original textual source of the page.
type SourceFunc func(ctx context.Context) (string, error)

// Session is one enable/disable cycle. Its baselines are the ground truth
// every save in the cycle diffs against.
type Session struct {
	ID string

	doc        *html.Node
	classifier *Classifier
	baselines  *baselines
	active     bool
}

// NewSession returns an inactive session over doc.
func NewSession(doc *html.Node, c *Classifier) *Session {
	return &Session{
		ID:         uuid.NewString(),
		doc:        doc,
		classifier: c,
		baselines:  newBaselines(),
	}
}

// Start classifies the document and snapshots every target that has no
// baseline yet. Calling it again while active picks up new targets only.
// It returns the number of baselines held.
func (s *Session) Start() int {
	s.baselines.snapshot(s.classifier.Targets(s.doc))
	s.active = true
	return s.baselines.len()
}

// End drops every baseline so the next session starts from fresh ground truth.
func (s *Session) End() {
	s.baselines.clear()
	s.active = false
}

// Active reports whether the session has started and not ended.
func (s *Session) Active() bool {
	return s.active
}

// Collect returns the session's edits in document order.
func (s *Session) Collect() []Edit {
	return collect(s.doc, s.classifier, s.baselines)
}

// SaveResult is everything one save attempt produced.
type SaveResult struct {
	Decision  Decision
	Edits     []Edit
	Patch     *PatchResult // nil when the source was unavailable
	Conflicts []Conflict
}

// Editor is the engine instance for one page. It owns the page's source
// buffer for its whole lifetime and at most one active Session.
type Editor struct {
	cfg        Config
	doc        *html.Node
	classifier *Classifier
	patcher    *Patcher
	log        *slog.Logger
	session    *Session

	mu        sync.Mutex
	source    string
	sourceOK  bool
	sourceErr error
}

// NewEditor builds an editor over doc. cfg is validated.
func NewEditor(doc *html.Node, cfg Config) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := NewClassifier(cfg)
	if err != nil {
		return nil, err
	}
	return &Editor{
		cfg:        cfg,
		doc:        doc,
		classifier: c,
		patcher:    NewPatcher(cfg),
		log:        cfg.logger(),
	}, nil
}

// Document returns the live document the editor works on.
func (e *Editor) Document() *html.Node {
	return e.doc
}

// NodeAt resolves an edit's Path back to the live node that produced it.
func (e *Editor) NodeAt(path NodePath) (*html.Node, error) {
	return GetNode(e.doc, path)
}

// SetSource installs the source buffer directly.
func (e *Editor) SetSource(src string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sourceOK || e.sourceErr != nil {
		return
	}
	e.source, e.sourceOK = src, true
}

// LoadSource runs fn in the background and installs its result. Editing does
// not wait for it; a save that runs first simply finds no source. A failed
// load is final for this editor. The returned channel closes when fn returns.
func (e *Editor) LoadSource(ctx context.Context, fn SourceFunc) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		src, err := fn(ctx)

		e.mu.Lock()
		defer e.mu.Unlock()
		if e.sourceOK || e.sourceErr != nil {
			return
		}
		if err != nil {
			e.sourceErr = err
			e.log.Warn("source unavailable, saves will use DOM export", "error", err)
			return
		}
		e.source, e.sourceOK = src, true
		e.log.Debug("source loaded", "bytes", len(src), "base_hash", hashString(src))
	}()
	return done
}

// Source returns the source buffer, or ErrNoSource wrapping the load failure.
func (e *Editor) Source() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sourceOK {
		return e.source, nil
	}
	if e.sourceErr != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSource, e.sourceErr)
	}
	return "", ErrNoSource
}

// Enable starts a new session, or refreshes targets of the active one.
func (e *Editor) Enable() {
	if e.session == nil {
		e.session = NewSession(e.doc, e.classifier)
	}
	n := e.session.Start()
	e.log.Info("editing enabled", "session", e.session.ID, "targets", n)
}

// Disable ends the active session.
func (e *Editor) Disable() {
	if e.session == nil {
		return
	}
	e.session.End()
	e.log.Info("editing disabled", "session", e.session.ID)
	e.session = nil
}

// IsActive reports whether editing is enabled.
func (e *Editor) IsActive() bool {
	return e.session != nil && e.session.Active()
}

// Toggle flips editing on or off.
func (e *Editor) Toggle() {
	if e.IsActive() {
		e.Disable()
	} else {
		e.Enable()
	}
}

// IsEditable reports whether n is an edit target of this editor.
func (e *Editor) IsEditable(n *html.Node) bool {
	return e.classifier.IsEditable(n)
}

// Edits returns the active session's edits, or nil when editing is off.
func (e *Editor) Edits() []Edit {
	if !e.IsActive() {
		return nil
	}
	return e.session.Collect()
}

// Save collects the session's edits and patches them onto the source. The
// decision either carries the committed HTML, with the marker policy
// applied, or the reason the caller must fall back to ExportDOM.
func (e *Editor) Save() (*SaveResult, error) {
	res := &SaveResult{Edits: e.Edits()}
	sid := ""
	if e.session != nil {
		sid = e.session.ID
	}

	src, err := e.Source()
	if err != nil {
		res.Decision = Decide(nil, res.Edits)
		e.log.Info("save falls back", "session", sid, "reason", res.Decision.Reason, "error", err)
		return res, nil
	}

	res.Patch = e.patcher.Patch(src, res.Edits)
	res.Conflicts = DetectConflicts(src, res.Edits, e.patcher)
	for _, c := range res.Conflicts {
		e.log.Debug("ambiguous edit", "session", sid, "type", c.Type, "description", c.Description)
	}
	for _, u := range res.Patch.Unmatched {
		e.log.Warn("edit not found in source", "session", sid, "old", u.OldPreview, "new", u.NewPreview,
			"candidates", u.Candidates, "suggestion", u.Suggestion, "skipped", u.Skipped)
	}

	res.Decision = Decide(res.Patch, res.Edits)
	if !res.Decision.Commit {
		e.log.Info("save falls back", "session", sid, "reason", res.Decision.Reason,
			"applied", res.Patch.Applied, "edits", len(res.Edits))
		return res, nil
	}

	out, err := FinalizeOutput(res.Decision.HTML, e.cfg.Marker)
	if err != nil {
		return nil, err
	}
	res.Decision.HTML = out
	e.log.Info("save committed", "session", sid, "edits", len(res.Edits), "base_hash", res.Patch.BaseHash)
	return res, nil
}
