package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"reportdesigner/internal/domain"
	"reportdesigner/internal/history"
	"reportdesigner/internal/layout"
	"reportdesigner/internal/logging"
)

// ─────────────────────────────────────────────────────────────
// Designer Service — open reports and their edit histories
// ─────────────────────────────────────────────────────────────

// ErrReportNotFound is returned for a report id that is not open.
var ErrReportNotFound = errors.New("report not found")

const defaultReportName = "Untitled report"

// ReportInfo is the summary shown in the report list.
type ReportInfo struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"createdAt"`
	LastUsed  time.Time    `json:"lastUsed"`
	Stats     domain.Stats `json:"stats"`
}

// ReportState is everything the canvas needs to render a report and its
// undo/redo buttons.
type ReportState struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Rows      []domain.RowNode `json:"rows"`
	CanUndo   bool             `json:"canUndo"`
	CanRedo   bool             `json:"canRedo"`
	UndoLabel string           `json:"undoLabel,omitempty"`
	RedoLabel string           `json:"redoLabel,omitempty"`
	Stats     domain.Stats     `json:"stats"`
}

// HistoryView lists a report's undo entries (oldest first) and redo
// entries (next to replay first).
type HistoryView struct {
	Undo       []history.EntryInfo `json:"undo"`
	Redo       []history.EntryInfo `json:"redo"`
	MaxEntries int                 `json:"maxEntries"`
}

type session struct {
	id       string
	name     string
	created  time.Time
	lastUsed time.Time
	history  *history.Manager[*domain.Document]
}

// DesignerService owns every open report. Each report has its own history;
// the service mutex only guards the session table.
type DesignerService struct {
	emitter EventEmitter
	now     func() time.Time

	mu         sync.Mutex
	sessions   map[string]*session
	maxHistory int
}

// NewDesignerService creates a DesignerService whose reports keep up to
// maxHistory undo entries.
func NewDesignerService(emitter EventEmitter, maxHistory int) *DesignerService {
	if maxHistory <= 0 {
		maxHistory = history.DefaultMaxEntries
	}
	return &DesignerService{
		emitter:    emitter,
		now:        time.Now,
		sessions:   make(map[string]*session),
		maxHistory: maxHistory,
	}
}

// ── Reports ────────────────────────────────────────────────

// CreateReport opens a new empty report.
func (s *DesignerService) CreateReport(ctx context.Context, name string) (*ReportInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultReportName
	}

	s.mu.Lock()
	now := s.now()
	sess := &session{
		id:       uuid.New().String(),
		name:     name,
		created:  now,
		lastUsed: now,
		history:  history.NewManager(domain.NewDocument(), s.maxHistory),
	}
	s.sessions[sess.id] = sess
	info := sess.info()
	s.mu.Unlock()

	logging.FromContext(ctx).Info("report created", "report", sess.id, "name", name)
	s.emitter.Emit(ctx, EventReportChanged, map[string]string{"reportId": sess.id})
	return &info, nil
}

// ListReports returns the open reports, oldest first.
func (s *DesignerService) ListReports() []ReportInfo {
	s.mu.Lock()
	out := make([]ReportInfo, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.info())
	}
	s.mu.Unlock()

	slices.SortFunc(out, func(a, b ReportInfo) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// CloseReport discards a report together with its history.
func (s *DesignerService) CloseReport(ctx context.Context, reportID string) error {
	s.mu.Lock()
	_, ok := s.sessions[reportID]
	delete(s.sessions, reportID)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("close %s: %w", reportID, ErrReportNotFound)
	}
	logging.FromContext(ctx).Info("report closed", "report", reportID)
	s.emitter.Emit(ctx, EventReportClosed, map[string]string{"reportId": reportID})
	return nil
}

// GetReportState returns the current tree of a report.
func (s *DesignerService) GetReportState(reportID string) (*ReportState, error) {
	sess, err := s.touch(reportID)
	if err != nil {
		return nil, err
	}
	return sess.state(), nil
}

// GetHistory returns the undo and redo entries of a report.
func (s *DesignerService) GetHistory(reportID string) (*HistoryView, error) {
	sess, err := s.touch(reportID)
	if err != nil {
		return nil, err
	}
	return &HistoryView{
		Undo:       sess.history.UndoInfo(),
		Redo:       sess.history.RedoInfo(),
		MaxEntries: sess.history.MaxEntries(),
	}, nil
}

// ── Edits ──────────────────────────────────────────────────

// AddRow appends an empty row.
func (s *DesignerService) AddRow(ctx context.Context, reportID string) (*ReportState, error) {
	return s.apply(ctx, reportID, "Add row", layout.AddRow())
}

// AddColumn appends an empty column to a row.
func (s *DesignerService) AddColumn(ctx context.Context, reportID, rowID string) (*ReportState, error) {
	return s.apply(ctx, reportID, "Add column to "+rowID, layout.AddColumn(rowID))
}

// AddElement drops a new element of elementType into a column.
func (s *DesignerService) AddElement(ctx context.Context, reportID, rowID, columnID, elementType string) (*ReportState, error) {
	t, err := domain.ParseElementType(elementType)
	if err != nil {
		return nil, fmt.Errorf("add element: %w", err)
	}
	return s.apply(ctx, reportID, fmt.Sprintf("Add %s element", t), layout.AddElement(rowID, columnID, t))
}

// MoveColumn swaps a column with its left or right neighbour.
func (s *DesignerService) MoveColumn(ctx context.Context, reportID, rowID, columnID, direction string) (*ReportState, error) {
	dir, err := layout.ParseDirection(direction)
	if err != nil {
		return nil, fmt.Errorf("move column: %w", err)
	}
	return s.apply(ctx, reportID, fmt.Sprintf("Move %s %s", columnID, dir), layout.MoveColumn(rowID, columnID, dir))
}

// DeleteElement removes an element.
func (s *DesignerService) DeleteElement(ctx context.Context, reportID, elementID string) (*ReportState, error) {
	return s.apply(ctx, reportID, "Delete "+elementID, layout.DeleteElement(elementID))
}

// DeleteColumn removes a column and its elements.
func (s *DesignerService) DeleteColumn(ctx context.Context, reportID, rowID, columnID string) (*ReportState, error) {
	return s.apply(ctx, reportID, "Delete "+columnID, layout.DeleteColumn(rowID, columnID))
}

// DeleteRow removes a row with everything in it.
func (s *DesignerService) DeleteRow(ctx context.Context, reportID, rowID string) (*ReportState, error) {
	return s.apply(ctx, reportID, "Delete "+rowID, layout.DeleteRow(rowID))
}

// SetElementContent replaces an element's rich-text content.
func (s *DesignerService) SetElementContent(ctx context.Context, reportID, elementID, content string) (*ReportState, error) {
	return s.apply(ctx, reportID, "Edit content of "+elementID, layout.SetElementContent(elementID, content))
}

// SetElementStyle sets one style property, keeping the others.
func (s *DesignerService) SetElementStyle(ctx context.Context, reportID, elementID, key, value string) (*ReportState, error) {
	return s.apply(ctx, reportID, fmt.Sprintf("Set %s on %s", key, elementID), layout.SetElementStyle(elementID, key, value))
}

// ApplyToolbarStyles merges the toolbar buffer into the selected element as
// one undo step.
func (s *DesignerService) ApplyToolbarStyles(ctx context.Context, reportID string, sel layout.Selection, styles domain.Style) (*ReportState, error) {
	return s.apply(ctx, reportID, "Apply toolbar styles", layout.ApplyToolbar(sel, styles))
}

// Undo reverts the most recent edit. With nothing to undo the state is
// returned unchanged.
func (s *DesignerService) Undo(ctx context.Context, reportID string) (*ReportState, error) {
	sess, err := s.touch(reportID)
	if err != nil {
		return nil, err
	}
	if _, moved := sess.history.Undo(); moved {
		logging.FromContext(ctx).Debug("undo", "report", reportID)
		s.emitter.Emit(ctx, EventReportChanged, map[string]string{"reportId": reportID})
	}
	return sess.state(), nil
}

// Redo replays the most recently undone edit. With nothing to redo the
// state is returned unchanged.
func (s *DesignerService) Redo(ctx context.Context, reportID string) (*ReportState, error) {
	sess, err := s.touch(reportID)
	if err != nil {
		return nil, err
	}
	if _, moved := sess.history.Redo(); moved {
		logging.FromContext(ctx).Debug("redo", "report", reportID)
		s.emitter.Emit(ctx, EventReportChanged, map[string]string{"reportId": reportID})
	}
	return sess.state(), nil
}

// CanUndo reports whether the report has an edit to undo.
func (s *DesignerService) CanUndo(reportID string) (bool, error) {
	sess, err := s.lookup(reportID)
	if err != nil {
		return false, err
	}
	return sess.history.CanUndo(), nil
}

// CanRedo reports whether the report has an edit to redo.
func (s *DesignerService) CanRedo(reportID string) (bool, error) {
	sess, err := s.lookup(reportID)
	if err != nil {
		return false, err
	}
	return sess.history.CanRedo(), nil
}

// ── Housekeeping ───────────────────────────────────────────

// SetMaxHistory changes the undo depth of every open and future report.
func (s *DesignerService) SetMaxHistory(n int) {
	if n <= 0 {
		n = history.DefaultMaxEntries
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxHistory = n
	for _, sess := range s.sessions {
		sess.history.SetMaxEntries(n)
	}
}

// EvictIdle closes reports untouched for longer than ttl and returns their
// ids. A non-positive ttl evicts nothing.
func (s *DesignerService) EvictIdle(ctx context.Context, ttl time.Duration) []string {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	cutoff := s.now().Add(-ttl)
	var evicted []string
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	s.mu.Unlock()

	slices.Sort(evicted)
	logger := logging.FromContext(ctx)
	for _, id := range evicted {
		logger.Info("idle report evicted", "report", id, "ttl", ttl)
		s.emitter.Emit(ctx, EventReportEvicted, map[string]string{"reportId": id})
	}
	return evicted
}

// ── Helpers ────────────────────────────────────────────────

func (s *DesignerService) apply(ctx context.Context, reportID, label string, m layout.Mutation) (*ReportState, error) {
	sess, err := s.touch(reportID)
	if err != nil {
		return nil, err
	}
	if _, err := sess.history.ApplyNamed(label, m); err != nil {
		return nil, fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	logging.FromContext(ctx).Debug("edit applied", "report", reportID, "edit", label)
	s.emitter.Emit(ctx, EventReportChanged, map[string]string{"reportId": reportID})
	return sess.state(), nil
}

// touch returns the session and marks it as used.
func (s *DesignerService) touch(reportID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[reportID]
	if !ok {
		return nil, fmt.Errorf("%q: %w", reportID, ErrReportNotFound)
	}
	sess.lastUsed = s.now()
	return sess, nil
}

// lookup returns the session without marking it as used.
func (s *DesignerService) lookup(reportID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[reportID]
	if !ok {
		return nil, fmt.Errorf("%q: %w", reportID, ErrReportNotFound)
	}
	return sess, nil
}

func (sess *session) state() *ReportState {
	hs := sess.history.Status()
	return &ReportState{
		ID:        sess.id,
		Name:      sess.name,
		Rows:      hs.Current.Tree(),
		CanUndo:   hs.CanUndo,
		CanRedo:   hs.CanRedo,
		UndoLabel: hs.NextUndo.Description,
		RedoLabel: hs.NextRedo.Description,
		Stats:     hs.Current.Stats(),
	}
}

// info must be called with the service mutex held.
func (sess *session) info() ReportInfo {
	return ReportInfo{
		ID:        sess.id,
		Name:      sess.name,
		CreatedAt: sess.created,
		LastUsed:  sess.lastUsed,
		Stats:     sess.history.Current().Stats(),
	}
}
