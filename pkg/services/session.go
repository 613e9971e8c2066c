package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/credana/delinq-engine/pkg/apperrors"
	"github.com/credana/delinq-engine/pkg/insights"
	"github.com/credana/delinq-engine/pkg/models"
)

// WelcomeMessage seeds every fresh session as its first assistant turn.
const WelcomeMessage = "Como posso te ajudar hoje?"

// InsightSource loads the bounded table samples the per-session insight
// report is built from. *datasource.Executor satisfies it.
type InsightSource interface {
	LoadFactSample(ctx context.Context, table string, limit int) ([]models.DelinquencyRecord, error)
	LoadProjectionSample(ctx context.Context, table string, limit int) ([]models.ProjectionRecord, error)
}

// Session is one conversation: an append-only turn history plus the insight
// report computed once at creation. A session handles one turn at a time.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	turnMu sync.Mutex // held for the duration of a turn
	histMu sync.RWMutex
	msgs   []models.ChatMessage
	report string
}

// BeginTurn claims the session for one turn. It fails immediately with
// ErrSessionBusy when another turn is in flight.
func (s *Session) BeginTurn() error {
	if !s.turnMu.TryLock() {
		return apperrors.ErrSessionBusy
	}
	return nil
}

// EndTurn releases the session. Callers pair it with a successful BeginTurn.
func (s *Session) EndTurn() {
	s.turnMu.Unlock()
}

// InsightReport returns the cached combined insight report.
func (s *Session) InsightReport() string {
	s.histMu.RLock()
	defer s.histMu.RUnlock()
	return s.report
}

// History returns a copy of the turn sequence, oldest first.
func (s *Session) History() []models.ChatMessage {
	s.histMu.RLock()
	defer s.histMu.RUnlock()
	out := make([]models.ChatMessage, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Append records a turn and returns it with ID and timestamp filled in.
func (s *Session) Append(role models.ChatRole, content string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        uuid.New(),
		SessionID: s.ID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	s.histMu.Lock()
	s.msgs = append(s.msgs, msg)
	s.histMu.Unlock()
	return msg
}

func (s *Session) resetWith(report string) {
	s.histMu.Lock()
	s.msgs = s.msgs[:0]
	s.report = report
	s.histMu.Unlock()
	s.Append(models.ChatRoleAssistant, WelcomeMessage)
}

// SessionManager owns the in-memory session registry. Sessions do not
// survive a process restart.
type SessionManager struct {
	source          InsightSource
	factTable       string
	projectionTable string
	sampleLimit     int
	logger          *zap.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionManager creates a registry that builds insight reports from the
// given tables, sampling up to sampleLimit rows of each.
func NewSessionManager(source InsightSource, factTable, projectionTable string, sampleLimit int, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		source:          source,
		factTable:       factTable,
		projectionTable: projectionTable,
		sampleLimit:     sampleLimit,
		logger:          logger.Named("sessions"),
		sessions:        make(map[uuid.UUID]*Session),
	}
}

// Create builds the insight report, seeds the welcome turn, and registers
// the new session.
func (m *SessionManager) Create(ctx context.Context) (*Session, error) {
	report, err := m.buildInsightReport(ctx)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
	session.resetWith(report)

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.logger.Info("session created",
		zap.String("session_id", session.ID.String()))

	return session, nil
}

// Get looks up a session by ID.
func (m *SessionManager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}

// Reset clears the session's history, recomputes its insight report, and
// re-seeds the welcome turn. A turn in flight blocks the reset until done.
func (m *SessionManager) Reset(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	report, err := m.buildInsightReport(ctx)
	if err != nil {
		return nil, err
	}

	session.turnMu.Lock()
	session.resetWith(report)
	session.turnMu.Unlock()

	m.logger.Info("session reset",
		zap.String("session_id", id.String()))

	return session, nil
}

// Destroy removes a session from the registry.
func (m *SessionManager) Destroy(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Count reports how many sessions are registered.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// IDs returns the registered session IDs in stable order.
func (m *SessionManager) IDs() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

func (m *SessionManager) buildInsightReport(ctx context.Context) (string, error) {
	facts, err := m.source.LoadFactSample(ctx, m.factTable, m.sampleLimit)
	if err != nil {
		return "", err
	}
	projections, err := m.source.LoadProjectionSample(ctx, m.projectionTable, m.sampleLimit)
	if err != nil {
		return "", err
	}

	report := insights.CombineReports(
		insights.AggregateFacts(facts),
		insights.AggregateProjections(projections),
	)

	m.logger.Debug("insight report built",
		zap.Int("fact_rows", len(facts)),
		zap.Int("projection_rows", len(projections)))

	return report, nil
}
