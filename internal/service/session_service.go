package service

import (
	"context"
	"errors"
	"time"
	"transparency/internal/cache"
	"transparency/internal/logging"
	"transparency/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionCompleted  = errors.New("session already completed")
	ErrSessionIncomplete = errors.New("session has no report yet")
	ErrSessionBusy       = errors.New("session is being advanced by another request")
)

// QuestionSelector picks follow-up questions for the base answers
type QuestionSelector interface {
	Select(ctx context.Context, base model.ProductData) []model.Question
	Provider() string
}

// SessionService runs the multi-step product form:
// initial -> expanded (follow-ups added once) -> completed (report built)
type SessionService struct {
	sessions    cache.SessionCache
	selector    QuestionSelector
	reports     *ReportService
	broadcaster Broadcaster
}

// NewSessionService creates a new session service
func NewSessionService(sessions cache.SessionCache, selector QuestionSelector, reports *ReportService) *SessionService {
	return &SessionService{
		sessions: sessions,
		selector: selector,
		reports:  reports,
	}
}

// SetBroadcaster sets the WebSocket broadcaster (called after hub is created)
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start opens a session holding the base questions
func (s *SessionService) Start(ctx context.Context, userID string) (*model.Session, error) {
	now := time.Now().UTC()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Stage:     model.StageInitial,
		Questions: model.InitialQuestions(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns ErrSessionNotFound for unknown or expired sessions
func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SaveAnswers merges answers into the session; later answers win
func (s *SessionService) SaveAnswers(ctx context.Context, id string, answers model.ProductData) (*model.Session, error) {
	session, err := s.sessions.Update(ctx, id, func(session *model.Session) error {
		if session.Stage == model.StageCompleted {
			return ErrSessionCompleted
		}
		session.Answers.Merge(answers)
		session.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Next advances the session one stage. Required questions of the current
// stage must be answered first. A completed session is returned unchanged.
// Only one advance runs per session at a time; a concurrent call gets
// ErrSessionBusy. Answers saved while follow-ups are generated are kept.
func (s *SessionService) Next(ctx context.Context, id string) (*model.Session, error) {
	release, err := s.sessions.Lock(ctx, id)
	if errors.Is(err, cache.ErrLocked) {
		return nil, ErrSessionBusy
	}
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var followUps []model.Question
	switch current.Stage {
	case model.StageCompleted:
		return current, nil
	case model.StageInitial:
		if err := checkBase(current); err != nil {
			return nil, err
		}
		// Generation can take seconds, so it stays outside the write.
		followUps = s.selector.Select(ctx, current.Answers)
	}

	session, err := s.sessions.Update(ctx, id, func(session *model.Session) error {
		if session.Stage != current.Stage {
			return ErrSessionBusy
		}
		switch session.Stage {
		case model.StageInitial:
			if err := checkBase(session); err != nil {
				return err
			}
			session.Questions = append(session.Questions, followUps...)
			session.Stage = model.StageExpanded
		case model.StageExpanded:
			if missing := session.MissingRequired(); len(missing) > 0 {
				return &model.ValidationError{Fields: missing}
			}
			report, err := BuildReport(session.Answers, "")
			if err != nil {
				return err
			}
			session.Report = report
			session.Stage = model.StageCompleted
		}
		session.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.Stage == model.StageCompleted {
		s.reports.Store(ctx, session.UserID, session.Report)
	}

	logging.Log.WithFields(logrus.Fields{
		"session": session.ID,
		"stage":   session.Stage,
	}).Debug("session advanced")
	s.publish(session)
	return session, nil
}

func checkBase(session *model.Session) error {
	if err := session.Answers.Validate(); err != nil {
		return err
	}
	if missing := session.MissingRequired(); len(missing) > 0 {
		return &model.ValidationError{Fields: missing}
	}
	return nil
}

// Report returns the report of a completed session
func (s *SessionService) Report(ctx context.Context, id string) (*model.TransparencyReport, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Report == nil {
		return nil, ErrSessionIncomplete
	}
	return session.Report, nil
}

func (s *SessionService) publish(session *model.Session) {
	if s.broadcaster == nil {
		return
	}
	event := model.SessionEvent{SessionID: session.ID, Stage: session.Stage}
	switch session.Stage {
	case model.StageExpanded:
		event.Questions = session.Questions
		s.broadcaster.BroadcastToSession(session.ID, EventQuestionsExpanded, event)
	case model.StageCompleted:
		score := session.Report.Score
		event.Score = &score
		s.broadcaster.BroadcastToSession(session.ID, EventReportReady, event)
	}
}
