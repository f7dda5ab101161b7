package service

import (
	"assess_prep_backend/internal/config"
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/util"
	"assess_prep_backend/pkg/logger"
	"assess_prep_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// SessionStore is the persistence surface the assessment services need.
// *repository.SessionRepository satisfies it; tests use an in-memory fake.
type SessionStore interface {
	Create(session *model.AssessmentSession) error
	FindByID(id string) (*model.AssessmentSession, error)
	Delete(id string) error
	ActivateWithQuestions(sessionID string, questions []model.Question) error
	ActivateWithProblems(sessionID string, problems []model.CodingProblem) error
	ListQuestions(sessionID string) ([]model.Question, error)
	ListProblems(sessionID string) ([]model.CodingProblem, error)
	Finalize(sessionID string, status model.SessionStatus, result *model.SessionResult) error
	FindResult(sessionID string) (*model.SessionResult, error)
	ListSessions(userID uint, page, pageSize int) ([]model.AssessmentSession, int64, error)
}

// QuizGenerator is the slice of GenerationService the quiz flow uses.
type QuizGenerator interface {
	GenerateQuestions(ctx context.Context, session *model.AssessmentSession) ([]model.Question, error)
	SuggestForQuiz(ctx context.Context, result *model.SessionResult) (string, error)
}

// ResultArchiver persists a copy of finalized results to object storage.
type ResultArchiver interface {
	ArchiveResult(ctx context.Context, result *model.SessionResult) error
}

// CreateSessionParams carries the candidate-chosen session shape.
type CreateSessionParams struct {
	Topics          []string `json:"topics" binding:"required,min=1"`
	NumQuestions    int      `json:"numQuestions" binding:"required,min=1"`
	DurationMinutes int      `json:"durationMinutes" binding:"omitempty,min=1"`
	Difficulty      string   `json:"difficulty" binding:"required"`
}

// Answer is one candidate answer in a quiz submission.
type Answer struct {
	QuestionID string `json:"questionId" binding:"required"`
	ChoiceID   string `json:"choiceId"`
}

type AssessmentService struct {
	Store     SessionStore
	Generator QuizGenerator
	Cache     *SessionCache
	Archiver  ResultArchiver
	Config    config.SessionConfig
}

func NewAssessmentService(store SessionStore, generator QuizGenerator, cache *SessionCache, archiver ResultArchiver, cfg config.SessionConfig) *AssessmentService {
	return &AssessmentService{
		Store:     store,
		Generator: generator,
		Cache:     cache,
		Archiver:  archiver,
		Config:    cfg,
	}
}

func validateParams(params *CreateSessionParams, cfg config.SessionConfig) error {
	if params.DurationMinutes == 0 {
		params.DurationMinutes = cfg.DefaultDurationMinutes
	}
	if len(params.Topics) == 0 {
		return util.ErrInvalidParams
	}
	if params.NumQuestions < 1 || params.NumQuestions > cfg.MaxQuestions {
		return util.ErrInvalidParams
	}
	if params.DurationMinutes < 1 || params.DurationMinutes > cfg.MaxDurationMinutes {
		return util.ErrInvalidParams
	}
	if !model.Difficulty(params.Difficulty).Valid() {
		return util.ErrInvalidParams
	}
	return nil
}

func newSession(userID uint, kind model.SessionKind, params *CreateSessionParams) (*model.AssessmentSession, error) {
	topics, err := json.Marshal(params.Topics)
	if err != nil {
		return nil, err
	}
	return &model.AssessmentSession{
		UUIDBase:        model.UUIDBase{ID: model.GenerateUUID()},
		UserID:          userID,
		Kind:            kind,
		Topics:          topics,
		NumQuestions:    params.NumQuestions,
		DurationMinutes: params.DurationMinutes,
		Difficulty:      model.Difficulty(params.Difficulty),
		Status:          model.StatusPending,
	}, nil
}

// CreateSession generates the question set and returns an active session.
// The session only becomes visible as active once all items are stored; a
// failed generation removes the pending row so nothing half-built survives.
func (s *AssessmentService) CreateSession(ctx context.Context, userID uint, params *CreateSessionParams) (string, error) {
	if err := validateParams(params, s.Config); err != nil {
		return "", err
	}

	session, err := newSession(userID, model.KindQuiz, params)
	if err != nil {
		return "", err
	}
	if err := s.Store.Create(session); err != nil {
		return "", err
	}

	questions, err := s.Generator.GenerateQuestions(ctx, session)
	if err != nil {
		if delErr := s.Store.Delete(session.ID); delErr != nil {
			logger.Log.Error("Failed to clean up pending session",
				zap.String("sessionId", session.ID), zap.Error(delErr))
		}
		return "", err
	}

	if err := s.Store.ActivateWithQuestions(session.ID, questions); err != nil {
		return "", err
	}
	return session.ID, nil
}

// ownedSession loads a session and enforces ownership. An unknown id and a
// foreign session return the same error.
func ownedSession(store SessionStore, userID uint, sessionID string, kind model.SessionKind) (*model.AssessmentSession, error) {
	session, err := store.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID || session.Kind != kind {
		return nil, util.ErrInvalidSession
	}
	return session, nil
}

func (s *AssessmentService) GetSession(userID uint, sessionID string) (*model.AssessmentSession, error) {
	return ownedSession(s.Store, userID, sessionID, model.KindQuiz)
}

// GetQuestions returns the sanitized question set. Ground truth is stripped
// by the Question JSON shape itself; the cache stores the already-sanitized
// payload so a cache hit cannot leak more than a cache miss.
func (s *AssessmentService) GetQuestions(ctx context.Context, userID uint, sessionID string) ([]model.Question, error) {
	session, err := ownedSession(s.Store, userID, sessionID, model.KindQuiz)
	if err != nil {
		return nil, err
	}

	if questions, ok := s.Cache.GetQuestions(ctx, sessionID); ok {
		return questions, nil
	}

	questions, err := s.Store.ListQuestions(sessionID)
	if err != nil {
		return nil, err
	}
	s.Cache.PutQuestions(ctx, sessionID, questions, session.DurationMinutes)
	return questions, nil
}

// Submit grades the session and finalizes it. The store's status guard
// makes the first finalize win; concurrent submits get ErrSessionFinalized.
func (s *AssessmentService) Submit(ctx context.Context, userID uint, sessionID string, answers []Answer, reason model.SubmitReason) (*model.SessionResult, error) {
	if !reason.Valid() {
		return nil, util.ErrInvalidReason
	}

	session, err := ownedSession(s.Store, userID, sessionID, model.KindQuiz)
	if err != nil {
		return nil, err
	}
	switch session.Status {
	case model.StatusActive:
	case model.StatusSubmitted, model.StatusAutofailed:
		return nil, util.ErrSessionFinalized
	default:
		return nil, util.ErrSessionNotActive
	}

	questions, err := s.Store.ListQuestions(sessionID)
	if err != nil {
		return nil, err
	}

	answerMap := make(map[string]string, len(answers))
	for _, a := range answers {
		if a.ChoiceID != "" {
			answerMap[a.QuestionID] = a.ChoiceID
		}
	}

	score := ScoreQuiz(questions, answerMap)

	topicJSON, err := json.Marshal(score.TopicBreakdown)
	if err != nil {
		return nil, err
	}
	diffJSON, err := json.Marshal(score.DifficultyBreakdown)
	if err != nil {
		return nil, err
	}

	result := &model.SessionResult{
		SessionID:           sessionID,
		DocKey:              model.ResultDocKey,
		UserID:              userID,
		Kind:                model.KindQuiz,
		TotalQuestions:      score.TotalQuestions,
		Correct:             score.Correct,
		Incorrect:           score.Incorrect,
		Unanswered:          score.Unanswered,
		ScorePercent:        score.ScorePercent,
		TopicBreakdown:      topicJSON,
		DifficultyBreakdown: diffJSON,
	}

	// Suggestions are best effort. A failed or slow model call must never
	// block the submit or change its outcome.
	if suggestions, err := s.Generator.SuggestForQuiz(ctx, result); err == nil {
		result.AISuggestions = suggestions
	} else {
		logger.Log.Warn("Quiz suggestions unavailable",
			zap.String("sessionId", sessionID), zap.Error(err))
	}

	if err := s.Store.Finalize(sessionID, reason.FinalStatus(), result); err != nil {
		return nil, err
	}

	monitoring.SessionFinalizeCounter.WithLabelValues(string(model.KindQuiz), string(reason)).Inc()
	s.Cache.DropQuestions(ctx, sessionID)
	archiveResult(s.Archiver, result)

	return result, nil
}

func (s *AssessmentService) GetResult(userID uint, sessionID string) (*model.SessionResult, error) {
	if _, err := ownedSession(s.Store, userID, sessionID, model.KindQuiz); err != nil {
		return nil, err
	}
	return s.Store.FindResult(sessionID)
}

// ListSessions is the admin view over all sessions, optionally filtered by user.
func (s *AssessmentService) ListSessions(userID uint, page, pageSize int) ([]model.AssessmentSession, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.Store.ListSessions(userID, page, pageSize)
}

// archiveResult copies the finalized result to object storage off the
// request path. Archive failures are logged, never surfaced to the client.
func archiveResult(archiver ResultArchiver, result *model.SessionResult) {
	if archiver == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := archiver.ArchiveResult(ctx, result); err != nil {
			logger.Log.Error("Failed to archive result",
				zap.String("sessionId", result.SessionID), zap.Error(err))
		}
	}()
}
