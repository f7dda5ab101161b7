package service

import (
	"assess_prep_backend/internal/config"
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/util"
	"assess_prep_backend/pkg/logger"
	"assess_prep_backend/pkg/monitoring"
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// CodingGenerator is the slice of GenerationService the coding flow uses.
type CodingGenerator interface {
	GenerateProblems(ctx context.Context, session *model.AssessmentSession) ([]model.CodingProblem, error)
	Judge(ctx context.Context, problem *model.CodingProblem, code, language string) (*JudgeVerdict, error)
	SuggestForCoding(ctx context.Context, result *model.SessionResult) (string, error)
}

// CodeAnswer is one submitted solution in a coding submission.
type CodeAnswer struct {
	ProblemID string `json:"problemId" binding:"required"`
	Code      string `json:"code"`
}

var supportedLanguages = map[string]bool{
	"java": true,
	"cpp":  true,
}

type CodingService struct {
	Store     SessionStore
	Generator CodingGenerator
	Cache     *SessionCache
	Archiver  ResultArchiver
	Config    config.SessionConfig
}

func NewCodingService(store SessionStore, generator CodingGenerator, cache *SessionCache, archiver ResultArchiver, cfg config.SessionConfig) *CodingService {
	return &CodingService{
		Store:     store,
		Generator: generator,
		Cache:     cache,
		Archiver:  archiver,
		Config:    cfg,
	}
}

func (s *CodingService) CreateSession(ctx context.Context, userID uint, params *CreateSessionParams) (string, error) {
	if err := validateParams(params, s.Config); err != nil {
		return "", err
	}

	session, err := newSession(userID, model.KindCoding, params)
	if err != nil {
		return "", err
	}
	if err := s.Store.Create(session); err != nil {
		return "", err
	}

	problems, err := s.Generator.GenerateProblems(ctx, session)
	if err != nil {
		if delErr := s.Store.Delete(session.ID); delErr != nil {
			logger.Log.Error("Failed to clean up pending session",
				zap.String("sessionId", session.ID), zap.Error(delErr))
		}
		return "", err
	}

	if err := s.Store.ActivateWithProblems(session.ID, problems); err != nil {
		return "", err
	}
	return session.ID, nil
}

func (s *CodingService) GetSession(userID uint, sessionID string) (*model.AssessmentSession, error) {
	return ownedSession(s.Store, userID, sessionID, model.KindCoding)
}

// GetProblems returns the problem set with test cases stripped by the
// CodingProblem JSON shape. Examples stay visible.
func (s *CodingService) GetProblems(ctx context.Context, userID uint, sessionID string) ([]model.CodingProblem, error) {
	session, err := ownedSession(s.Store, userID, sessionID, model.KindCoding)
	if err != nil {
		return nil, err
	}

	if problems, ok := s.Cache.GetProblems(ctx, sessionID); ok {
		return problems, nil
	}

	problems, err := s.Store.ListProblems(sessionID)
	if err != nil {
		return nil, err
	}
	s.Cache.PutProblems(ctx, sessionID, problems, session.DurationMinutes)
	return problems, nil
}

// Submit judges each problem in order, aggregates the verdicts and
// finalizes the session. Problems are judged sequentially: one judge call
// in flight at a time keeps verdicts ordered and the upstream load bounded.
func (s *CodingService) Submit(ctx context.Context, userID uint, sessionID string, answers []CodeAnswer, language string, reason model.SubmitReason) (*model.SessionResult, error) {
	if !reason.Valid() {
		return nil, util.ErrInvalidReason
	}
	if !supportedLanguages[language] {
		return nil, util.ErrInvalidLanguage
	}

	session, err := ownedSession(s.Store, userID, sessionID, model.KindCoding)
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

	problems, err := s.Store.ListProblems(sessionID)
	if err != nil {
		return nil, err
	}

	codeByProblem := make(map[string]string, len(answers))
	for _, a := range answers {
		codeByProblem[a.ProblemID] = a.Code
	}

	evaluations := make([]model.ProblemEvaluation, 0, len(problems))
	for i := range problems {
		problem := &problems[i]
		total := len(problem.TestCaseList())
		code := codeByProblem[problem.ID]

		passed := 0
		feedback := ""
		if code != "" {
			verdict, err := s.Generator.Judge(ctx, problem, code, language)
			if err != nil {
				logger.Log.Warn("Judge call failed, scoring problem as zero",
					zap.String("sessionId", sessionID),
					zap.String("problemId", problem.ID),
					zap.Error(err))
			} else {
				passed = ClampPassed(verdict.Passed, total)
				feedback = verdict.Feedback
			}
		}

		evaluations = append(evaluations, model.ProblemEvaluation{
			ProblemID: problem.ID,
			Passed:    passed,
			Total:     total,
			Feedback:  feedback,
		})
	}

	score := AggregateCoding(problems, evaluations)

	topicJSON, err := json.Marshal(score.TopicBreakdown)
	if err != nil {
		return nil, err
	}
	diffJSON, err := json.Marshal(score.DifficultyBreakdown)
	if err != nil {
		return nil, err
	}
	evalJSON, err := json.Marshal(evaluations)
	if err != nil {
		return nil, err
	}

	result := &model.SessionResult{
		SessionID:           sessionID,
		DocKey:              model.ResultDocKey,
		UserID:              userID,
		Kind:                model.KindCoding,
		TotalProblems:       score.TotalProblems,
		TotalPassed:         score.TotalPassed,
		TotalTestCases:      score.TotalTestCases,
		ScorePercent:        score.ScorePercent,
		TopicBreakdown:      topicJSON,
		DifficultyBreakdown: diffJSON,
		Evaluations:         evalJSON,
	}

	if suggestions, err := s.Generator.SuggestForCoding(ctx, result); err == nil {
		result.AISuggestions = suggestions
	} else {
		logger.Log.Warn("Coding suggestions unavailable",
			zap.String("sessionId", sessionID), zap.Error(err))
	}

	if err := s.Store.Finalize(sessionID, reason.FinalStatus(), result); err != nil {
		return nil, err
	}

	monitoring.SessionFinalizeCounter.WithLabelValues(string(model.KindCoding), string(reason)).Inc()
	s.Cache.DropProblems(ctx, sessionID)
	archiveResult(s.Archiver, result)

	return result, nil
}

func (s *CodingService) GetResult(userID uint, sessionID string) (*model.SessionResult, error) {
	if _, err := ownedSession(s.Store, userID, sessionID, model.KindCoding); err != nil {
		return nil, err
	}
	return s.Store.FindResult(sessionID)
}
