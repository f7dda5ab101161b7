package service

import (
	"assess_prep_backend/internal/config"
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/util"
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"go.uber.org/zap"

	"assess_prep_backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

var testSessionConfig = config.SessionConfig{
	DefaultDurationMinutes: 20,
	MaxDurationMinutes:     180,
	MaxQuestions:           50,
}

// memStore is an in-memory SessionStore with the same status-guard
// semantics as the SQL implementation.
type memStore struct {
	mu        sync.Mutex
	sessions  map[string]*model.AssessmentSession
	questions map[string][]model.Question
	problems  map[string][]model.CodingProblem
	results   map[string]*model.SessionResult
}

func newMemStore() *memStore {
	return &memStore{
		sessions:  map[string]*model.AssessmentSession{},
		questions: map[string][]model.Question{},
		problems:  map[string][]model.CodingProblem{},
		results:   map[string]*model.SessionResult{},
	}
}

func (s *memStore) Create(session *model.AssessmentSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *memStore) FindByID(id string) (*model.AssessmentSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, util.ErrInvalidSession
	}
	copied := *session
	return &copied, nil
}

func (s *memStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.questions, id)
	delete(s.problems, id)
	return nil
}

func (s *memStore) ActivateWithQuestions(sessionID string, questions []model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok || session.Status != model.StatusPending {
		return util.ErrInvalidSession
	}
	s.questions[sessionID] = questions
	session.Status = model.StatusActive
	return nil
}

func (s *memStore) ActivateWithProblems(sessionID string, problems []model.CodingProblem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok || session.Status != model.StatusPending {
		return util.ErrInvalidSession
	}
	s.problems[sessionID] = problems
	session.Status = model.StatusActive
	return nil
}

func (s *memStore) ListQuestions(sessionID string) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[sessionID], nil
}

func (s *memStore) ListProblems(sessionID string) ([]model.CodingProblem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.problems[sessionID], nil
}

func (s *memStore) Finalize(sessionID string, status model.SessionStatus, result *model.SessionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return util.ErrInvalidSession
	}
	if session.Status != model.StatusActive {
		return util.ErrSessionFinalized
	}
	session.Status = status
	s.results[sessionID] = result
	return nil
}

func (s *memStore) FindResult(sessionID string) (*model.SessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[sessionID]
	if !ok {
		return nil, util.ErrResultNotFound
	}
	return result, nil
}

func (s *memStore) ListSessions(userID uint, page, pageSize int) ([]model.AssessmentSession, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AssessmentSession
	for _, session := range s.sessions {
		if userID == 0 || session.UserID == userID {
			out = append(out, *session)
		}
	}
	return out, int64(len(out)), nil
}

// fakeQuizGen returns canned questions and suggestions.
type fakeQuizGen struct {
	questions   []model.Question
	genErr      error
	suggestions string
	suggestErr  error
}

func (f *fakeQuizGen) GenerateQuestions(ctx context.Context, session *model.AssessmentSession) ([]model.Question, error) {
	if f.genErr != nil {
		return nil, f.genErr
	}
	out := make([]model.Question, len(f.questions))
	copy(out, f.questions)
	for i := range out {
		out[i].SessionID = session.ID
	}
	return out, nil
}

func (f *fakeQuizGen) SuggestForQuiz(ctx context.Context, result *model.SessionResult) (string, error) {
	if f.suggestErr != nil {
		return "", f.suggestErr
	}
	return f.suggestions, nil
}

// fakeCodingGen returns canned problems and per-problem verdicts.
type fakeCodingGen struct {
	problems    []model.CodingProblem
	genErr      error
	verdicts    map[string]*JudgeVerdict
	judgeErr    error
	judgeCalls  []string
	suggestions string
	suggestErr  error
}

func (f *fakeCodingGen) GenerateProblems(ctx context.Context, session *model.AssessmentSession) ([]model.CodingProblem, error) {
	if f.genErr != nil {
		return nil, f.genErr
	}
	out := make([]model.CodingProblem, len(f.problems))
	copy(out, f.problems)
	for i := range out {
		out[i].SessionID = session.ID
	}
	return out, nil
}

func (f *fakeCodingGen) Judge(ctx context.Context, problem *model.CodingProblem, code, language string) (*JudgeVerdict, error) {
	f.judgeCalls = append(f.judgeCalls, problem.ID)
	if f.judgeErr != nil {
		return nil, f.judgeErr
	}
	if v, ok := f.verdicts[problem.ID]; ok {
		return v, nil
	}
	return &JudgeVerdict{}, nil
}

func (f *fakeCodingGen) SuggestForCoding(ctx context.Context, result *model.SessionResult) (string, error) {
	if f.suggestErr != nil {
		return "", f.suggestErr
	}
	return f.suggestions, nil
}

var errUpstream = errors.New("upstream down")
