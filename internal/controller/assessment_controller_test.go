package controller

import (
	"assess_prep_backend/internal/config"
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/service"
	"assess_prep_backend/internal/util"
	"assess_prep_backend/pkg/logger"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// stubSessionStore carries just enough state for the HTTP round trips.
type stubSessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*model.AssessmentSession
	questions map[string][]model.Question
	results   map[string]*model.SessionResult
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		sessions:  map[string]*model.AssessmentSession{},
		questions: map[string][]model.Question{},
		results:   map[string]*model.SessionResult{},
	}
}

func (s *stubSessionStore) Create(session *model.AssessmentSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *stubSessionStore) FindByID(id string) (*model.AssessmentSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, util.ErrInvalidSession
	}
	copied := *session
	return &copied, nil
}

func (s *stubSessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.questions, id)
	return nil
}

func (s *stubSessionStore) ActivateWithQuestions(sessionID string, questions []model.Question) error {
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

func (s *stubSessionStore) ActivateWithProblems(sessionID string, problems []model.CodingProblem) error {
	return util.ErrInvalidSession
}

func (s *stubSessionStore) ListQuestions(sessionID string) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[sessionID], nil
}

func (s *stubSessionStore) ListProblems(sessionID string) ([]model.CodingProblem, error) {
	return nil, nil
}

func (s *stubSessionStore) Finalize(sessionID string, status model.SessionStatus, result *model.SessionResult) error {
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
	result.ID = 1
	s.results[sessionID] = result
	return nil
}

func (s *stubSessionStore) FindResult(sessionID string) (*model.SessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[sessionID]
	if !ok {
		return nil, util.ErrResultNotFound
	}
	return result, nil
}

func (s *stubSessionStore) ListSessions(userID uint, page, pageSize int) ([]model.AssessmentSession, int64, error) {
	return nil, 0, nil
}

type stubQuizGen struct{}

func (stubQuizGen) GenerateQuestions(ctx context.Context, session *model.AssessmentSession) ([]model.Question, error) {
	choices, _ := json.Marshal([]model.Choice{{ID: "a", Text: "yes"}, {ID: "b", Text: "no"}})
	return []model.Question{{
		ID:              session.ID + "-q01",
		SessionID:       session.ID,
		Topic:           "logic",
		Difficulty:      model.DifficultyEasy,
		Question:        "1+1=2?",
		Choices:         choices,
		CorrectChoiceID: "a",
	}}, nil
}

func (stubQuizGen) SuggestForQuiz(ctx context.Context, result *model.SessionResult) (string, error) {
	return "", nil
}

func newQuizHTTP(t *testing.T) (*gin.Engine, *service.AssessmentService) {
	t.Helper()
	svc := service.NewAssessmentService(newStubSessionStore(), stubQuizGen{}, nil, nil, config.SessionConfig{
		DefaultDurationMinutes: 20,
		MaxDurationMinutes:     180,
		MaxQuestions:           50,
	})
	ctrl := NewAssessmentController(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 1, Role: model.RoleCandidate})
	})
	r.POST("/api/assessment/:sessionId/submit", ctrl.Submit)
	return r, svc
}

func postSubmit(r *gin.Engine, sessionID, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/assessment/"+sessionID+"/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitResponseCarriesResultID(t *testing.T) {
	r, svc := newQuizHTTP(t)
	id, err := svc.CreateSession(context.Background(), 1, &service.CreateSessionParams{
		Topics:          []string{"logic"},
		NumQuestions:    1,
		DurationMinutes: 10,
		Difficulty:      "easy",
	})
	require.NoError(t, err)

	w := postSubmit(r, id, `{"answers":[{"questionId":"`+id+`-q01","choiceId":"a"}],"reason":"user_submit"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ResultID uint                 `json:"resultId"`
			Result   *model.SessionResult `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, uint(1), resp.Data.ResultID)
	require.NotNil(t, resp.Data.Result)
	assert.Equal(t, id, resp.Data.Result.SessionID)
	assert.Equal(t, 100, resp.Data.Result.ScorePercent)
}

func TestSubmitRepeatReturnsConflict(t *testing.T) {
	r, svc := newQuizHTTP(t)
	id, err := svc.CreateSession(context.Background(), 1, &service.CreateSessionParams{
		Topics:          []string{"logic"},
		NumQuestions:    1,
		DurationMinutes: 10,
		Difficulty:      "easy",
	})
	require.NoError(t, err)

	first := postSubmit(r, id, `{"answers":[],"reason":"user_submit"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postSubmit(r, id, `{"answers":[],"reason":"user_submit"}`)
	assert.Equal(t, http.StatusConflict, second.Code)
}
