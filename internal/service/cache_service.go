package service

import (
	"assess_prep_backend/internal/model"
	"assess_prep_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionCache holds sanitized item sets in Redis for the lifetime of a
// session. Items are immutable once the session is active, so the cache
// never has to deal with invalidation beyond the submit.
//
// The cache is strictly optional: a nil client degrades to the database.
type SessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

func questionsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:questions", sessionID)
}

func problemsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:problems", sessionID)
}

// itemTTL keeps entries a little past the session deadline so late
// refetches before the timeout submit still hit.
func itemTTL(durationMinutes int) time.Duration {
	return time.Duration(durationMinutes)*time.Minute + 10*time.Minute
}

func (c *SessionCache) GetQuestions(ctx context.Context, sessionID string) ([]model.Question, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, questionsKey(sessionID)).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, false
	}
	return questions, true
}

func (c *SessionCache) PutQuestions(ctx context.Context, sessionID string, questions []model.Question, durationMinutes int) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, questionsKey(sessionID), data, itemTTL(durationMinutes)).Err(); err != nil {
		logger.Log.Warn("Failed to cache questions", zap.String("sessionId", sessionID), zap.Error(err))
	}
}

func (c *SessionCache) DropQuestions(ctx context.Context, sessionID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, questionsKey(sessionID))
}

func (c *SessionCache) GetProblems(ctx context.Context, sessionID string) ([]model.CodingProblem, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, problemsKey(sessionID)).Bytes()
	if err != nil {
		return nil, false
	}
	var problems []model.CodingProblem
	if err := json.Unmarshal(data, &problems); err != nil {
		return nil, false
	}
	return problems, true
}

func (c *SessionCache) PutProblems(ctx context.Context, sessionID string, problems []model.CodingProblem, durationMinutes int) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(problems)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, problemsKey(sessionID), data, itemTTL(durationMinutes)).Err(); err != nil {
		logger.Log.Warn("Failed to cache problems", zap.String("sessionId", sessionID), zap.Error(err))
	}
}

func (c *SessionCache) DropProblems(ctx context.Context, sessionID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, problemsKey(sessionID))
}
