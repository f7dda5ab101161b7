package service

import (
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/util"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProblems() []model.CodingProblem {
	examples, _ := json.Marshal([]model.Example{{Input: "1 2", Output: "3"}})
	cases, _ := json.Marshal([]model.TestCase{
		{Input: "1 2", Output: "3"},
		{Input: "0 0", Output: "0"},
		{Input: "-1 1", Output: "0"},
	})
	return []model.CodingProblem{
		{ID: "p1", Topic: "math", Difficulty: model.DifficultyEasy, Title: "Sum", Description: "Add two ints.",
			FunctionSignature: "int sum(int a, int b)", Examples: examples, TestCases: cases},
		{ID: "p2", Topic: "strings", Difficulty: model.DifficultyMedium, Title: "Reverse", Description: "Reverse a string.",
			FunctionSignature: "string reverse(string s)", Examples: examples, TestCases: cases},
	}
}

func newCodingService(gen *fakeCodingGen) (*CodingService, *memStore) {
	store := newMemStore()
	return NewCodingService(store, gen, nil, nil, testSessionConfig), store
}

func TestCodingGetProblemsHidesTestCases(t *testing.T) {
	svc, _ := newCodingService(&fakeCodingGen{problems: testProblems()})
	id, err := svc.CreateSession(context.Background(), 1, validParams())
	require.NoError(t, err)

	problems, err := svc.GetProblems(context.Background(), 1, id)
	require.NoError(t, err)
	require.Len(t, problems, 2)

	payload, err := json.Marshal(problems)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "testCases")
	assert.Contains(t, string(payload), "examples")
}

func TestCodingSubmitJudgesSequentiallyAndClamps(t *testing.T) {
	gen := &fakeCodingGen{
		problems: testProblems(),
		verdicts: map[string]*JudgeVerdict{
			"p1": {Passed: 99, Total: 3, Feedback: "inflated"}, // clamped to 3
			"p2": {Passed: -2, Total: 3},                       // clamped to 0
		},
	}
	svc, _ := newCodingService(gen)
	id, err := svc.CreateSession(context.Background(), 1, validParams())
	require.NoError(t, err)

	answers := []CodeAnswer{{ProblemID: "p1", Code: "code"}, {ProblemID: "p2", Code: "code"}}

	result, err := svc.Submit(context.Background(), 1, id, answers, "java", model.ReasonUserSubmit)
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2"}, gen.judgeCalls, "problems judged in stored order")
	assert.Equal(t, 2, result.TotalProblems)
	assert.Equal(t, 3, result.TotalPassed)
	assert.Equal(t, 6, result.TotalTestCases)
	assert.Equal(t, 50, result.ScorePercent)

	var evaluations []model.ProblemEvaluation
	require.NoError(t, json.Unmarshal(result.Evaluations, &evaluations))
	require.Len(t, evaluations, 2)
	assert.Equal(t, 3, evaluations[0].Passed)
	assert.Equal(t, 0, evaluations[1].Passed)
}

func TestCodingSubmitSkipsJudgeForEmptyCode(t *testing.T) {
	gen := &fakeCodingGen{problems: testProblems()}
	svc, _ := newCodingService(gen)
	id, err := svc.CreateSession(context.Background(), 1, validParams())
	require.NoError(t, err)

	result, err := svc.Submit(context.Background(), 1, id, nil, "cpp", model.ReasonTimeout)
	require.NoError(t, err)

	assert.Empty(t, gen.judgeCalls, "no code means no judge calls")
	assert.Equal(t, 0, result.TotalPassed)
	assert.Equal(t, 6, result.TotalTestCases)
	assert.Equal(t, 0, result.ScorePercent)
}

func TestCodingSubmitJudgeFailureScoresZero(t *testing.T) {
	gen := &fakeCodingGen{problems: testProblems(), judgeErr: errUpstream}
	svc, store := newCodingService(gen)
	id, err := svc.CreateSession(context.Background(), 1, validParams())
	require.NoError(t, err)

	result, err := svc.Submit(context.Background(), 1, id,
		[]CodeAnswer{{ProblemID: "p1", Code: "code"}}, "java", model.ReasonUserSubmit)
	require.NoError(t, err, "a broken judge must not block the submit")
	assert.Equal(t, 0, result.TotalPassed)

	session, _ := store.FindByID(id)
	assert.Equal(t, model.StatusSubmitted, session.Status)
}

func TestCodingSubmitRejectsUnknownLanguage(t *testing.T) {
	svc, _ := newCodingService(&fakeCodingGen{problems: testProblems()})
	id, err := svc.CreateSession(context.Background(), 1, validParams())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, id, nil, "brainfuck", model.ReasonUserSubmit)
	assert.ErrorIs(t, err, util.ErrInvalidLanguage)
}

func TestCodingSubmitViolationAutofails(t *testing.T) {
	svc, store := newCodingService(&fakeCodingGen{problems: testProblems()})
	id, err := svc.CreateSession(context.Background(), 1, validParams())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, id, nil, "java", model.ReasonProctorViolation)
	require.NoError(t, err)

	session, _ := store.FindByID(id)
	assert.Equal(t, model.StatusAutofailed, session.Status)

	_, err = svc.Submit(context.Background(), 1, id, nil, "java", model.ReasonUserSubmit)
	assert.ErrorIs(t, err, util.ErrSessionFinalized)
}
