package service

import (
	"assess_prep_backend/internal/model"
	"math"
)

// Pure scoring functions. Nothing here touches the database or the AI
// endpoint, which keeps every scoring rule testable in isolation.

// QuizScore is the deterministic part of a quiz result.
type QuizScore struct {
	TotalQuestions      int
	Correct             int
	Incorrect           int
	Unanswered          int
	ScorePercent        int
	TopicBreakdown      []model.TopicBreakdown
	DifficultyBreakdown []model.DifficultyBreakdown
}

// CodingScore is the deterministic aggregation of per-problem verdicts.
type CodingScore struct {
	TotalProblems       int
	TotalPassed         int
	TotalTestCases      int
	ScorePercent        int
	TopicBreakdown      []model.TopicBreakdown
	DifficultyBreakdown []model.DifficultyBreakdown
}

// Percent rounds to the nearest whole percent and defines 0/0 as 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// ClampPassed forces a judge-reported pass count into [0, total].
func ClampPassed(passed, total int) int {
	if passed < 0 {
		return 0
	}
	if passed > total {
		return total
	}
	return passed
}

// ScoreQuiz grades answers against the stored question set. An answer for
// an unknown question id is ignored; a question without an answer counts
// as unanswered. Breakdown entries appear in first-seen question order.
func ScoreQuiz(questions []model.Question, answers map[string]string) QuizScore {
	score := QuizScore{TotalQuestions: len(questions)}

	topics := newTallySet()
	diffs := newTallySet()

	for _, q := range questions {
		given, answered := answers[q.ID]
		isCorrect := answered && given == q.CorrectChoiceID

		switch {
		case !answered:
			score.Unanswered++
		case isCorrect:
			score.Correct++
		default:
			score.Incorrect++
		}

		topics.add(q.Topic, isCorrect)
		diffs.add(string(q.Difficulty), isCorrect)
	}

	score.ScorePercent = Percent(score.Correct, score.TotalQuestions)
	score.TopicBreakdown = topics.topicBreakdown()
	score.DifficultyBreakdown = diffs.difficultyBreakdown()
	return score
}

// AggregateCoding folds clamped per-problem verdicts into session totals.
// Breakdown entries appear in first-seen problem order; the Correct field
// carries passed test case counts.
func AggregateCoding(problems []model.CodingProblem, evaluations []model.ProblemEvaluation) CodingScore {
	score := CodingScore{TotalProblems: len(problems)}

	topics := newTallySet()
	diffs := newTallySet()

	for i, p := range problems {
		e := evaluations[i]
		score.TotalPassed += e.Passed
		score.TotalTestCases += e.Total

		topics.addN(p.Topic, e.Passed, e.Total)
		diffs.addN(string(p.Difficulty), e.Passed, e.Total)
	}

	score.ScorePercent = Percent(score.TotalPassed, score.TotalTestCases)
	score.TopicBreakdown = topics.topicBreakdown()
	score.DifficultyBreakdown = diffs.difficultyBreakdown()
	return score
}

// tallySet keeps per-key correct/total counts in insertion order.
type tallySet struct {
	order []string
	index map[string]int
	tally []struct{ correct, total int }
}

func newTallySet() *tallySet {
	return &tallySet{index: make(map[string]int)}
}

func (t *tallySet) add(key string, correct bool) {
	n := 0
	if correct {
		n = 1
	}
	t.addN(key, n, 1)
}

func (t *tallySet) addN(key string, correct, total int) {
	i, ok := t.index[key]
	if !ok {
		i = len(t.order)
		t.index[key] = i
		t.order = append(t.order, key)
		t.tally = append(t.tally, struct{ correct, total int }{})
	}
	t.tally[i].correct += correct
	t.tally[i].total += total
}

func (t *tallySet) topicBreakdown() []model.TopicBreakdown {
	out := make([]model.TopicBreakdown, len(t.order))
	for i, key := range t.order {
		out[i] = model.TopicBreakdown{
			Topic:   key,
			Correct: t.tally[i].correct,
			Total:   t.tally[i].total,
		}
	}
	return out
}

func (t *tallySet) difficultyBreakdown() []model.DifficultyBreakdown {
	out := make([]model.DifficultyBreakdown, len(t.order))
	for i, key := range t.order {
		out[i] = model.DifficultyBreakdown{
			Difficulty: model.Difficulty(key),
			Correct:    t.tally[i].correct,
			Total:      t.tally[i].total,
		}
	}
	return out
}
