package service

import (
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// GenerationService turns AI completions into validated assessment items.
// Model output is untrusted: it is parsed leniently (markdown fences and
// surrounding prose are tolerated) but validated strictly, and a set that
// fails validation is rejected whole. One attempt per session, no retries.
type GenerationService struct {
	AI *AIService
}

func NewGenerationService(ai *AIService) *GenerationService {
	return &GenerationService{AI: ai}
}

// generatedQuestion mirrors the JSON shape the model is asked for,
// including the ground truth that never leaves the service layer.
type generatedQuestion struct {
	ID              string         `json:"id"`
	Topic           string         `json:"topic"`
	Difficulty      string         `json:"difficulty"`
	Question        string         `json:"question"`
	Choices         []model.Choice `json:"choices"`
	CorrectChoiceID string         `json:"correctChoiceId"`
	Explanation     string         `json:"explanation"`
}

type generatedProblem struct {
	ID                string           `json:"id"`
	Topic             string           `json:"topic"`
	Difficulty        string           `json:"difficulty"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	FunctionSignature string           `json:"functionSignature"`
	InputFormat       string           `json:"inputFormat"`
	OutputFormat      string           `json:"outputFormat"`
	Constraints       string           `json:"constraints"`
	Examples          []model.Example  `json:"examples"`
	TestCases         []model.TestCase `json:"testCases"`
}

type JudgeVerdict struct {
	Passed   int    `json:"passed"`
	Total    int    `json:"total"`
	Feedback string `json:"feedback"`
}

func (s *GenerationService) GenerateQuestions(ctx context.Context, session *model.AssessmentSession) ([]model.Question, error) {
	topicStr := strings.Join(session.TopicList(), ", ")

	prompt := fmt.Sprintf(`Generate %d multiple-choice questions strictly in JSON array (no pre/post text).
Topics: %s
Difficulty: %s (if 'mixed', vary evenly).
For each question include: id (short unique), topic, difficulty (easy|medium|hard), question, choices (A..D with id and text), correctChoiceId (one of choice ids), explanation (1-2 lines).
Keep language concise; no code unless topic requires.
Return ONLY JSON array.`, session.NumQuestions, topicStr, session.Difficulty)

	raw, err := s.AI.Chat(ctx, "generate_quiz", "", prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrGenerationFailed, err)
	}

	var generated []generatedQuestion
	if err := json.Unmarshal(extractJSON(raw), &generated); err != nil {
		return nil, fmt.Errorf("%w: malformed model output: %v", util.ErrGenerationFailed, err)
	}

	questions := make([]model.Question, 0, len(generated))
	for i, g := range generated {
		if err := validateQuestion(&g); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", util.ErrGenerationFailed, i+1, err)
		}
		choices, err := json.Marshal(g.Choices)
		if err != nil {
			return nil, err
		}
		questions = append(questions, model.Question{
			// Zero-padded so the ids sort lexically in stored order.
			ID:              fmt.Sprintf("%s-q%02d", session.ID, i+1),
			SessionID:       session.ID,
			Topic:           g.Topic,
			Difficulty:      model.Difficulty(g.Difficulty),
			Question:        g.Question,
			Choices:         choices,
			CorrectChoiceID: g.CorrectChoiceID,
			Explanation:     g.Explanation,
		})
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: model returned no questions", util.ErrGenerationFailed)
	}
	return questions, nil
}

func (s *GenerationService) GenerateProblems(ctx context.Context, session *model.AssessmentSession) ([]model.CodingProblem, error) {
	topicStr := strings.Join(session.TopicList(), ", ")

	prompt := fmt.Sprintf(`Generate %d coding problems for topics [%s] with difficulty %s (if 'mixed', vary).
Each problem must have fields: id (short unique), topic, difficulty (easy|medium|hard), title, description (clear statement), functionSignature (Java OR C++), inputFormat, outputFormat, constraints, examples (>=1 with input, output, explanation), and testCases (>=3) with simple I/O.
Keep statements concise and unambiguous. Avoid external libs. Ensure deterministic outputs.
Return ONLY JSON array.`, session.NumQuestions, topicStr, session.Difficulty)

	raw, err := s.AI.Chat(ctx, "generate_coding", "", prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrGenerationFailed, err)
	}

	var generated []generatedProblem
	if err := json.Unmarshal(extractJSON(raw), &generated); err != nil {
		return nil, fmt.Errorf("%w: malformed model output: %v", util.ErrGenerationFailed, err)
	}

	problems := make([]model.CodingProblem, 0, len(generated))
	for i, g := range generated {
		if err := validateProblem(&g); err != nil {
			return nil, fmt.Errorf("%w: problem %d: %v", util.ErrGenerationFailed, i+1, err)
		}
		examples, err := json.Marshal(g.Examples)
		if err != nil {
			return nil, err
		}
		testCases, err := json.Marshal(g.TestCases)
		if err != nil {
			return nil, err
		}
		problems = append(problems, model.CodingProblem{
			ID:                fmt.Sprintf("%s-p%02d", session.ID, i+1),
			SessionID:         session.ID,
			Topic:             g.Topic,
			Difficulty:        model.Difficulty(g.Difficulty),
			Title:             g.Title,
			Description:       g.Description,
			FunctionSignature: g.FunctionSignature,
			InputFormat:       g.InputFormat,
			OutputFormat:      g.OutputFormat,
			Constraints:       g.Constraints,
			Examples:          examples,
			TestCases:         testCases,
		})
	}

	if len(problems) == 0 {
		return nil, fmt.Errorf("%w: model returned no problems", util.ErrGenerationFailed)
	}
	return problems, nil
}

// Judge asks the model to act as a deterministic judge for one problem.
// The returned passed count is raw model output; the caller clamps it.
func (s *GenerationService) Judge(ctx context.Context, problem *model.CodingProblem, code, language string) (*JudgeVerdict, error) {
	prompt := fmt.Sprintf(`You are a strict coding judge. Given a problem and user code in %s, simulate compilation and running against the provided test cases. Count how many pass based on exact matches of stdout. Be deterministic.

Problem Title: %s
Description: %s
Function Signature: %s
Test Cases (JSON): %s

User Code (%s):
%s

Return ONLY a JSON object with passed, total, feedback.`,
		strings.ToUpper(language),
		problem.Title,
		problem.Description,
		problem.FunctionSignature,
		string(problem.TestCases),
		language,
		code,
	)

	raw, err := s.AI.Chat(ctx, "judge_coding", "", prompt)
	if err != nil {
		return nil, err
	}

	var verdict JudgeVerdict
	if err := json.Unmarshal(extractJSON(raw), &verdict); err != nil {
		return nil, fmt.Errorf("malformed judge output: %v", err)
	}
	return &verdict, nil
}

// SuggestForQuiz produces the study advice block of a quiz result.
// Callers treat an error as "no suggestions", never as a failed submit.
func (s *GenerationService) SuggestForQuiz(ctx context.Context, result *model.SessionResult) (string, error) {
	prompt := fmt.Sprintf(`Provide concise, actionable study advice (bulleted) for a student based on this test summary:
Score: %d%% (Correct %d/%d)
Topic breakdown: %s
Difficulty breakdown: %s
Keep it 6-10 bullets, include links (markdown) to high quality resources.`,
		result.ScorePercent,
		result.Correct,
		result.TotalQuestions,
		string(result.TopicBreakdown),
		string(result.DifficultyBreakdown),
	)

	return s.AI.Chat(ctx, "suggest_quiz", "", prompt)
}

func (s *GenerationService) SuggestForCoding(ctx context.Context, result *model.SessionResult) (string, error) {
	prompt := fmt.Sprintf(`Provide concise, actionable coding practice advice (markdown bullet list) for this coding test result.
Score: %d%% (%d/%d test cases)
Topic breakdown: %s
Difficulty breakdown: %s
Constraints: 6-10 bullets, prioritize weakest topics, include specific patterns (two pointers, sliding window, recursion vs DP choice), and optionally add links in markdown. Keep one sentence per bullet.`,
		result.ScorePercent,
		result.TotalPassed,
		result.TotalTestCases,
		string(result.TopicBreakdown),
		string(result.DifficultyBreakdown),
	)

	return s.AI.Chat(ctx, "suggest_coding", "", prompt)
}

func validateQuestion(g *generatedQuestion) error {
	if strings.TrimSpace(g.Question) == "" {
		return fmt.Errorf("empty question text")
	}
	if !model.ItemDifficultyValid(model.Difficulty(g.Difficulty)) {
		return fmt.Errorf("invalid difficulty %q", g.Difficulty)
	}
	if len(g.Choices) < 2 {
		return fmt.Errorf("needs at least 2 choices, got %d", len(g.Choices))
	}
	for _, c := range g.Choices {
		if c.ID == "" || strings.TrimSpace(c.Text) == "" {
			return fmt.Errorf("choice with empty id or text")
		}
	}
	found := false
	for _, c := range g.Choices {
		if c.ID == g.CorrectChoiceID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("correctChoiceId %q not among choices", g.CorrectChoiceID)
	}
	return nil
}

func validateProblem(g *generatedProblem) error {
	if strings.TrimSpace(g.Title) == "" || strings.TrimSpace(g.Description) == "" {
		return fmt.Errorf("empty title or description")
	}
	if strings.TrimSpace(g.FunctionSignature) == "" {
		return fmt.Errorf("empty function signature")
	}
	if !model.ItemDifficultyValid(model.Difficulty(g.Difficulty)) {
		return fmt.Errorf("invalid difficulty %q", g.Difficulty)
	}
	if len(g.Examples) < 1 {
		return fmt.Errorf("needs at least 1 example")
	}
	if len(g.TestCases) < 3 {
		return fmt.Errorf("needs at least 3 test cases, got %d", len(g.TestCases))
	}
	return nil
}

// extractJSON tolerates markdown fences and prose around the payload by
// cutting from the first JSON opener to its matching last closer.
func extractJSON(raw string) []byte {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return []byte(s)
	}
	var end int
	if s[start] == '[' {
		end = strings.LastIndex(s, "]")
	} else {
		end = strings.LastIndex(s, "}")
	}
	if end <= start {
		return []byte(s)
	}
	return []byte(s[start : end+1])
}
