package model

import "encoding/json"

// ResultDocKey is the fixed key of the single result document per session.
const ResultDocKey = "latest"

// TopicBreakdown tallies correctness (or passed test cases) per topic.
type TopicBreakdown struct {
	Topic   string `json:"topic"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// DifficultyBreakdown tallies correctness (or passed test cases) per difficulty.
type DifficultyBreakdown struct {
	Difficulty Difficulty `json:"difficulty"`
	Correct    int        `json:"correct"`
	Total      int        `json:"total"`
}

// ProblemEvaluation is the judge verdict for a single coding problem.
// Passed is clamped into [0, Total] before it reaches this struct.
type ProblemEvaluation struct {
	ProblemID string `json:"problemId"`
	Passed    int    `json:"passed"`
	Total     int    `json:"total"`
	Feedback  string `json:"feedback,omitempty"`
}

// SessionResult is the finalized score document for a session, stored once
// under the fixed doc key; a second submit is rejected, not overwritten.
// swagger:model SessionResult
type SessionResult struct {
	BaseModel
	SessionID string      `gorm:"uniqueIndex:idx_session_doc;type:varchar(36);not null" json:"sessionId"`
	DocKey    string      `gorm:"uniqueIndex:idx_session_doc;size:20;default:'latest'" json:"-"`
	UserID    uint        `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Kind      SessionKind `gorm:"type:enum('quiz','coding');not null" json:"kind"`

	// Quiz tallies.
	TotalQuestions int `json:"totalQuestions,omitempty"`
	Correct        int `json:"correct,omitempty"`
	Incorrect      int `json:"incorrect,omitempty"`
	Unanswered     int `json:"unanswered,omitempty"`

	// Coding tallies.
	TotalProblems  int `json:"totalProblems,omitempty"`
	TotalPassed    int `json:"totalPassed,omitempty"`
	TotalTestCases int `json:"totalTestCases,omitempty"`

	ScorePercent        int             `json:"scorePercent"`
	TopicBreakdown      json.RawMessage `gorm:"type:json" json:"topicBreakdown"`        // JSON: []TopicBreakdown
	DifficultyBreakdown json.RawMessage `gorm:"type:json" json:"difficultyBreakdown"`   // JSON: []DifficultyBreakdown
	Evaluations         json.RawMessage `gorm:"type:json" json:"evaluations,omitempty"` // JSON: []ProblemEvaluation (coding)
	AISuggestions       string          `gorm:"type:text" json:"aiSuggestions"`
}

func (SessionResult) TableName() string {
	return "session_results"
}
