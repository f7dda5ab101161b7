package model

import "encoding/json"

type SessionKind string

const (
	KindQuiz   SessionKind = "quiz"
	KindCoding SessionKind = "coding"
)

type SessionStatus string

const (
	StatusPending    SessionStatus = "pending"
	StatusActive     SessionStatus = "active"
	StatusSubmitted  SessionStatus = "submitted"
	StatusAutofailed SessionStatus = "autofailed"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

// Valid reports whether d is an accepted session-level difficulty.
// Item-level difficulties exclude "mixed"; see ItemDifficultyValid.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed:
		return true
	}
	return false
}

func ItemDifficultyValid(d Difficulty) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// AssessmentSession is one candidate's configured attempt at a quiz or a
// coding test. Status is a forward-only state machine:
// pending -> active -> {submitted | autofailed}.
// swagger:model AssessmentSession
type AssessmentSession struct {
	UUIDBase
	UserID          uint            `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Kind            SessionKind     `gorm:"type:enum('quiz','coding');not null" json:"kind"`
	Topics          json.RawMessage `gorm:"type:json" json:"topics"` // JSON: []string
	NumQuestions    int             `gorm:"not null" json:"numQuestions"`
	DurationMinutes int             `gorm:"not null" json:"durationMinutes"`
	Difficulty      Difficulty      `gorm:"type:enum('easy','medium','hard','mixed');not null" json:"difficulty"`
	Status          SessionStatus   `gorm:"type:enum('pending','active','submitted','autofailed');default:'pending'" json:"status"`
}

func (AssessmentSession) TableName() string {
	return "assessment_sessions"
}

// TopicList decodes the JSON topics column; a corrupt column yields nil.
func (s *AssessmentSession) TopicList() []string {
	var topics []string
	if err := json.Unmarshal(s.Topics, &topics); err != nil {
		return nil
	}
	return topics
}
