package model

import "encoding/json"

// Choice is one selectable option of a multiple-choice question.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a quiz item stored under its session. CorrectChoiceID is the
// ground truth: it is excluded from JSON serialization entirely, so no
// client-facing read can leak it. The scoring pass reads it from the row.
// swagger:model Question
type Question struct {
	ID              string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	SessionID       string          `gorm:"index;type:varchar(36);not null" json:"-"`
	Topic           string          `gorm:"size:100;not null" json:"topic"`
	Difficulty      Difficulty      `gorm:"type:enum('easy','medium','hard');not null" json:"difficulty"`
	Question        string          `gorm:"type:text;not null" json:"question"`
	Choices         json.RawMessage `gorm:"type:json" json:"choices"` // JSON: []Choice, >=2
	CorrectChoiceID string          `gorm:"size:64;not null" json:"-"`
	Explanation     string          `gorm:"type:text" json:"explanation,omitempty"`
}

func (Question) TableName() string {
	return "assessment_questions"
}

// ChoiceList decodes the JSON choices column.
func (q *Question) ChoiceList() []Choice {
	var cs []Choice
	if err := json.Unmarshal(q.Choices, &cs); err != nil {
		return nil
	}
	return cs
}
