package model

import "encoding/json"

// Example is a worked input/output pair shown to the candidate.
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// TestCase is one hidden judge input/output pair.
type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// CodingProblem is a coding item stored under its session. TestCases is the
// ground truth and is excluded from JSON serialization, mirroring
// Question.CorrectChoiceID.
// swagger:model CodingProblem
type CodingProblem struct {
	ID                string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	SessionID         string          `gorm:"index;type:varchar(36);not null" json:"-"`
	Topic             string          `gorm:"size:100;not null" json:"topic"`
	Difficulty        Difficulty      `gorm:"type:enum('easy','medium','hard');not null" json:"difficulty"`
	Title             string          `gorm:"size:255;not null" json:"title"`
	Description       string          `gorm:"type:text;not null" json:"description"`
	FunctionSignature string          `gorm:"type:text;not null" json:"functionSignature"`
	InputFormat       string          `gorm:"type:text" json:"inputFormat,omitempty"`
	OutputFormat      string          `gorm:"type:text" json:"outputFormat,omitempty"`
	Constraints       string          `gorm:"type:text" json:"constraints,omitempty"`
	Examples          json.RawMessage `gorm:"type:json" json:"examples"` // JSON: []Example, >=1
	TestCases         json.RawMessage `gorm:"type:json" json:"-"`        // JSON: []TestCase, >=3
}

func (CodingProblem) TableName() string {
	return "coding_problems"
}

// TestCaseList decodes the hidden test-case column (server-side only).
func (p *CodingProblem) TestCaseList() []TestCase {
	var tcs []TestCase
	if err := json.Unmarshal(p.TestCases, &tcs); err != nil {
		return nil
	}
	return tcs
}
