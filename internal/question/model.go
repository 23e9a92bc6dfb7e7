// Package question defines the question catalog contract consumed by the
// review engine, plus the answer-key comparison rules used for grading.
package question

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Type identifies how a question is answered and graded.
type Type string

const (
	TypeSingleChoice   Type = "single_choice"
	TypeMultipleChoice Type = "multiple_choice"
	TypeTrueFalse      Type = "true_false"
)

// Valid reports whether t is a known question type.
func (t Type) Valid() bool {
	switch t {
	case TypeSingleChoice, TypeMultipleChoice, TypeTrueFalse:
		return true
	}
	return false
}

// Options is the list of answer choices, stored as a JSON column.
type Options []string

func (o Options) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	return string(b), nil
}

func (o *Options) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*o = nil
		return nil
	default:
		return fmt.Errorf("scan options: unsupported type %T", src)
	}
	if err := json.Unmarshal(data, o); err != nil {
		return fmt.Errorf("unmarshal options: %w", err)
	}
	return nil
}

// Question is a single catalog entry. CorrectAnswer and Explanation are the
// answer key; they must never reach a learner while a batch is open.
type Question struct {
	ID            string  `db:"id" json:"id"`
	CourseID      string  `db:"course_id" json:"course_id"`
	Type          Type    `db:"type" json:"type"`
	Prompt        string  `db:"prompt" json:"prompt"`
	Options       Options `db:"options" json:"options,omitempty"`
	CorrectAnswer string  `db:"correct_answer" json:"correct_answer,omitempty"`
	Explanation   string  `db:"explanation" json:"explanation,omitempty"`
	Difficulty    int     `db:"difficulty" json:"difficulty"`
}

// Grade compares a submitted answer against the answer key.
//
// Single-choice and true/false use exact (case-insensitive, trimmed) string
// comparison. Multiple-choice compares the set of selected option letters, so
// "ACD", "a,c,d" and "D C A" all grade the same. An empty submission is wrong.
func (q *Question) Grade(submitted string) bool {
	submitted = strings.TrimSpace(submitted)
	if submitted == "" {
		return false
	}

	if q.Type == TypeMultipleChoice {
		return letterSet(submitted) == letterSet(q.CorrectAnswer)
	}
	return strings.EqualFold(submitted, strings.TrimSpace(q.CorrectAnswer))
}

// letterSet reduces an answer like "a, C,d" to a canonical sorted letter
// string ("ACD"). Non-letter runes are separators.
func letterSet(answer string) string {
	seen := [26]bool{}
	for _, r := range strings.ToUpper(answer) {
		if r >= 'A' && r <= 'Z' {
			seen[r-'A'] = true
		}
	}
	var b strings.Builder
	for i, ok := range seen {
		if ok {
			b.WriteRune(rune('A' + i))
		}
	}
	return b.String()
}
