// Package datasync imports course content files into the database.
package datasync

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/k-hayashi/quizloop/internal/question"
)

// CourseFile is one YAML course definition: the questions and the optional
// pre-built exam sets.
type CourseFile struct {
	CourseID  string         `yaml:"course_id"`
	Questions []QuestionSpec `yaml:"questions"`
	ExamSets  []ExamSetSpec  `yaml:"exam_sets"`
}

// QuestionSpec is one question entry of a course file.
type QuestionSpec struct {
	ID            string   `yaml:"id"`
	Type          string   `yaml:"type"`
	Prompt        string   `yaml:"prompt"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Explanation   string   `yaml:"explanation"`
	Difficulty    int      `yaml:"difficulty"`
}

// ExamSetSpec is one named fixed exam of a course file, in question order.
type ExamSetSpec struct {
	Name      string   `yaml:"name"`
	Questions []string `yaml:"questions"`
}

// LoadCourseFile reads and validates a YAML course file.
func LoadCourseFile(path string) (*CourseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course file %s: %w", path, err)
	}

	var course CourseFile
	if err := yaml.Unmarshal(data, &course); err != nil {
		return nil, fmt.Errorf("parse course file %s: %w", path, err)
	}
	if err := course.validate(); err != nil {
		return nil, fmt.Errorf("course file %s: %w", path, err)
	}
	return &course, nil
}

func (c *CourseFile) validate() error {
	if c.CourseID == "" {
		return fmt.Errorf("course_id is required")
	}

	ids := make(map[string]bool, len(c.Questions))
	for i, q := range c.Questions {
		if q.ID == "" {
			return fmt.Errorf("question %d: id is required", i)
		}
		if ids[q.ID] {
			return fmt.Errorf("question %s: duplicate id", q.ID)
		}
		ids[q.ID] = true
		if !question.Type(q.Type).Valid() {
			return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
		}
		if q.Prompt == "" {
			return fmt.Errorf("question %s: prompt is required", q.ID)
		}
		if q.CorrectAnswer == "" {
			return fmt.Errorf("question %s: correct_answer is required", q.ID)
		}
	}

	for _, set := range c.ExamSets {
		if set.Name == "" {
			return fmt.Errorf("exam set without a name")
		}
		for _, id := range set.Questions {
			if !ids[id] {
				return fmt.Errorf("exam set %s: unknown question %s", set.Name, id)
			}
		}
	}
	return nil
}
