package domain

import (
	"encoding/json"
	"fmt"
)

// SourceKind tells where the study material of a quiz came from
type SourceKind string

const (
	SourceKindURL   SourceKind = "url"
	SourceKindTopic SourceKind = "topic"
)

// IsValid reports whether k is one of the known source kinds
func (k SourceKind) IsValid() bool {
	return k == SourceKindURL || k == SourceKindTopic
}

// Source describes the material a quiz is built from
type Source struct {
	Kind  SourceKind `json:"kind"`
	Value string     `json:"value"`
}

// QuestionType discriminates the Question variants
type QuestionType string

const (
	QuestionTypeMCQ  QuestionType = "mcq"
	QuestionTypeFree QuestionType = "free"
)

// IsValid reports whether t is one of the known question types
func (t QuestionType) IsValid() bool {
	return t == QuestionTypeMCQ || t == QuestionTypeFree
}

// MCQOptionCount is the number of options every multiple-choice question carries.
const MCQOptionCount = 4

// Question is a tagged union over a multiple-choice and a free-response variant.
// Options and AnswerIndex belong to the MCQ variant, IdealAnswer to the free one.
type Question struct {
	ID          string
	Type        QuestionType
	Prompt      string
	Options     []string
	AnswerIndex int
	IdealAnswer string
}

// NewMCQQuestion creates a multiple-choice question
func NewMCQQuestion(id, prompt string, options []string, answerIndex int) Question {
	return Question{
		ID:          id,
		Type:        QuestionTypeMCQ,
		Prompt:      prompt,
		Options:     options,
		AnswerIndex: answerIndex,
	}
}

// NewFreeQuestion creates a free-response question
func NewFreeQuestion(id, prompt, idealAnswer string) Question {
	return Question{
		ID:          id,
		Type:        QuestionTypeFree,
		Prompt:      prompt,
		IdealAnswer: idealAnswer,
	}
}

// IsMCQ reports whether q is a multiple-choice question
func (q Question) IsMCQ() bool {
	return q.Type == QuestionTypeMCQ
}

type mcqQuestionJSON struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Prompt      string       `json:"prompt"`
	Options     []string     `json:"options"`
	AnswerIndex int          `json:"answerIndex"`
}

type freeQuestionJSON struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Prompt      string       `json:"prompt"`
	IdealAnswer string       `json:"idealAnswer"`
}

// MarshalJSON emits only the fields of the question's variant.
func (q Question) MarshalJSON() ([]byte, error) {
	switch q.Type {
	case QuestionTypeMCQ:
		options := q.Options
		if options == nil {
			options = []string{}
		}
		return json.Marshal(mcqQuestionJSON{
			ID:          q.ID,
			Type:        q.Type,
			Prompt:      q.Prompt,
			Options:     options,
			AnswerIndex: q.AnswerIndex,
		})
	case QuestionTypeFree:
		return json.Marshal(freeQuestionJSON{
			ID:          q.ID,
			Type:        q.Type,
			Prompt:      q.Prompt,
			IdealAnswer: q.IdealAnswer,
		})
	default:
		return nil, fmt.Errorf("unknown question type %q", q.Type)
	}
}

// Quiz is the generated quiz. It is assembled once per request and never mutated.
type Quiz struct {
	Source          Source     `json:"source"`
	DurationMinutes int        `json:"durationMinutes"`
	Questions       []Question `json:"questions"`
}

// NewQuiz assembles a quiz
func NewQuiz(source Source, durationMinutes int, questions []Question) *Quiz {
	if questions == nil {
		questions = []Question{}
	}
	return &Quiz{
		Source:          source,
		DurationMinutes: durationMinutes,
		Questions:       questions,
	}
}

// QuestionCounts derives how many questions of each kind a quiz of the given
// duration asks for: two per minute, split evenly with any odd one going to
// free response.
func QuestionCounts(durationMinutes int) (total, numMCQ, numFree int) {
	total = durationMinutes * 2
	numMCQ = total / 2
	numFree = total - numMCQ
	return total, numMCQ, numFree
}

// Interleave merges two ordered sequences by alternating between them,
// starting with mcqs. Once one side runs out the rest of the other side is
// appended in order.
func Interleave(mcqs, frees []Question) []Question {
	total := len(mcqs) + len(frees)
	result := make([]Question, 0, total)
	mi, fi := 0, 0
	for i := 0; i < total; i++ {
		takeMCQ := i%2 == 0
		if takeMCQ && mi >= len(mcqs) {
			takeMCQ = false
		} else if !takeMCQ && fi >= len(frees) {
			takeMCQ = true
		}
		if takeMCQ {
			result = append(result, mcqs[mi])
			mi++
		} else {
			result = append(result, frees[fi])
			fi++
		}
	}
	return result
}

// TruncateQuestions keeps at most limit questions, preserving order.
func TruncateQuestions(questions []Question, limit int) []Question {
	if limit < 0 {
		limit = 0
	}
	if len(questions) <= limit {
		return questions
	}
	return questions[:limit]
}
