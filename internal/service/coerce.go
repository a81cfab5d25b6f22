package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"tudman/internal/domain"
	"tudman/internal/util"

	"github.com/samber/lo"
)

// rawQuizOutput is the generation response exactly as the model sent it.
// Every field is optional and loosely typed; toQuestions is the only way out.
type rawQuizOutput struct {
	MCQs  []rawMCQ  `json:"mcqs"`
	Frees []rawFree `json:"frees"`
}

type rawMCQ struct {
	ID          json.RawMessage `json:"id"`
	Prompt      json.RawMessage `json:"prompt"`
	Options     json.RawMessage `json:"options"`
	AnswerIndex json.RawMessage `json:"answerIndex"`
}

type rawFree struct {
	ID          json.RawMessage `json:"id"`
	Prompt      json.RawMessage `json:"prompt"`
	IdealAnswer json.RawMessage `json:"idealAnswer"`
}

// rawEvaluation is the grading response as the model sent it
type rawEvaluation struct {
	Correct  json.RawMessage `json:"correct"`
	Score    json.RawMessage `json:"score"`
	Feedback json.RawMessage `json:"feedback"`
}

var errNotJSONObject = errors.New("model response is not a JSON object")

// decodeModelJSON strips reasoning blocks and code fences some models wrap
// around their answer, then decodes the remaining JSON object into v.
func decodeModelJSON(content string, v interface{}) error {
	s := strings.TrimSpace(content)
	if thinkStart := strings.Index(s, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(s, "</think>"); thinkEnd != -1 {
			s = s[thinkEnd+len("</think>"):]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, "{") {
		return errNotJSONObject
	}
	return json.Unmarshal([]byte(s), v)
}

// toQuestions converts the raw output into typed MCQ and free questions.
// Missing or repeated ids are replaced with freshly generated ones.
func (o rawQuizOutput) toQuestions() (mcqs, frees []domain.Question) {
	seen := make(map[string]struct{}, len(o.MCQs)+len(o.Frees))
	uniqueID := func(raw json.RawMessage) string {
		id := textOrEmpty(raw)
		if _, dup := seen[id]; id == "" || dup {
			id = util.NewQuestionID()
		}
		seen[id] = struct{}{}
		return id
	}

	mcqs = lo.Map(o.MCQs, func(m rawMCQ, _ int) domain.Question {
		return domain.NewMCQQuestion(uniqueID(m.ID), textOrEmpty(m.Prompt), optionList(m.Options), integerOrZero(m.AnswerIndex))
	})
	frees = lo.Map(o.Frees, func(f rawFree, _ int) domain.Question {
		return domain.NewFreeQuestion(uniqueID(f.ID), textOrEmpty(f.Prompt), textOrEmpty(f.IdealAnswer))
	})
	return mcqs, frees
}

// toResult converts a raw grading into an EvaluationResult.
// correct follows JSON truthiness, score is clamped into [0,1] and anything
// non-numeric scores 0.
func (r rawEvaluation) toResult() *domain.EvaluationResult {
	score := numberOrZero(r.Score)
	return &domain.EvaluationResult{
		Correct:  truthy(r.Correct),
		Score:    lo.Clamp(score, 0, 1),
		Feedback: textOrEmpty(r.Feedback),
	}
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// text renders any JSON value as text: strings unquoted, everything else as
// its compact JSON literal.
func text(raw json.RawMessage) string {
	if isAbsent(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return buf.String()
}

// textOrEmpty is text for truthy values and "" for falsy ones.
func textOrEmpty(raw json.RawMessage) string {
	if !truthy(raw) {
		return ""
	}
	return text(raw)
}

// optionList keeps at most domain.MCQOptionCount entries of a JSON array.
// Anything that is not an array yields no options.
func optionList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if isAbsent(raw) || json.Unmarshal(raw, &items) != nil {
		return []string{}
	}
	if len(items) > domain.MCQOptionCount {
		items = items[:domain.MCQOptionCount]
	}
	return lo.Map(items, func(item json.RawMessage, _ int) string {
		if isAbsent(item) {
			return "null"
		}
		return text(item)
	})
}

// outOfRangeIndex stands in for integers too large to carry; the quiz schema rejects it.
const outOfRangeIndex = -1

// integerOrZero returns the value when it is a JSON number with no fractional
// part, and 0 for anything else (strings included). Integers beyond the int32
// range come back as outOfRangeIndex.
func integerOrZero(raw json.RawMessage) int {
	var f float64
	if isAbsent(raw) || json.Unmarshal(raw, &f) != nil {
		return 0
	}
	if f != math.Trunc(f) {
		return 0
	}
	if math.Abs(f) > math.MaxInt32 {
		return outOfRangeIndex
	}
	return int(f)
}

// numberOrZero reads a JSON number, a numeric string or a boolean as a float.
// Everything else is 0.
func numberOrZero(raw json.RawMessage) float64 {
	if isAbsent(raw) {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return 1
		}
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		if parsed, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(parsed) {
			return parsed
		}
	}
	return 0
}

// truthy reports whether raw holds a truthy JSON value: anything except an
// absent value, null, false, 0 and "".
func truthy(raw json.RawMessage) bool {
	if isAbsent(raw) {
		return false
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}
