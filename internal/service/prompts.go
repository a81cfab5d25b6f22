package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"tudman/internal/domain"

	"github.com/invopop/jsonschema"
)

const (
	language = "fa"

	quizSystemPrompt = "You are an educational quiz generator for Persian (Farsi) students in Iran. " +
		"Generate concise, accurate questions from provided material. Output STRICT JSON only."
	quizFormat = "Return JSON with mcqs and frees arrays. MCQs: id, prompt (fa), 4 options (fa), answerIndex. " +
		"Frees: id, prompt (fa), idealAnswer (fa)."
	quizLevel = "concise, exam-like, balanced coverage"

	gradingSystemPrompt = "You are an Iranian tutor. Evaluate student free-response briefly in Persian. " +
		"Return JSON {correct:boolean, feedback:string, score:number between 0 and 1}."

	summarySystemPrompt = "Create a concise Persian study summary with bullet points, key definitions, " +
		"and missed concepts first. Output markdown in Persian."
	summaryTemperature = 0.2
)

// Output contracts shown to the model. The responses themselves are decoded
// into the loose raw types in coerce.go.
type quizOutput struct {
	MCQs  []mcqOutput  `json:"mcqs" jsonschema:"description=multiple-choice questions"`
	Frees []freeOutput `json:"frees" jsonschema:"description=free-response questions"`
}

type mcqOutput struct {
	ID          string   `json:"id" jsonschema:"description=short unique question id"`
	Prompt      string   `json:"prompt" jsonschema:"description=question text in Persian"`
	Options     []string `json:"options" jsonschema:"minItems=4,maxItems=4,description=four answer options in Persian"`
	AnswerIndex int      `json:"answerIndex" jsonschema:"minimum=0,maximum=3,description=zero-based index of the correct option"`
}

type freeOutput struct {
	ID          string `json:"id" jsonschema:"description=short unique question id"`
	Prompt      string `json:"prompt" jsonschema:"description=question text in Persian"`
	IdealAnswer string `json:"idealAnswer" jsonschema:"description=model answer in Persian"`
}

var quizOutputSchema = sync.OnceValue(outputSchema[quizOutput])

func outputSchema[T any]() json.RawMessage {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	raw, err := json.Marshal(schema)
	if err != nil {
		// reflected schemas of static types always marshal
		panic(fmt.Sprintf("marshal output schema: %v", err))
	}
	return raw
}

type quizRequirements struct {
	NumMCQ  int             `json:"numMcq"`
	NumFree int             `json:"numFree"`
	Format  string          `json:"format"`
	Level   string          `json:"level"`
	Schema  json.RawMessage `json:"schema"`
}

type quizPrompt struct {
	Language     string           `json:"language"`
	Material     string           `json:"material"`
	Requirements quizRequirements `json:"requirements"`
}

type gradingPrompt struct {
	Prompt      string `json:"prompt"`
	IdealAnswer string `json:"idealAnswer"`
	Student     string `json:"student"`
	Language    string `json:"language"`
}

type summaryPrompt struct {
	QA []domain.QARecord `json:"qa"`
}

func buildQuizMessages(material string, numMCQ, numFree int) ([]domain.ChatMessage, error) {
	user, err := json.Marshal(quizPrompt{
		Language: language,
		Material: material,
		Requirements: quizRequirements{
			NumMCQ:  numMCQ,
			NumFree: numFree,
			Format:  quizFormat,
			Level:   quizLevel,
			Schema:  quizOutputSchema(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode quiz prompt: %w", err)
	}
	return []domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: quizSystemPrompt},
		{Role: domain.ChatRoleUser, Content: string(user)},
	}, nil
}

func buildGradingMessages(question domain.Question, userAnswer string) ([]domain.ChatMessage, error) {
	user, err := json.Marshal(gradingPrompt{
		Prompt:      question.Prompt,
		IdealAnswer: question.IdealAnswer,
		Student:     userAnswer,
		Language:    language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode grading prompt: %w", err)
	}
	return []domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: gradingSystemPrompt},
		{Role: domain.ChatRoleUser, Content: string(user)},
	}, nil
}

func buildSummaryMessages(transcript []domain.QARecord) ([]domain.ChatMessage, error) {
	if transcript == nil {
		transcript = []domain.QARecord{}
	}
	user, err := json.Marshal(summaryPrompt{QA: transcript})
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary prompt: %w", err)
	}
	return []domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: summarySystemPrompt},
		{Role: domain.ChatRoleUser, Content: string(user)},
	}, nil
}
