package validation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"tudman/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const quizSchemaURL = "schema://tudman/quiz.json"

//go:embed quiz.schema.json
var quizSchemaDocument []byte

var compileQuizSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal(quizSchemaDocument, &doc); err != nil {
		return nil, fmt.Errorf("parse quiz schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(quizSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add quiz schema resource: %w", err)
	}
	schema, err := c.Compile(quizSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile quiz schema: %w", err)
	}
	return schema, nil
})

// QuizValidator implements domain.QuizValidator against the canonical quiz
// JSON Schema. Question ids must also be unique within the quiz.
type QuizValidator struct{}

func NewQuizValidator() *QuizValidator {
	return &QuizValidator{}
}

// Validate returns quiz unchanged when it conforms and a SCHEMA_VIOLATION otherwise.
func (v *QuizValidator) Validate(quiz *domain.Quiz) (*domain.Quiz, error) {
	if quiz == nil {
		return nil, domain.NewSchemaViolationError(fmt.Errorf("quiz is nil"))
	}

	schema, err := compileQuizSchema()
	if err != nil {
		return nil, domain.NewInternalError("Quiz schema is unavailable", err)
	}

	raw, err := json.Marshal(quiz)
	if err != nil {
		return nil, domain.NewSchemaViolationError(err)
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, domain.NewSchemaViolationError(err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, domain.NewSchemaViolationError(err)
	}

	seen := make(map[string]struct{}, len(quiz.Questions))
	for i, q := range quiz.Questions {
		if _, dup := seen[q.ID]; dup {
			return nil, domain.NewSchemaViolationError(fmt.Errorf("questions[%d]: duplicate id %q", i, q.ID))
		}
		seen[q.ID] = struct{}{}
	}
	return quiz, nil
}

var _ domain.QuizValidator = (*QuizValidator)(nil)
