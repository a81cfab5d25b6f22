// Package docs holds the OpenAPI document served at /swagger/*, laid out the way
// swag init emits it. Keep it in step with the annotations in internal/handler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/evaluate": {
            "post": {
                "description": "Grades a multiple-choice answer locally or a free response through the language model",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Evaluate an answer",
                "parameters": [
                    {
                        "description": "Question and answer",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.EvaluateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.EvaluationResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/generateQuiz": {
            "post": {
                "description": "Builds a Persian quiz of 2 questions per minute from a URL or a topic, alternating multiple-choice and free-response questions",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Generate a quiz",
                "parameters": [
                    {
                        "description": "Quiz source and duration",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.GenerateQuizRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Quiz"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/summary": {
            "post": {
                "description": "Produces a Persian markdown study summary, missed concepts first",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Summarize a finished quiz",
                "parameters": [
                    {
                        "description": "Quiz transcript",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.SummaryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SummaryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.EvaluationResult": {
            "type": "object",
            "properties": {
                "correct": {"type": "boolean"},
                "feedback": {"type": "string"},
                "score": {"type": "number"}
            }
        },
        "domain.QARecord": {
            "type": "object",
            "required": ["prompt", "type"],
            "properties": {
                "correct": {"type": "boolean"},
                "feedback": {"type": "string"},
                "idealAnswer": {"type": "string"},
                "prompt": {"type": "string"},
                "type": {"type": "string", "enum": ["mcq", "free"]},
                "userAnswer": {"type": "string"}
            }
        },
        "domain.Question": {
            "type": "object",
            "properties": {
                "answerIndex": {"type": "integer"},
                "id": {"type": "string"},
                "idealAnswer": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "prompt": {"type": "string"},
                "type": {"type": "string", "enum": ["mcq", "free"]}
            }
        },
        "domain.Quiz": {
            "type": "object",
            "properties": {
                "durationMinutes": {"type": "integer"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/domain.Question"}},
                "source": {"$ref": "#/definitions/domain.Source"}
            }
        },
        "domain.Source": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["url", "topic"]},
                "value": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "dto.EvaluateRequest": {
            "description": "Request body for evaluating an answer",
            "type": "object",
            "required": ["question", "userAnswer"],
            "properties": {
                "question": {"$ref": "#/definitions/dto.QuestionRequest"},
                "userAnswer": {"type": "string", "example": "2"}
            }
        },
        "dto.GenerateQuizRequest": {
            "description": "Request body for generating a quiz",
            "type": "object",
            "required": ["durationMinutes", "inputType", "value"],
            "properties": {
                "durationMinutes": {"type": "integer", "maximum": 60, "minimum": 1, "example": 5},
                "inputType": {"type": "string", "enum": ["url", "topic"], "example": "topic"},
                "value": {"type": "string", "example": "فتوسنتز"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean", "example": true}
            }
        },
        "dto.QuestionRequest": {
            "type": "object",
            "required": ["id", "prompt", "type"],
            "properties": {
                "answerIndex": {"type": "integer"},
                "id": {"type": "string"},
                "idealAnswer": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "prompt": {"type": "string"},
                "type": {"type": "string", "enum": ["mcq", "free"]}
            }
        },
        "dto.SummaryRequest": {
            "description": "Request body for a study summary",
            "type": "object",
            "required": ["qa"],
            "properties": {
                "qa": {"type": "array", "items": {"$ref": "#/definitions/domain.QARecord"}}
            }
        },
        "dto.SummaryResponse": {
            "type": "object",
            "properties": {
                "summary": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5050",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Tudman API",
	Description:      "Persian quiz generation and grading from a URL or a topic.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
