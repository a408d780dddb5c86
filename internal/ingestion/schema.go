package ingestion

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const syllabusSchemaJSON = `{
  "type": "object",
  "required": ["name", "modules"],
  "properties": {
    "name": {"type": "string"},
    "subject": {"type": "string"},
    "description": {"type": "string"},
    "modules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["number", "name"],
        "properties": {
          "number": {"type": "string"},
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "hours": {"type": "integer", "minimum": 0},
          "topics": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["number", "name"],
              "properties": {
                "number": {"type": "string"},
                "name": {"type": "string", "minLength": 1},
                "description": {"type": "string"},
                "subtopics": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["number", "name"],
                    "properties": {
                      "number": {"type": "string"},
                      "name": {"type": "string", "minLength": 1},
                      "description": {"type": "string"}
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

const pyqSchemaJSON = `{
  "type": "object",
  "required": ["title", "questions"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "subject": {"type": "string"},
    "year": {"type": "string"},
    "exam_type": {"type": "string"},
    "description": {"type": "string"},
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "text": {"type": "string", "minLength": 1},
          "answer": {"type": "string"},
          "question_type": {"type": "string"},
          "marks": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

var (
	syllabusSchema = mustSchema(syllabusSchemaJSON)
	pyqSchema      = mustSchema(pyqSchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("ingestion: invalid schema: %v", err))
	}
	return s
}

// ValidationError lists every schema violation of one document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "document does not match schema: " + strings.Join(e.Problems, "; ")
}

func validate(schema *gojsonschema.Schema, doc string) error {
	res, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if res.Valid() {
		return nil
	}
	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	return &ValidationError{Problems: problems}
}

