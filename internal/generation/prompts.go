package generation

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/xeipuuv/gojsonschema"
)

// promptInput is the data every prompt template is rendered with. The
// context keys mirror the aggregator's output.
type promptInput struct {
	Type             QuestionType
	Label            string
	Count            int
	Marks            int
	Difficulty       string
	Instructions     string
	Language         string
	WordLimit        int
	SyllabusText     string
	Topics           []string
	ExampleQuestions []string
}

type promptSpec struct {
	System string
	User   string
	Schema string
}

type prompt struct {
	system *template.Template
	user   *template.Template
	schema *gojsonschema.Schema
}

func compile(name string, s promptSpec) (prompt, error) {
	sys, err := template.New(name + "/system").Option("missingkey=zero").Parse(s.System)
	if err != nil {
		return prompt{}, fmt.Errorf("%s system template parse: %w", name, err)
	}
	user, err := template.New(name + "/user").Option("missingkey=zero").Parse(s.User)
	if err != nil {
		return prompt{}, fmt.Errorf("%s user template parse: %w", name, err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s.Schema))
	if err != nil {
		return prompt{}, fmt.Errorf("%s schema: %w", name, err)
	}
	return prompt{system: sys, user: user, schema: schema}, nil
}

func (p prompt) render(in promptInput) (system, user string, err error) {
	var b bytes.Buffer
	if err := p.system.Execute(&b, in); err != nil {
		return "", "", err
	}
	system = strings.TrimSpace(b.String())
	b.Reset()
	if err := p.user.Execute(&b, in); err != nil {
		return "", "", err
	}
	return system, strings.TrimSpace(b.String()), nil
}

const questionsSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "text": {"type": "string", "minLength": 1},
          "answer": {"type": "string"},
          "options": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["text"],
              "properties": {
                "text": {"type": "string", "minLength": 1},
                "correct": {"type": ["boolean", "string"]}
              }
            }
          },
          "model_answer": {"type": "string"},
          "keywords": {"type": "array", "items": {"type": "string"}},
          "subtopics": {"type": "array", "items": {"type": "string"}},
          "word_limit": {"type": "integer", "minimum": 0},
          "explanation": {"type": "string"},
          "course_outcomes": {"type": "integer", "minimum": 0},
          "blooms_taxonomy": {"type": "string"},
          "blooms_taxanomy": {"type": "string"},
          "difficulty_level": {"type": "string", "enum": ["easy", "medium", "hard", "Easy", "Medium", "Hard"]},
          "difficulty_rating": {"type": "integer", "minimum": 1, "maximum": 5},
          "marks": {"type": "integer", "minimum": 0},
          "metadata": {"type": "object"}
        }
      }
    }
  }
}`

const systemTemplate = `You write {{.Label}} questions for university exams.
Return one JSON object and nothing else:
{"questions": [{"text": string, "answer": string,
{{- if eq .Type "mcq"}} "options": [{"text": string, "correct": boolean}],
{{- else if eq .Type "short"}} "model_answer": string, "keywords": [string], "word_limit": integer,
{{- else if eq .Type "long"}} "model_answer": string, "subtopics": [string], "word_limit": integer,
{{- end}} "explanation": string, "course_outcomes": integer, "blooms_taxonomy": string, "difficulty_level": "easy" | "medium" | "hard", "difficulty_rating": integer from 1 to 5, "marks": integer, "metadata": object}]}
{{- if eq .Type "mcq"}}
Each question has exactly four options and exactly one of them is correct. The answer is the text of the correct option.
{{- else if eq .Type "fib"}}
Mark the blank in each question with "_____" and give the missing words as the answer.
{{- else if eq .Type "long"}}
Questions need a structured, multi-paragraph answer worth {{.Marks}} marks. The model answer outlines the key points and subtopics lists what a full answer covers.
{{- else}}
Questions need a concise answer of a few sentences worth {{.Marks}} marks. Keywords are the terms a good answer must contain.
{{- end}}
The explanation is a short grading rubric. blooms_taxonomy is one of Remember, Understand, Apply, Analyze, Evaluate, Create.
Write every question, answer and explanation in {{.Language}}.
Stay within the syllabus given by the user. Create original questions that are not similar to the previous questions listed.`

const userTemplate = `Generate {{.Count}} {{.Label}} questions{{if .Difficulty}} of {{.Difficulty}} difficulty{{end}}.
{{- if .WordLimit}}
Answers should stay within {{.WordLimit}} words.
{{- end}}
{{- if .SyllabusText}}

Syllabus:
{{.SyllabusText}}
{{- end}}
{{- if .Topics}}

Focus topics:
{{- range .Topics}}
- {{.}}
{{- end}}
{{- end}}
{{- if .ExampleQuestions}}

Previous questions:
{{- range .ExampleQuestions}}
- {{.}}
{{- end}}
{{- end}}
{{- if .Instructions}}

Additional instructions: {{.Instructions}}
{{- end}}`

var questionPrompt = mustCompile("questions", promptSpec{
	System: systemTemplate,
	User:   userTemplate,
	Schema: questionsSchema,
})

func mustCompile(name string, s promptSpec) prompt {
	p, err := compile(name, s)
	if err != nil {
		panic(err)
	}
	return p
}
