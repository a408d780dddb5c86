// Package generation prompts the LLM for exam questions using context
// assembled from the curriculum graph.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/llm"
	"github.com/AndrivA89/question-forge/internal/platform/logger"
)

type QuestionType string

const (
	TypeMCQ   QuestionType = "mcq"
	TypeFIB   QuestionType = "fib"
	TypeShort QuestionType = "short"
	TypeLong  QuestionType = "long"
)

var (
	ErrUnknownType    = errors.New("unknown question type")
	ErrInvalidRequest = errors.New("invalid generation request")
)

func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeMCQ, TypeFIB, TypeShort, TypeLong:
		return t, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownType, s)
	}
}

func (t QuestionType) label() string {
	switch t {
	case TypeMCQ:
		return "multiple-choice"
	case TypeFIB:
		return "fill-in-the-blank"
	case TypeShort:
		return "short-answer"
	default:
		return "long-answer"
	}
}

// DefaultMarks is the weight of one question of type t.
func (t QuestionType) DefaultMarks() int {
	switch t {
	case TypeShort:
		return 2
	case TypeLong:
		return 10
	default:
		return 1
	}
}

const (
	defaultCount = 5
	maxCount     = 20
)

// ContextProvider is implemented by usecase.ContextAggregator.
type ContextProvider interface {
	GetSyllabusContext(ctx context.Context, syllabusID string, topicIDs []string) (domain.SyllabusContext, error)
	GetQuestionsContext(ctx context.Context, topicIDs []string, questionType string, maxExamples int) (domain.QuestionsContext, error)
	CheckQuestionUniqueness(ctx context.Context, text, questionType string) (domain.UniquenessReport, error)
}

type Request struct {
	SyllabusID   string   `json:"syllabus_id,omitempty"`
	TopicIDs     []string `json:"topic_ids,omitempty"`
	Count        int      `json:"count,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	// Language is a code such as "eng" or "hin", or a language name.
	Language  string `json:"language,omitempty"`
	WordLimit int    `json:"word_limit,omitempty"`
}

// Option is one choice of a multiple-choice question.
type Option struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// GeneratedQuestion carries the common fields of every type plus the
// type-specific ones: options for mcq, model answer, keywords and word limit
// for short, model answer, subtopics and word limit for long.
type GeneratedQuestion struct {
	Text             string         `json:"text"`
	Answer           string         `json:"answer"`
	Options          []Option       `json:"options,omitempty"`
	ModelAnswer      string         `json:"model_answer,omitempty"`
	Keywords         []string       `json:"keywords,omitempty"`
	Subtopics        []string       `json:"subtopics,omitempty"`
	WordLimit        int            `json:"word_limit,omitempty"`
	Explanation      string         `json:"explanation,omitempty"`
	CourseOutcome    int            `json:"course_outcomes,omitempty"`
	BloomsTaxonomy   string         `json:"blooms_taxonomy,omitempty"`
	DifficultyLevel  string         `json:"difficulty_level,omitempty"`
	DifficultyRating int            `json:"difficulty_rating,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	QuestionType     QuestionType   `json:"question_type"`
	Marks            int            `json:"marks"`
	IsUnique         bool           `json:"is_unique"`
	SimilarCount     int            `json:"similar_count"`
}

// languages maps the accepted language codes to the name used in prompts.
var languages = map[string]string{
	"eng":     "English",
	"hin":     "Hindi",
	"tel":     "Telugu",
	"mar":     "Marathi",
	"tamil":   "Tamil",
	"kannada": "Kannada",
	"guj":     "Gujarati",
}

// LanguageName resolves a code or a name to a supported language, falling
// back to English.
func LanguageName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if name, ok := languages[s]; ok {
		return name
	}
	for _, name := range languages {
		if strings.ToLower(name) == s {
			return name
		}
	}
	return "English"
}

type Generator struct {
	llm    llm.Completer
	source ContextProvider
	log    *logger.Logger
}

func NewGenerator(completer llm.Completer, provider ContextProvider, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{llm: completer, source: provider, log: log.With("component", "Generator")}
}

// Generate asks the LLM for req.Count questions of type t and annotates each
// with the uniqueness check against stored questions.
func (g *Generator) Generate(ctx context.Context, t QuestionType, req Request) ([]GeneratedQuestion, error) {
	if _, err := ParseQuestionType(string(t)); err != nil {
		return nil, err
	}
	if req.SyllabusID == "" && len(req.TopicIDs) == 0 {
		return nil, fmt.Errorf("%w: syllabus_id or topic_ids required", ErrInvalidRequest)
	}
	count := req.Count
	if count <= 0 {
		count = defaultCount
	}
	if count > maxCount {
		count = maxCount
	}

	in, err := g.input(ctx, t, req)
	if err != nil {
		return nil, err
	}
	in.Count = count

	system, user, err := questionPrompt.render(in)
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}
	reply, err := g.llm.Complete(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("generate %s questions: %w", t, err)
	}
	questions, err := parseQuestions(reply, questionPrompt.schema, t)
	if err != nil {
		return nil, err
	}
	level := strings.ToLower(strings.TrimSpace(req.Difficulty))
	if len(questions) > count {
		questions = questions[:count]
	}

	for i := range questions {
		if questions[i].DifficultyLevel == "" {
			questions[i].DifficultyLevel = level
		}
		if questions[i].WordLimit == 0 && t != TypeMCQ && t != TypeFIB {
			questions[i].WordLimit = req.WordLimit
		}
		report, err := g.source.CheckQuestionUniqueness(ctx, questions[i].Text, string(t))
		if err != nil {
			g.log.Warn("uniqueness check failed", "error", err)
			questions[i].IsUnique = true
			continue
		}
		questions[i].IsUnique = report.IsUnique
		questions[i].SimilarCount = len(report.SimilarQuestions)
	}
	return questions, nil
}

func (g *Generator) input(ctx context.Context, t QuestionType, req Request) (promptInput, error) {
	in := promptInput{
		Type:         t,
		Label:        t.label(),
		Marks:        t.DefaultMarks(),
		Difficulty:   req.Difficulty,
		Instructions: req.Instructions,
		Language:     LanguageName(req.Language),
		WordLimit:    req.WordLimit,
	}

	sc, err := g.source.GetSyllabusContext(ctx, req.SyllabusID, req.TopicIDs)
	if err != nil {
		return in, fmt.Errorf("syllabus context: %w", err)
	}
	in.SyllabusText = sc.SyllabusText
	for _, topic := range sc.Topics {
		line := topic.Name
		if topic.Description != "" {
			line += ": " + topic.Description
		}
		in.Topics = append(in.Topics, line)
	}

	if len(req.TopicIDs) > 0 {
		qc, err := g.source.GetQuestionsContext(ctx, req.TopicIDs, string(t), 0)
		if err != nil {
			return in, fmt.Errorf("questions context: %w", err)
		}
		if in.SyllabusText == "" {
			in.SyllabusText = qc.SyllabusText
		}
		for _, q := range qc.ExampleQuestions {
			in.ExampleQuestions = append(in.ExampleQuestions, q.Text)
		}
	}
	return in, nil
}

// truthy decodes the correct flag of an option, which models send either
// as a boolean or as "true"/"false".
type truthy bool

func (b *truthy) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		*b = truthy(x)
	case string:
		*b = truthy(strings.EqualFold(strings.TrimSpace(x), "true"))
	default:
		*b = false
	}
	return nil
}

type replyQuestion struct {
	Text    string `json:"text"`
	Answer  string `json:"answer"`
	Options []struct {
		Text    string `json:"text"`
		Correct truthy `json:"correct"`
	} `json:"options"`
	ModelAnswer      string         `json:"model_answer"`
	Keywords         []string       `json:"keywords"`
	Subtopics        []string       `json:"subtopics"`
	WordLimit        int            `json:"word_limit"`
	Explanation      string         `json:"explanation"`
	CourseOutcomes   int            `json:"course_outcomes"`
	BloomsTaxonomy   string         `json:"blooms_taxonomy"`
	BloomsTaxanomy   string         `json:"blooms_taxanomy"`
	DifficultyLevel  string         `json:"difficulty_level"`
	DifficultyRating int            `json:"difficulty_rating"`
	Marks            int            `json:"marks"`
	Metadata         map[string]any `json:"metadata"`
}

type questionsReply struct {
	Questions []replyQuestion `json:"questions"`
}

func parseQuestions(reply string, schema *gojsonschema.Schema, t QuestionType) ([]GeneratedQuestion, error) {
	raw, err := llm.ExtractJSON(reply)
	if err != nil {
		return nil, fmt.Errorf("generated reply: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("generated reply is not json: %w", err)
	}
	if !res.Valid() {
		return nil, fmt.Errorf("generated reply does not match schema: %s", res.Errors()[0].String())
	}

	var parsed questionsReply
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("decode generated questions: %w", err)
	}
	out := make([]GeneratedQuestion, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		out = append(out, q.toQuestion(t))
	}
	return out, nil
}

func (q replyQuestion) toQuestion(t QuestionType) GeneratedQuestion {
	marks := q.Marks
	if marks <= 0 {
		marks = t.DefaultMarks()
	}
	blooms := q.BloomsTaxonomy
	if blooms == "" {
		blooms = q.BloomsTaxanomy
	}
	gq := GeneratedQuestion{
		Text:             strings.TrimSpace(q.Text),
		Answer:           strings.TrimSpace(q.Answer),
		Explanation:      strings.TrimSpace(q.Explanation),
		CourseOutcome:    q.CourseOutcomes,
		BloomsTaxonomy:   strings.TrimSpace(blooms),
		DifficultyLevel:  strings.ToLower(strings.TrimSpace(q.DifficultyLevel)),
		DifficultyRating: q.DifficultyRating,
		Metadata:         q.Metadata,
		QuestionType:     t,
		Marks:            marks,
	}

	switch t {
	case TypeMCQ:
		for _, o := range q.Options {
			opt := Option{Text: strings.TrimSpace(o.Text), Correct: bool(o.Correct)}
			gq.Options = append(gq.Options, opt)
			if gq.Answer == "" && opt.Correct {
				gq.Answer = opt.Text
			}
		}
	case TypeShort, TypeLong:
		gq.ModelAnswer = strings.TrimSpace(q.ModelAnswer)
		if gq.ModelAnswer == "" {
			gq.ModelAnswer = gq.Answer
		}
		if gq.Answer == "" {
			gq.Answer = gq.ModelAnswer
		}
		gq.WordLimit = q.WordLimit
		if t == TypeShort {
			gq.Keywords = q.Keywords
		} else {
			gq.Subtopics = q.Subtopics
		}
	}
	return gq
}
