package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/llm"
)

type fakeProvider struct {
	syllabus   domain.SyllabusContext
	questions  domain.QuestionsContext
	similar    map[string]int
	uniqueErr  error
	lastTopics []string
}

func (f *fakeProvider) GetSyllabusContext(_ context.Context, _ string, topicIDs []string) (domain.SyllabusContext, error) {
	f.lastTopics = topicIDs
	return f.syllabus, nil
}

func (f *fakeProvider) GetQuestionsContext(context.Context, []string, string, int) (domain.QuestionsContext, error) {
	return f.questions, nil
}

func (f *fakeProvider) CheckQuestionUniqueness(_ context.Context, text, _ string) (domain.UniquenessReport, error) {
	if f.uniqueErr != nil {
		return domain.UniquenessReport{}, f.uniqueErr
	}
	n := f.similar[text]
	return domain.UniquenessReport{IsUnique: n == 0, SimilarQuestions: make([]domain.SimilarQuestion, n), SimilarityThreshold: 0.7}, nil
}

const mcqReply = "```json\n" + `{"questions": [
  {"text": "Which structure is LIFO?", "options": [
    {"text": "Queue", "correct": false}, {"text": "Stack", "correct": true},
    {"text": "Heap", "correct": false}, {"text": "Tree", "correct": false}],
   "explanation": "Push and pop work on the top.", "blooms_taxonomy": "Remember",
   "difficulty_level": "Easy", "difficulty_rating": 1, "course_outcomes": 2},
  {"text": "Which structure is FIFO?", "answer": "Queue", "options": [
    {"text": "Queue", "correct": "true"}, {"text": "Stack", "correct": "false"},
    {"text": "Heap", "correct": "false"}, {"text": "Tree", "correct": "false"}],
   "marks": 2, "metadata": {"source": "unit-1"}}
]}` + "\n```"

func TestGenerateMCQ(t *testing.T) {
	provider := &fakeProvider{
		syllabus: domain.SyllabusContext{
			SyllabusText: "Module 1: Linear structures\n- Stacks: push and pop\n",
			Topics:       []domain.Topic{{Name: "Stacks", Description: "push and pop"}},
		},
		questions: domain.QuestionsContext{ExampleQuestions: []domain.Question{{Text: "Define a stack."}}},
		similar:   map[string]int{"Which structure is FIFO?": 1},
	}
	mock := llm.NewMock(mcqReply)
	g := NewGenerator(mock, provider, nil)

	out, err := g.Generate(context.Background(), TypeMCQ, Request{SyllabusID: "s1", TopicIDs: []string{"t1"}, Count: 2, Difficulty: "easy"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Stack", out[0].Answer)
	require.Len(t, out[0].Options, 4)
	assert.Equal(t, Option{Text: "Stack", Correct: true}, out[0].Options[1])
	assert.Equal(t, Option{Text: "Queue", Correct: true}, out[1].Options[0])
	assert.Equal(t, "Push and pop work on the top.", out[0].Explanation)
	assert.Equal(t, "Remember", out[0].BloomsTaxonomy)
	assert.Equal(t, "easy", out[0].DifficultyLevel)
	assert.Equal(t, 1, out[0].DifficultyRating)
	assert.Equal(t, 2, out[0].CourseOutcome)
	assert.Equal(t, "easy", out[1].DifficultyLevel)
	assert.Equal(t, map[string]any{"source": "unit-1"}, out[1].Metadata)
	assert.Empty(t, out[0].ModelAnswer)
	assert.Equal(t, 1, out[0].Marks)
	assert.Equal(t, 2, out[1].Marks)
	assert.True(t, out[0].IsUnique)
	assert.False(t, out[1].IsUnique)
	assert.Equal(t, 1, out[1].SimilarCount)

	call := mock.Calls()[0]
	assert.Contains(t, call.SystemPrompt, "multiple-choice")
	assert.Contains(t, call.SystemPrompt, "exactly four options")
	assert.Contains(t, call.SystemPrompt, `"correct": boolean`)
	assert.Contains(t, call.SystemPrompt, "in English.")
	assert.Contains(t, call.UserText, "Generate 2 multiple-choice questions of easy difficulty.")
	assert.Contains(t, call.UserText, "Module 1: Linear structures")
	assert.Contains(t, call.UserText, "- Stacks: push and pop")
	assert.Contains(t, call.UserText, "Previous questions:\n- Define a stack.")
}

func TestGenerateRequiresScope(t *testing.T) {
	g := NewGenerator(llm.NewMock(mcqReply), &fakeProvider{}, nil)

	_, err := g.Generate(context.Background(), TypeShort, Request{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = g.Generate(context.Background(), QuestionType("essay"), Request{SyllabusID: "s1"})
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestGenerateRejectsMalformedReply(t *testing.T) {
	tests := []string{
		"no json here",
		`{"questions": []}`,
		`{"questions": [{"answer": "missing text"}]}`,
	}
	for _, reply := range tests {
		g := NewGenerator(llm.NewMock(reply), &fakeProvider{}, nil)
		_, err := g.Generate(context.Background(), TypeShort, Request{SyllabusID: "s1"})
		assert.Error(t, err, reply)
	}
}

func TestGenerateToleratesUniquenessFailure(t *testing.T) {
	provider := &fakeProvider{uniqueErr: errors.New("store down")}
	g := NewGenerator(llm.NewMock(`{"questions": [{"text": "Explain paging."}]}`), provider, nil)

	out, err := g.Generate(context.Background(), TypeLong, Request{SyllabusID: "s1"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].IsUnique)
	assert.Equal(t, 10, out[0].Marks)
	assert.Nil(t, out[0].Options)
}

func TestGeneratePaperDefaultLayout(t *testing.T) {
	short := `{"questions": [` + strings.Repeat(`{"text": "short q"},`, 5) + `{"text": "short q"}]}`
	long := `{"questions": [` + strings.Repeat(`{"text": "long q"},`, 3) + `{"text": "long q"}]}`
	mock := llm.NewMock(short, long)
	g := NewGenerator(mock, &fakeProvider{}, nil)

	paper, err := g.GeneratePaper(context.Background(), PaperRequest{Request: Request{SyllabusID: "s1"}})
	require.NoError(t, err)
	assert.Equal(t, "Question Paper", paper.Title)
	require.Len(t, paper.Sections, 2)
	assert.Equal(t, "Section A", paper.Sections[0].Name)
	assert.Len(t, paper.Sections[0].Questions, 6)
	assert.Equal(t, "Section B", paper.Sections[1].Name)
	assert.Len(t, paper.Sections[1].Questions, 4)
	assert.Equal(t, 6*2+4*10, paper.TotalMarks)
	assert.Equal(t, "2 hours", paper.TimeDuration)
	assert.Equal(t, []string{
		"All questions are compulsory.",
		"Figures to the right indicate full marks.",
		"Section A carries 12 marks.",
		"Section B carries 40 marks.",
	}, paper.Instructions)
	assert.Equal(t, "Answer all 6 short-answer questions.", paper.Sections[0].Description)
}

func TestGeneratePaperSectionMarksOverride(t *testing.T) {
	mock := llm.NewMock(`{"questions": [{"text": "a"}, {"text": "b"}]}`)
	g := NewGenerator(mock, &fakeProvider{}, nil)

	paper, err := g.GeneratePaper(context.Background(), PaperRequest{
		Request:             Request{SyllabusID: "s1"},
		Title:               "Midterm",
		Sections:            []SectionSpec{{Type: TypeFIB, Count: 2, Marks: 3}, {Type: TypeMCQ, Count: 0}},
		TimeDuration:        "45 minutes",
		GeneralInstructions: []string{"Use a pen."},
	})
	require.NoError(t, err)
	assert.Equal(t, "Midterm", paper.Title)
	assert.Equal(t, "45 minutes", paper.TimeDuration)
	assert.Equal(t, []string{"Use a pen.", "Section A carries 6 marks."}, paper.Instructions)
	require.Len(t, paper.Sections, 1)
	assert.Equal(t, 6, paper.TotalMarks)
}

func TestGeneratePaperWithoutSections(t *testing.T) {
	g := NewGenerator(llm.NewMock(`{"questions": [{"text": "a"}]}`), &fakeProvider{}, nil)
	_, err := g.GeneratePaper(context.Background(), PaperRequest{
		Request:  Request{SyllabusID: "s1"},
		Sections: []SectionSpec{{Type: TypeMCQ, Count: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestDefaultDuration(t *testing.T) {
	assert.Equal(t, "1 hour", DefaultDuration(20))
	assert.Equal(t, "2 hours", DefaultDuration(60))
	assert.Equal(t, "3 hours", DefaultDuration(80))
}

func TestParseQuestionType(t *testing.T) {
	got, err := ParseQuestionType(" MCQ ")
	require.NoError(t, err)
	assert.Equal(t, TypeMCQ, got)

	_, err = ParseQuestionType("paper")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestGenerateShortAnswerFields(t *testing.T) {
	reply := `{"questions": [{"text": "What is a B-tree?",
	  "model_answer": "A balanced multiway search tree.",
	  "keywords": ["balanced", "multiway"], "word_limit": 60,
	  "subtopics": ["ignored for short answers"],
	  "blooms_taxanomy": "Understand", "difficulty_rating": 2}]}`
	mock := llm.NewMock(reply)
	g := NewGenerator(mock, &fakeProvider{}, nil)

	out, err := g.Generate(context.Background(), TypeShort, Request{SyllabusID: "s1", Count: 1, Language: "hin", WordLimit: 80})
	require.NoError(t, err)
	require.Len(t, out, 1)
	q := out[0]
	assert.Equal(t, "A balanced multiway search tree.", q.ModelAnswer)
	assert.Equal(t, q.ModelAnswer, q.Answer)
	assert.Equal(t, []string{"balanced", "multiway"}, q.Keywords)
	assert.Nil(t, q.Subtopics)
	assert.Equal(t, 60, q.WordLimit)
	assert.Equal(t, "Understand", q.BloomsTaxonomy)
	assert.Equal(t, 2, q.Marks)

	call := mock.Calls()[0]
	assert.Contains(t, call.SystemPrompt, `"keywords": [string]`)
	assert.Contains(t, call.SystemPrompt, "in Hindi.")
	assert.Contains(t, call.UserText, "Answers should stay within 80 words.")
}

func TestGenerateLongAnswerFields(t *testing.T) {
	reply := `{"questions": [{"text": "Explain virtual memory.", "answer": "Paging and segmentation...",
	  "subtopics": ["paging", "TLB", "page replacement"], "keywords": ["ignored"], "marks": 12}]}`
	mock := llm.NewMock(reply)
	g := NewGenerator(mock, &fakeProvider{}, nil)

	out, err := g.Generate(context.Background(), TypeLong, Request{SyllabusID: "s1", Count: 1, Difficulty: "Hard", WordLimit: 500})
	require.NoError(t, err)
	require.Len(t, out, 1)
	q := out[0]
	assert.Equal(t, "Paging and segmentation...", q.ModelAnswer)
	assert.Equal(t, []string{"paging", "TLB", "page replacement"}, q.Subtopics)
	assert.Nil(t, q.Keywords)
	assert.Equal(t, 500, q.WordLimit)
	assert.Equal(t, "hard", q.DifficultyLevel)
	assert.Equal(t, 12, q.Marks)
	assert.Contains(t, mock.Calls()[0].SystemPrompt, `"subtopics": [string]`)
}

func TestGenerateRejectsOutOfRangeRating(t *testing.T) {
	g := NewGenerator(llm.NewMock(`{"questions": [{"text": "q", "difficulty_rating": 9}]}`), &fakeProvider{}, nil)
	_, err := g.Generate(context.Background(), TypeFIB, Request{SyllabusID: "s1"})
	assert.Error(t, err)
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "English", LanguageName(""))
	assert.Equal(t, "Telugu", LanguageName("tel"))
	assert.Equal(t, "Gujarati", LanguageName(" GUJ "))
	assert.Equal(t, "Marathi", LanguageName("marathi"))
	assert.Equal(t, "English", LanguageName("klingon"))
}
