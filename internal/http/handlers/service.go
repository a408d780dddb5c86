package handlers

import (
	"context"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/generation"
)

// CurriculumService is implemented by usecase.CurriculumUseCase.
type CurriculumService interface {
	Health(ctx context.Context) domain.Health
	SaveSyllabus(ctx context.Context, email, name, subject, description string) domain.Result[domain.SyllabusCreated]
	ImportSyllabus(ctx context.Context, email string, data domain.SyllabusData) domain.Result[domain.ImportSummary]
	AddTopic(ctx context.Context, syllabusID, moduleNumber, moduleName string, fields domain.TopicFields, parentTopicID string) domain.Result[domain.TopicCreated]
	SavePYQ(ctx context.Context, email, title, subject, year, examType, description string) domain.Result[domain.PYQCreated]
	AddQuestionToPYQ(ctx context.Context, pyqID string, q domain.NewQuestion) domain.Result[domain.QuestionCreated]
	GetUserSyllabi(ctx context.Context, email string) domain.Result[[]domain.Syllabus]
	GetUserPyqs(ctx context.Context, email string) domain.Result[[]domain.PYQ]
	GetSyllabusTopics(ctx context.Context, syllabusID string) domain.Result[[]domain.TopicSummary]
	GetPyqQuestions(ctx context.Context, pyqID string) domain.Result[[]domain.Question]
	FindQuestionsByTopic(ctx context.Context, topicID, questionType string) domain.Result[[]domain.Question]
	GetTopic(ctx context.Context, topicID string) domain.Result[domain.Topic]
	SyllabusContext(ctx context.Context, syllabusID string, topicIDs []string) domain.Result[domain.SyllabusContext]
	QuestionsContext(ctx context.Context, topicIDs []string, questionType string, maxExamples int) domain.Result[domain.QuestionsContext]
	CheckQuestionUniqueness(ctx context.Context, text, questionType string) domain.Result[domain.UniquenessReport]
	EvaluatePaper(ctx context.Context, syllabusID, paperID string) domain.Result[domain.PaperEvaluation]
}

// QuestionGenerator is implemented by generation.Generator.
type QuestionGenerator interface {
	Generate(ctx context.Context, t generation.QuestionType, req generation.Request) ([]generation.GeneratedQuestion, error)
	GeneratePaper(ctx context.Context, req generation.PaperRequest) (generation.Paper, error)
}
