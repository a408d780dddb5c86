package usecase

import (
	"context"
	"time"

	"github.com/AndrivA89/question-forge/internal/domain"
)

// CurriculumRepository is the storage port of the use cases. It is
// implemented by repository.CurriculumRepository.
type CurriculumRepository interface {
	EnsureUser(ctx context.Context, email string) (string, error)
	SaveSyllabus(ctx context.Context, email, name, subject, description string) (string, error)
	AddTopic(ctx context.Context, syllabusID, moduleNumber, moduleName string, fields domain.TopicFields, parentTopicID string) (string, error)
	SavePYQ(ctx context.Context, email, title, subject, year, examType, description string) (string, error)
	AddQuestionToPYQ(ctx context.Context, pyqID string, q domain.NewQuestion) (string, error)
	GetUserSyllabi(ctx context.Context, email string) ([]domain.Syllabus, error)
	GetUserPyqs(ctx context.Context, email string) ([]domain.PYQ, error)
	ImportSyllabusFromStructuredData(ctx context.Context, email string, data domain.SyllabusData) (domain.ImportSummary, error)
	Health(ctx context.Context) domain.Health

	ContextSource
	PaperSource
}

type SyllabusTopicLister interface {
	GetSyllabusTopics(ctx context.Context, syllabusID string) ([]domain.TopicSummary, error)
}

type TopicReader interface {
	GetTopicByID(ctx context.Context, topicID string) (domain.Topic, error)
}

type QuestionFinder interface {
	FindQuestionsByTopic(ctx context.Context, topicID, questionType string) ([]domain.Question, error)
}

// SimilaritySearcher finds stored questions whose similarity to text is at
// least threshold.
type SimilaritySearcher interface {
	FindSimilarQuestions(ctx context.Context, text, questionType string, threshold float64) ([]domain.SimilarQuestion, error)
}

type CoverageCalculator interface {
	PaperCoverage(ctx context.Context, syllabusID, paperID string) (domain.Coverage, error)
}

type PaperQuestionLister interface {
	GetPyqQuestions(ctx context.Context, pyqID string) ([]domain.Question, error)
}

// ContextSource is everything the context aggregator reads.
type ContextSource interface {
	SyllabusTopicLister
	TopicReader
	QuestionFinder
	SimilaritySearcher
}

// PaperSource is everything the paper evaluator reads.
type PaperSource interface {
	CoverageCalculator
	PaperQuestionLister
}

// OutlineCache memoises rendered syllabus outlines. *cache.Cache satisfies it.
type OutlineCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
