package usecase

import (
	"context"
	"fmt"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/logger"
)

// CurriculumUseCase is the boundary used by transports. It turns
// (value, error) pairs from the repository, aggregator and evaluator into
// domain.Result envelopes.
type CurriculumUseCase struct {
	repo       CurriculumRepository
	aggregator *ContextAggregator
	evaluator  *PaperEvaluator
	log        *logger.Logger
}

func NewCurriculumUseCase(repo CurriculumRepository, aggregator *ContextAggregator, evaluator *PaperEvaluator, log *logger.Logger) *CurriculumUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if aggregator == nil {
		aggregator = NewContextAggregator(repo, log, AggregatorOptions{})
	}
	if evaluator == nil {
		evaluator = NewPaperEvaluator(repo, log)
	}
	return &CurriculumUseCase{
		repo:       repo,
		aggregator: aggregator,
		evaluator:  evaluator,
		log:        log.With("component", "CurriculumUseCase"),
	}
}

func (uc *CurriculumUseCase) Health(ctx context.Context) domain.Health {
	return uc.repo.Health(ctx)
}

func (uc *CurriculumUseCase) SaveSyllabus(ctx context.Context, email, name, subject, description string) domain.Result[domain.SyllabusCreated] {
	id, err := uc.repo.SaveSyllabus(ctx, email, name, subject, description)
	if err != nil {
		return domain.Fail[domain.SyllabusCreated](err)
	}
	return domain.Succeed("Syllabus saved successfully", domain.SyllabusCreated{SyllabusID: id})
}

func (uc *CurriculumUseCase) ImportSyllabus(ctx context.Context, email string, data domain.SyllabusData) domain.Result[domain.ImportSummary] {
	summary, err := uc.repo.ImportSyllabusFromStructuredData(ctx, email, data)
	if err != nil {
		return domain.Fail[domain.ImportSummary](err)
	}
	return domain.Succeed("Syllabus imported successfully", summary)
}

func (uc *CurriculumUseCase) AddTopic(ctx context.Context, syllabusID, moduleNumber, moduleName string, fields domain.TopicFields, parentTopicID string) domain.Result[domain.TopicCreated] {
	id, err := uc.repo.AddTopic(ctx, syllabusID, moduleNumber, moduleName, fields, parentTopicID)
	if err != nil {
		return domain.Fail[domain.TopicCreated](err)
	}
	if syllabusID != "" {
		uc.aggregator.InvalidateOutline(ctx, syllabusID)
	}
	return domain.Succeed("Topic added successfully", domain.TopicCreated{TopicID: id})
}

func (uc *CurriculumUseCase) SavePYQ(ctx context.Context, email, title, subject, year, examType, description string) domain.Result[domain.PYQCreated] {
	id, err := uc.repo.SavePYQ(ctx, email, title, subject, year, examType, description)
	if err != nil {
		return domain.Fail[domain.PYQCreated](err)
	}
	return domain.Succeed("PYQ paper created successfully", domain.PYQCreated{PYQID: id})
}

func (uc *CurriculumUseCase) AddQuestionToPYQ(ctx context.Context, pyqID string, q domain.NewQuestion) domain.Result[domain.QuestionCreated] {
	id, err := uc.repo.AddQuestionToPYQ(ctx, pyqID, q)
	if err != nil {
		return domain.Fail[domain.QuestionCreated](err)
	}
	return domain.Succeed("Question added successfully", domain.QuestionCreated{QuestionID: id})
}

func (uc *CurriculumUseCase) GetUserSyllabi(ctx context.Context, email string) domain.Result[[]domain.Syllabus] {
	items, err := uc.repo.GetUserSyllabi(ctx, email)
	return listed("Retrieved %d syllabi", items, err)
}

func (uc *CurriculumUseCase) GetUserPyqs(ctx context.Context, email string) domain.Result[[]domain.PYQ] {
	items, err := uc.repo.GetUserPyqs(ctx, email)
	return listed("Retrieved %d past year papers", items, err)
}

func (uc *CurriculumUseCase) GetSyllabusTopics(ctx context.Context, syllabusID string) domain.Result[[]domain.TopicSummary] {
	items, err := uc.repo.GetSyllabusTopics(ctx, syllabusID)
	return listed("Retrieved %d topics", items, err)
}

func (uc *CurriculumUseCase) GetPyqQuestions(ctx context.Context, pyqID string) domain.Result[[]domain.Question] {
	items, err := uc.repo.GetPyqQuestions(ctx, pyqID)
	return listed("Retrieved %d questions", items, err)
}

func (uc *CurriculumUseCase) FindQuestionsByTopic(ctx context.Context, topicID, questionType string) domain.Result[[]domain.Question] {
	items, err := uc.repo.FindQuestionsByTopic(ctx, topicID, questionType)
	return listed("Found %d questions", items, err)
}

func (uc *CurriculumUseCase) GetTopic(ctx context.Context, topicID string) domain.Result[domain.Topic] {
	topic, err := uc.repo.GetTopicByID(ctx, topicID)
	if err != nil {
		return domain.Fail[domain.Topic](err)
	}
	return domain.Succeed("Topic retrieved successfully", topic)
}

func (uc *CurriculumUseCase) SyllabusContext(ctx context.Context, syllabusID string, topicIDs []string) domain.Result[domain.SyllabusContext] {
	out, err := uc.aggregator.GetSyllabusContext(ctx, syllabusID, topicIDs)
	if err != nil {
		return domain.Fail[domain.SyllabusContext](err)
	}
	return domain.Succeed("Syllabus context assembled", out)
}

func (uc *CurriculumUseCase) QuestionsContext(ctx context.Context, topicIDs []string, questionType string, maxExamples int) domain.Result[domain.QuestionsContext] {
	out, err := uc.aggregator.GetQuestionsContext(ctx, topicIDs, questionType, maxExamples)
	if err != nil {
		return domain.Fail[domain.QuestionsContext](err)
	}
	return domain.Succeed(fmt.Sprintf("Collected %d example questions", len(out.ExampleQuestions)), out)
}

func (uc *CurriculumUseCase) CheckQuestionUniqueness(ctx context.Context, text, questionType string) domain.Result[domain.UniquenessReport] {
	out, err := uc.aggregator.CheckQuestionUniqueness(ctx, text, questionType)
	if err != nil {
		return domain.Fail[domain.UniquenessReport](err)
	}
	msg := "Question is unique"
	if !out.IsUnique {
		msg = fmt.Sprintf("Found %d similar questions", len(out.SimilarQuestions))
	}
	return domain.Succeed(msg, out)
}

func (uc *CurriculumUseCase) EvaluatePaper(ctx context.Context, syllabusID, paperID string) domain.Result[domain.PaperEvaluation] {
	out, err := uc.evaluator.EvaluatePaper(ctx, syllabusID, paperID)
	if err != nil {
		return domain.Fail[domain.PaperEvaluation](err)
	}
	return domain.Succeed("Paper evaluated successfully", out)
}

// listed wraps a repository read into a counted success message.
func listed[T any](format string, items []T, err error) domain.Result[[]T] {
	if err != nil {
		return domain.Fail[[]T](err)
	}
	return domain.Succeed(fmt.Sprintf(format, len(items)), items)
}
