package handlers

import (
	"context"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/generation"
)

type topicCall struct {
	syllabusID, moduleNumber, moduleName, parentID string
	fields                                        domain.TopicFields
}

type stubService struct {
	health domain.Health

	syllabusEmail string
	topic         topicCall
	question      domain.NewQuestion
	questionPYQ   string
	questionType  string
	imported      domain.SyllabusData

	syllabi     domain.Result[[]domain.Syllabus]
	topicResult domain.Result[domain.Topic]
	evaluation  domain.Result[domain.PaperEvaluation]
	uniqueness  domain.Result[domain.UniquenessReport]
}

func ok[T any](data T) domain.Result[T] { return domain.Succeed("ok", data) }

func (s *stubService) Health(context.Context) domain.Health { return s.health }

func (s *stubService) SaveSyllabus(_ context.Context, email, _, _, _ string) domain.Result[domain.SyllabusCreated] {
	s.syllabusEmail = email
	return ok(domain.SyllabusCreated{SyllabusID: "syl-1"})
}

func (s *stubService) ImportSyllabus(_ context.Context, _ string, data domain.SyllabusData) domain.Result[domain.ImportSummary] {
	s.imported = data
	return ok(domain.ImportSummary{SyllabusID: "syl-2", Modules: len(data.Modules)})
}

func (s *stubService) AddTopic(_ context.Context, syllabusID, moduleNumber, moduleName string, fields domain.TopicFields, parentTopicID string) domain.Result[domain.TopicCreated] {
	s.topic = topicCall{syllabusID: syllabusID, moduleNumber: moduleNumber, moduleName: moduleName, parentID: parentTopicID, fields: fields}
	return ok(domain.TopicCreated{TopicID: "t-1"})
}

func (s *stubService) SavePYQ(context.Context, string, string, string, string, string, string) domain.Result[domain.PYQCreated] {
	return ok(domain.PYQCreated{PYQID: "pyq-1"})
}

func (s *stubService) AddQuestionToPYQ(_ context.Context, pyqID string, q domain.NewQuestion) domain.Result[domain.QuestionCreated] {
	s.questionPYQ, s.question = pyqID, q
	return ok(domain.QuestionCreated{QuestionID: "q-1"})
}

func (s *stubService) GetUserSyllabi(context.Context, string) domain.Result[[]domain.Syllabus] {
	return s.syllabi
}

func (s *stubService) GetUserPyqs(context.Context, string) domain.Result[[]domain.PYQ] {
	return ok([]domain.PYQ{})
}

func (s *stubService) GetSyllabusTopics(context.Context, string) domain.Result[[]domain.TopicSummary] {
	return ok([]domain.TopicSummary{})
}

func (s *stubService) GetPyqQuestions(context.Context, string) domain.Result[[]domain.Question] {
	return ok([]domain.Question{})
}

func (s *stubService) FindQuestionsByTopic(_ context.Context, _ string, questionType string) domain.Result[[]domain.Question] {
	s.questionType = questionType
	return ok([]domain.Question{})
}

func (s *stubService) GetTopic(context.Context, string) domain.Result[domain.Topic] {
	return s.topicResult
}

func (s *stubService) SyllabusContext(context.Context, string, []string) domain.Result[domain.SyllabusContext] {
	return ok(domain.SyllabusContext{SyllabusText: "Module 1: Basics\n"})
}

func (s *stubService) QuestionsContext(context.Context, []string, string, int) domain.Result[domain.QuestionsContext] {
	return ok(domain.QuestionsContext{})
}

func (s *stubService) CheckQuestionUniqueness(context.Context, string, string) domain.Result[domain.UniquenessReport] {
	return s.uniqueness
}

func (s *stubService) EvaluatePaper(context.Context, string, string) domain.Result[domain.PaperEvaluation] {
	return s.evaluation
}

type stubGenerator struct {
	err       error
	questions []generation.GeneratedQuestion
	gotType   generation.QuestionType
	gotPaper  generation.PaperRequest
}

func (g *stubGenerator) Generate(_ context.Context, t generation.QuestionType, _ generation.Request) ([]generation.GeneratedQuestion, error) {
	g.gotType = t
	return g.questions, g.err
}

func (g *stubGenerator) GeneratePaper(_ context.Context, req generation.PaperRequest) (generation.Paper, error) {
	g.gotPaper = req
	if g.err != nil {
		return generation.Paper{}, g.err
	}
	return generation.Paper{Title: req.Title}, nil
}
