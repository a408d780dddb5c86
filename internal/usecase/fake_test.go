package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/AndrivA89/question-forge/internal/domain"
)

// fakeRepo is an in-memory CurriculumRepository used by the use case tests.
type fakeRepo struct {
	topics     map[string]domain.Topic
	roots      map[string][]domain.TopicSummary
	byTopic    map[string][]domain.Question
	papers     map[string][]domain.Question
	coverage   domain.Coverage
	similar    []domain.SimilarQuestion
	err        error
	finderHits []string
	rootReads  int
	threshold  float64
	added      []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		topics:  map[string]domain.Topic{},
		roots:   map[string][]domain.TopicSummary{},
		byTopic: map[string][]domain.Question{},
		papers:  map[string][]domain.Question{},
	}
}

func (f *fakeRepo) EnsureUser(_ context.Context, email string) (string, error) {
	return email, f.err
}

func (f *fakeRepo) SaveSyllabus(context.Context, string, string, string, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "syl-1", nil
}

func (f *fakeRepo) AddTopic(_ context.Context, syllabusID, _, _ string, fields domain.TopicFields, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.added = append(f.added, syllabusID+"/"+fields.Name)
	return "topic-1", nil
}

func (f *fakeRepo) SavePYQ(context.Context, string, string, string, string, string, string) (string, error) {
	return "pyq-1", f.err
}

func (f *fakeRepo) AddQuestionToPYQ(context.Context, string, domain.NewQuestion) (string, error) {
	return "q-1", f.err
}

func (f *fakeRepo) GetUserSyllabi(context.Context, string) ([]domain.Syllabus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Syllabus{{ID: "a"}, {ID: "b"}}, nil
}

func (f *fakeRepo) GetUserPyqs(context.Context, string) ([]domain.PYQ, error) {
	return []domain.PYQ{}, f.err
}

func (f *fakeRepo) ImportSyllabusFromStructuredData(_ context.Context, _ string, data domain.SyllabusData) (domain.ImportSummary, error) {
	return domain.ImportSummary{SyllabusID: "syl-1", Modules: len(data.Modules)}, f.err
}

func (f *fakeRepo) Health(context.Context) domain.Health {
	return domain.Health{Status: domain.HealthConnected, NodeCount: 3}
}

func (f *fakeRepo) GetSyllabusTopics(_ context.Context, id string) ([]domain.TopicSummary, error) {
	f.rootReads++
	if f.err != nil {
		return nil, f.err
	}
	return f.roots[id], nil
}

func (f *fakeRepo) GetTopicByID(_ context.Context, id string) (domain.Topic, error) {
	t, ok := f.topics[id]
	if !ok {
		return domain.Topic{}, fmt.Errorf("topic %q: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

func (f *fakeRepo) FindQuestionsByTopic(_ context.Context, id, questionType string) ([]domain.Question, error) {
	f.finderHits = append(f.finderHits, id)
	var out []domain.Question
	for _, q := range f.byTopic[id] {
		if questionType == "" || q.QuestionType == questionType {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindSimilarQuestions(_ context.Context, _, _ string, threshold float64) ([]domain.SimilarQuestion, error) {
	f.threshold = threshold
	return f.similar, f.err
}

func (f *fakeRepo) PaperCoverage(_ context.Context, syllabusID, paperID string) (domain.Coverage, error) {
	c := f.coverage
	c.SyllabusID, c.PaperID = syllabusID, paperID
	return c, f.err
}

func (f *fakeRepo) GetPyqQuestions(_ context.Context, id string) ([]domain.Question, error) {
	return f.papers[id], nil
}

// memCache is an OutlineCache backed by a map.
type memCache struct {
	items map[string]string
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.items[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	delete(c.items, key)
	return nil
}

func questions(prefix, qType string, n int) []domain.Question {
	out := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Question{
			ID:           fmt.Sprintf("%s-%d", prefix, i),
			Text:         fmt.Sprintf("%s question %d", prefix, i),
			QuestionType: qType,
			Marks:        2,
		})
	}
	return out
}
