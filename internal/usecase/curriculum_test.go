package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrivA89/question-forge/internal/domain"
)

func TestCurriculumUseCaseEnvelopes(t *testing.T) {
	ctx := context.Background()
	uc := NewCurriculumUseCase(newFakeRepo(), nil, nil, nil)

	saved := uc.SaveSyllabus(ctx, "a@example.com", "Algorithms", "CS", "")
	require.True(t, saved.OK())
	assert.Equal(t, "Syllabus saved successfully", saved.Message)
	assert.Equal(t, "syl-1", saved.Data.SyllabusID)

	syllabi := uc.GetUserSyllabi(ctx, "a@example.com")
	assert.Equal(t, domain.StatusSuccess, syllabi.Status)
	assert.Equal(t, "Retrieved 2 syllabi", syllabi.Message)

	pyqs := uc.GetUserPyqs(ctx, "a@example.com")
	assert.Equal(t, "Retrieved 0 past year papers", pyqs.Message)
	assert.NotNil(t, pyqs.Data)

	question := uc.AddQuestionToPYQ(ctx, "pyq-1", domain.NewQuestion{Text: "Define a heap."})
	assert.Equal(t, "q-1", question.Data.QuestionID)

	assert.Equal(t, domain.HealthConnected, uc.Health(ctx).Status)
}

func TestCurriculumUseCaseFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("save syllabus: graph store is unreachable")
	uc := NewCurriculumUseCase(repo, nil, nil, nil)

	res := uc.SaveSyllabus(context.Background(), "a@example.com", "Algorithms", "CS", "")
	assert.Equal(t, domain.StatusError, res.Status)
	assert.Equal(t, "save syllabus: graph store is unreachable", res.Message)
	assert.Equal(t, repo.err, res.Err())

	list := uc.GetUserSyllabi(context.Background(), "a@example.com")
	assert.False(t, list.OK())
	assert.Nil(t, list.Data)
}

func TestAddTopicInvalidatesOutline(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	cache := &memCache{items: map[string]string{outlineKey("s1"): "stale"}}
	agg := NewContextAggregator(repo, nil, AggregatorOptions{Cache: cache})
	uc := NewCurriculumUseCase(repo, agg, nil, nil)

	res := uc.AddTopic(ctx, "s1", "1", "Basics", domain.TopicFields{Name: "Intro"}, "")
	require.True(t, res.OK())
	assert.Equal(t, "topic-1", res.Data.TopicID)
	assert.NotContains(t, cache.items, outlineKey("s1"))
	assert.Equal(t, []string{"s1/Intro"}, repo.added)
}

func TestUniquenessMessage(t *testing.T) {
	repo := newFakeRepo()
	repo.similar = []domain.SimilarQuestion{{Similarity: 0.9}}
	uc := NewCurriculumUseCase(repo, nil, nil, nil)

	res := uc.CheckQuestionUniqueness(context.Background(), "Explain heaps.", "")
	require.True(t, res.OK())
	assert.False(t, res.Data.IsUnique)
	assert.Equal(t, "Found 1 similar questions", res.Message)
}
