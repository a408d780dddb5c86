package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/config"
	"github.com/AndrivA89/question-forge/internal/platform/logger"
)

const (
	// SimilarityThreshold is the fixed cut-off of the uniqueness check.
	SimilarityThreshold = 0.7
	DefaultMaxExamples  = 5
)

type AggregatorOptions struct {
	Order    config.TopicOrder
	Cache    OutlineCache
	CacheTTL time.Duration
}

// ContextAggregator assembles prompt context from repository reads. It never
// talks to the graph store itself.
type ContextAggregator struct {
	src   ContextSource
	log   *logger.Logger
	order config.TopicOrder
	cache OutlineCache
	ttl   time.Duration
}

func NewContextAggregator(src ContextSource, log *logger.Logger, opts AggregatorOptions) *ContextAggregator {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Order == "" {
		opts.Order = config.OrderLexical
	}
	return &ContextAggregator{
		src:   src,
		log:   log.With("component", "ContextAggregator"),
		order: opts.Order,
		cache: opts.Cache,
		ttl:   opts.CacheTTL,
	}
}

// GetSyllabusContext builds the outline of a syllabus and/or the records and
// related questions of explicit topics. Either input may be empty; results of
// both are combined.
func (a *ContextAggregator) GetSyllabusContext(ctx context.Context, syllabusID string, topicIDs []string) (domain.SyllabusContext, error) {
	out := domain.SyllabusContext{
		Topics:           []domain.Topic{},
		ExampleQuestions: []domain.Question{},
	}

	if syllabusID != "" {
		text, err := a.outline(ctx, syllabusID)
		if err != nil {
			return domain.SyllabusContext{}, err
		}
		out.SyllabusText = text
	}

	for _, id := range topicIDs {
		topic, err := a.src.GetTopicByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			a.log.Debug("context topic not found", "topic_id", id)
			continue
		}
		if err != nil {
			return domain.SyllabusContext{}, err
		}
		out.Topics = append(out.Topics, topic)

		questions, err := a.src.FindQuestionsByTopic(ctx, id, "")
		if err != nil {
			return domain.SyllabusContext{}, err
		}
		out.ExampleQuestions = append(out.ExampleQuestions, questions...)
	}
	return out, nil
}

func outlineKey(syllabusID string) string {
	return "outline:" + syllabusID
}

func (a *ContextAggregator) outline(ctx context.Context, syllabusID string) (string, error) {
	if a.cache != nil {
		text, ok, err := a.cache.Get(ctx, outlineKey(syllabusID))
		if err != nil {
			a.log.Warn("outline cache read failed", "syllabus_id", syllabusID, "error", err)
		} else if ok {
			return text, nil
		}
	}

	topics, err := a.src.GetSyllabusTopics(ctx, syllabusID)
	if err != nil {
		return "", err
	}
	text := renderOutline(topics, a.order)

	if a.cache != nil {
		if err := a.cache.Set(ctx, outlineKey(syllabusID), text, a.ttl); err != nil {
			a.log.Warn("outline cache write failed", "syllabus_id", syllabusID, "error", err)
		}
	}
	return text, nil
}

// InvalidateOutline drops the cached outline of a syllabus.
func (a *ContextAggregator) InvalidateOutline(ctx context.Context, syllabusID string) {
	if a.cache == nil || syllabusID == "" {
		return
	}
	if err := a.cache.Delete(ctx, outlineKey(syllabusID)); err != nil {
		a.log.Warn("outline cache invalidation failed", "syllabus_id", syllabusID, "error", err)
	}
}

type outlineModule struct {
	number string
	name   string
	topics []domain.TopicSummary
}

// renderOutline groups the flat topic list by raw module_number, one header
// per module followed by one bullet per topic in retrieval order.
func renderOutline(topics []domain.TopicSummary, order config.TopicOrder) string {
	index := make(map[string]*outlineModule)
	var modules []*outlineModule
	for _, t := range topics {
		m, ok := index[t.ModuleNumber]
		if !ok {
			m = &outlineModule{number: t.ModuleNumber, name: t.ModuleName}
			index[t.ModuleNumber] = m
			modules = append(modules, m)
		}
		m.topics = append(m.topics, t)
	}

	less := func(a, b string) bool { return a < b }
	if order == config.OrderNatural {
		c := collate.New(language.Und, collate.Numeric)
		less = func(a, b string) bool { return c.CompareString(a, b) < 0 }
	}
	sort.SliceStable(modules, func(i, j int) bool {
		return less(modules[i].number, modules[j].number)
	})

	var b strings.Builder
	for _, m := range modules {
		fmt.Fprintf(&b, "Module %s: %s\n", m.number, m.name)
		for _, t := range m.topics {
			fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// GetQuestionsContext describes the requested topics and gathers at most
// maxExamples distinct example questions across all of them, in input order.
// Topics after the cap is reached are not queried.
func (a *ContextAggregator) GetQuestionsContext(ctx context.Context, topicIDs []string, questionType string, maxExamples int) (domain.QuestionsContext, error) {
	if maxExamples <= 0 {
		maxExamples = DefaultMaxExamples
	}
	out := domain.QuestionsContext{ExampleQuestions: make([]domain.Question, 0, maxExamples)}
	if len(topicIDs) == 0 {
		return out, nil
	}

	texts := make([]string, 0, len(topicIDs))
	for _, id := range topicIDs {
		topic, err := a.src.GetTopicByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return domain.QuestionsContext{}, err
		}
		texts = append(texts, fmt.Sprintf("Module: %s\nTopic: %s\nDescription: %s\n", topic.ModuleName, topic.Name, topic.Description))
	}
	out.SyllabusText = strings.Join(texts, "\n")

	seen := make(map[domain.QuestionKey]struct{})
	for _, id := range topicIDs {
		if len(out.ExampleQuestions) >= maxExamples {
			break
		}
		questions, err := a.src.FindQuestionsByTopic(ctx, id, questionType)
		if err != nil {
			return domain.QuestionsContext{}, err
		}
		for _, q := range questions {
			if len(out.ExampleQuestions) >= maxExamples {
				break
			}
			key := q.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out.ExampleQuestions = append(out.ExampleQuestions, q)
		}
	}
	return out, nil
}

// CheckQuestionUniqueness reports a question as unique iff the similarity
// search finds no stored question at or above SimilarityThreshold.
func (a *ContextAggregator) CheckQuestionUniqueness(ctx context.Context, text, questionType string) (domain.UniquenessReport, error) {
	matches, err := a.src.FindSimilarQuestions(ctx, text, questionType, SimilarityThreshold)
	if err != nil {
		return domain.UniquenessReport{}, err
	}
	if matches == nil {
		matches = []domain.SimilarQuestion{}
	}
	return domain.UniquenessReport{
		IsUnique:            len(matches) == 0,
		SimilarQuestions:    matches,
		SimilarityThreshold: SimilarityThreshold,
	}, nil
}
