package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/neo4jdb"
)

// AddTopic creates a Topic node and returns its id. The syllabus link and the
// parent link are both optional and independent: a topic may end up with
// neither, either or both. A fresh node is created on every call, so no call
// can close a HAS_SUBTOPIC cycle.
func (r *CurriculumRepository) AddTopic(ctx context.Context, syllabusID, moduleNumber, moduleName string, fields domain.TopicFields, parentTopicID string) (string, error) {
	kind := fields.Kind
	if kind == "" {
		kind = domain.KindTopic
	}
	if !kind.Valid() {
		return "", r.fail("add topic", fmt.Errorf("%w: unknown topic kind %q", domain.ErrInvalidInput, kind))
	}

	topic := domain.Topic{
		ID:             r.newID(),
		Kind:           kind,
		ModuleNumber:   moduleNumber,
		ModuleName:     moduleName,
		TopicNumber:    fields.TopicNumber,
		SubtopicNumber: fields.SubtopicNumber,
		Name:           fields.Name,
		Description:    fields.Description,
		Hours:          fields.Hours,
		CreatedAt:      r.timestamp(),
	}
	switch kind {
	case domain.KindModule:
		topic.TopicNumber, topic.SubtopicNumber = "", ""
		if topic.Name == "" {
			topic.Name = moduleName
		}
	case domain.KindTopic:
		topic.SubtopicNumber = ""
	}

	id, err := neo4jdb.RunWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (string, error) {
		if err := r.createTopicTx(ctx, tx, topic); err != nil {
			return "", err
		}
		if syllabusID != "" {
			if err := r.link(ctx, tx, domain.Contains, syllabusID, `
				MATCH (s:Syllabus {id: $syllabus_id}), (t:Topic {id: $topic_id})
				CREATE (s)-[:CONTAINS]->(t)
			`, map[string]any{"syllabus_id": syllabusID, "topic_id": topic.ID}); err != nil {
				return "", err
			}
		}
		if parentTopicID != "" {
			if err := r.linkSubtopicTx(ctx, tx, parentTopicID, topic.ID); err != nil {
				return "", err
			}
		}
		return topic.ID, nil
	})
	if err != nil {
		return "", r.fail("add topic", err)
	}
	return id, nil
}

func (r *CurriculumRepository) createTopicTx(ctx context.Context, tx neo4j.ManagedTransaction, t domain.Topic) error {
	res, err := tx.Run(ctx, `CREATE (t:Topic) SET t = $props`, map[string]any{"props": topicProps(t)})
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

func (r *CurriculumRepository) linkSubtopicTx(ctx context.Context, tx neo4j.ManagedTransaction, parentID, childID string) error {
	return r.link(ctx, tx, domain.HasSubtopic, parentID, `
		MATCH (p:Topic {id: $parent_id}), (c:Topic {id: $child_id})
		CREATE (p)-[:HAS_SUBTOPIC]->(c)
	`, map[string]any{"parent_id": parentID, "child_id": childID})
}

// GetTopicByID returns the full topic record, or a KindNotFound error.
func (r *CurriculumRepository) GetTopicByID(ctx context.Context, topicID string) (domain.Topic, error) {
	out, err := neo4jdb.RunRead(ctx, r.client, func(tx neo4j.ManagedTransaction) (domain.Topic, error) {
		res, err := tx.Run(ctx, `MATCH (t:Topic {id: $id}) RETURN t AS topic`, map[string]any{"id": topicID})
		if err != nil {
			return domain.Topic{}, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return domain.Topic{}, err
			}
			return domain.Topic{}, fmt.Errorf("topic %q: %w", topicID, domain.ErrNotFound)
		}
		props, _ := nodeProps(res.Record(), "topic")
		return topicFromProps(props), nil
	})
	if err != nil {
		return domain.Topic{}, r.fail("get topic", err)
	}
	return out, nil
}

// FindQuestionsByTopic returns the questions directly related to the topic,
// filtered by exact question type when one is given. Order is unspecified.
func (r *CurriculumRepository) FindQuestionsByTopic(ctx context.Context, topicID, questionType string) ([]domain.Question, error) {
	out, err := neo4jdb.RunRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Question, error) {
		res, err := tx.Run(ctx, `
			MATCH (q:Question)-[:RELATES_TO]->(:Topic {id: $topic_id})
			WHERE $question_type = '' OR q.question_type = $question_type
			RETURN DISTINCT q AS question
		`, map[string]any{"topic_id": topicID, "question_type": questionType})
		if err != nil {
			return nil, err
		}
		questions := make([]domain.Question, 0)
		for res.Next(ctx) {
			if props, ok := nodeProps(res.Record(), "question"); ok {
				questions = append(questions, questionFromProps(props))
			}
		}
		return questions, res.Err()
	})
	if err != nil {
		return nil, r.fail("find questions by topic", err)
	}
	return out, nil
}
