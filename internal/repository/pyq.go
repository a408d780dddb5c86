package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/neo4jdb"
)

// SavePYQ creates a past-year paper owned by email in one transaction.
func (r *CurriculumRepository) SavePYQ(ctx context.Context, email, title, subject, year, examType, description string) (string, error) {
	if err := checkEmail(email); err != nil {
		return "", r.fail("save pyq", err)
	}
	id, err := neo4jdb.RunWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (string, error) {
		if _, err := r.ensureUserTx(ctx, tx, email); err != nil {
			return "", err
		}
		res, err := tx.Run(ctx, `
			MATCH (u:User {email: $email})
			CREATE (p:PYQ {
				id: $id,
				title: $title,
				subject: $subject,
				year: $year,
				exam_type: $exam_type,
				description: $description,
				created_at: $now
			})
			CREATE (u)-[:OWNS]->(p)
			RETURN p.id AS pyq_id
		`, map[string]any{
			"email":       email,
			"id":          r.newID(),
			"title":       title,
			"subject":     subject,
			"year":        year,
			"exam_type":   examType,
			"description": description,
			"now":         r.timestamp(),
		})
		if err != nil {
			return "", err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return "", fmt.Errorf("create pyq: %w", err)
		}
		return recordString(record, "pyq_id"), nil
	})
	if err != nil {
		return "", r.fail("save pyq", err)
	}
	return id, nil
}

// AddQuestionToPYQ creates a question under an existing paper and relates it
// to the given topics. An unknown paper id fails without creating anything;
// unknown topic ids follow the configured link mode.
func (r *CurriculumRepository) AddQuestionToPYQ(ctx context.Context, pyqID string, q domain.NewQuestion) (string, error) {
	id, err := neo4jdb.RunWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (string, error) {
		return r.addQuestionTx(ctx, tx, pyqID, q)
	})
	if err != nil {
		return "", r.fail("add question to pyq", err)
	}
	return id, nil
}

func (r *CurriculumRepository) addQuestionTx(ctx context.Context, tx neo4j.ManagedTransaction, pyqID string, q domain.NewQuestion) (string, error) {
	res, err := tx.Run(ctx, `
		MATCH (p:PYQ {id: $pyq_id})
		CREATE (q:Question {
			id: $id,
			text: $text,
			answer: $answer,
			question_type: $question_type,
			marks: $marks,
			created_at: $now
		})
		CREATE (p)-[:CONTAINS]->(q)
		RETURN q.id AS question_id
	`, map[string]any{
		"pyq_id":        pyqID,
		"id":            r.newID(),
		"text":          q.Text,
		"answer":        q.Answer,
		"question_type": q.QuestionType,
		"marks":         int64(q.Marks),
		"now":           r.timestamp(),
	})
	if err != nil {
		return "", err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", fmt.Errorf("pyq %q: %w", pyqID, domain.ErrNotFound)
	}
	questionID := recordString(records[0], "question_id")

	seen := make(map[string]struct{}, len(q.TopicIDs))
	for _, topicID := range q.TopicIDs {
		if _, ok := seen[topicID]; ok || topicID == "" {
			continue
		}
		seen[topicID] = struct{}{}
		if err := r.link(ctx, tx, domain.RelatesTo, topicID, `
			MATCH (q:Question {id: $question_id}), (t:Topic {id: $topic_id})
			CREATE (q)-[:RELATES_TO]->(t)
		`, map[string]any{"question_id": questionID, "topic_id": topicID}); err != nil {
			return "", err
		}
	}
	return questionID, nil
}

// GetUserPyqs lists the papers owned by email, newest first.
func (r *CurriculumRepository) GetUserPyqs(ctx context.Context, email string) ([]domain.PYQ, error) {
	out, err := neo4jdb.RunRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.PYQ, error) {
		res, err := tx.Run(ctx, `
			MATCH (:User {email: $email})-[:OWNS]->(p:PYQ)
			RETURN p AS pyq
			ORDER BY p.created_at DESC
		`, map[string]any{"email": email})
		if err != nil {
			return nil, err
		}
		pyqs := make([]domain.PYQ, 0)
		for res.Next(ctx) {
			if props, ok := nodeProps(res.Record(), "pyq"); ok {
				pyqs = append(pyqs, pyqFromProps(props))
			}
		}
		return pyqs, res.Err()
	})
	if err != nil {
		return nil, r.fail("get user pyqs", err)
	}
	return out, nil
}

// GetPyqQuestions returns the questions of a paper in creation order, each
// with its distinct related topics.
func (r *CurriculumRepository) GetPyqQuestions(ctx context.Context, pyqID string) ([]domain.Question, error) {
	out, err := neo4jdb.RunRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Question, error) {
		res, err := tx.Run(ctx, `
			MATCH (:PYQ {id: $pyq_id})-[:CONTAINS]->(q:Question)
			OPTIONAL MATCH (q)-[:RELATES_TO]->(t:Topic)
			WITH q, collect(DISTINCT t) AS topics
			RETURN q AS question, [x IN topics | {id: x.id, name: x.name}] AS topics
			ORDER BY q.created_at ASC
		`, map[string]any{"pyq_id": pyqID})
		if err != nil {
			return nil, err
		}
		questions := make([]domain.Question, 0)
		for res.Next(ctx) {
			record := res.Record()
			props, ok := nodeProps(record, "question")
			if !ok {
				continue
			}
			q := questionFromProps(props)
			q.Topics = topicRefs(record, "topics")
			questions = append(questions, q)
		}
		return questions, res.Err()
	})
	if err != nil {
		return nil, r.fail("get pyq questions", err)
	}
	return out, nil
}

func topicRefs(record *neo4j.Record, key string) []domain.TopicRef {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return nil
	}
	items, _ := v.([]any)
	refs := make([]domain.TopicRef, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		refs = append(refs, domain.TopicRef{ID: getString(m, "id"), Name: getString(m, "name")})
	}
	return refs
}
