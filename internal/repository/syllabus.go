package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/neo4jdb"
)

// SaveSyllabus creates a syllabus owned by email in a single transaction and
// returns its id. Either the syllabus and its OWNS edge both exist afterwards
// or neither does.
func (r *CurriculumRepository) SaveSyllabus(ctx context.Context, email, name, subject, description string) (string, error) {
	if err := checkEmail(email); err != nil {
		return "", r.fail("save syllabus", err)
	}
	id, err := neo4jdb.RunWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (string, error) {
		return r.saveSyllabusTx(ctx, tx, email, name, subject, description)
	})
	if err != nil {
		return "", r.fail("save syllabus", err)
	}
	return id, nil
}

func (r *CurriculumRepository) saveSyllabusTx(ctx context.Context, tx neo4j.ManagedTransaction, email, name, subject, description string) (string, error) {
	if _, err := r.ensureUserTx(ctx, tx, email); err != nil {
		return "", err
	}

	now := r.timestamp()
	res, err := tx.Run(ctx, `
		MATCH (u:User {email: $email})
		CREATE (s:Syllabus {
			id: $id,
			name: $name,
			subject: $subject,
			description: $description,
			created_at: $now,
			updated_at: $now
		})
		CREATE (u)-[:OWNS]->(s)
		RETURN s.id AS syllabus_id
	`, map[string]any{
		"email":       email,
		"id":          r.newID(),
		"name":        name,
		"subject":     subject,
		"description": description,
		"now":         now,
	})
	if err != nil {
		return "", err
	}
	record, err := res.Single(ctx)
	if err != nil {
		return "", fmt.Errorf("create syllabus: %w", err)
	}
	return recordString(record, "syllabus_id"), nil
}

// GetUserSyllabi lists the syllabi owned by email, newest first.
func (r *CurriculumRepository) GetUserSyllabi(ctx context.Context, email string) ([]domain.Syllabus, error) {
	out, err := neo4jdb.RunRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Syllabus, error) {
		res, err := tx.Run(ctx, `
			MATCH (:User {email: $email})-[:OWNS]->(s:Syllabus)
			RETURN s AS syllabus
			ORDER BY s.created_at DESC
		`, map[string]any{"email": email})
		if err != nil {
			return nil, err
		}
		syllabi := make([]domain.Syllabus, 0)
		for res.Next(ctx) {
			if props, ok := nodeProps(res.Record(), "syllabus"); ok {
				syllabi = append(syllabi, syllabusFromProps(props))
			}
		}
		return syllabi, res.Err()
	})
	if err != nil {
		return nil, r.fail("get user syllabi", err)
	}
	return out, nil
}

// GetSyllabusTopics returns the direct children of a syllabus ordered by
// (module_number, topic_number) as stored, i.e. lexicographically. Each
// entry carries the number of distinct topics reachable below it.
func (r *CurriculumRepository) GetSyllabusTopics(ctx context.Context, syllabusID string) ([]domain.TopicSummary, error) {
	out, err := neo4jdb.RunRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.TopicSummary, error) {
		topics, err := r.syllabusRootsTx(ctx, tx, syllabusID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(topics))
		for _, t := range topics {
			ids = append(ids, t.ID)
		}
		below, err := r.descendantsTx(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		summaries := make([]domain.TopicSummary, 0, len(topics))
		for _, t := range topics {
			summaries = append(summaries, domain.TopicSummary{
				Topic:         t,
				SubtopicCount: len(below[t.ID]),
			})
		}
		return summaries, nil
	})
	if err != nil {
		return nil, r.fail("get syllabus topics", err)
	}
	return out, nil
}

func (r *CurriculumRepository) syllabusRootsTx(ctx context.Context, tx neo4j.ManagedTransaction, syllabusID string) ([]domain.Topic, error) {
	res, err := tx.Run(ctx, `
		MATCH (:Syllabus {id: $syllabus_id})-[:CONTAINS]->(t:Topic)
		RETURN DISTINCT t AS topic
		ORDER BY t.module_number, t.topic_number
	`, map[string]any{"syllabus_id": syllabusID})
	if err != nil {
		return nil, err
	}
	topics := make([]domain.Topic, 0)
	for res.Next(ctx) {
		if props, ok := nodeProps(res.Record(), "topic"); ok {
			topics = append(topics, topicFromProps(props))
		}
	}
	return topics, res.Err()
}
