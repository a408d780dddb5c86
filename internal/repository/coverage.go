package repository

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/neo4jdb"
)

// PaperCoverage compares the topics of a syllabus (its CONTAINS children and
// everything beneath them) with the topics the paper's questions relate to.
// A topic counts as covered only when a question relates to it directly.
func (r *CurriculumRepository) PaperCoverage(ctx context.Context, syllabusID, paperID string) (domain.Coverage, error) {
	out, err := neo4jdb.RunRead(ctx, r.client, func(tx neo4j.ManagedTransaction) (domain.Coverage, error) {
		cov := domain.Coverage{
			SyllabusID:      syllabusID,
			PaperID:         paperID,
			UncoveredTopics: make([]domain.TopicRef, 0),
		}

		roots, err := r.syllabusRootsTx(ctx, tx, syllabusID)
		if err != nil {
			return cov, err
		}
		rootIDs := make([]string, 0, len(roots))
		for _, t := range roots {
			rootIDs = append(rootIDs, t.ID)
		}
		below, err := r.descendantsTx(ctx, tx, rootIDs)
		if err != nil {
			return cov, err
		}

		seen := make(map[string]struct{})
		var all []string
		for _, id := range rootIDs {
			for _, tid := range append([]string{id}, below[id]...) {
				if _, ok := seen[tid]; ok {
					continue
				}
				seen[tid] = struct{}{}
				all = append(all, tid)
			}
		}
		cov.TotalTopics = len(all)
		if cov.TotalTopics == 0 {
			return cov, nil
		}

		res, err := tx.Run(ctx, `
			UNWIND $topic_ids AS topic_id
			MATCH (t:Topic {id: topic_id})
			OPTIONAL MATCH (:PYQ {id: $paper_id})-[:CONTAINS]->(q:Question)-[:RELATES_TO]->(t)
			RETURN t.id AS id, t.name AS name, count(q) > 0 AS covered
		`, map[string]any{"topic_ids": all, "paper_id": paperID})
		if err != nil {
			return cov, err
		}
		for res.Next(ctx) {
			record := res.Record()
			covered, _ := record.Get("covered")
			if ok, _ := covered.(bool); ok {
				cov.CoveredTopics++
				continue
			}
			cov.UncoveredTopics = append(cov.UncoveredTopics, domain.TopicRef{
				ID:   recordString(record, "id"),
				Name: recordString(record, "name"),
			})
		}
		if err := res.Err(); err != nil {
			return cov, err
		}
		cov.CoveragePercentage = coveragePercentage(cov.CoveredTopics, cov.TotalTopics)
		return cov, nil
	})
	if err != nil {
		return domain.Coverage{}, r.fail("paper coverage", err)
	}
	return out, nil
}

func coveragePercentage(covered, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(covered) / float64(total) * 100
}
