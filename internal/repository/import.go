package repository

import (
	"context"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/neo4jdb"
)

// ImportSyllabusFromStructuredData writes a whole syllabus tree in a single
// transaction: modules hang off the syllabus via CONTAINS, topics off their
// module and subtopics off their topic via HAS_SUBTOPIC. Nothing is visible
// unless every node and edge was written.
func (r *CurriculumRepository) ImportSyllabusFromStructuredData(ctx context.Context, email string, data domain.SyllabusData) (domain.ImportSummary, error) {
	if err := checkEmail(email); err != nil {
		return domain.ImportSummary{}, r.fail("import syllabus", err)
	}
	name := strings.TrimSpace(data.Name)
	if name == "" {
		name = domain.DefaultSyllabusName
	}

	out, err := neo4jdb.RunWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (domain.ImportSummary, error) {
		var summary domain.ImportSummary
		syllabusID, err := r.saveSyllabusTx(ctx, tx, email, name, data.Subject, data.Description)
		if err != nil {
			return summary, err
		}
		summary.SyllabusID = syllabusID

		for _, m := range data.Modules {
			module := r.newTopic(domain.KindModule, m.Number, m.Name)
			module.Name = m.Name
			module.Description = m.Description
			module.Hours = m.Hours
			if err := r.createTopicTx(ctx, tx, module); err != nil {
				return summary, err
			}
			if err := r.link(ctx, tx, domain.Contains, syllabusID, `
				MATCH (s:Syllabus {id: $syllabus_id}), (t:Topic {id: $topic_id})
				CREATE (s)-[:CONTAINS]->(t)
			`, map[string]any{"syllabus_id": syllabusID, "topic_id": module.ID}); err != nil {
				return summary, err
			}
			summary.Modules++

			for _, t := range m.Topics {
				topic := r.newTopic(domain.KindTopic, m.Number, m.Name)
				topic.TopicNumber = t.Number
				topic.Name = t.Name
				topic.Description = t.Description
				if err := r.createTopicTx(ctx, tx, topic); err != nil {
					return summary, err
				}
				if err := r.linkSubtopicTx(ctx, tx, module.ID, topic.ID); err != nil {
					return summary, err
				}
				summary.Topics++

				for _, s := range t.Subtopics {
					sub := r.newTopic(domain.KindSubtopic, m.Number, m.Name)
					sub.TopicNumber = t.Number
					sub.SubtopicNumber = s.Number
					sub.Name = s.Name
					sub.Description = s.Description
					if err := r.createTopicTx(ctx, tx, sub); err != nil {
						return summary, err
					}
					if err := r.linkSubtopicTx(ctx, tx, topic.ID, sub.ID); err != nil {
						return summary, err
					}
					summary.Subtopics++
				}
			}
		}
		return summary, nil
	})
	if err != nil {
		return domain.ImportSummary{}, r.fail("import syllabus", err)
	}

	r.log.Info("syllabus imported",
		"syllabus_id", out.SyllabusID,
		"modules", out.Modules,
		"topics", out.Topics,
		"subtopics", out.Subtopics,
	)
	return out, nil
}

func (r *CurriculumRepository) newTopic(kind domain.TopicKind, moduleNumber, moduleName string) domain.Topic {
	return domain.Topic{
		ID:           r.newID(),
		Kind:         kind,
		ModuleNumber: moduleNumber,
		ModuleName:   moduleName,
		CreatedAt:    r.timestamp(),
	}
}
