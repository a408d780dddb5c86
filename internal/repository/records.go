package repository

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/AndrivA89/question-forge/internal/domain"
)

func getString(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

func getInt(props map[string]any, key string) int {
	switch v := props[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func getBool(props map[string]any, key string) bool {
	b, _ := props[key].(bool)
	return b
}

func getTime(props map[string]any, key string) time.Time {
	switch v := props[key].(type) {
	case time.Time:
		return v
	case neo4j.LocalDateTime:
		return v.Time()
	default:
		return time.Time{}
	}
}

func nodeProps(record *neo4j.Record, key string) (map[string]any, bool) {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return nil, false
	}
	n, ok := v.(neo4j.Node)
	if !ok {
		return nil, false
	}
	return n.Props, true
}

func recordString(record *neo4j.Record, key string) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recordStrings(record *neo4j.Record, key string) []string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func topicFromProps(p map[string]any) domain.Topic {
	kind := domain.TopicKind(getString(p, "kind"))
	if !kind.Valid() {
		// Nodes written before kinds existed only carry is_module.
		kind = domain.KindTopic
		if getBool(p, "is_module") {
			kind = domain.KindModule
		} else if getString(p, "subtopic_number") != "" {
			kind = domain.KindSubtopic
		}
	}
	return domain.Topic{
		ID:             getString(p, "id"),
		Kind:           kind,
		ModuleNumber:   getString(p, "module_number"),
		ModuleName:     getString(p, "module_name"),
		TopicNumber:    getString(p, "topic_number"),
		SubtopicNumber: getString(p, "subtopic_number"),
		Name:           getString(p, "name"),
		Description:    getString(p, "description"),
		Hours:          getInt(p, "hours"),
		IsModule:       getBool(p, "is_module"),
		CreatedAt:      getTime(p, "created_at"),
	}
}

func topicProps(t domain.Topic) map[string]any {
	return map[string]any{
		"id":              t.ID,
		"kind":            string(t.Kind),
		"module_number":   t.ModuleNumber,
		"module_name":     t.ModuleName,
		"topic_number":    t.TopicNumber,
		"subtopic_number": t.SubtopicNumber,
		"name":            t.Name,
		"description":     t.Description,
		"hours":           int64(t.Hours),
		"is_module":       t.Kind == domain.KindModule,
		"created_at":      t.CreatedAt,
	}
}

func questionFromProps(p map[string]any) domain.Question {
	return domain.Question{
		ID:           getString(p, "id"),
		Text:         getString(p, "text"),
		Answer:       getString(p, "answer"),
		QuestionType: getString(p, "question_type"),
		Marks:        getInt(p, "marks"),
		CreatedAt:    getTime(p, "created_at"),
	}
}

func syllabusFromProps(p map[string]any) domain.Syllabus {
	return domain.Syllabus{
		ID:          getString(p, "id"),
		Name:        getString(p, "name"),
		Subject:     getString(p, "subject"),
		Description: getString(p, "description"),
		CreatedAt:   getTime(p, "created_at"),
		UpdatedAt:   getTime(p, "updated_at"),
	}
}

func pyqFromProps(p map[string]any) domain.PYQ {
	return domain.PYQ{
		ID:          getString(p, "id"),
		Title:       getString(p, "title"),
		Subject:     getString(p, "subject"),
		Year:        getString(p, "year"),
		ExamType:    getString(p, "exam_type"),
		Description: getString(p, "description"),
		CreatedAt:   getTime(p, "created_at"),
	}
}
