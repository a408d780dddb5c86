package domain

type Coverage struct {
	SyllabusID         string     `json:"syllabus_id"`
	PaperID            string     `json:"paper_id"`
	TotalTopics        int        `json:"total_topics"`
	CoveredTopics      int        `json:"covered_topics"`
	CoveragePercentage float64    `json:"coverage_percentage"`
	UncoveredTopics    []TopicRef `json:"uncovered_topics"`
}

type PaperEvaluation struct {
	PaperID              string         `json:"paper_id"`
	SyllabusID           string         `json:"syllabus_id"`
	Coverage             Coverage       `json:"coverage"`
	QuestionDistribution map[string]int `json:"question_distribution"`
	IsBalanced           bool           `json:"is_balanced"`
	EvaluationScore      float64        `json:"evaluation_score"`
}

// Health is the connectivity report of the graph store.
type Health struct {
	Status    string `json:"status"`
	NodeCount int64  `json:"node_count"`
	Message   string `json:"message,omitempty"`
}

const (
	HealthConnected = "connected"
	HealthError     = "error"
)
