package domain

// SyllabusContext feeds prompt templates. Key names are consumed by the
// prompt formatting step and must not change.
type SyllabusContext struct {
	SyllabusText     string     `json:"syllabus_text"`
	Topics           []Topic    `json:"topics"`
	ExampleQuestions []Question `json:"example_questions"`
}

type QuestionsContext struct {
	SyllabusText     string     `json:"syllabus_text"`
	ExampleQuestions []Question `json:"example_questions"`
}

type SimilarQuestion struct {
	Question
	Similarity float64 `json:"similarity"`
}

type UniquenessReport struct {
	IsUnique            bool              `json:"is_unique"`
	SimilarQuestions    []SimilarQuestion `json:"similar_questions"`
	SimilarityThreshold float64           `json:"similarity_threshold"`
}
