package domain

// SyllabusData is the nested structure accepted by the bulk import:
// syllabus → modules → topics → subtopics.
type SyllabusData struct {
	Name        string       `json:"name" yaml:"name"`
	Subject     string       `json:"subject" yaml:"subject"`
	Description string       `json:"description,omitempty" yaml:"description"`
	Modules     []ModuleData `json:"modules,omitempty" yaml:"modules"`
}

type ModuleData struct {
	Number      string      `json:"number" yaml:"number"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description"`
	Hours       int         `json:"hours,omitempty" yaml:"hours"`
	Topics      []TopicData `json:"topics,omitempty" yaml:"topics"`
}

type TopicData struct {
	Number      string         `json:"number" yaml:"number"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description"`
	Subtopics   []SubtopicData `json:"subtopics,omitempty" yaml:"subtopics"`
}

type SubtopicData struct {
	Number      string `json:"number" yaml:"number"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// DefaultSyllabusName is used when imported data carries no name.
const DefaultSyllabusName = "Untitled Syllabus"

// ImportSummary reports what a bulk import created.
type ImportSummary struct {
	SyllabusID string `json:"syllabus_id"`
	Modules    int    `json:"modules"`
	Topics     int    `json:"topics"`
	Subtopics  int    `json:"subtopics"`
}
