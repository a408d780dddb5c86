package domain

import "time"

type Syllabus struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PYQ is a past-year exam paper. Year is kept as entered ("2023", "2022-23").
type PYQ struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Year        string    `json:"year"`
	ExamType    string    `json:"exam_type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Question struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	Answer       string     `json:"answer"`
	QuestionType string     `json:"question_type"`
	Marks        int        `json:"marks"`
	CreatedAt    time.Time  `json:"created_at,omitzero"`
	Topics       []TopicRef `json:"topics,omitempty"`
}

// QuestionKey is the comparable identity of a question record, used to
// deduplicate example questions gathered from several topics.
type QuestionKey struct {
	ID           string
	Text         string
	Answer       string
	QuestionType string
	Marks        int
}

func (q Question) Key() QuestionKey {
	return QuestionKey{
		ID:           q.ID,
		Text:         q.Text,
		Answer:       q.Answer,
		QuestionType: q.QuestionType,
		Marks:        q.Marks,
	}
}

type NewQuestion struct {
	Text         string   `json:"text"`
	Answer       string   `json:"answer"`
	QuestionType string   `json:"question_type"`
	Marks        int      `json:"marks"`
	TopicIDs     []string `json:"topic_ids,omitempty"`
}
