package domain

// Payloads of the write operations.

type SyllabusCreated struct {
	SyllabusID string `json:"syllabus_id"`
}

type TopicCreated struct {
	TopicID string `json:"topic_id"`
}

type PYQCreated struct {
	PYQID string `json:"pyq_id"`
}

type QuestionCreated struct {
	QuestionID string `json:"question_id"`
}
