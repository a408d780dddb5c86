package domain

type RelationType string

const (
	Owns        RelationType = "OWNS"
	Contains    RelationType = "CONTAINS"
	HasSubtopic RelationType = "HAS_SUBTOPIC"
	RelatesTo   RelationType = "RELATES_TO"
)

type NodeLabel string

const (
	UserLabel     NodeLabel = "User"
	SyllabusLabel NodeLabel = "Syllabus"
	TopicLabel    NodeLabel = "Topic"
	PYQLabel      NodeLabel = "PYQ"
	QuestionLabel NodeLabel = "Question"
)

// Labels lists every node label in constraint creation order.
var Labels = []NodeLabel{UserLabel, SyllabusLabel, TopicLabel, PYQLabel, QuestionLabel}

// IdentityKey is the property that uniquely identifies nodes with this label.
func (l NodeLabel) IdentityKey() string {
	if l == UserLabel {
		return "email"
	}
	return "id"
}
