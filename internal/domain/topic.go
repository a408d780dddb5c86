package domain

import (
	"fmt"
	"time"
)

// TopicKind tells which level of the curriculum tree a Topic node sits on.
//
//   - MODULE: module_number, module_name, name (the module name), description, hours.
//   - TOPIC: the module fields plus topic_number.
//   - SUBTOPIC: the topic fields plus subtopic_number.
type TopicKind string

const (
	KindModule   TopicKind = "MODULE"
	KindTopic    TopicKind = "TOPIC"
	KindSubtopic TopicKind = "SUBTOPIC"
)

func (k TopicKind) Valid() bool {
	switch k {
	case KindModule, KindTopic, KindSubtopic:
		return true
	default:
		return false
	}
}

// ParseTopicKind accepts the stored form of a kind. An empty string means
// TOPIC, the kind callers create when they do not say otherwise.
func ParseTopicKind(s string) (TopicKind, error) {
	if s == "" {
		return KindTopic, nil
	}
	k := TopicKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown topic kind %q", s)
	}
	return k, nil
}

type Topic struct {
	ID             string    `json:"id"`
	Kind           TopicKind `json:"kind"`
	ModuleNumber   string    `json:"module_number"`
	ModuleName     string    `json:"module_name"`
	TopicNumber    string    `json:"topic_number,omitempty"`
	SubtopicNumber string    `json:"subtopic_number,omitempty"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Hours          int       `json:"hours"`
	IsModule       bool      `json:"is_module"`
	CreatedAt      time.Time `json:"created_at,omitzero"`
}

// TopicFields carries the per-topic attributes of an AddTopic call.
type TopicFields struct {
	Kind           TopicKind `json:"kind,omitempty"`
	TopicNumber    string    `json:"topic_number,omitempty"`
	SubtopicNumber string    `json:"subtopic_number,omitempty"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Hours          int       `json:"hours,omitempty"`
}

// TopicSummary is a direct child of a syllabus with the number of distinct
// topics reachable beneath it.
type TopicSummary struct {
	Topic
	SubtopicCount int `json:"subtopic_count"`
}

type TopicRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
