package generation

import (
	"context"
	"fmt"
	"strings"
)

type SectionSpec struct {
	Type  QuestionType `json:"type"`
	Count int          `json:"count"`
	Marks int          `json:"marks,omitempty"`
}

type PaperRequest struct {
	Request
	Title               string        `json:"title,omitempty"`
	Sections            []SectionSpec `json:"sections,omitempty"`
	TimeDuration        string        `json:"time_duration,omitempty"`
	GeneralInstructions []string      `json:"general_instructions,omitempty"`
}

type Section struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Type        QuestionType        `json:"type"`
	Questions   []GeneratedQuestion `json:"questions"`
	Marks       int                 `json:"marks"`
}

type Paper struct {
	Title        string    `json:"title"`
	TimeDuration string    `json:"time_duration"`
	Instructions []string  `json:"instructions"`
	Sections     []Section `json:"sections"`
	TotalMarks   int       `json:"total_marks"`
}

// DefaultSections is the layout used when a paper request names none: six
// short and four long questions, the distribution the evaluator treats as
// balanced.
func DefaultSections() []SectionSpec {
	return []SectionSpec{
		{Type: TypeShort, Count: 6},
		{Type: TypeLong, Count: 4},
	}
}

// DefaultDuration is the exam length printed on a paper worth totalMarks
// when the request gives none.
func DefaultDuration(totalMarks int) string {
	switch {
	case totalMarks <= 30:
		return "1 hour"
	case totalMarks <= 60:
		return "2 hours"
	default:
		return "3 hours"
	}
}

var defaultInstructions = []string{
	"All questions are compulsory.",
	"Figures to the right indicate full marks.",
}

// GeneratePaper generates every section in order and assembles a titled
// paper. Sections are lettered A, B, C...
func (g *Generator) GeneratePaper(ctx context.Context, req PaperRequest) (Paper, error) {
	layouts := req.Sections
	if len(layouts) == 0 {
		layouts = DefaultSections()
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Question Paper"
	}

	paper := Paper{Title: title}
	for i, layout := range layouts {
		if layout.Count <= 0 {
			continue
		}
		sub := req.Request
		sub.Count = layout.Count
		questions, err := g.Generate(ctx, layout.Type, sub)
		if err != nil {
			return Paper{}, fmt.Errorf("section %d: %w", i+1, err)
		}
		section := Section{
			Name:        fmt.Sprintf("Section %c", 'A'+rune(len(paper.Sections))),
			Description: fmt.Sprintf("Answer all %d %s questions.", len(questions), layout.Type.label()),
			Type:        layout.Type,
			Questions:   questions,
		}
		for j := range section.Questions {
			if layout.Marks > 0 {
				section.Questions[j].Marks = layout.Marks
			}
			section.Marks += section.Questions[j].Marks
		}
		paper.Sections = append(paper.Sections, section)
		paper.TotalMarks += section.Marks
	}
	if len(paper.Sections) == 0 {
		return Paper{}, fmt.Errorf("%w: paper has no sections", ErrInvalidRequest)
	}

	paper.TimeDuration = strings.TrimSpace(req.TimeDuration)
	if paper.TimeDuration == "" {
		paper.TimeDuration = DefaultDuration(paper.TotalMarks)
	}
	paper.Instructions = append([]string(nil), req.GeneralInstructions...)
	if len(paper.Instructions) == 0 {
		paper.Instructions = append(paper.Instructions, defaultInstructions...)
	}
	for _, s := range paper.Sections {
		paper.Instructions = append(paper.Instructions,
			fmt.Sprintf("%s carries %d marks.", s.Name, s.Marks))
	}
	return paper, nil
}
