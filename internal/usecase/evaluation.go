package usecase

import (
	"context"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/logger"
)

// Scoring policy of a generated paper.
const (
	balancedShort  = 6
	balancedLong   = 4
	coverageWeight = 0.7
	balanceBonus   = 30.0

	unknownType = "unknown"
)

type PaperEvaluator struct {
	src PaperSource
	log *logger.Logger
}

func NewPaperEvaluator(src PaperSource, log *logger.Logger) *PaperEvaluator {
	if log == nil {
		log = logger.Nop()
	}
	return &PaperEvaluator{src: src, log: log.With("component", "PaperEvaluator")}
}

// EvaluatePaper scores a paper against a syllabus:
// coverage_percentage * 0.7, plus 30 when the paper has exactly 6 short and
// 4 long questions.
func (e *PaperEvaluator) EvaluatePaper(ctx context.Context, syllabusID, paperID string) (domain.PaperEvaluation, error) {
	coverage, err := e.src.PaperCoverage(ctx, syllabusID, paperID)
	if err != nil {
		return domain.PaperEvaluation{}, err
	}
	questions, err := e.src.GetPyqQuestions(ctx, paperID)
	if err != nil {
		return domain.PaperEvaluation{}, err
	}

	dist := Distribution(questions)
	balanced := IsBalanced(dist)
	score := Score(coverage.CoveragePercentage, balanced)

	e.log.Debug("paper evaluated",
		"paper_id", paperID,
		"syllabus_id", syllabusID,
		"coverage", coverage.CoveragePercentage,
		"balanced", balanced,
		"score", score,
	)
	return domain.PaperEvaluation{
		PaperID:              paperID,
		SyllabusID:           syllabusID,
		Coverage:             coverage,
		QuestionDistribution: dist,
		IsBalanced:           balanced,
		EvaluationScore:      score,
	}, nil
}

// Distribution counts questions per question_type; untyped questions are
// counted as "unknown".
func Distribution(questions []domain.Question) map[string]int {
	dist := make(map[string]int)
	for _, q := range questions {
		t := q.QuestionType
		if t == "" {
			t = unknownType
		}
		dist[t]++
	}
	return dist
}

func IsBalanced(dist map[string]int) bool {
	return dist["short"] == balancedShort && dist["long"] == balancedLong
}

func Score(coveragePercentage float64, balanced bool) float64 {
	score := coveragePercentage * coverageWeight
	if balanced {
		score += balanceBonus
	}
	return score
}
