package repository

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/neo4jdb"
)

// minTokenLen drops short words ("a", "of", "is") from the similarity sets.
const minTokenLen = 3

// FindSimilarQuestions returns stored questions whose word-set Jaccard
// similarity to text is at least threshold, most similar first. An empty
// questionType compares against every question.
func (r *CurriculumRepository) FindSimilarQuestions(ctx context.Context, text, questionType string, threshold float64) ([]domain.SimilarQuestion, error) {
	want := tokenSet(text)
	if len(want) == 0 {
		return []domain.SimilarQuestion{}, nil
	}

	out, err := neo4jdb.RunRead(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.SimilarQuestion, error) {
		res, err := tx.Run(ctx, `
			MATCH (q:Question)
			WHERE $question_type = '' OR q.question_type = $question_type
			RETURN q AS question
		`, map[string]any{"question_type": questionType})
		if err != nil {
			return nil, err
		}
		matches := make([]domain.SimilarQuestion, 0)
		for res.Next(ctx) {
			props, ok := nodeProps(res.Record(), "question")
			if !ok {
				continue
			}
			q := questionFromProps(props)
			if score := jaccard(want, tokenSet(q.Text)); score >= threshold {
				matches = append(matches, domain.SimilarQuestion{Question: q, Similarity: score})
			}
		}
		return matches, res.Err()
	})
	if err != nil {
		return nil, r.fail("find similar questions", err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	return out, nil
}

func tokenSet(text string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if len([]rune(w)) >= minTokenLen {
			set[w] = struct{}{}
		}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for w := range a {
		if _, ok := b[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(a)+len(b)-shared)
}
