package repository

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// expandFunc returns the HAS_SUBTOPIC children of each given topic id.
type expandFunc func(ctx context.Context, ids []string) (map[string][]string, error)

// walkSubtopics runs one breadth-first walk per root over HAS_SUBTOPIC edges
// and returns, for each root, the distinct ids reachable beneath it. All
// walks advance level by level together so every level costs a single
// expand call. maxDepth <= 0 means unbounded; the visited sets stop the walk
// on cycles and collapse diamonds.
func walkSubtopics(ctx context.Context, roots []string, maxDepth int, expand expandFunc) (map[string][]string, error) {
	type walk struct {
		visited  map[string]struct{}
		order    []string
		frontier []string
	}

	walks := make(map[string]*walk, len(roots))
	for _, root := range roots {
		if _, ok := walks[root]; ok {
			continue
		}
		walks[root] = &walk{
			visited:  map[string]struct{}{root: {}},
			frontier: []string{root},
		}
	}

	known := make(map[string][]string)
	for depth := 1; maxDepth <= 0 || depth <= maxDepth; depth++ {
		var pending []string
		seen := make(map[string]struct{})
		for _, w := range walks {
			for _, id := range w.frontier {
				if _, ok := known[id]; ok {
					continue
				}
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				pending = append(pending, id)
			}
		}

		if len(pending) > 0 {
			children, err := expand(ctx, pending)
			if err != nil {
				return nil, err
			}
			for _, id := range pending {
				known[id] = children[id]
			}
		}

		advanced := false
		for _, w := range walks {
			var next []string
			for _, id := range w.frontier {
				for _, child := range known[id] {
					if _, ok := w.visited[child]; ok {
						continue
					}
					w.visited[child] = struct{}{}
					w.order = append(w.order, child)
					next = append(next, child)
				}
			}
			w.frontier = next
			if len(next) > 0 {
				advanced = true
			}
		}
		if !advanced {
			break
		}
	}

	out := make(map[string][]string, len(walks))
	for root, w := range walks {
		out[root] = w.order
	}
	return out, nil
}

// childrenTx is the expandFunc backed by the open transaction.
func childrenTx(tx neo4j.ManagedTransaction) expandFunc {
	return func(ctx context.Context, ids []string) (map[string][]string, error) {
		res, err := tx.Run(ctx, `
			UNWIND $ids AS parent_id
			MATCH (:Topic {id: parent_id})-[:HAS_SUBTOPIC]->(c:Topic)
			RETURN parent_id, collect(DISTINCT c.id) AS children
		`, map[string]any{"ids": ids})
		if err != nil {
			return nil, err
		}
		out := make(map[string][]string, len(ids))
		for res.Next(ctx) {
			record := res.Record()
			out[recordString(record, "parent_id")] = recordStrings(record, "children")
		}
		return out, res.Err()
	}
}

func (r *CurriculumRepository) descendantsTx(ctx context.Context, tx neo4j.ManagedTransaction, roots []string) (map[string][]string, error) {
	if len(roots) == 0 {
		return map[string][]string{}, nil
	}
	return walkSubtopics(ctx, roots, r.maxDepth, childrenTx(tx))
}
