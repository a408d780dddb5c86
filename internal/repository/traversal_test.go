package repository

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGraph struct {
	edges map[string][]string
	calls [][]string
}

func (g *fakeGraph) expand(_ context.Context, ids []string) (map[string][]string, error) {
	g.calls = append(g.calls, append([]string(nil), ids...))
	out := make(map[string][]string, len(ids))
	for _, id := range ids {
		out[id] = g.edges[id]
	}
	return out, nil
}

func sorted(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

func TestWalkSubtopicsTransitive(t *testing.T) {
	g := &fakeGraph{edges: map[string][]string{
		"A": {"B"},
		"B": {"C"},
	}}

	got, err := walkSubtopics(context.Background(), []string{"A"}, 0, g.expand)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, got["A"])
}

func TestWalkSubtopicsDiamondCountedOnce(t *testing.T) {
	g := &fakeGraph{edges: map[string][]string{
		"A": {"B", "D"},
		"B": {"C"},
		"D": {"C"},
	}}

	got, err := walkSubtopics(context.Background(), []string{"A"}, 0, g.expand)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "D"}, sorted(got["A"]))
}

func TestWalkSubtopicsStopsOnCycle(t *testing.T) {
	g := &fakeGraph{edges: map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"A", "B"},
	}}

	got, err := walkSubtopics(context.Background(), []string{"A"}, 0, g.expand)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, got["A"])
}

func TestWalkSubtopicsMaxDepth(t *testing.T) {
	g := &fakeGraph{edges: map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"D"},
	}}

	got, err := walkSubtopics(context.Background(), []string{"A"}, 2, g.expand)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, got["A"])
	assert.Len(t, g.calls, 2)
}

func TestWalkSubtopicsSharesLevelsAcrossRoots(t *testing.T) {
	g := &fakeGraph{edges: map[string][]string{
		"A": {"S"},
		"B": {"S"},
		"S": {"T"},
	}}

	got, err := walkSubtopics(context.Background(), []string{"A", "B", "A"}, 0, g.expand)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "T"}, got["A"])
	assert.Equal(t, []string{"S", "T"}, got["B"])

	// One expand per level, and S is only asked for once.
	require.Len(t, g.calls, 3)
	assert.Equal(t, []string{"A", "B"}, sorted(g.calls[0]))
	assert.Equal(t, []string{"S"}, g.calls[1])
	assert.Equal(t, []string{"T"}, g.calls[2])
}

func TestWalkSubtopicsLeafHasNoDescendants(t *testing.T) {
	g := &fakeGraph{edges: map[string][]string{}}

	got, err := walkSubtopics(context.Background(), []string{"A"}, 0, g.expand)
	require.NoError(t, err)
	assert.Empty(t, got["A"])
	assert.Len(t, g.calls, 1)
}

func TestWalkSubtopicsPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := walkSubtopics(context.Background(), []string{"A"}, 0, func(context.Context, []string) (map[string][]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}
