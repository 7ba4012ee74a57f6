package domain

import (
	"context"
	"fmt"
)

const noChild = -1

// searchNode is one evaluated state of the game tree. Children are arena
// indices per column; noChild marks a full column.
type searchNode struct {
	evaluation int
	height     int
	children   [Columns]int
}

// searchTree is built for a single decision and dropped afterwards.
type searchTree struct {
	ctx   context.Context
	nodes []searchNode
}

// Analysis is the outcome of one machine search.
type Analysis struct {
	Column int `json:"column"`
	// Scores holds the minimax value of each root child; nil for full columns.
	Scores [Columns]*int `json:"scores"`
	Nodes  int           `json:"nodes"`
}

// Analyze runs the machine search on b without playing the chosen column.
func (b *Board) Analyze(ctx context.Context) (Analysis, error) {
	if err := b.checkTurn(Machine); err != nil {
		return Analysis{}, err
	}
	mover := b.clone()
	mover.toMove = Machine
	return mover.search(ctx)
}

// search builds the tree rooted at b to b.level plies and picks the root
// child with the highest score, the leftmost one on ties.
func (b *Board) search(ctx context.Context) (Analysis, error) {
	t := &searchTree{ctx: ctx}
	root, err := t.build(b, b.level)
	if err != nil {
		return Analysis{}, err
	}
	t.score(root, true)

	a := Analysis{Column: noChild, Nodes: len(t.nodes)}
	best := 0
	for col, child := range t.nodes[root].children {
		if child == noChild {
			continue
		}
		v := t.nodes[child].evaluation
		a.Scores[col] = &v
		if a.Column == noChild || v > best {
			a.Column, best = col, v
		}
	}
	if a.Column == noChild {
		return Analysis{}, fmt.Errorf("%w: every column is full", ErrNoLegalMove)
	}
	return a, nil
}

// build appends b and, unless b is a leaf, one subtree per open column.
// Finished games are not expanded any further.
func (t *searchTree) build(b *Board, height int) (int, error) {
	if err := t.ctx.Err(); err != nil {
		return noChild, err
	}

	idx := len(t.nodes)
	n := searchNode{evaluation: b.evaluation, height: height}
	for col := range n.children {
		n.children[col] = noChild
	}
	t.nodes = append(t.nodes, n)

	if height == 0 || b.IsGameOver() {
		return idx, nil
	}

	for col := 0; col < Columns; col++ {
		next, ok := b.play(col)
		if !ok {
			continue
		}
		child, err := t.build(next, height-1)
		if err != nil {
			return noChild, err
		}
		t.nodes[idx].children[col] = child
	}
	return idx, nil
}

// score folds the subtree at idx post-order: an inner node adds the maximum
// (or minimum) of its children to its own evaluation, alternating per ply.
func (t *searchTree) score(idx int, maximize bool) int {
	found := false
	extremum := 0
	for _, child := range t.nodes[idx].children {
		if child == noChild {
			continue
		}
		v := t.score(child, !maximize)
		if !found || (maximize && v > extremum) || (!maximize && v < extremum) {
			extremum, found = v, true
		}
	}
	if found {
		t.nodes[idx].evaluation += extremum
	}
	return t.nodes[idx].evaluation
}
