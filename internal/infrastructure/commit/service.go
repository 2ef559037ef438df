// Package commit hands the nodes the engine marked dirty to an arrangement
// collaborator in batches.
package commit

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/domain/tree"
	"github.com/bnema/tilewm/internal/logging"
)

// Batch is one set of nodes whose geometry must be recomputed and applied.
type Batch struct {
	Seq   uint64
	Nodes []*entity.Node
}

// Handler applies a batch. A failed batch stays pending and is retried on the
// next commit.
type Handler func(ctx context.Context, b Batch) error

// Service tracks whether the tree changed since the last commit and flushes
// the dirty set on demand. Like the tree it serves, it must be used from the
// goroutine that mutates the tree.
type Service struct {
	tree    *tree.Tree
	handler Handler

	pending bool
	ready   bool // false until the first arrangement exists
	seq     uint64
	detach  func()
}

// NewService creates a commit service for t. A nil handler discards batches.
func NewService(t *tree.Tree, handler Handler) *Service {
	if handler == nil {
		handler = discard
	}
	return &Service{tree: t, handler: handler}
}

// discard drops batches. The dirty set is still drained.
func discard(context.Context, Batch) error { return nil }

// Start begins watching the tree for changes.
func (s *Service) Start(ctx context.Context) {
	if s.detach != nil {
		return
	}
	s.detach = s.tree.Subscribe(func(entity.TreeEvent) { s.pending = true })
	logging.FromContext(ctx).Debug().Msg("commit service started")
}

// SetReady allows commits. Changes made before are kept and go out with the
// first commit.
func (s *Service) SetReady() {
	s.ready = true
}

// Pending reports whether the tree changed since the last successful commit.
func (s *Service) Pending() bool {
	return s.pending
}

// Commit hands the current dirty set to the handler. It does nothing before
// SetReady or when there is nothing to apply.
func (s *Service) Commit(ctx context.Context) error {
	if !s.ready {
		return nil
	}
	nodes := s.tree.TakeDirty()
	if len(nodes) == 0 {
		s.pending = false
		return nil
	}

	s.seq++
	batch := Batch{Seq: s.seq, Nodes: nodes}
	if err := s.handler(ctx, batch); err != nil {
		for _, n := range nodes {
			s.tree.SetDirty(n)
		}
		return fmt.Errorf("commit batch %d: %w", batch.Seq, err)
	}
	s.pending = false

	logging.FromContext(ctx).Debug().
		Uint64("seq", batch.Seq).
		Int("nodes", len(nodes)).
		Msg("committed arrangement")
	return nil
}

// Stop detaches from the tree and commits what is left.
func (s *Service) Stop(ctx context.Context) error {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	return s.Commit(ctx)
}
