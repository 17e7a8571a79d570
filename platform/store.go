package platform

import "context"

// Sequence names the platform id sequences.
type Sequence string

const (
	SeqCreator Sequence = "creator"
	SeqContent Sequence = "content"
	SeqTip     Sequence = "tip"
)

type Store interface {
	// Get returns the platform ledger with the Next* fields reflecting the
	// current sequence positions. Implementations return a not-found error
	// until the first Update.
	Get(ctx context.Context) (*State, error)
	// Update persists the earnings accumulator. The Next* fields are owned
	// by NextID and ignored here.
	Update(ctx context.Context, s *State) error
	// NextID increments the named sequence and returns the allocated id,
	// starting at 1. Allocation is atomic with respect to other allocations.
	NextID(ctx context.Context, seq Sequence) (uint64, error)
}
