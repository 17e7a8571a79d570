// Package memory provides an in-memory Store implementation.
//
// It is the default backend for tests and embedded development setups.
// All data is lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/xraph/patron"
	"github.com/xraph/patron/content"
	"github.com/xraph/patron/creator"
	"github.com/xraph/patron/payment"
	"github.com/xraph/patron/platform"
	"github.com/xraph/patron/store"
	"github.com/xraph/patron/subscription"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	// Creator storage
	creators map[uint64]*creator.Creator

	// Content storage
	contents map[uint64]*content.Content

	// Subscription storage, keyed subscriber:creatorID
	subscriptions map[string]*subscription.Subscription

	// Payment storage
	purchases map[string]*payment.Purchase // keyed buyer:contentID
	tips      map[uint64]*payment.Tip
	charges   []*payment.Charge
	payouts   []*payment.Payout

	// Platform ledger and id sequences
	platform  *platform.State
	sequences map[platform.Sequence]uint64
}

func New() *Store {
	return &Store{
		creators:      make(map[uint64]*creator.Creator),
		contents:      make(map[uint64]*content.Content),
		subscriptions: make(map[string]*subscription.Subscription),
		purchases:     make(map[string]*payment.Purchase),
		tips:          make(map[uint64]*payment.Tip),
		charges:       make([]*payment.Charge, 0),
		payouts:       make([]*payment.Payout, 0),
		sequences:     make(map[platform.Sequence]uint64),
	}
}

func subKey(subscriber string, creatorID uint64) string {
	return fmt.Sprintf("%s:%d", subscriber, creatorID)
}

func purchaseKey(buyer string, contentID uint64) string {
	return fmt.Sprintf("%s:%d", buyer, contentID)
}

// paginate applies limit/offset after filtering. Limit 0 means no limit.
func paginate[T any](in []*T, limit, offset int) []*T {
	start := offset
	if start > len(in) {
		start = len(in)
	}
	end := start + limit
	if limit == 0 || end > len(in) {
		end = len(in)
	}
	return in[start:end]
}

// Creator Store implementation

func (s *Store) CreateCreator(_ context.Context, c *creator.Creator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.creators[c.ID]; exists {
		return patron.ErrConflict
	}
	s.creators[c.ID] = c
	return nil
}

func (s *Store) GetCreator(_ context.Context, creatorID uint64) (*creator.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.creators[creatorID]; ok {
		return c, nil
	}
	return nil, patron.ErrCreatorNotFound
}

func (s *Store) UpdateCreator(_ context.Context, c *creator.Creator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.creators[c.ID]; !exists {
		return patron.ErrCreatorNotFound
	}
	s.creators[c.ID] = c
	return nil
}

// Content Store implementation

func (s *Store) CreateContent(_ context.Context, c *content.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contents[c.ID]; exists {
		return patron.ErrConflict
	}
	s.contents[c.ID] = c
	return nil
}

func (s *Store) GetContent(_ context.Context, contentID uint64) (*content.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.contents[contentID]; ok {
		return c, nil
	}
	return nil, patron.ErrContentNotFound
}

func (s *Store) UpdateContent(_ context.Context, c *content.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contents[c.ID]; !exists {
		return patron.ErrContentNotFound
	}
	s.contents[c.ID] = c
	return nil
}

func (s *Store) ListContentByCreator(_ context.Context, creatorID uint64, opts content.ListOpts) ([]*content.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*content.Content, 0)
	for _, c := range s.contents {
		if c.CreatorID == creatorID {
			if opts.Status == "" || c.Status == opts.Status {
				result = append(result, c)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return paginate(result, opts.Limit, opts.Offset), nil
}

// Subscription Store implementation

func (s *Store) PutSubscription(_ context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscriptions[subKey(sub.Subscriber, sub.CreatorID)] = sub
	return nil
}

func (s *Store) GetSubscription(_ context.Context, subscriber string, creatorID uint64) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sub, ok := s.subscriptions[subKey(subscriber, creatorID)]; ok {
		return sub, nil
	}
	return nil, patron.ErrSubscriptionNotFound
}

func (s *Store) ListSubscriptionsByCreator(_ context.Context, creatorID uint64, opts subscription.ListOpts) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	result := make([]*subscription.Subscription, 0)
	for _, sub := range s.subscriptions {
		if sub.CreatorID == creatorID {
			if !opts.ActiveOnly || sub.ActiveAt(now) {
				result = append(result, sub)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Subscriber < result[j].Subscriber })
	return paginate(result, opts.Limit, opts.Offset), nil
}

func (s *Store) CountActiveSubscriptions(_ context.Context, creatorID uint64, asOf time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, sub := range s.subscriptions {
		if sub.CreatorID == creatorID && sub.ActiveAt(asOf) {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListLapsedSubscriptions(_ context.Context, asOf time.Time, limit int) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*subscription.Subscription, 0)
	for _, sub := range s.subscriptions {
		if sub.Status == subscription.StatusActive && sub.EndDate.Before(asOf) {
			result = append(result, sub)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// Payment Store implementation

func (s *Store) CreatePurchase(_ context.Context, p *payment.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := purchaseKey(p.Buyer, p.ContentID)
	if _, exists := s.purchases[key]; exists {
		return patron.ErrAlreadyPurchased
	}
	s.purchases[key] = p
	return nil
}

func (s *Store) GetPurchase(_ context.Context, buyer string, contentID uint64) (*payment.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.purchases[purchaseKey(buyer, contentID)]; ok {
		return p, nil
	}
	return nil, patron.ErrPurchaseNotFound
}

func (s *Store) ListPurchasesByCreator(_ context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*payment.Purchase, 0)
	for _, p := range s.purchases {
		if p.CreatorID == creatorID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return paginate(result, opts.Limit, opts.Offset), nil
}

func (s *Store) CreateTip(_ context.Context, t *payment.Tip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tips[t.ID]; exists {
		return patron.ErrConflict
	}
	s.tips[t.ID] = t
	return nil
}

func (s *Store) GetTip(_ context.Context, tipID uint64) (*payment.Tip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.tips[tipID]; ok {
		return t, nil
	}
	return nil, patron.ErrTipNotFound
}

func (s *Store) ListTipsByCreator(_ context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Tip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*payment.Tip, 0)
	for _, t := range s.tips {
		if t.CreatorID == creatorID {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return paginate(result, opts.Limit, opts.Offset), nil
}

func (s *Store) CountTips(_ context.Context, creatorID uint64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, t := range s.tips {
		if t.CreatorID == creatorID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreateCharge(_ context.Context, c *payment.Charge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.charges = append(s.charges, c)
	return nil
}

func (s *Store) ListChargesByCreator(_ context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Charge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*payment.Charge, 0)
	for _, c := range s.charges {
		if c.CreatorID == creatorID {
			result = append(result, c)
		}
	}
	return paginate(result, opts.Limit, opts.Offset), nil
}

func (s *Store) CreatePayout(_ context.Context, p *payment.Payout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payouts = append(s.payouts, p)
	return nil
}

func (s *Store) ListPayouts(_ context.Context, principal string, opts payment.ListOpts) ([]*payment.Payout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*payment.Payout, 0)
	for _, p := range s.payouts {
		if p.Principal == principal {
			result = append(result, p)
		}
	}
	return paginate(result, opts.Limit, opts.Offset), nil
}

// Platform ledger implementation

func (s *Store) GetPlatform(_ context.Context) (*platform.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.platform == nil {
		return nil, patron.ErrNotFound
	}
	view := *s.platform
	view.NextCreatorID = s.peekSequence(platform.SeqCreator)
	view.NextContentID = s.peekSequence(platform.SeqContent)
	view.NextTipID = s.peekSequence(platform.SeqTip)
	return &view, nil
}

func (s *Store) UpdatePlatform(_ context.Context, state *platform.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *state
	s.platform = &stored
	return nil
}

func (s *Store) NextID(_ context.Context, seq platform.Sequence) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.sequences[seq]
	if next == 0 {
		next = 1
	}
	s.sequences[seq] = next + 1
	return next, nil
}

// peekSequence reports the next id the sequence would allocate. Callers
// hold at least the read lock.
func (s *Store) peekSequence(seq platform.Sequence) uint64 {
	if next := s.sequences[seq]; next != 0 {
		return next
	}
	return 1
}

// Store management

func (s *Store) Migrate(_ context.Context) error {
	return nil
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}
