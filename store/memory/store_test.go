package memory

import (
	"context"
	"testing"
	"time"

	patron "github.com/xraph/patron"
	"github.com/xraph/patron/content"
	"github.com/xraph/patron/creator"
	"github.com/xraph/patron/platform"
	"github.com/xraph/patron/subscription"
	"github.com/xraph/patron/types"
)

func TestNextID(t *testing.T) {
	s := New()
	ctx := context.Background()

	for want := uint64(1); want <= 3; want++ {
		got, err := s.NextID(ctx, platform.SeqCreator)
		if err != nil {
			t.Fatalf("next id: %v", err)
		}
		if got != want {
			t.Fatalf("allocated %d, want %d", got, want)
		}
	}

	// Sequences are independent.
	got, err := s.NextID(ctx, platform.SeqContent)
	if err != nil {
		t.Fatalf("next id: %v", err)
	}
	if got != 1 {
		t.Errorf("content sequence started at %d, want 1", got)
	}
}

func TestPlatformLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetPlatform(ctx); !patron.IsNotFound(err) {
		t.Fatalf("fresh store platform: got %v, want not found", err)
	}

	state := platform.NewState("stx")
	state.Earnings = types.STX(42)
	if err := s.UpdatePlatform(ctx, state); err != nil {
		t.Fatalf("update platform: %v", err)
	}

	// Consume two creator ids; the peek must reflect them.
	if _, err := s.NextID(ctx, platform.SeqCreator); err != nil {
		t.Fatal(err)
	}
	if _, err := s.NextID(ctx, platform.SeqCreator); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetPlatform(ctx)
	if err != nil {
		t.Fatalf("get platform: %v", err)
	}
	if got.Earnings.Amount != 42 {
		t.Errorf("earnings = %d, want 42", got.Earnings.Amount)
	}
	if got.NextCreatorID != 3 {
		t.Errorf("next creator id = %d, want 3", got.NextCreatorID)
	}
	if got.NextContentID != 1 {
		t.Errorf("next content id = %d, want 1", got.NextContentID)
	}
}

func TestCreatorCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	c := &creator.Creator{
		Entity:        types.NewEntity(),
		ID:            1,
		Owner:         "SP_ALICE",
		Name:          "Alice",
		TotalEarnings: types.Zero("stx"),
		Tier:          creator.TierBasic,
	}
	if err := s.CreateCreator(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CreateCreator(ctx, c); !patron.IsConflict(err) {
		t.Errorf("duplicate create: got %v, want conflict", err)
	}

	got, err := s.GetCreator(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("name = %q", got.Name)
	}

	got.Name = "Alice Prime"
	if err := s.UpdateCreator(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ := s.GetCreator(ctx, 1)
	if again.Name != "Alice Prime" {
		t.Errorf("updated name = %q", again.Name)
	}

	if err := s.UpdateCreator(ctx, &creator.Creator{ID: 99}); !patron.IsNotFound(err) {
		t.Errorf("update missing: got %v, want not found", err)
	}
}

func TestListContentFiltering(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := uint64(1); i <= 5; i++ {
		status := content.StatusDraft
		if i%2 == 0 {
			status = content.StatusPublished
		}
		err := s.CreateContent(ctx, &content.Content{
			Entity:    types.NewEntity(),
			ID:        i,
			CreatorID: 1,
			Title:     "t",
			Status:    status,
		})
		if err != nil {
			t.Fatalf("create content %d: %v", i, err)
		}
	}

	all, err := s.ListContentByCreator(ctx, 1, content.ListOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("listed %d, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].ID <= all[i-1].ID {
			t.Fatal("listing not ordered by id")
		}
	}

	published, err := s.ListContentByCreator(ctx, 1, content.ListOpts{Status: content.StatusPublished})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(published) != 2 {
		t.Errorf("published = %d, want 2", len(published))
	}

	page, err := s.ListContentByCreator(ctx, 1, content.ListOpts{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if len(page) != 1 || page[0].ID != 5 {
		t.Errorf("page = %+v, want single item 5", page)
	}
}

func TestSubscriptionUpsert(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	sub := &subscription.Subscription{
		Entity:     types.NewEntity(),
		Subscriber: "SP_BOB",
		CreatorID:  1,
		Tier:       subscription.TierBasic,
		StartDate:  now,
		EndDate:    now.Add(30 * 24 * time.Hour),
		AmountPaid: types.STX(1_000_000),
		Status:     subscription.StatusActive,
	}
	if err := s.PutSubscription(ctx, sub); err != nil {
		t.Fatalf("put: %v", err)
	}

	sub.Tier = subscription.TierVIP
	if err := s.PutSubscription(ctx, sub); err != nil {
		t.Fatalf("re-put: %v", err)
	}

	subs, err := s.ListSubscriptionsByCreator(ctx, 1, subscription.ListOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("records = %d, want 1 (upsert per pair)", len(subs))
	}
	if subs[0].Tier != subscription.TierVIP {
		t.Errorf("tier = %v, want VIP", subs[0].Tier)
	}

	count, err := s.CountActiveSubscriptions(ctx, 1, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("active = %d, want 1", count)
	}

	count, err = s.CountActiveSubscriptions(ctx, 1, now.Add(31*24*time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("active after window = %d, want 0", count)
	}
}

func TestListLapsedSubscriptions(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	lapsed := &subscription.Subscription{
		Entity:     types.NewEntity(),
		Subscriber: "SP_BOB",
		CreatorID:  1,
		StartDate:  now.Add(-48 * time.Hour),
		EndDate:    now.Add(-time.Hour),
		Status:     subscription.StatusActive,
	}
	current := &subscription.Subscription{
		Entity:     types.NewEntity(),
		Subscriber: "SP_CAROL",
		CreatorID:  1,
		StartDate:  now.Add(-time.Hour),
		EndDate:    now.Add(time.Hour),
		Status:     subscription.StatusActive,
	}
	swept := &subscription.Subscription{
		Entity:     types.NewEntity(),
		Subscriber: "SP_DAN",
		CreatorID:  1,
		StartDate:  now.Add(-96 * time.Hour),
		EndDate:    now.Add(-72 * time.Hour),
		Status:     subscription.StatusExpired,
	}
	for _, sub := range []*subscription.Subscription{lapsed, current, swept} {
		if err := s.PutSubscription(ctx, sub); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	got, err := s.ListLapsedSubscriptions(ctx, now, 10)
	if err != nil {
		t.Fatalf("list lapsed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("lapsed = %d, want 1 (active status, window ended)", len(got))
	}
	if got[0].Subscriber != "SP_BOB" {
		t.Errorf("lapsed subscriber = %q", got[0].Subscriber)
	}
}
