package patron_test

import (
	"context"
	"errors"
	"testing"
	"time"

	patron "github.com/xraph/patron"
	"github.com/xraph/patron/access"
	"github.com/xraph/patron/content"
	"github.com/xraph/patron/payment"
	"github.com/xraph/patron/store/memory"
	"github.com/xraph/patron/subscription"
	"github.com/xraph/patron/types"
	"github.com/xraph/patron/wallet"
)

const (
	admin = "SP_ADMIN"
	alice = "SP_ALICE"
	bob   = "SP_BOB"
	carol = "SP_CAROL"
)

func newEngine(t *testing.T, opts ...patron.Option) (*patron.Engine, *wallet.Memory) {
	t.Helper()

	w := wallet.NewMemory("stx")
	all := append([]patron.Option{patron.WithAdmin(admin)}, opts...)
	e := patron.New(memory.New(), w, all...)

	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { _ = e.Stop() })
	return e, w
}

func registerCreator(t *testing.T, e *patron.Engine, owner, name string) uint64 {
	t.Helper()

	id, err := e.RegisterCreator(context.Background(), owner, name, "", "")
	if err != nil {
		t.Fatalf("register creator: %v", err)
	}
	return id
}

func publishContent(t *testing.T, e *patron.Engine, owner string, creatorID uint64, price int64, premium bool) uint64 {
	t.Helper()

	ctx := context.Background()
	id, err := e.CreateContent(ctx, owner, creatorID, content.Draft{
		Title:   "Lesson",
		Type:    content.TypeVideo,
		Price:   types.STX(price),
		Premium: premium,
	})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	if err := e.PublishContent(ctx, owner, id); err != nil {
		t.Fatalf("publish content: %v", err)
	}
	return id
}

func TestRegisterCreator(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	first := registerCreator(t, e, alice, "Alice Art")
	second := registerCreator(t, e, bob, "Bob Beats")
	if first != 1 || second != 2 {
		t.Fatalf("expected sequential ids 1,2 got %d,%d", first, second)
	}

	c, err := e.GetCreator(ctx, first)
	if err != nil {
		t.Fatalf("get creator: %v", err)
	}
	if c.Owner != alice || c.Name != "Alice Art" {
		t.Errorf("unexpected creator record: %+v", c)
	}
	if c.Verified {
		t.Error("new creator should not be verified")
	}
	if !c.TotalEarnings.IsZero() {
		t.Errorf("new creator earnings = %s, want zero", c.TotalEarnings)
	}

	if _, err := e.RegisterCreator(ctx, alice, "", "", ""); !errors.Is(err, patron.ErrInvalidInput) {
		t.Errorf("empty name: got %v, want ErrInvalidInput", err)
	}

	_, err = e.GetCreator(ctx, 99)
	if !patron.IsNotFound(err) {
		t.Errorf("missing creator: got %v, want not found", err)
	}
	if code := patron.Code(err); code != patron.CodeNotFound {
		t.Errorf("Code(%v) = %d, want %d", err, code, patron.CodeNotFound)
	}
}

func TestUpdateCreatorProfile(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()
	id := registerCreator(t, e, alice, "Alice Art")

	if err := e.UpdateCreatorProfile(ctx, bob, id, "Hijack", "", ""); !errors.Is(err, patron.ErrNotAuthorized) {
		t.Errorf("non-owner update: got %v, want ErrNotAuthorized", err)
	}

	if err := e.UpdateCreatorProfile(ctx, alice, id, "Alice 2.0", "painter", "https://img"); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	c, _ := e.GetCreator(ctx, id)
	if c.Name != "Alice 2.0" || c.Bio != "painter" || c.AvatarURL != "https://img" {
		t.Errorf("profile not updated: %+v", c)
	}
}

func TestFollowCreator(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()
	id := registerCreator(t, e, alice, "Alice Art")

	for i := 0; i < 3; i++ {
		if err := e.FollowCreator(ctx, bob, id); err != nil {
			t.Fatalf("follow: %v", err)
		}
	}
	c, _ := e.GetCreator(ctx, id)
	if c.Followers != 3 {
		t.Errorf("followers = %d, want 3", c.Followers)
	}
}

func TestVerifyCreatorAdminOnly(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()
	id := registerCreator(t, e, alice, "Alice Art")

	err := e.VerifyCreator(ctx, bob, id)
	if !errors.Is(err, patron.ErrNotAuthorized) {
		t.Fatalf("non-admin verify: got %v, want ErrNotAuthorized", err)
	}
	if code := patron.Code(err); code != patron.CodeNotAuthorized {
		t.Errorf("Code = %d, want %d", code, patron.CodeNotAuthorized)
	}

	if err := e.VerifyCreator(ctx, admin, id); err != nil {
		t.Fatalf("admin verify: %v", err)
	}
	c, _ := e.GetCreator(ctx, id)
	if !c.Verified {
		t.Error("creator not verified after admin call")
	}
}

func TestCreateContentValidation(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")

	// Below the minimum price. The id sequence must not be consumed.
	_, err := e.CreateContent(ctx, alice, creatorID, content.Draft{
		Title: "Cheap",
		Type:  content.TypeVideo,
		Price: types.STX(patron.DefaultMinPrice - 1),
	})
	if !errors.Is(err, patron.ErrInvalidPrice) {
		t.Fatalf("below min price: got %v, want ErrInvalidPrice", err)
	}
	if code := patron.Code(err); code != patron.CodeInvalidPrice {
		t.Errorf("Code = %d, want %d", code, patron.CodeInvalidPrice)
	}

	if _, err := e.CreateContent(ctx, alice, creatorID, content.Draft{
		Title: "Untyped",
		Type:  content.Type("hologram"),
		Price: types.STX(patron.DefaultMinPrice),
	}); !errors.Is(err, patron.ErrInvalidInput) {
		t.Errorf("unknown type: got %v, want ErrInvalidInput", err)
	}

	if _, err := e.CreateContent(ctx, bob, creatorID, content.Draft{
		Title: "Stolen",
		Type:  content.TypeVideo,
		Price: types.STX(patron.DefaultMinPrice),
	}); !errors.Is(err, patron.ErrNotAuthorized) {
		t.Errorf("non-owner create: got %v, want ErrNotAuthorized", err)
	}

	id, err := e.CreateContent(ctx, alice, creatorID, content.Draft{
		Title: "First real upload",
		Type:  content.TypeVideo,
		Price: types.STX(patron.DefaultMinPrice),
	})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	if id != 1 {
		t.Errorf("content id = %d, want 1 (rejected drafts must not burn ids)", id)
	}

	c, _ := e.GetCreator(ctx, creatorID)
	if c.ContentCount != 1 {
		t.Errorf("content count = %d, want 1", c.ContentCount)
	}
}

func TestPublishContent(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")

	id, err := e.CreateContent(ctx, alice, creatorID, content.Draft{
		Title: "Draft",
		Type:  content.TypeText,
		Price: types.STX(patron.DefaultMinPrice),
	})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}

	if err := e.PublishContent(ctx, bob, id); !errors.Is(err, patron.ErrNotAuthorized) {
		t.Errorf("non-owner publish: got %v, want ErrNotAuthorized", err)
	}

	if err := e.PublishContent(ctx, alice, id); err != nil {
		t.Fatalf("publish: %v", err)
	}

	err = e.PublishContent(ctx, alice, id)
	if !errors.Is(err, patron.ErrAlreadyPublished) {
		t.Fatalf("double publish: got %v, want ErrAlreadyPublished", err)
	}
	if code := patron.Code(err); code != patron.CodeConflict {
		t.Errorf("Code = %d, want %d", code, patron.CodeConflict)
	}
}

func TestPurchaseContent(t *testing.T) {
	e, w := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")
	contentID := publishContent(t, e, alice, creatorID, 2_000_000, true)

	w.Deposit(bob, types.STX(10_000_000))

	receipt, err := e.PurchaseContent(ctx, bob, contentID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	// The split must conserve the price: net + fee == price.
	if got := receipt.NetCredit.Add(receipt.Fee); !got.Equal(receipt.Price) {
		t.Errorf("net %s + fee %s != price %s", receipt.NetCredit, receipt.Fee, receipt.Price)
	}
	if receipt.Fee.Amount != 100_000 {
		t.Errorf("fee = %d, want 100000 (5%% of 2000000)", receipt.Fee.Amount)
	}

	balance, _ := w.Balance(ctx, bob)
	if balance.Amount != 8_000_000 {
		t.Errorf("buyer balance = %d, want 8000000", balance.Amount)
	}

	c, _ := e.GetCreator(ctx, creatorID)
	if !c.TotalEarnings.Equal(receipt.NetCredit) {
		t.Errorf("creator earnings = %s, want %s", c.TotalEarnings, receipt.NetCredit)
	}

	item, _ := e.GetContent(ctx, contentID)
	if !item.Earnings.Equal(receipt.NetCredit) {
		t.Errorf("content earnings = %s, want %s", item.Earnings, receipt.NetCredit)
	}

	ps, err := e.PlatformStats(ctx)
	if err != nil {
		t.Fatalf("platform stats: %v", err)
	}
	if !ps.PlatformEarnings.Equal(receipt.Fee) {
		t.Errorf("platform earnings = %s, want %s", ps.PlatformEarnings, receipt.Fee)
	}

	ok, err := e.HasPurchased(ctx, bob, contentID)
	if err != nil || !ok {
		t.Errorf("HasPurchased = %v, %v, want true", ok, err)
	}

	if _, err := e.PurchaseContent(ctx, bob, contentID); !errors.Is(err, patron.ErrAlreadyPurchased) {
		t.Errorf("double purchase: got %v, want ErrAlreadyPurchased", err)
	}
	balance, _ = w.Balance(ctx, bob)
	if balance.Amount != 8_000_000 {
		t.Errorf("double purchase moved funds: balance = %d", balance.Amount)
	}
}

func TestPurchaseUnpublishedContent(t *testing.T) {
	e, w := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")

	id, err := e.CreateContent(ctx, alice, creatorID, content.Draft{
		Title: "Draft only",
		Type:  content.TypeAudio,
		Price: types.STX(patron.DefaultMinPrice),
	})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}

	w.Deposit(bob, types.STX(10_000_000))
	if _, err := e.PurchaseContent(ctx, bob, id); !errors.Is(err, patron.ErrContentNotFound) {
		t.Errorf("draft purchase: got %v, want ErrContentNotFound", err)
	}
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")
	contentID := publishContent(t, e, alice, creatorID, 2_000_000, true)

	_, err := e.PurchaseContent(ctx, bob, contentID)
	if !errors.Is(err, patron.ErrInsufficientFunds) {
		t.Fatalf("unfunded purchase: got %v, want ErrInsufficientFunds", err)
	}

	// A failed debit must leave the ledger untouched.
	c, _ := e.GetCreator(ctx, creatorID)
	if !c.TotalEarnings.IsZero() {
		t.Errorf("creator earnings = %s after failed purchase, want zero", c.TotalEarnings)
	}
	if ok, _ := e.HasPurchased(ctx, bob, contentID); ok {
		t.Error("receipt written for failed purchase")
	}
}

func TestAccessControl(t *testing.T) {
	e, w := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")
	premiumID := publishContent(t, e, alice, creatorID, 2_000_000, true)
	freeID := publishContent(t, e, alice, creatorID, patron.DefaultMinPrice, false)

	t.Run("OwnerAlwaysAllowed", func(t *testing.T) {
		d, err := e.CanAccess(ctx, alice, premiumID)
		if err != nil {
			t.Fatal(err)
		}
		if !d.Allowed || d.Grant != access.GrantOwner {
			t.Errorf("owner decision = %+v", d)
		}
	})

	t.Run("FreeContentAllowed", func(t *testing.T) {
		d, err := e.CanAccess(ctx, bob, freeID)
		if err != nil {
			t.Fatal(err)
		}
		if !d.Allowed || d.Grant != access.GrantFree {
			t.Errorf("free decision = %+v", d)
		}
	})

	t.Run("PremiumDeniedWithoutEntitlement", func(t *testing.T) {
		d, err := e.CanAccess(ctx, bob, premiumID)
		if err != nil {
			t.Fatal(err)
		}
		if d.Allowed {
			t.Fatalf("stranger allowed premium: %+v", d)
		}

		// A denied view must not count.
		_, err = e.ViewContent(ctx, bob, premiumID)
		if !errors.Is(err, patron.ErrAccessDenied) {
			t.Fatalf("view denied content: got %v, want ErrAccessDenied", err)
		}
		item, _ := e.GetContent(ctx, premiumID)
		if item.Views != 0 {
			t.Errorf("views = %d after denied view, want 0", item.Views)
		}
	})

	t.Run("PurchaseUnlocks", func(t *testing.T) {
		w.Deposit(bob, types.STX(10_000_000))
		if _, err := e.PurchaseContent(ctx, bob, premiumID); err != nil {
			t.Fatal(err)
		}

		d, err := e.CanAccess(ctx, bob, premiumID)
		if err != nil {
			t.Fatal(err)
		}
		if !d.Allowed || d.Grant != access.GrantPurchase {
			t.Errorf("post-purchase decision = %+v", d)
		}

		item, err := e.ViewContent(ctx, bob, premiumID)
		if err != nil {
			t.Fatal(err)
		}
		if item.Views != 1 {
			t.Errorf("views = %d, want 1", item.Views)
		}
	})

	t.Run("SubscriptionUnlocks", func(t *testing.T) {
		w.Deposit(carol, types.STX(10_000_000))
		if _, err := e.Subscribe(ctx, carol, creatorID, subscription.TierBasic, 1, false); err != nil {
			t.Fatal(err)
		}

		d, err := e.CanAccess(ctx, carol, premiumID)
		if err != nil {
			t.Fatal(err)
		}
		if !d.Allowed || d.Grant != access.GrantSubscription {
			t.Errorf("subscriber decision = %+v", d)
		}
	})
}

func TestLikeContent(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")
	contentID := publishContent(t, e, alice, creatorID, patron.DefaultMinPrice, false)

	// Likes are unconditional: no access check, no dedup.
	for i := 0; i < 2; i++ {
		if err := e.LikeContent(ctx, bob, contentID); err != nil {
			t.Fatalf("like: %v", err)
		}
	}
	item, _ := e.GetContent(ctx, contentID)
	if item.Likes != 2 {
		t.Errorf("likes = %d, want 2", item.Likes)
	}
}

func TestTipCreator(t *testing.T) {
	e, w := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")
	w.Deposit(bob, types.STX(5_000_000))

	if _, err := e.TipCreator(ctx, bob, creatorID, types.STX(0), ""); !errors.Is(err, patron.ErrInvalidAmount) {
		t.Errorf("zero tip: got %v, want ErrInvalidAmount", err)
	}
	if _, err := e.TipCreator(ctx, bob, creatorID, types.USD(100), ""); !errors.Is(err, patron.ErrInvalidInput) {
		t.Errorf("wrong currency: got %v, want ErrInvalidInput", err)
	}

	tipID, err := e.TipCreator(ctx, bob, creatorID, types.STX(1_000_000), "great work")
	if err != nil {
		t.Fatalf("tip: %v", err)
	}
	if tipID != 1 {
		t.Errorf("tip id = %d, want 1", tipID)
	}

	tip, err := e.GetTip(ctx, tipID)
	if err != nil {
		t.Fatalf("get tip: %v", err)
	}
	if tip.Message != "great work" {
		t.Errorf("tip message = %q", tip.Message)
	}
	if got := tip.NetCredit.Add(tip.Fee); !got.Equal(tip.Amount) {
		t.Errorf("tip split does not conserve: net %s + fee %s != %s", tip.NetCredit, tip.Fee, tip.Amount)
	}

	c, _ := e.GetCreator(ctx, creatorID)
	if !c.TotalEarnings.Equal(tip.NetCredit) {
		t.Errorf("creator earnings = %s, want %s", c.TotalEarnings, tip.NetCredit)
	}
}

func TestSubscribe(t *testing.T) {
	e, w := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")
	w.Deposit(bob, types.STX(100_000_000))

	_, err := e.Subscribe(ctx, bob, creatorID, subscription.Tier(9), 1, false)
	if !errors.Is(err, patron.ErrInvalidTier) {
		t.Fatalf("invalid tier: got %v, want ErrInvalidTier", err)
	}
	if code := patron.Code(err); code != patron.CodeInvalidTier {
		t.Errorf("Code = %d, want %d", code, patron.CodeInvalidTier)
	}

	if _, err := e.Subscribe(ctx, bob, creatorID, subscription.TierPremium, 0, false); !errors.Is(err, patron.ErrInvalidInput) {
		t.Errorf("zero months: got %v, want ErrInvalidInput", err)
	}

	sub, err := e.Subscribe(ctx, bob, creatorID, subscription.TierPremium, 2, true)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if sub.Tier != subscription.TierPremium || !sub.AutoRenew {
		t.Errorf("subscription = %+v", sub)
	}
	// Premium rate is 5 STX/month.
	if sub.AmountPaid.Amount != 10_000_000 {
		t.Errorf("amount paid = %d, want 10000000", sub.AmountPaid.Amount)
	}
	wantEnd := sub.StartDate.Add(2 * patron.DefaultPeriod)
	if !sub.EndDate.Equal(wantEnd) {
		t.Errorf("end date = %v, want %v", sub.EndDate, wantEnd)
	}

	ok, err := e.IsSubscribed(ctx, bob, creatorID)
	if err != nil || !ok {
		t.Errorf("IsSubscribed = %v, %v, want true", ok, err)
	}

	tier, found, err := e.SubscriptionTier(ctx, bob, creatorID)
	if err != nil || !found || tier != subscription.TierPremium {
		t.Errorf("SubscriptionTier = %v, %v, %v", tier, found, err)
	}

	// No record is distinct from a Basic (tier zero) subscription.
	if _, found, err := e.SubscriptionTier(ctx, carol, creatorID); err != nil || found {
		t.Errorf("non-subscriber tier: found=%v err=%v, want found=false", found, err)
	}
}

func TestSubscribeExtendsActiveWindow(t *testing.T) {
	e, w := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")
	w.Deposit(bob, types.STX(100_000_000))

	first, err := e.Subscribe(ctx, bob, creatorID, subscription.TierBasic, 1, false)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	firstEnd := first.EndDate

	second, err := e.Subscribe(ctx, bob, creatorID, subscription.TierVIP, 1, true)
	if err != nil {
		t.Fatalf("resubscribe: %v", err)
	}

	// Extension stacks on the current end rather than restarting from now.
	wantEnd := firstEnd.Add(patron.DefaultPeriod)
	if !second.EndDate.Equal(wantEnd) {
		t.Errorf("end date = %v, want %v", second.EndDate, wantEnd)
	}
	if second.Tier != subscription.TierVIP {
		t.Errorf("tier = %v, want VIP (extension adopts new tier)", second.Tier)
	}
	// 1 STX basic + 10 STX VIP.
	if second.AmountPaid.Amount != 11_000_000 {
		t.Errorf("amount paid = %d, want 11000000", second.AmountPaid.Amount)
	}

	subs, err := e.ListSubscribers(ctx, creatorID, subscription.ListOpts{})
	if err != nil {
		t.Fatalf("list subscribers: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("subscriber records = %d, want 1 (one record per pair)", len(subs))
	}
}

func TestSubscribeInsufficientFunds(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")

	_, err := e.Subscribe(ctx, bob, creatorID, subscription.TierBasic, 1, false)
	if !errors.Is(err, patron.ErrInsufficientFunds) {
		t.Fatalf("unfunded subscribe: got %v, want ErrInsufficientFunds", err)
	}
	if ok, _ := e.IsSubscribed(ctx, bob, creatorID); ok {
		t.Error("subscription recorded despite failed debit")
	}
}

func TestExpirySweeper(t *testing.T) {
	e, w := newEngine(t,
		patron.WithSubscriptionPeriod(20*time.Millisecond),
		patron.WithSweepInterval(10*time.Millisecond),
	)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")
	w.Deposit(bob, types.STX(100_000_000))

	if _, err := e.Subscribe(ctx, bob, creatorID, subscription.TierBasic, 1, false); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		sub, err := e.GetSubscription(ctx, bob, creatorID)
		if err != nil {
			t.Fatalf("get subscription: %v", err)
		}
		if sub.Status == subscription.StatusExpired {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("sweeper never marked the lapsed subscription expired")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if ok, _ := e.IsSubscribed(ctx, bob, creatorID); ok {
		t.Error("lapsed subscription still reports subscribed")
	}
}

func TestWithdrawEarnings(t *testing.T) {
	e, w := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")
	contentID := publishContent(t, e, alice, creatorID, 2_000_000, true)

	w.Deposit(bob, types.STX(10_000_000))
	receipt, err := e.PurchaseContent(ctx, bob, contentID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	if err := e.WithdrawEarnings(ctx, bob, creatorID, types.STX(1)); !errors.Is(err, patron.ErrNotAuthorized) {
		t.Errorf("non-owner withdraw: got %v, want ErrNotAuthorized", err)
	}

	over := receipt.NetCredit.Add(types.STX(1))
	err = e.WithdrawEarnings(ctx, alice, creatorID, over)
	if !errors.Is(err, patron.ErrInsufficientBalance) {
		t.Fatalf("over-withdraw: got %v, want ErrInsufficientBalance", err)
	}

	if err := e.WithdrawEarnings(ctx, alice, creatorID, receipt.NetCredit); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	balance, _ := w.Balance(ctx, alice)
	if !balance.Equal(receipt.NetCredit) {
		t.Errorf("owner balance = %s, want %s", balance, receipt.NetCredit)
	}
	c, _ := e.GetCreator(ctx, creatorID)
	if !c.TotalEarnings.IsZero() {
		t.Errorf("earnings = %s after full withdrawal, want zero", c.TotalEarnings)
	}

	payouts, err := e.Payouts(ctx, alice, payment.ListOpts{})
	if err != nil {
		t.Fatalf("payouts: %v", err)
	}
	if len(payouts) != 1 {
		t.Fatalf("payout records = %d, want 1", len(payouts))
	}
	if !payouts[0].Amount.Equal(receipt.NetCredit) {
		t.Errorf("payout amount = %s, want %s", payouts[0].Amount, receipt.NetCredit)
	}
}

func TestWithdrawPlatformFees(t *testing.T) {
	e, w := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")
	contentID := publishContent(t, e, alice, creatorID, 2_000_000, true)

	w.Deposit(bob, types.STX(10_000_000))
	receipt, err := e.PurchaseContent(ctx, bob, contentID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	if _, err := e.WithdrawPlatformFees(ctx, alice); !errors.Is(err, patron.ErrNotAuthorized) {
		t.Errorf("non-admin withdraw: got %v, want ErrNotAuthorized", err)
	}

	amount, err := e.WithdrawPlatformFees(ctx, admin)
	if err != nil {
		t.Fatalf("withdraw platform fees: %v", err)
	}
	if !amount.Equal(receipt.Fee) {
		t.Errorf("withdrawn = %s, want %s", amount, receipt.Fee)
	}
	balance, _ := w.Balance(ctx, admin)
	if !balance.Equal(receipt.Fee) {
		t.Errorf("admin balance = %s, want %s", balance, receipt.Fee)
	}

	// Draining an empty ledger is a no-op.
	amount, err = e.WithdrawPlatformFees(ctx, admin)
	if err != nil {
		t.Fatalf("second withdraw: %v", err)
	}
	if !amount.IsZero() {
		t.Errorf("second withdraw = %s, want zero", amount)
	}
}

func TestCreatorStats(t *testing.T) {
	e, w := newEngine(t)
	ctx := context.Background()
	creatorID := registerCreator(t, e, alice, "Alice Art")
	contentID := publishContent(t, e, alice, creatorID, 2_000_000, false)

	w.Deposit(bob, types.STX(100_000_000))
	w.Deposit(carol, types.STX(100_000_000))

	if _, err := e.ViewContent(ctx, bob, contentID); err != nil {
		t.Fatalf("view: %v", err)
	}
	if err := e.LikeContent(ctx, bob, contentID); err != nil {
		t.Fatalf("like: %v", err)
	}
	tipID, err := e.TipCreator(ctx, bob, creatorID, types.STX(1_000_000), "")
	if err != nil {
		t.Fatalf("tip: %v", err)
	}
	if _, err := e.Subscribe(ctx, carol, creatorID, subscription.TierBasic, 1, false); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	purchase, err := e.PurchaseContent(ctx, bob, contentID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	st, err := e.CreatorStats(ctx, creatorID)
	if err != nil {
		t.Fatalf("creator stats: %v", err)
	}
	if st.TotalViews != 1 || st.TotalLikes != 1 {
		t.Errorf("views/likes = %d/%d, want 1/1", st.TotalViews, st.TotalLikes)
	}
	if st.TipCount != 1 {
		t.Errorf("tip count = %d, want 1", st.TipCount)
	}
	if st.SubscriberCount != 1 {
		t.Errorf("subscriber count = %d, want 1", st.SubscriberCount)
	}

	tip, _ := e.GetTip(ctx, tipID)
	// Basic subscription is 1 STX/month; its net lands in the same window.
	subNet := types.STX(1_000_000).Amount - types.STX(1_000_000).Amount*patron.DefaultFeeRatePercent/100
	wantMonthly := purchase.NetCredit.Amount + tip.NetCredit.Amount + subNet
	if st.MonthlyEarnings.Amount != wantMonthly {
		t.Errorf("monthly earnings = %d, want %d", st.MonthlyEarnings.Amount, wantMonthly)
	}

	if _, err := e.CreatorStats(ctx, 99); !patron.IsNotFound(err) {
		t.Errorf("stats for missing creator: got %v, want not found", err)
	}
}

func TestPlatformStats(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	ps, err := e.PlatformStats(ctx)
	if err != nil {
		t.Fatalf("platform stats: %v", err)
	}
	if ps.TotalCreators != 0 || ps.TotalContent != 0 {
		t.Errorf("fresh platform totals = %d/%d, want 0/0", ps.TotalCreators, ps.TotalContent)
	}
	if ps.NextCreatorID != 1 || ps.NextContentID != 1 || ps.NextTipID != 1 {
		t.Errorf("fresh next ids = %d/%d/%d, want 1/1/1", ps.NextCreatorID, ps.NextContentID, ps.NextTipID)
	}

	aliceID := registerCreator(t, e, alice, "Alice Art")
	registerCreator(t, e, bob, "Bob Beats")
	publishContent(t, e, alice, aliceID, patron.DefaultMinPrice, false)

	ps, err = e.PlatformStats(ctx)
	if err != nil {
		t.Fatalf("platform stats: %v", err)
	}
	if ps.TotalCreators != 2 {
		t.Errorf("total creators = %d, want 2", ps.TotalCreators)
	}
	if ps.TotalContent != 1 {
		t.Errorf("total content = %d, want 1", ps.TotalContent)
	}
	if ps.NextCreatorID != 3 || ps.NextContentID != 2 {
		t.Errorf("next ids = %d/%d, want 3/2", ps.NextCreatorID, ps.NextContentID)
	}
}
