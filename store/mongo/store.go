// Package mongo implements the Patron store on MongoDB via Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	patron "github.com/xraph/patron"
	"github.com/xraph/patron/content"
	"github.com/xraph/patron/creator"
	"github.com/xraph/patron/payment"
	"github.com/xraph/patron/platform"
	patronstore "github.com/xraph/patron/store"
	"github.com/xraph/patron/subscription"
	"github.com/xraph/patron/types"
)

// Collection name constants.
const (
	colCreators      = "patron_creators"
	colContent       = "patron_content"
	colSubscriptions = "patron_subscriptions"
	colPurchases     = "patron_purchases"
	colTips          = "patron_tips"
	colCharges       = "patron_charges"
	colPayouts       = "patron_payouts"
	colPlatform      = "patron_platform"
	colSequences     = "patron_sequences"
)

// platformDocID pins the platform ledger to a single document.
const platformDocID = "platform"

// compile-time interface check
var _ patronstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all patron collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("patron/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Creator Store ====================

func (s *Store) CreateCreator(ctx context.Context, c *creator.Creator) error {
	m := toCreatorModel(c)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("patron/mongo: create creator: %w", err)
	}
	return nil
}

func (s *Store) GetCreator(ctx context.Context, creatorID uint64) (*creator.Creator, error) {
	var m creatorModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": creatorID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, patron.ErrCreatorNotFound
		}
		return nil, fmt.Errorf("patron/mongo: get creator: %w", err)
	}
	return fromCreatorModel(&m), nil
}

func (s *Store) UpdateCreator(ctx context.Context, c *creator.Creator) error {
	m := toCreatorModel(c)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("patron/mongo: update creator: %w", err)
	}
	if res.MatchedCount() == 0 {
		return patron.ErrCreatorNotFound
	}
	return nil
}

// ==================== Content Store ====================

func (s *Store) CreateContent(ctx context.Context, c *content.Content) error {
	m := toContentModel(c)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("patron/mongo: create content: %w", err)
	}
	return nil
}

func (s *Store) GetContent(ctx context.Context, contentID uint64) (*content.Content, error) {
	var m contentModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": contentID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, patron.ErrContentNotFound
		}
		return nil, fmt.Errorf("patron/mongo: get content: %w", err)
	}
	return fromContentModel(&m), nil
}

func (s *Store) UpdateContent(ctx context.Context, c *content.Content) error {
	m := toContentModel(c)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("patron/mongo: update content: %w", err)
	}
	if res.MatchedCount() == 0 {
		return patron.ErrContentNotFound
	}
	return nil
}

func (s *Store) ListContentByCreator(ctx context.Context, creatorID uint64, opts content.ListOpts) ([]*content.Content, error) {
	var models []contentModel

	filter := bson.M{"creator_id": creatorID}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("patron/mongo: list content: %w", err)
	}

	result := make([]*content.Content, len(models))
	for i := range models {
		result[i] = fromContentModel(&models[i])
	}
	return result, nil
}

// ==================== Subscription Store ====================

func (s *Store) PutSubscription(ctx context.Context, sub *subscription.Subscription) error {
	m := toSubscriptionModel(sub)
	m.UpdatedAt = now()

	_, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.PairKey}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":           m.PairKey,
			"subscriber":    m.Subscriber,
			"creator_id":    m.CreatorID,
			"tier":          m.Tier,
			"start_date":    m.StartDate,
			"end_date":      m.EndDate,
			"paid_amount":   m.PaidAmount,
			"paid_currency": m.PaidCurrency,
			"auto_renew":    m.AutoRenew,
			"status":        m.Status,
			"created_at":    m.CreatedAt,
			"updated_at":    m.UpdatedAt,
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("patron/mongo: put subscription: %w", err)
	}
	return nil
}

func (s *Store) GetSubscription(ctx context.Context, subscriber string, creatorID uint64) (*subscription.Subscription, error) {
	var m subscriptionModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": subscriptionPairKey(subscriber, creatorID)}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, patron.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("patron/mongo: get subscription: %w", err)
	}
	return fromSubscriptionModel(&m), nil
}

func (s *Store) ListSubscriptionsByCreator(ctx context.Context, creatorID uint64, opts subscription.ListOpts) ([]*subscription.Subscription, error) {
	var models []subscriptionModel

	filter := bson.M{"creator_id": creatorID}
	if opts.ActiveOnly {
		t := now()
		filter["start_date"] = bson.M{"$lte": t}
		filter["end_date"] = bson.M{"$gte": t}
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "subscriber", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("patron/mongo: list subscriptions: %w", err)
	}

	result := make([]*subscription.Subscription, len(models))
	for i := range models {
		result[i] = fromSubscriptionModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountActiveSubscriptions(ctx context.Context, creatorID uint64, asOf time.Time) (int64, error) {
	count, err := s.mdb.Collection(colSubscriptions).CountDocuments(ctx, bson.M{
		"creator_id": creatorID,
		"start_date": bson.M{"$lte": asOf},
		"end_date":   bson.M{"$gte": asOf},
	})
	if err != nil {
		return 0, fmt.Errorf("patron/mongo: count active subscriptions: %w", err)
	}
	return count, nil
}

func (s *Store) ListLapsedSubscriptions(ctx context.Context, asOf time.Time, limit int) ([]*subscription.Subscription, error) {
	var models []subscriptionModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{
			"status":   string(subscription.StatusActive),
			"end_date": bson.M{"$lt": asOf},
		}).
		Sort(bson.D{{Key: "end_date", Value: 1}})

	if limit > 0 {
		q = q.Limit(int64(limit))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("patron/mongo: list lapsed subscriptions: %w", err)
	}

	result := make([]*subscription.Subscription, len(models))
	for i := range models {
		result[i] = fromSubscriptionModel(&models[i])
	}
	return result, nil
}

// ==================== Payment Store ====================

func (s *Store) CreatePurchase(ctx context.Context, p *payment.Purchase) error {
	m := toPurchaseModel(p)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("patron/mongo: create purchase: %w", err)
	}
	return nil
}

func (s *Store) GetPurchase(ctx context.Context, buyer string, contentID uint64) (*payment.Purchase, error) {
	var m purchaseModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"buyer": buyer, "content_id": contentID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, patron.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("patron/mongo: get purchase: %w", err)
	}
	return fromPurchaseModel(&m)
}

func (s *Store) ListPurchasesByCreator(ctx context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Purchase, error) {
	var models []purchaseModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{"creator_id": creatorID}).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("patron/mongo: list purchases: %w", err)
	}

	result := make([]*payment.Purchase, len(models))
	for i := range models {
		p, err := fromPurchaseModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) CreateTip(ctx context.Context, t *payment.Tip) error {
	m := toTipModel(t)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("patron/mongo: create tip: %w", err)
	}
	return nil
}

func (s *Store) GetTip(ctx context.Context, tipID uint64) (*payment.Tip, error) {
	var m tipModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": tipID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, patron.ErrTipNotFound
		}
		return nil, fmt.Errorf("patron/mongo: get tip: %w", err)
	}
	return fromTipModel(&m), nil
}

func (s *Store) ListTipsByCreator(ctx context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Tip, error) {
	var models []tipModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{"creator_id": creatorID}).
		Sort(bson.D{{Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("patron/mongo: list tips: %w", err)
	}

	result := make([]*payment.Tip, len(models))
	for i := range models {
		result[i] = fromTipModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountTips(ctx context.Context, creatorID uint64) (int64, error) {
	count, err := s.mdb.Collection(colTips).CountDocuments(ctx, bson.M{"creator_id": creatorID})
	if err != nil {
		return 0, fmt.Errorf("patron/mongo: count tips: %w", err)
	}
	return count, nil
}

func (s *Store) CreateCharge(ctx context.Context, c *payment.Charge) error {
	m := toChargeModel(c)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("patron/mongo: create charge: %w", err)
	}
	return nil
}

func (s *Store) ListChargesByCreator(ctx context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Charge, error) {
	var models []chargeModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{"creator_id": creatorID}).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("patron/mongo: list charges: %w", err)
	}

	result := make([]*payment.Charge, len(models))
	for i := range models {
		c, err := fromChargeModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

func (s *Store) CreatePayout(ctx context.Context, p *payment.Payout) error {
	m := toPayoutModel(p)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("patron/mongo: create payout: %w", err)
	}
	return nil
}

func (s *Store) ListPayouts(ctx context.Context, principal string, opts payment.ListOpts) ([]*payment.Payout, error) {
	var models []payoutModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{"principal": principal}).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("patron/mongo: list payouts: %w", err)
	}

	result := make([]*payment.Payout, len(models))
	for i := range models {
		p, err := fromPayoutModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

// ==================== Platform Store ====================

func (s *Store) GetPlatform(ctx context.Context) (*platform.State, error) {
	var m platformModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": platformDocID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, patron.ErrNotFound
		}
		return nil, fmt.Errorf("patron/mongo: get platform: %w", err)
	}

	state := &platform.State{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Earnings: types.New(m.EarningsAmount, m.EarningsCurrency),
	}

	state.NextCreatorID, err = s.peekSequence(ctx, platform.SeqCreator)
	if err != nil {
		return nil, err
	}
	state.NextContentID, err = s.peekSequence(ctx, platform.SeqContent)
	if err != nil {
		return nil, err
	}
	state.NextTipID, err = s.peekSequence(ctx, platform.SeqTip)
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *Store) UpdatePlatform(ctx context.Context, state *platform.State) error {
	t := now()
	_, err := s.mdb.NewUpdate((*platformModel)(nil)).
		Filter(bson.M{"_id": platformDocID}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":               platformDocID,
			"earnings_amount":   state.Earnings.Amount,
			"earnings_currency": state.Earnings.Currency,
			"created_at":        state.CreatedAt,
			"updated_at":        t,
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("patron/mongo: update platform: %w", err)
	}
	return nil
}

// NextID allocates the next id from the named sequence. The sequence
// document stores the last allocated id; a single find-and-modify with
// upsert makes the allocation atomic.
func (s *Store) NextID(ctx context.Context, seq platform.Sequence) (uint64, error) {
	var doc sequenceDoc
	err := s.mdb.Collection(colSequences).FindOneAndUpdate(ctx,
		bson.M{"_id": string(seq)},
		bson.M{"$inc": bson.M{"next": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("patron/mongo: next id %s: %w", seq, err)
	}
	return doc.Next, nil
}

// peekSequence reads the next id a sequence would allocate without
// consuming it.
func (s *Store) peekSequence(ctx context.Context, seq platform.Sequence) (uint64, error) {
	var doc sequenceDoc
	err := s.mdb.Collection(colSequences).
		FindOne(ctx, bson.M{"_id": string(seq)}).
		Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return 1, nil
		}
		return 0, fmt.Errorf("patron/mongo: peek sequence %s: %w", seq, err)
	}
	return doc.Next + 1, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all patron collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colCreators: {
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		},
		colContent: {
			{Keys: bson.D{{Key: "creator_id", Value: 1}}},
			{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		colSubscriptions: {
			{Keys: bson.D{{Key: "creator_id", Value: 1}}},
			{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "end_date", Value: 1}}},
		},
		colPurchases: {
			{
				Keys:    bson.D{{Key: "buyer", Value: 1}, {Key: "content_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colTips: {
			{Keys: bson.D{{Key: "creator_id", Value: 1}}},
		},
		colCharges: {
			{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colPayouts: {
			{Keys: bson.D{{Key: "principal", Value: 1}, {Key: "created_at", Value: 1}}},
		},
	}
}
