// Package sqlite implements the Patron store on SQLite via Grove ORM.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	patron "github.com/xraph/patron"
	"github.com/xraph/patron/content"
	"github.com/xraph/patron/creator"
	"github.com/xraph/patron/payment"
	"github.com/xraph/patron/platform"
	patronstore "github.com/xraph/patron/store"
	"github.com/xraph/patron/subscription"
	"github.com/xraph/patron/types"
)

// compile-time interface check
var _ patronstore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("patron/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("patron/sqlite: migration failed: %w", err)
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
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetCreator(ctx context.Context, creatorID uint64) (*creator.Creator, error) {
	m := new(creatorModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", creatorID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, patron.ErrCreatorNotFound
		}
		return nil, err
	}
	return fromCreatorModel(m), nil
}

func (s *Store) UpdateCreator(ctx context.Context, c *creator.Creator) error {
	m := toCreatorModel(c)
	m.UpdatedAt = now()
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return patron.ErrCreatorNotFound
	}
	return nil
}

// ==================== Content Store ====================

func (s *Store) CreateContent(ctx context.Context, c *content.Content) error {
	m := toContentModel(c)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetContent(ctx context.Context, contentID uint64) (*content.Content, error) {
	m := new(contentModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", contentID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, patron.ErrContentNotFound
		}
		return nil, err
	}
	return fromContentModel(m), nil
}

func (s *Store) UpdateContent(ctx context.Context, c *content.Content) error {
	m := toContentModel(c)
	m.UpdatedAt = now()
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return patron.ErrContentNotFound
	}
	return nil
}

func (s *Store) ListContentByCreator(ctx context.Context, creatorID uint64, opts content.ListOpts) ([]*content.Content, error) {
	var models []contentModel
	q := s.sdb.NewSelect(&models).Where("creator_id = ?", creatorID)

	if opts.Status != "" {
		q = q.Where("status = ?", string(opts.Status))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	_, err := s.sdb.NewInsert(m).
		OnConflict("(pair_key) DO UPDATE").
		Set("tier = EXCLUDED.tier").
		Set("start_date = EXCLUDED.start_date").
		Set("end_date = EXCLUDED.end_date").
		Set("paid_amount = EXCLUDED.paid_amount").
		Set("paid_currency = EXCLUDED.paid_currency").
		Set("auto_renew = EXCLUDED.auto_renew").
		Set("status = EXCLUDED.status").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) GetSubscription(ctx context.Context, subscriber string, creatorID uint64) (*subscription.Subscription, error) {
	m := new(subscriptionModel)
	err := s.sdb.NewSelect(m).
		Where("pair_key = ?", subscriptionPairKey(subscriber, creatorID)).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, patron.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return fromSubscriptionModel(m), nil
}

func (s *Store) ListSubscriptionsByCreator(ctx context.Context, creatorID uint64, opts subscription.ListOpts) ([]*subscription.Subscription, error) {
	var models []subscriptionModel
	q := s.sdb.NewSelect(&models).Where("creator_id = ?", creatorID)

	if opts.ActiveOnly {
		t := now()
		q = q.Where("start_date <= ?", t).Where("end_date >= ?", t)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("subscriber ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*subscription.Subscription, len(models))
	for i := range models {
		result[i] = fromSubscriptionModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountActiveSubscriptions(ctx context.Context, creatorID uint64, asOf time.Time) (int64, error) {
	var count int64
	err := s.sdb.NewRaw(`
		SELECT COUNT(*) FROM patron_subscriptions
		WHERE creator_id = ? AND start_date <= ? AND end_date >= ?
	`, creatorID, asOf, asOf).Scan(ctx, &count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) ListLapsedSubscriptions(ctx context.Context, asOf time.Time, limit int) ([]*subscription.Subscription, error) {
	var models []subscriptionModel
	q := s.sdb.NewSelect(&models).
		Where("status = ?", string(subscription.StatusActive)).
		Where("end_date < ?", asOf).
		OrderExpr("end_date ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetPurchase(ctx context.Context, buyer string, contentID uint64) (*payment.Purchase, error) {
	m := new(purchaseModel)
	err := s.sdb.NewSelect(m).
		Where("buyer = ?", buyer).
		Where("content_id = ?", contentID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, patron.ErrPurchaseNotFound
		}
		return nil, err
	}
	return fromPurchaseModel(m)
}

func (s *Store) ListPurchasesByCreator(ctx context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Purchase, error) {
	var models []purchaseModel
	q := s.sdb.NewSelect(&models).Where("creator_id = ?", creatorID)

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetTip(ctx context.Context, tipID uint64) (*payment.Tip, error) {
	m := new(tipModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", tipID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, patron.ErrTipNotFound
		}
		return nil, err
	}
	return fromTipModel(m), nil
}

func (s *Store) ListTipsByCreator(ctx context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Tip, error) {
	var models []tipModel
	q := s.sdb.NewSelect(&models).Where("creator_id = ?", creatorID)

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*payment.Tip, len(models))
	for i := range models {
		result[i] = fromTipModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountTips(ctx context.Context, creatorID uint64) (int64, error) {
	var count int64
	err := s.sdb.NewRaw(`
		SELECT COUNT(*) FROM patron_tips WHERE creator_id = ?
	`, creatorID).Scan(ctx, &count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) CreateCharge(ctx context.Context, c *payment.Charge) error {
	m := toChargeModel(c)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) ListChargesByCreator(ctx context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Charge, error) {
	var models []chargeModel
	q := s.sdb.NewSelect(&models).Where("creator_id = ?", creatorID)

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) ListPayouts(ctx context.Context, principal string, opts payment.ListOpts) ([]*payment.Payout, error) {
	var models []payoutModel
	q := s.sdb.NewSelect(&models).Where("principal = ?", principal)

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	m := new(platformModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", platformRowID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, patron.ErrNotFound
		}
		return nil, err
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
	m := &platformModel{
		ID:               platformRowID,
		EarningsAmount:   state.Earnings.Amount,
		EarningsCurrency: state.Earnings.Currency,
		CreatedAt:        state.CreatedAt,
		UpdatedAt:        now(),
	}
	_, err := s.sdb.NewInsert(m).
		OnConflict("(id) DO UPDATE").
		Set("earnings_amount = EXCLUDED.earnings_amount").
		Set("earnings_currency = EXCLUDED.earnings_currency").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// NextID allocates the next id from the named sequence. The sequences row
// stores the next id to hand out; the single upsert statement makes the
// allocation atomic.
func (s *Store) NextID(ctx context.Context, seq platform.Sequence) (uint64, error) {
	var allocated uint64
	err := s.sdb.NewRaw(`
		INSERT INTO patron_sequences (name, next) VALUES (?, 2)
		ON CONFLICT (name) DO UPDATE SET next = patron_sequences.next + 1
		RETURNING next - 1
	`, string(seq)).Scan(ctx, &allocated)
	if err != nil {
		return 0, err
	}
	return allocated, nil
}

// peekSequence reads the next id a sequence would allocate without
// consuming it.
func (s *Store) peekSequence(ctx context.Context, seq platform.Sequence) (uint64, error) {
	var next uint64
	err := s.sdb.NewRaw(`
		SELECT next FROM patron_sequences WHERE name = ?
	`, string(seq)).Scan(ctx, &next)
	if err != nil {
		if isNoRows(err) {
			return 1, nil
		}
		return 0, err
	}
	return next, nil
}

// ==================== Helpers ====================

// platformRowID pins the platform ledger to a single row.
const platformRowID = 1

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
