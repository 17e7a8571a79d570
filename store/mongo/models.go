package mongo

import (
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/patron/content"
	"github.com/xraph/patron/creator"
	"github.com/xraph/patron/id"
	"github.com/xraph/patron/payment"
	"github.com/xraph/patron/subscription"
	"github.com/xraph/patron/types"
)

// ==================== Creator models ====================

type creatorModel struct {
	grove.BaseModel `grove:"table:patron_creators"`

	ID               uint64    `grove:"id,pk"             bson:"_id"`
	Owner            string    `grove:"owner"             bson:"owner"`
	Name             string    `grove:"name"              bson:"name"`
	Bio              string    `grove:"bio"               bson:"bio"`
	AvatarURL        string    `grove:"avatar_url"        bson:"avatar_url"`
	Followers        uint64    `grove:"followers"         bson:"followers"`
	EarningsAmount   int64     `grove:"earnings_amount"   bson:"earnings_amount"`
	EarningsCurrency string    `grove:"earnings_currency" bson:"earnings_currency"`
	ContentCount     uint64    `grove:"content_count"     bson:"content_count"`
	Verified         bool      `grove:"verified"          bson:"verified"`
	Tier             string    `grove:"tier"              bson:"tier"`
	CreatedAt        time.Time `grove:"created_at"        bson:"created_at"`
	UpdatedAt        time.Time `grove:"updated_at"        bson:"updated_at"`
}

func toCreatorModel(c *creator.Creator) *creatorModel {
	return &creatorModel{
		ID:               c.ID,
		Owner:            c.Owner,
		Name:             c.Name,
		Bio:              c.Bio,
		AvatarURL:        c.AvatarURL,
		Followers:        c.Followers,
		EarningsAmount:   c.TotalEarnings.Amount,
		EarningsCurrency: c.TotalEarnings.Currency,
		ContentCount:     c.ContentCount,
		Verified:         c.Verified,
		Tier:             string(c.Tier),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func fromCreatorModel(m *creatorModel) *creator.Creator {
	return &creator.Creator{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:            m.ID,
		Owner:         m.Owner,
		Name:          m.Name,
		Bio:           m.Bio,
		AvatarURL:     m.AvatarURL,
		Followers:     m.Followers,
		TotalEarnings: types.New(m.EarningsAmount, m.EarningsCurrency),
		ContentCount:  m.ContentCount,
		Verified:      m.Verified,
		Tier:          creator.Tier(m.Tier),
	}
}

// ==================== Content models ====================

type contentModel struct {
	grove.BaseModel `grove:"table:patron_content"`

	ID               uint64    `grove:"id,pk"             bson:"_id"`
	CreatorID        uint64    `grove:"creator_id"        bson:"creator_id"`
	Title            string    `grove:"title"             bson:"title"`
	Description      string    `grove:"description"       bson:"description"`
	Type             string    `grove:"type"              bson:"type"`
	PriceAmount      int64     `grove:"price_amount"      bson:"price_amount"`
	PriceCurrency    string    `grove:"price_currency"    bson:"price_currency"`
	ThumbnailURL     string    `grove:"thumbnail_url"     bson:"thumbnail_url"`
	ContentURL       string    `grove:"content_url"       bson:"content_url"`
	Views            uint64    `grove:"views"             bson:"views"`
	Likes            uint64    `grove:"likes"             bson:"likes"`
	EarningsAmount   int64     `grove:"earnings_amount"   bson:"earnings_amount"`
	EarningsCurrency string    `grove:"earnings_currency" bson:"earnings_currency"`
	Premium          bool      `grove:"premium"           bson:"premium"`
	Status           string    `grove:"status"            bson:"status"`
	CreatedAt        time.Time `grove:"created_at"        bson:"created_at"`
	UpdatedAt        time.Time `grove:"updated_at"        bson:"updated_at"`
}

func toContentModel(c *content.Content) *contentModel {
	return &contentModel{
		ID:               c.ID,
		CreatorID:        c.CreatorID,
		Title:            c.Title,
		Description:      c.Description,
		Type:             string(c.Type),
		PriceAmount:      c.Price.Amount,
		PriceCurrency:    c.Price.Currency,
		ThumbnailURL:     c.ThumbnailURL,
		ContentURL:       c.ContentURL,
		Views:            c.Views,
		Likes:            c.Likes,
		EarningsAmount:   c.Earnings.Amount,
		EarningsCurrency: c.Earnings.Currency,
		Premium:          c.Premium,
		Status:           string(c.Status),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func fromContentModel(m *contentModel) *content.Content {
	return &content.Content{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:           m.ID,
		CreatorID:    m.CreatorID,
		Title:        m.Title,
		Description:  m.Description,
		Type:         content.Type(m.Type),
		Price:        types.New(m.PriceAmount, m.PriceCurrency),
		ThumbnailURL: m.ThumbnailURL,
		ContentURL:   m.ContentURL,
		Views:        m.Views,
		Likes:        m.Likes,
		Earnings:     types.New(m.EarningsAmount, m.EarningsCurrency),
		Premium:      m.Premium,
		Status:       content.Status(m.Status),
	}
}

// ==================== Subscription models ====================

type subscriptionModel struct {
	grove.BaseModel `grove:"table:patron_subscriptions"`

	PairKey      string    `grove:"pair_key,pk"  bson:"_id"`
	Subscriber   string    `grove:"subscriber"   bson:"subscriber"`
	CreatorID    uint64    `grove:"creator_id"   bson:"creator_id"`
	Tier         int       `grove:"tier"         bson:"tier"`
	StartDate    time.Time `grove:"start_date"   bson:"start_date"`
	EndDate      time.Time `grove:"end_date"     bson:"end_date"`
	PaidAmount   int64     `grove:"paid_amount"  bson:"paid_amount"`
	PaidCurrency string    `grove:"paid_currency" bson:"paid_currency"`
	AutoRenew    bool      `grove:"auto_renew"   bson:"auto_renew"`
	Status       string    `grove:"status"       bson:"status"`
	CreatedAt    time.Time `grove:"created_at"   bson:"created_at"`
	UpdatedAt    time.Time `grove:"updated_at"   bson:"updated_at"`
}

func subscriptionPairKey(subscriber string, creatorID uint64) string {
	return fmt.Sprintf("%s:%d", subscriber, creatorID)
}

func toSubscriptionModel(s *subscription.Subscription) *subscriptionModel {
	return &subscriptionModel{
		PairKey:      subscriptionPairKey(s.Subscriber, s.CreatorID),
		Subscriber:   s.Subscriber,
		CreatorID:    s.CreatorID,
		Tier:         int(s.Tier),
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		PaidAmount:   s.AmountPaid.Amount,
		PaidCurrency: s.AmountPaid.Currency,
		AutoRenew:    s.AutoRenew,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func fromSubscriptionModel(m *subscriptionModel) *subscription.Subscription {
	return &subscription.Subscription{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Subscriber: m.Subscriber,
		CreatorID:  m.CreatorID,
		Tier:       subscription.Tier(m.Tier),
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		AmountPaid: types.New(m.PaidAmount, m.PaidCurrency),
		AutoRenew:  m.AutoRenew,
		Status:     subscription.Status(m.Status),
	}
}

// ==================== Purchase models ====================

type purchaseModel struct {
	grove.BaseModel `grove:"table:patron_purchases"`

	ID            string    `grove:"id,pk"          bson:"_id"`
	Buyer         string    `grove:"buyer"          bson:"buyer"`
	ContentID     uint64    `grove:"content_id"     bson:"content_id"`
	CreatorID     uint64    `grove:"creator_id"     bson:"creator_id"`
	PriceAmount   int64     `grove:"price_amount"   bson:"price_amount"`
	PriceCurrency string    `grove:"price_currency" bson:"price_currency"`
	NetAmount     int64     `grove:"net_amount"     bson:"net_amount"`
	NetCurrency   string    `grove:"net_currency"   bson:"net_currency"`
	FeeAmount     int64     `grove:"fee_amount"     bson:"fee_amount"`
	FeeCurrency   string    `grove:"fee_currency"   bson:"fee_currency"`
	CreatedAt     time.Time `grove:"created_at"     bson:"created_at"`
	UpdatedAt     time.Time `grove:"updated_at"     bson:"updated_at"`
}

func toPurchaseModel(p *payment.Purchase) *purchaseModel {
	return &purchaseModel{
		ID:            p.ID.String(),
		Buyer:         p.Buyer,
		ContentID:     p.ContentID,
		CreatorID:     p.CreatorID,
		PriceAmount:   p.Price.Amount,
		PriceCurrency: p.Price.Currency,
		NetAmount:     p.NetCredit.Amount,
		NetCurrency:   p.NetCredit.Currency,
		FeeAmount:     p.Fee.Amount,
		FeeCurrency:   p.Fee.Currency,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func fromPurchaseModel(m *purchaseModel) (*payment.Purchase, error) {
	purchaseID, err := id.ParsePurchaseID(m.ID)
	if err != nil {
		return nil, err
	}

	return &payment.Purchase{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:        purchaseID,
		Buyer:     m.Buyer,
		ContentID: m.ContentID,
		CreatorID: m.CreatorID,
		Price:     types.New(m.PriceAmount, m.PriceCurrency),
		NetCredit: types.New(m.NetAmount, m.NetCurrency),
		Fee:       types.New(m.FeeAmount, m.FeeCurrency),
	}, nil
}

// ==================== Tip models ====================

type tipModel struct {
	grove.BaseModel `grove:"table:patron_tips"`

	ID             uint64    `grove:"id,pk"           bson:"_id"`
	CreatorID      uint64    `grove:"creator_id"      bson:"creator_id"`
	Tipper         string    `grove:"tipper"          bson:"tipper"`
	Amount         int64     `grove:"amount"          bson:"amount"`
	AmountCurrency string    `grove:"amount_currency" bson:"amount_currency"`
	NetAmount      int64     `grove:"net_amount"      bson:"net_amount"`
	NetCurrency    string    `grove:"net_currency"    bson:"net_currency"`
	FeeAmount      int64     `grove:"fee_amount"      bson:"fee_amount"`
	FeeCurrency    string    `grove:"fee_currency"    bson:"fee_currency"`
	Message        string    `grove:"message"         bson:"message"`
	CreatedAt      time.Time `grove:"created_at"      bson:"created_at"`
	UpdatedAt      time.Time `grove:"updated_at"      bson:"updated_at"`
}

func toTipModel(t *payment.Tip) *tipModel {
	return &tipModel{
		ID:             t.ID,
		CreatorID:      t.CreatorID,
		Tipper:         t.Tipper,
		Amount:         t.Amount.Amount,
		AmountCurrency: t.Amount.Currency,
		NetAmount:      t.NetCredit.Amount,
		NetCurrency:    t.NetCredit.Currency,
		FeeAmount:      t.Fee.Amount,
		FeeCurrency:    t.Fee.Currency,
		Message:        t.Message,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func fromTipModel(m *tipModel) *payment.Tip {
	return &payment.Tip{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:        m.ID,
		CreatorID: m.CreatorID,
		Tipper:    m.Tipper,
		Amount:    types.New(m.Amount, m.AmountCurrency),
		NetCredit: types.New(m.NetAmount, m.NetCurrency),
		Fee:       types.New(m.FeeAmount, m.FeeCurrency),
		Message:   m.Message,
	}
}

// ==================== Charge models ====================

type chargeModel struct {
	grove.BaseModel `grove:"table:patron_charges"`

	ID             string    `grove:"id,pk"           bson:"_id"`
	Subscriber     string    `grove:"subscriber"      bson:"subscriber"`
	CreatorID      uint64    `grove:"creator_id"      bson:"creator_id"`
	Tier           int       `grove:"tier"            bson:"tier"`
	Months         int       `grove:"months"          bson:"months"`
	Amount         int64     `grove:"amount"          bson:"amount"`
	AmountCurrency string    `grove:"amount_currency" bson:"amount_currency"`
	NetAmount      int64     `grove:"net_amount"      bson:"net_amount"`
	NetCurrency    string    `grove:"net_currency"    bson:"net_currency"`
	FeeAmount      int64     `grove:"fee_amount"      bson:"fee_amount"`
	FeeCurrency    string    `grove:"fee_currency"    bson:"fee_currency"`
	CreatedAt      time.Time `grove:"created_at"      bson:"created_at"`
	UpdatedAt      time.Time `grove:"updated_at"      bson:"updated_at"`
}

func toChargeModel(c *payment.Charge) *chargeModel {
	return &chargeModel{
		ID:             c.ID.String(),
		Subscriber:     c.Subscriber,
		CreatorID:      c.CreatorID,
		Tier:           c.Tier,
		Months:         c.Months,
		Amount:         c.Amount.Amount,
		AmountCurrency: c.Amount.Currency,
		NetAmount:      c.NetCredit.Amount,
		NetCurrency:    c.NetCredit.Currency,
		FeeAmount:      c.Fee.Amount,
		FeeCurrency:    c.Fee.Currency,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func fromChargeModel(m *chargeModel) (*payment.Charge, error) {
	chargeID, err := id.ParseChargeID(m.ID)
	if err != nil {
		return nil, err
	}

	return &payment.Charge{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:         chargeID,
		Subscriber: m.Subscriber,
		CreatorID:  m.CreatorID,
		Tier:       m.Tier,
		Months:     m.Months,
		Amount:     types.New(m.Amount, m.AmountCurrency),
		NetCredit:  types.New(m.NetAmount, m.NetCurrency),
		Fee:        types.New(m.FeeAmount, m.FeeCurrency),
	}, nil
}

// ==================== Payout models ====================

type payoutModel struct {
	grove.BaseModel `grove:"table:patron_payouts"`

	ID             string    `grove:"id,pk"           bson:"_id"`
	Kind           string    `grove:"kind"            bson:"kind"`
	Principal      string    `grove:"principal"       bson:"principal"`
	CreatorID      uint64    `grove:"creator_id"      bson:"creator_id"`
	Amount         int64     `grove:"amount"          bson:"amount"`
	AmountCurrency string    `grove:"amount_currency" bson:"amount_currency"`
	CreatedAt      time.Time `grove:"created_at"      bson:"created_at"`
	UpdatedAt      time.Time `grove:"updated_at"      bson:"updated_at"`
}

func toPayoutModel(p *payment.Payout) *payoutModel {
	return &payoutModel{
		ID:             p.ID.String(),
		Kind:           string(p.Kind),
		Principal:      p.Principal,
		CreatorID:      p.CreatorID,
		Amount:         p.Amount.Amount,
		AmountCurrency: p.Amount.Currency,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromPayoutModel(m *payoutModel) (*payment.Payout, error) {
	payoutID, err := id.ParsePayoutID(m.ID)
	if err != nil {
		return nil, err
	}

	return &payment.Payout{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:        payoutID,
		Kind:      payment.PayoutKind(m.Kind),
		Principal: m.Principal,
		CreatorID: m.CreatorID,
		Amount:    types.New(m.Amount, m.AmountCurrency),
	}, nil
}

// ==================== Platform models ====================

type platformModel struct {
	grove.BaseModel `grove:"table:patron_platform"`

	ID               string    `grove:"id,pk"             bson:"_id"`
	EarningsAmount   int64     `grove:"earnings_amount"   bson:"earnings_amount"`
	EarningsCurrency string    `grove:"earnings_currency" bson:"earnings_currency"`
	CreatedAt        time.Time `grove:"created_at"        bson:"created_at"`
	UpdatedAt        time.Time `grove:"updated_at"        bson:"updated_at"`
}

// sequenceDoc backs the id allocator collection.
type sequenceDoc struct {
	Name string `bson:"_id"`
	Next uint64 `bson:"next"`
}
