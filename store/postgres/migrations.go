package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Patron store.
var Migrations = migrate.NewGroup("patron")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_patron_creators",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patron_creators (
    id                BIGINT PRIMARY KEY,
    owner             TEXT NOT NULL DEFAULT '',
    name              TEXT NOT NULL DEFAULT '',
    bio               TEXT NOT NULL DEFAULT '',
    avatar_url        TEXT NOT NULL DEFAULT '',
    followers         BIGINT NOT NULL DEFAULT 0,
    earnings_amount   BIGINT NOT NULL DEFAULT 0,
    earnings_currency TEXT NOT NULL DEFAULT '',
    content_count     BIGINT NOT NULL DEFAULT 0,
    verified          BOOLEAN NOT NULL DEFAULT FALSE,
    tier              TEXT NOT NULL DEFAULT 'basic',
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_patron_creators_owner ON patron_creators (owner);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS patron_creators`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_patron_content",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patron_content (
    id                BIGINT PRIMARY KEY,
    creator_id        BIGINT NOT NULL DEFAULT 0,
    title             TEXT NOT NULL DEFAULT '',
    description       TEXT NOT NULL DEFAULT '',
    type              TEXT NOT NULL DEFAULT '',
    price_amount      BIGINT NOT NULL DEFAULT 0,
    price_currency    TEXT NOT NULL DEFAULT '',
    thumbnail_url     TEXT NOT NULL DEFAULT '',
    content_url       TEXT NOT NULL DEFAULT '',
    views             BIGINT NOT NULL DEFAULT 0,
    likes             BIGINT NOT NULL DEFAULT 0,
    earnings_amount   BIGINT NOT NULL DEFAULT 0,
    earnings_currency TEXT NOT NULL DEFAULT '',
    premium           BOOLEAN NOT NULL DEFAULT FALSE,
    status            TEXT NOT NULL DEFAULT 'draft',
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_patron_content_creator ON patron_content (creator_id);
CREATE INDEX IF NOT EXISTS idx_patron_content_status ON patron_content (creator_id, status);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS patron_content`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_patron_subscriptions",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patron_subscriptions (
    pair_key      TEXT PRIMARY KEY,
    subscriber    TEXT NOT NULL DEFAULT '',
    creator_id    BIGINT NOT NULL DEFAULT 0,
    tier          BIGINT NOT NULL DEFAULT 0,
    start_date    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    end_date      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    paid_amount   BIGINT NOT NULL DEFAULT 0,
    paid_currency TEXT NOT NULL DEFAULT '',
    auto_renew    BOOLEAN NOT NULL DEFAULT FALSE,
    status        TEXT NOT NULL DEFAULT 'active',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_patron_subs_creator ON patron_subscriptions (creator_id);
CREATE INDEX IF NOT EXISTS idx_patron_subs_window ON patron_subscriptions (creator_id, start_date, end_date);
CREATE INDEX IF NOT EXISTS idx_patron_subs_lapsed ON patron_subscriptions (status, end_date);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS patron_subscriptions`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_patron_purchases",
			Version: "20250101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patron_purchases (
    id             TEXT PRIMARY KEY,
    buyer          TEXT NOT NULL DEFAULT '',
    content_id     BIGINT NOT NULL DEFAULT 0,
    creator_id     BIGINT NOT NULL DEFAULT 0,
    price_amount   BIGINT NOT NULL DEFAULT 0,
    price_currency TEXT NOT NULL DEFAULT '',
    net_amount     BIGINT NOT NULL DEFAULT 0,
    net_currency   TEXT NOT NULL DEFAULT '',
    fee_amount     BIGINT NOT NULL DEFAULT 0,
    fee_currency   TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_patron_purchases_buyer_content ON patron_purchases (buyer, content_id);
CREATE INDEX IF NOT EXISTS idx_patron_purchases_creator ON patron_purchases (creator_id, created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS patron_purchases`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_patron_tips",
			Version: "20250101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patron_tips (
    id              BIGINT PRIMARY KEY,
    creator_id      BIGINT NOT NULL DEFAULT 0,
    tipper          TEXT NOT NULL DEFAULT '',
    amount          BIGINT NOT NULL DEFAULT 0,
    amount_currency TEXT NOT NULL DEFAULT '',
    net_amount      BIGINT NOT NULL DEFAULT 0,
    net_currency    TEXT NOT NULL DEFAULT '',
    fee_amount      BIGINT NOT NULL DEFAULT 0,
    fee_currency    TEXT NOT NULL DEFAULT '',
    message         TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_patron_tips_creator ON patron_tips (creator_id, created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS patron_tips`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_patron_charges",
			Version: "20250101000006",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patron_charges (
    id              TEXT PRIMARY KEY,
    subscriber      TEXT NOT NULL DEFAULT '',
    creator_id      BIGINT NOT NULL DEFAULT 0,
    tier            BIGINT NOT NULL DEFAULT 0,
    months          BIGINT NOT NULL DEFAULT 0,
    amount          BIGINT NOT NULL DEFAULT 0,
    amount_currency TEXT NOT NULL DEFAULT '',
    net_amount      BIGINT NOT NULL DEFAULT 0,
    net_currency    TEXT NOT NULL DEFAULT '',
    fee_amount      BIGINT NOT NULL DEFAULT 0,
    fee_currency    TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_patron_charges_creator ON patron_charges (creator_id, created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS patron_charges`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_patron_payouts",
			Version: "20250101000007",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patron_payouts (
    id              TEXT PRIMARY KEY,
    kind            TEXT NOT NULL DEFAULT '',
    principal       TEXT NOT NULL DEFAULT '',
    creator_id      BIGINT NOT NULL DEFAULT 0,
    amount          BIGINT NOT NULL DEFAULT 0,
    amount_currency TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_patron_payouts_principal ON patron_payouts (principal, created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS patron_payouts`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_patron_platform",
			Version: "20250101000008",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patron_platform (
    id                BIGINT PRIMARY KEY,
    earnings_amount   BIGINT NOT NULL DEFAULT 0,
    earnings_currency TEXT NOT NULL DEFAULT '',
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS patron_sequences (
    name TEXT PRIMARY KEY,
    next BIGINT NOT NULL DEFAULT 1
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TABLE IF EXISTS patron_platform;
DROP TABLE IF EXISTS patron_sequences;
`)
				return err
			},
		},
	)
}
