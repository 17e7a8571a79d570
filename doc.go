// Package patron provides an embeddable creator monetization engine for Go
// applications.
//
// Patron is designed as a library, not a service. Import it directly into
// your Go application and wire it to a store backend and a wallet
// substrate. It provides:
//
//   - Creator profiles with follower counts, verification and standing tiers
//   - Priced content catalogs with draft/published lifecycle
//   - One-time content purchases with immutable receipts
//   - Tiered, time-boxed subscriptions (Basic, Premium, VIP)
//   - Tips with optional messages
//   - A uniform platform fee split applied to every transfer
//   - Withdrawal of creator earnings and platform fees with payout receipts
//   - Pure, uncached access decisions for premium content
//
// # Quick Start
//
// Create an engine instance with your preferred store and a wallet:
//
//	import (
//	    "github.com/xraph/patron"
//	    "github.com/xraph/patron/store/memory"
//	    "github.com/xraph/patron/wallet"
//	)
//
//	w := wallet.NewMemory("stx")
//	eng := patron.New(memory.New(), w, patron.WithAdmin("SP_ADMIN"))
//
//	// Start the engine (migrates the store, begins the expiry sweeper)
//	if err := eng.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Stop()
//
// # Core Concepts
//
// Creators own catalogs of priced content:
//
//	creatorID, err := eng.RegisterCreator(ctx, "SP_ALICE", "Alice", "bio", "")
//	contentID, err := eng.CreateContent(ctx, "SP_ALICE", creatorID, content.Draft{
//	    Title:   "Lesson 1",
//	    Type:    content.TypeVideo,
//	    Price:   patron.STX(2_000_000),
//	    Premium: true,
//	})
//	err = eng.PublishContent(ctx, "SP_ALICE", contentID)
//
// Viewers unlock premium content by buying it once or by holding an active
// subscription to its creator:
//
//	receipt, err := eng.PurchaseContent(ctx, "SP_BOB", contentID)
//	decision, err := eng.CanAccess(ctx, "SP_BOB", contentID)
//
// Every transfer splits the gross amount into the creator's net credit and
// the platform fee; the two always sum back to the gross.
//
// # Money
//
// All monetary calculations use integer arithmetic to avoid floating-point
// precision issues. The Money type represents amounts in the smallest
// currency unit; the stock configuration uses micro-STX with six decimal
// places.
//
// # Funds custody
//
// Patron keeps the authoritative earnings ledger but never holds spendable
// balances: debits and credits go through the wallet.Wallet interface, the
// seam to whatever custody system the host application uses.
package patron
