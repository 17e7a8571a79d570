package patron

import (
	"context"
	"time"

	"github.com/xraph/patron/access"
	"github.com/xraph/patron/content"
)

// CanAccess evaluates whether viewer may open the content right now. The
// decision is recomputed from the underlying records on every call; it is
// never cached, so an expired subscription loses access immediately.
//
// Grant order: drafts are owner-only, free published content is open,
// then a purchase receipt, then any active subscription to the creator.
func (e *Engine) CanAccess(ctx context.Context, viewer string, contentID uint64) (*access.Decision, error) {
	item, err := e.store.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}

	c, err := e.store.GetCreator(ctx, item.CreatorID)
	if err != nil {
		return nil, err
	}

	deny := func(reason string) *access.Decision {
		return &access.Decision{ContentID: contentID, Reason: reason}
	}
	allow := func(grant access.Grant) *access.Decision {
		return &access.Decision{Allowed: true, ContentID: contentID, Grant: grant}
	}

	if c.Owner == viewer {
		return allow(access.GrantOwner), nil
	}
	if item.Status != content.StatusPublished {
		return deny("not published"), nil
	}
	if !item.Premium {
		return allow(access.GrantFree), nil
	}

	if _, err := e.store.GetPurchase(ctx, viewer, contentID); err == nil {
		return allow(access.GrantPurchase), nil
	} else if !IsNotFound(err) {
		return nil, err
	}

	sub, err := e.store.GetSubscription(ctx, viewer, item.CreatorID)
	if err == nil && sub.ActiveAt(time.Now()) {
		return allow(access.GrantSubscription), nil
	}
	if err != nil && !IsNotFound(err) {
		return nil, err
	}

	return deny("no purchase or active subscription"), nil
}
