package patron

import (
	"context"

	"github.com/xraph/patron/content"
	"github.com/xraph/patron/platform"
	"github.com/xraph/patron/types"
)

// ──────────────────────────────────────────────────
// Content Management
// ──────────────────────────────────────────────────

// CreateContent adds a draft to a creator's catalog and returns the new
// content id. Only the profile owner may call it. All validation happens
// before the id sequence is consumed, so a rejected draft never burns an
// id.
func (e *Engine) CreateContent(ctx context.Context, caller string, creatorID uint64, draft content.Draft) (uint64, error) {
	c, err := e.store.GetCreator(ctx, creatorID)
	if err != nil {
		return 0, err
	}
	if c.Owner != caller {
		return 0, ErrNotAuthorized
	}
	if draft.Title == "" || !draft.Type.Valid() {
		return 0, ErrInvalidInput
	}
	if draft.Price.Currency != e.currency {
		return 0, ErrInvalidInput
	}
	if draft.Price.Amount < e.minPrice {
		return 0, ErrInvalidPrice
	}

	contentID, err := e.store.NextID(ctx, platform.SeqContent)
	if err != nil {
		return 0, err
	}

	item := &content.Content{
		Entity:       types.NewEntity(),
		ID:           contentID,
		CreatorID:    creatorID,
		Title:        draft.Title,
		Description:  draft.Description,
		Type:         draft.Type,
		Price:        draft.Price,
		ThumbnailURL: draft.ThumbnailURL,
		ContentURL:   draft.ContentURL,
		Earnings:     types.Zero(e.currency),
		Premium:      draft.Premium,
		Status:       content.StatusDraft,
	}

	if err := e.store.CreateContent(ctx, item); err != nil {
		return 0, err
	}

	c.ContentCount++
	c.Touch()
	if err := e.store.UpdateCreator(ctx, c); err != nil {
		return 0, err
	}

	e.logger.Info("content created",
		"content_id", contentID,
		"creator_id", creatorID,
		"type", draft.Type,
	)
	e.plugins.EmitContentCreated(ctx, item)
	return contentID, nil
}

// GetContent retrieves a content record by id.
func (e *Engine) GetContent(ctx context.Context, contentID uint64) (*content.Content, error) {
	return e.store.GetContent(ctx, contentID)
}

// ListContent lists a creator's catalog.
func (e *Engine) ListContent(ctx context.Context, creatorID uint64, opts content.ListOpts) ([]*content.Content, error) {
	return e.store.ListContentByCreator(ctx, creatorID, opts)
}

// PublishContent flips a draft live. Owner only; publishing twice fails.
func (e *Engine) PublishContent(ctx context.Context, caller string, contentID uint64) error {
	item, err := e.store.GetContent(ctx, contentID)
	if err != nil {
		return err
	}

	c, err := e.store.GetCreator(ctx, item.CreatorID)
	if err != nil {
		return err
	}
	if c.Owner != caller {
		return ErrNotAuthorized
	}
	if item.Status == content.StatusPublished {
		return ErrAlreadyPublished
	}

	item.Status = content.StatusPublished
	item.Touch()
	if err := e.store.UpdateContent(ctx, item); err != nil {
		return err
	}

	e.logger.Info("content published", "content_id", contentID)
	e.plugins.EmitContentPublished(ctx, item)
	return nil
}

// LikeContent increments the like counter. Likes are not deduplicated per
// caller.
func (e *Engine) LikeContent(ctx context.Context, caller string, contentID uint64) error {
	if caller == "" {
		return ErrInvalidInput
	}

	item, err := e.store.GetContent(ctx, contentID)
	if err != nil {
		return err
	}

	item.Likes++
	item.Touch()
	return e.store.UpdateContent(ctx, item)
}

// ViewContent records a view and returns the content, but only when the
// viewer passes the access check. A denied view leaves the counter
// untouched.
func (e *Engine) ViewContent(ctx context.Context, viewer string, contentID uint64) (*content.Content, error) {
	decision, err := e.CanAccess(ctx, viewer, contentID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		e.plugins.EmitAccessDenied(ctx, viewer, decision)
		return nil, ErrAccessDenied
	}

	item, err := e.store.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}

	item.Views++
	item.Touch()
	if err := e.store.UpdateContent(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
