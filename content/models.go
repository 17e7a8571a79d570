package content

import (
	"github.com/xraph/patron/types"
)

// Type classifies what kind of asset a content record points at.
type Type string

const (
	TypeVideo  Type = "video"
	TypeAudio  Type = "audio"
	TypeImage  Type = "image"
	TypeText   Type = "text"
	TypeCourse Type = "course"
)

// Valid reports whether t is a known content type.
func (t Type) Valid() bool {
	switch t {
	case TypeVideo, TypeAudio, TypeImage, TypeText, TypeCourse:
		return true
	}
	return false
}

// Status is the publication state. Transitions one way: draft to published.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Content is a priced catalog entry owned by a creator.
// Views, Likes and Earnings are monotonic; Earnings mirrors the sum of
// net-of-fee credits attributed to this content.
type Content struct {
	types.Entity
	ID           uint64      `json:"id"`
	CreatorID    uint64      `json:"creator_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Type         Type        `json:"type"`
	Price        types.Money `json:"price"`
	ThumbnailURL string      `json:"thumbnail_url"`
	ContentURL   string      `json:"content_url"`
	Views        uint64      `json:"views"`
	Likes        uint64      `json:"likes"`
	Earnings     types.Money `json:"earnings"`
	Premium      bool        `json:"premium"`
	Status       Status      `json:"status"`
}

// Draft is the caller-supplied input for new content.
type Draft struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Type         Type        `json:"type"`
	Price        types.Money `json:"price"`
	ThumbnailURL string      `json:"thumbnail_url"`
	ContentURL   string      `json:"content_url"`
	Premium      bool        `json:"premium"`
}

// ListOpts filters catalog listings.
type ListOpts struct {
	Status Status
	Limit  int
	Offset int
}
