package entity

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

type FilterKind string

const (
	FilterAll       FilterKind = "all"
	FilterFollowing FilterKind = "following"
	FilterAuthor    FilterKind = "author"
)

// FeedFilter is a tagged variant over the enumerated feed kinds.
// AuthorID is set only for FilterAuthor, ViewerID only for
// FilterFollowing.
type FeedFilter struct {
	Kind     FilterKind
	AuthorID string
	ViewerID string
}

// FeedPost is a post annotated with the viewer-dependent like state.
type FeedPost struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	LikeCount int64       `json:"like_count"`
	LikedByMe bool        `json:"liked_by_me"`
	User      UserSummary `json:"user"`
}

// FeedPage is one page of the feed plus the continuation cursor.
// NextCursor is nil when the page was not full.
type FeedPage struct {
	Posts      []FeedPost `json:"posts"`
	NextCursor *Cursor    `json:"next_cursor,omitempty"`
}

// Cursor is the keyset-pagination boundary: the (createdAt, id) pair of
// the last row omitted from a page. Clients treat its encoded form as
// opaque and pass it back unmodified.
type Cursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

// cursorPayload avoids the Cursor's own MarshalJSON when encoding.
type cursorPayload struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

func (c Cursor) Encode() string {
	raw, _ := json.Marshal(cursorPayload{CreatedAt: c.CreatedAt, ID: c.ID})
	return base64.RawURLEncoding.EncodeToString(raw)
}

func (c Cursor) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Encode())
}

func DecodeCursor(encoded string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}

	var c cursorPayload
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		return nil, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}

	return &Cursor{CreatedAt: c.CreatedAt, ID: c.ID}, nil
}
