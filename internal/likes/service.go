// Package likes flips a user's like on a content item and keeps the
// denormalized likes_count on the content row in step with the join
// table.
package likes

import (
	"encoding/json"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/db"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/errs"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/models"
)

// Kind selects which pair of tables a like operates on.
type Kind string

const (
	KindClothing Kind = "clothing"
	KindOutfit   Kind = "outfit"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindClothing, KindOutfit:
		return Kind(s), true
	}
	return "", false
}

func (k Kind) likeTable() string {
	if k == KindOutfit {
		return "outfit_likes"
	}
	return "clothing_likes"
}

// toggleRoutine names the server-side routine that flips the like row
// and adjusts likes_count in one statement, so the counter invariant
// holds even when one side of the write would otherwise fail.
func (k Kind) toggleRoutine() string {
	if k == KindOutfit {
		return "toggle_outfit_like"
	}
	return "toggle_clothing_like"
}

// Publisher receives like-count changes for live subscribers.
type Publisher interface {
	PublishLikeUpdate(kind, itemID string, likesCount int)
}

type Service struct {
	db  *db.Client
	pub Publisher
}

// NewService wires the like service; pub may be nil when no realtime
// feed is attached.
func NewService(dbClient *db.Client, pub Publisher) *Service {
	return &Service{db: dbClient, pub: pub}
}

// ToggleResult is the state after a toggle, as reported by the backend
// routine.
type ToggleResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// IsLiked checks for a like row for (user, item). Absence of a matching
// row means false, never an error.
func (s *Service) IsLiked(token string, kind Kind, userID, itemID string) (bool, error) {
	resp, _, err := s.db.UserClient(token).
		From(kind.likeTable()).
		Select("user_id, item_id", "", false).
		Eq("user_id", userID).
		Eq("item_id", itemID).
		Limit(1, "").
		Execute()
	if err != nil {
		return false, errs.DataAccess("checking like status", err)
	}

	var rows []models.Like
	if err := json.Unmarshal(resp, &rows); err != nil {
		return false, errs.DataAccess("decoding like status", err)
	}
	return len(rows) > 0, nil
}

// Toggle flips the like for (user, item). The join row and the counter
// move together inside one server-side routine; local state changes only
// after the call succeeds. Toggling twice returns the item to its
// original state.
func (s *Service) Toggle(token string, kind Kind, userID, itemID string) (*ToggleResult, error) {
	params := map[string]string{
		"p_user_id": userID,
		"p_item_id": itemID,
	}
	raw, err := db.Rpc(s.db.UserClient(token), kind.toggleRoutine(), params)
	if err != nil {
		return nil, errs.DataAccess("toggling like", err)
	}

	var result ToggleResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, errs.DataAccess("decoding toggle result", err)
	}

	if s.pub != nil {
		s.pub.PublishLikeUpdate(string(kind), itemID, result.LikesCount)
	}
	return &result, nil
}
