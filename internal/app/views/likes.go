package views

// LikeSet holds the ids of posts the current user has liked.
type LikeSet map[string]struct{}

// NewLikeSet builds a set from liked post ids.
func NewLikeSet(postIDs []string) LikeSet {
	set := make(LikeSet, len(postIDs))
	for _, id := range postIDs {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether postID is liked. A nil set contains nothing.
func (s LikeSet) Has(postID string) bool {
	_, ok := s[postID]
	return ok
}

// LikeToggle is a like click applied tentatively to a card. It must end in
// exactly one of Commit or Revert.
type LikeToggle struct {
	before PostCard
	after  PostCard
	done   bool
}

// BeginLikeToggle flips the like state of card and marks it unconfirmed.
func BeginLikeToggle(card PostCard) *LikeToggle {
	after := card
	after.Liked = !card.Liked
	if after.Liked {
		after.LikeCount++
	} else if after.LikeCount > 0 {
		after.LikeCount--
	}
	after.Unconfirmed = true
	return &LikeToggle{before: card, after: after}
}

// WasLiked is the like state the user saw before clicking.
func (t *LikeToggle) WasLiked() bool {
	return t.before.Liked
}

// Tentative is the card shown while the store round trip is in flight.
func (t *LikeToggle) Tentative() PostCard {
	return t.after
}

// Commit confirms the toggle with the store's like count.
func (t *LikeToggle) Commit(likeCount int) PostCard {
	t.done = true
	card := t.after
	card.LikeCount = likeCount
	card.Unconfirmed = false
	return card
}

// Revert restores the card exactly as it was before the click.
func (t *LikeToggle) Revert() PostCard {
	t.done = true
	return t.before
}

// Settled reports whether Commit or Revert has been called.
func (t *LikeToggle) Settled() bool {
	return t.done
}

// LikeState is the like-related slice of a card returned by a toggle.
type LikeState struct {
	PostID      string `json:"postId"`
	Liked       bool   `json:"liked"`
	LikeCount   int    `json:"likeCount"`
	Unconfirmed bool   `json:"unconfirmed"`
}

// LikeState extracts the like fields of c.
func (c PostCard) LikeState() LikeState {
	return LikeState{PostID: c.ID, Liked: c.Liked, LikeCount: c.LikeCount, Unconfirmed: c.Unconfirmed}
}
