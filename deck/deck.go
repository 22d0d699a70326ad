package deck

import "giffer/models"

// Verdict is the kind of vote cast on the top-of-deck item.
type Verdict int

const (
	Like Verdict = iota
	Dislike
)

func (v Verdict) String() string {
	if v == Like {
		return "like"
	}
	return "dislike"
}

// Deck holds one fetch's worth of GIFs, the top-of-deck pointer, and both vote
// buckets. Items before the pointer are consumed; each consumed item lives in
// exactly one bucket. Deck is not safe for concurrent use; the Controller
// serializes access.
type Deck struct {
	items    []models.Gif
	pos      int
	liked    []models.Gif
	disliked []models.Gif
}

// New returns an empty deck.
func New() *Deck {
	return &Deck{}
}

// Reset replaces the deck with a freshly fetched batch: pointer back to zero,
// both buckets cleared, regardless of prior state.
func (d *Deck) Reset(items []models.Gif) {
	d.items = items
	d.pos = 0
	d.liked = nil
	d.disliked = nil
}

// Current returns the top-of-deck item, or false when the deck is exhausted.
func (d *Deck) Current() (models.Gif, bool) {
	if d.pos >= len(d.items) {
		return models.Gif{}, false
	}
	return d.items[d.pos], true
}

// Exhausted reports whether every item has been consumed.
func (d *Deck) Exhausted() bool {
	return d.pos >= len(d.items)
}

// Vote consumes the top-of-deck item into the bucket for v and advances the
// pointer by one. It reports false, changing nothing, when the deck is
// exhausted.
func (d *Deck) Vote(v Verdict) bool {
	current, ok := d.Current()
	if !ok {
		return false
	}
	if v == Like {
		d.liked = append(d.liked, current)
	} else {
		d.disliked = append(d.disliked, current)
	}
	d.pos++
	return true
}

// Len is the total number of items in the current deck.
func (d *Deck) Len() int {
	return len(d.items)
}

// Remaining counts the items still awaiting a vote, the current one included.
func (d *Deck) Remaining() int {
	return len(d.items) - d.pos
}

// Liked returns a copy of the liked bucket in vote order.
func (d *Deck) Liked() []models.Gif {
	return copyGifs(d.liked)
}

// Disliked returns a copy of the disliked bucket in vote order.
func (d *Deck) Disliked() []models.Gif {
	return copyGifs(d.disliked)
}

func copyGifs(in []models.Gif) []models.Gif {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Gif, len(in))
	copy(out, in)
	return out
}
