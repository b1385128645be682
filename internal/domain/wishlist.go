package domain

import (
	"encoding/json"
	"slices"
)

// Wishlist is the set of destination ids a user has saved.
// Order is kept for display but carries no meaning.
type Wishlist struct {
	ids []int64
}

// NewWishlist builds a wishlist from ids, dropping duplicates.
func NewWishlist(ids []int64) Wishlist {
	var w Wishlist
	for _, id := range ids {
		if !w.Contains(id) {
			w.ids = append(w.ids, id)
		}
	}
	return w
}

// Toggle adds id when absent and removes it when present.
// It returns the new membership state.
func (w *Wishlist) Toggle(id int64) bool {
	if i := slices.Index(w.ids, id); i >= 0 {
		w.ids = slices.Delete(w.ids, i, i+1)
		return false
	}
	w.ids = append(w.ids, id)
	return true
}

// Contains reports whether id is saved.
func (w *Wishlist) Contains(id int64) bool {
	return slices.Contains(w.ids, id)
}

// Len returns the number of saved destinations.
func (w *Wishlist) Len() int { return len(w.ids) }

// IDs returns a copy of the saved ids.
func (w *Wishlist) IDs() []int64 {
	return append([]int64{}, w.ids...)
}

// MarshalJSON encodes the wishlist as a plain array of ids.
func (w Wishlist) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.IDs())
}

// UnmarshalJSON decodes an array of ids, dropping duplicates.
func (w *Wishlist) UnmarshalJSON(b []byte) error {
	var ids []int64
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*w = NewWishlist(ids)
	return nil
}
