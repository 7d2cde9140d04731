package models

// LineItem is a single user-entered row of a submission form. Quantity stays
// a string until validation so decimal input is compared without float
// rounding. For issue forms the Unit is derived from the matched inventory
// item, never typed by the user.
type LineItem struct {
	Key      int    `json:"key"`
	ItemName string `json:"item_name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// KeyArena hands out monotonically increasing line-item keys scoped to one
// form instance. Each form owns its own arena, so there is no process-wide
// counter shared between sessions.
type KeyArena struct {
	next int
}

// Next allocates the next key.
func (a *KeyArena) Next() int {
	a.next++
	return a.next
}
