package models

// InventoryItem is one row of the external inventory sheet. Name is the
// match key; lookups are exact and case-sensitive.
type InventoryItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Snapshot is a read-only view of the inventory taken at the start of a
// validation pass. It is never written back.
type Snapshot struct {
	items map[string]InventoryItem
	order []string
}

// NewSnapshot indexes the provided items by name. Later duplicates of the
// same name replace earlier ones, matching how the source sheet is read.
func NewSnapshot(items []InventoryItem) Snapshot {
	snap := Snapshot{items: make(map[string]InventoryItem, len(items))}
	for _, item := range items {
		if _, seen := snap.items[item.Name]; !seen {
			snap.order = append(snap.order, item.Name)
		}
		snap.items[item.Name] = item
	}
	return snap
}

// Lookup returns the item with the exact given name.
func (s Snapshot) Lookup(name string) (InventoryItem, bool) {
	item, ok := s.items[name]
	return item, ok
}

// Items returns the snapshot contents in first-seen order.
func (s Snapshot) Items() []InventoryItem {
	out := make([]InventoryItem, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.items[name])
	}
	return out
}

// Len reports the number of distinct item names in the snapshot.
func (s Snapshot) Len() int {
	return len(s.items)
}
