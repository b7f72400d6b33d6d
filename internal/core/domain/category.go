package domain

// CategoryKind classifies a category (and, by sign, a transaction) as money
// coming in or going out.
type CategoryKind string

const (
	KindIncome CategoryKind = "income"
	KindOutgo  CategoryKind = "outgo"
)

// Valid reports whether k is one of the two known kinds.
func (k CategoryKind) Valid() bool {
	return k == KindIncome || k == KindOutgo
}

// Category is a label users attach to transactions. Kind is fixed at
// creation; updates never change it. Name is unique per user,
// case-insensitively.
type Category struct {
	CategoryID string       `json:"categoryID"`
	UserID     string       `json:"userID"`
	Kind       CategoryKind `json:"kind"`
	Name       string       `json:"name"`
	Icon       string       `json:"icon"`
	Color      string       `json:"color"`
	Timestamps
}
