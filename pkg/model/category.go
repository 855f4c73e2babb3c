// pkg/model/category.go
package model

// Category restricts a column to a finite set of labels, optionally
// with a declared total order over those labels. Ordered categories
// compare by level index, never lexically.
type Category struct {
	Levels  []string // Distinct labels in declared order
	Ordered bool     // Whether the level order is meaningful
}

// NewCategory creates an unordered category over the given labels
func NewCategory(levels []string) *Category {
	return &Category{Levels: append([]string(nil), levels...)}
}

// NewOrderedCategory creates a category whose level order is meaningful
func NewOrderedCategory(levels []string) *Category {
	return &Category{Levels: append([]string(nil), levels...), Ordered: true}
}

// Index returns the position of a label within the level set,
// or -1 if the label is not a level.
func (c *Category) Index(label string) int {
	for i, level := range c.Levels {
		if level == label {
			return i
		}
	}
	return -1
}

// Contains reports whether the label is one of the category levels
func (c *Category) Contains(label string) bool {
	return c.Index(label) >= 0
}

// Clone returns a copy of the category
func (c *Category) Clone() *Category {
	return &Category{
		Levels:  append([]string(nil), c.Levels...),
		Ordered: c.Ordered,
	}
}

// MonthNames is the fixed calendar order used for period comparisons.
// "month <= endPeriod" checks use the index in this slice so that
// August sorts after April, which lexical order gets wrong.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthCategory returns the ordered category over the calendar months
func MonthCategory() *Category {
	return NewOrderedCategory(MonthNames)
}
