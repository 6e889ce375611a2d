package checkin

import "slices"

// Layout reorders the product columns of a built dataset.
//
// The zero value keeps first-seen order. SortProducts orders product labels
// lexically; BaselineProduct, when set, is always moved to (or inserted at)
// the first product column, even when no position carried it.
type Layout struct {
	SortProducts    bool
	BaselineProduct string
}

// Apply rewrites ds.Products according to the layout.
func (l Layout) Apply(ds *Dataset) {
	if !l.SortProducts && l.BaselineProduct == "" {
		return
	}
	labels := ds.Products.Values()
	if l.SortProducts {
		slices.Sort(labels)
	}
	products := NewOrderedSet(labels...)
	if l.BaselineProduct != "" {
		products.Prepend(l.BaselineProduct)
	}
	ds.Products = products
}
