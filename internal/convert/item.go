// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"sort"

	"github.com/pdiddy/cms-export/pkg/types"
)

// Record is one CSV row keyed by header column name.
type Record map[string]string

// BuildItem maps rec into an Item using the built-in schema table.
func BuildItem(collection string, rec Record) (types.Item, error) {
	return DefaultSchemas().BuildItem(collection, rec)
}

// BuildItem maps rec into an Item: the common fields first, then the
// fields of the collection's schema in rule order. Collections without a
// schema get the common fields only. A rule whose transform fails returns a
// *RowError with Line left for the caller to fill in.
func (t SchemaTable) BuildItem(collection string, rec Record) (types.Item, error) {
	var item types.Item
	for _, f := range commonFields {
		item.Set(f.Output, rec[f.Source])
	}
	for _, rule := range t[collection] {
		raw, present := rec[rule.Source]
		v, err := rule.Transform.apply(raw, present)
		if err != nil {
			return types.Item{}, &RowError{
				Collection: collection,
				Column:     rule.Source,
				Value:      raw,
				Err:        err,
			}
		}
		item.Set(rule.Output, v)
	}
	return item, nil
}

// skipReason returns "archived" or "draft" when rec must be left out of
// the output, or "" to keep it.
func skipReason(rec Record) string {
	if ParseBoolean(rec["Archived"]) {
		return "archived"
	}
	if ParseBoolean(rec["Draft"]) {
		return "draft"
	}
	return ""
}

// orderOf returns the item's integer order, or DefaultOrder when it has none.
func orderOf(item types.Item) int {
	if v, ok := item.Get("order"); ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return DefaultOrder
}

// sortByOrder stable-sorts items ascending by order when at least one item
// carries an order field. Items without one sort as DefaultOrder.
func sortByOrder(items []types.Item) {
	hasOrder := false
	for _, it := range items {
		if it.Has("order") {
			hasOrder = true
			break
		}
	}
	if !hasOrder {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return orderOf(items[i]) < orderOf(items[j])
	})
}
