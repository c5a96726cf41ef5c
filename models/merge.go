package models

// MergeCartItems reconciles two cart item lists into one. existing is the
// authoritative side: its lines keep their order and their metadata
// (title, price, image). For every incoming line whose (productId, size) key
// already exists only the quantities are summed; unknown keys are appended in
// their original order. Neither input is modified.
func MergeCartItems(existing, incoming []CartItem) []CartItem {
	merged := make([]CartItem, len(existing))
	copy(merged, existing)

	index := make(map[CartKey]int, len(merged))
	for i, it := range merged {
		index[it.Key()] = i
	}

	for _, in := range incoming {
		if at, ok := index[in.Key()]; ok {
			merged[at].Quantity += in.Quantity
			continue
		}
		index[in.Key()] = len(merged)
		merged = append(merged, in)
	}
	return merged
}
