package cart

import "brytashop-be/internal/item"

type CartItem struct {
	ID       uint
	Quantity int
	UserID   uint
	Item     item.Item
}

// Total returns the sum of price times quantity over the lines.
func Total(lines []*CartItem) int {
	total := 0
	for _, l := range lines {
		total += l.Item.Price * l.Quantity
	}
	return total
}

// IDs returns the cart line ids in order.
func IDs(lines []*CartItem) []uint {
	ids := make([]uint, len(lines))
	for i, l := range lines {
		ids[i] = l.ID
	}
	return ids
}
