package domain

import "time"

// CartStorageKey - фиксированный ключ корзины в хранилище
const CartStorageKey = "productsCart"

type CartItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total - сумма позиций корзины
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}
