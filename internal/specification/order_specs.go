package specification

import "storefront/internal/domain/model"

// Relations the order repository knows how to load eagerly.
const (
	IncludeOrderItems     = "Items"
	IncludeDeliveryMethod = "DeliveryMethod"
)

// OrdersForBuyer lists a buyer's orders, newest first, with items and
// delivery method loaded.
func OrdersForBuyer(buyerEmail string) *Query[model.Order] {
	return New[model.Order]().
		Where("buyer_email", buyerEmail).
		Include(IncludeOrderItems).
		Include(IncludeDeliveryMethod).
		OrderByDescending("created_at")
}

// OrderForBuyer addresses a single order, scoped to its buyer so one user
// cannot read another's order by id.
func OrderForBuyer(id int64, buyerEmail string) *Query[model.Order] {
	return New[model.Order]().
		Where("id", id).
		Where("buyer_email", buyerEmail).
		Include(IncludeOrderItems).
		Include(IncludeDeliveryMethod)
}
