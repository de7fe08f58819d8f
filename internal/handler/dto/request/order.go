package request

import (
	"github.com/google/uuid"
)

type CheckoutQuery struct {
	User      uuid.UUID `form:"user" binding:"required"`
	CreatedBy string    `form:"createdBy"`
	Payment   string    `form:"payment"`
}

type OrderStateQuery struct {
	New string `form:"new" binding:"required"`
}

type OrderLineQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required"`
}
