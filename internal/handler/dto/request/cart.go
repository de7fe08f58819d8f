package request

import (
	"github.com/google/uuid"
)

// Cart mutations ride on query parameters.

type CartAddQuery struct {
	User    uuid.UUID `form:"user" binding:"required"`
	Product uuid.UUID `form:"product" binding:"required"`
	Qty     int32     `form:"qty" binding:"required"`
}

type CartRemoveQuery struct {
	User    uuid.UUID `form:"user" binding:"required"`
	Product uuid.UUID `form:"product" binding:"required"`
}
