package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)

// CartLineView carries both the raw catalog price and the price after the
// best vigent discount, so clients can render "original vs discounted".
type CartLineView struct {
	UserID             uuid.UUID        `json:"user_id"`
	ProductID          uuid.UUID        `json:"product_id"`
	ProductName        string           `json:"product_name"`
	Quantity           int32            `json:"quantity"`
	UnitPrice          decimal.Decimal  `json:"unit_price"`
	DiscountID         *uuid.UUID       `json:"discount_id,omitempty"`
	DiscountPercent    *decimal.Decimal `json:"discount_percent,omitempty"`
	EffectiveUnitPrice decimal.Decimal  `json:"effective_unit_price"`
	LineTotal          decimal.Decimal  `json:"line_total"`
	EffectiveLineTotal decimal.Decimal  `json:"effective_line_total"`
	AddedAt            time.Time        `json:"added_at"`
}

type CartView struct {
	UserID             uuid.UUID       `json:"user_id"`
	Lines              []CartLineView  `json:"lines"`
	Total              decimal.Decimal `json:"total"`
	TotalWithDiscounts decimal.Decimal `json:"total_with_discounts"`
}

type OrderLineView struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int32           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountID      *uuid.UUID      `json:"discount_id,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	UserID          *uuid.UUID      `json:"user_id,omitempty"`
	State           string          `json:"state"`
	PaymentMethod   string          `json:"payment_method"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountApplied decimal.Decimal `json:"discount_applied"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	CreatedBy       string          `json:"created_by"`
	Lines           []OrderLineView `json:"lines"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderListItem struct {
	ID        uuid.UUID       `json:"id"`
	State     string          `json:"state"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

type InvoiceView struct {
	ID       uuid.UUID       `json:"id"`
	OrderID  uuid.UUID       `json:"order_id"`
	Kind     string          `json:"kind"`
	Total    decimal.Decimal `json:"total"`
	IssuedAt time.Time       `json:"issued_at"`
}

type ProductView struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Price              decimal.Decimal  `json:"price"`
	Stock              int32            `json:"stock"`
	Status             string           `json:"status"`
	DiscountPercent    *decimal.Decimal `json:"discount_percent,omitempty"`
	EffectivePrice     decimal.Decimal  `json:"effective_price"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

type DiscountView struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Percentage decimal.Decimal `json:"percentage"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Status     string          `json:"status"`
	Vigent     bool            `json:"vigent"`
}

type AuthorizedUserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
}
