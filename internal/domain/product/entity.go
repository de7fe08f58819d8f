package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price cannot be negative")
	ErrNegativeStock = errors.New("product stock cannot be negative")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}

type Product struct {
	id        uuid.UUID
	name      string
	price     decimal.Decimal
	stock     int32
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewProduct validates and builds a product. A nil id means the caller did
// not supply one and a fresh identifier is generated.
func NewProduct(id *uuid.UUID, name string, price decimal.Decimal, stock int32) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	productID := uuid.New()
	if id != nil {
		productID = *id
	}

	return &Product{
		id:     productID,
		name:   name,
		price:  price,
		stock:  stock,
		status: StatusActive,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	name string,
	price decimal.Decimal,
	stock int32,
	status Status,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:        id,
		name:      name,
		price:     price,
		stock:     stock,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (p *Product) IsActive() bool {
	return p.status == StatusActive
}

// Deactivate flips the lifecycle status. Products are never physically
// deleted.
func (p *Product) Deactivate() {
	p.status = StatusInactive
}

func (p *Product) Activate() {
	p.status = StatusActive
}

func (p *Product) HasSufficientStock(qty int32) bool {
	return qty <= p.stock
}

func (p *Product) Rename(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	p.name = name
	return nil
}

func (p *Product) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	p.price = price
	return nil
}

func (p *Product) ChangeStock(stock int32) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.stock = stock
	return nil
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) Stock() int32           { return p.stock }
func (p *Product) Status() Status         { return p.status }
func (p *Product) CreatedAt() time.Time   { return p.createdAt }
func (p *Product) UpdatedAt() time.Time   { return p.updatedAt }
