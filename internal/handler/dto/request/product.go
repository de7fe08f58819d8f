package request

import (
	"minimarket-backoffice/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Stock int32           `json:"stock"`
}

func (r CreateProductRequest) ToCommand() commands.CreateProductInput {
	return commands.CreateProductInput{
		Name:  r.Name,
		Price: r.Price,
		Stock: r.Stock,
	}
}

type UpdateProductRequest struct {
	Name  *string          `json:"name,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
	Stock *int32           `json:"stock,omitempty"`
}

func (r UpdateProductRequest) ToCommand() commands.UpdateProductInput {
	return commands.UpdateProductInput{
		Name:  r.Name,
		Price: r.Price,
		Stock: r.Stock,
	}
}
