package request

import (
	"time"

	"minimarket-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateDiscountRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
	StartDate  string          `json:"start_date" binding:"required"`
	EndDate    string          `json:"end_date" binding:"required"`
}

func (r CreateDiscountRequest) ToCommand() (commands.CreateDiscountInput, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return commands.CreateDiscountInput{}, err
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return commands.CreateDiscountInput{}, err
	}
	return commands.CreateDiscountInput{
		ProductID:  r.ProductID,
		Percentage: r.Percentage,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

type UpdateDiscountRequest struct {
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
	StartDate  string          `json:"start_date" binding:"required"`
	EndDate    string          `json:"end_date" binding:"required"`
}

func (r UpdateDiscountRequest) ToCommand() (commands.UpdateDiscountInput, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return commands.UpdateDiscountInput{}, err
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return commands.UpdateDiscountInput{}, err
	}
	return commands.UpdateDiscountInput{
		Percentage: r.Percentage,
		StartDate:  start,
		EndDate:    end,
	}, nil
}
