package response

import (
	"minimarket-backoffice/internal/domain/discount"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Percentage decimal.Decimal `json:"percentage"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Status     string          `json:"status"`
}

const dateLayout = "2006-01-02"

func FromDiscountEntity(d *discount.Discount) *DiscountResponse {
	return &DiscountResponse{
		ID:         d.ID(),
		ProductID:  d.ProductID(),
		Percentage: d.Percentage(),
		StartDate:  d.StartDate().Format(dateLayout),
		EndDate:    d.EndDate().Format(dateLayout),
		Status:     string(d.Status()),
	}
}
