package response

import (
	"time"

	"minimarket-backoffice/internal/domain/product"
	"minimarket-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Price           decimal.Decimal  `json:"price"`
	Stock           int32            `json:"stock"`
	Status          string           `json:"status"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	EffectivePrice  decimal.Decimal  `json:"effective_price"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func FromProductView(view *queries.ProductView) (*ProductResponse, error) {
	var resp ProductResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromProductViews(views []*queries.ProductView) ([]*ProductResponse, error) {
	resps := make([]*ProductResponse, 0, len(views))
	for _, v := range views {
		resp, err := FromProductView(v)
		if err != nil {
			return nil, err
		}
		resps = append(resps, resp)
	}
	return resps, nil
}

func FromProductEntity(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:             p.ID(),
		Name:           p.Name(),
		Price:          p.Price(),
		Stock:          p.Stock(),
		Status:         string(p.Status()),
		EffectivePrice: p.Price(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}
