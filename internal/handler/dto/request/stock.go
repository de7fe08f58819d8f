package request

import (
	"minimarket-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
)

type SaleLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required"`
}

type ProcessSaleRequest struct {
	Lines []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
}

func (r ProcessSaleRequest) ToCommand() []commands.SaleLine {
	lines := make([]commands.SaleLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, commands.SaleLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return lines
}
