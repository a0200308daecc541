package inventory

import (
	"context"

	"github.com/jhoicas/erp-posting/internal/application/dto"
)

// ConsumeFromRequest adapta el request HTTP al caso de uso Consume(ctx, ConsumeInput).
func (uc *FIFOUseCase) ConsumeFromRequest(ctx context.Context, companyID, userID string, in dto.ConsumeRequest) (*dto.ConsumeResponse, error) {
	cs, err := uc.Consume(ctx, ConsumeInput{
		CompanyID: companyID,
		UserID:    userID,
		ItemID:    in.ItemID,
		Qty:       in.Qty,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ConsumeResponse{ItemID: in.ItemID, Layers: make([]dto.ConsumedLayer, 0, len(cs))}
	for _, c := range cs {
		out.Layers = append(out.Layers, dto.ConsumedLayer{LayerID: c.LayerID, Qty: c.Qty, UnitCostBase: c.UnitCostBase})
	}
	return out, nil
}
