package property

import (
	"context"

	"dreamstay/internal/app/dto"
	"dreamstay/internal/app/uow"
	"dreamstay/internal/domain/shared/apperr"
)

const approvePropertyKey = "property.approve"

// ApprovePropertyCommand flips a listing's approval flag. The transport
// layer restricts it to admins; the handler only cares that the listing
// exists.
type ApprovePropertyCommand struct {
	PropertyID int64
	Approved   bool
}

func (c ApprovePropertyCommand) Key() string { return approvePropertyKey }

func (c ApprovePropertyCommand) Validate() error {
	if c.PropertyID <= 0 {
		return apperr.Validation("property id is required")
	}
	return nil
}

type ApprovePropertyHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ApprovePropertyHandler) Handle(ctx context.Context, cmd ApprovePropertyCommand) (*dto.PropertyDTO, error) {
	ctx, scope, err := enterUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	result, err := h.handle(ctx, scope, cmd)
	if err := scope.finish(ctx, err); err != nil {
		return nil, err
	}
	return result, nil
}

func (h *ApprovePropertyHandler) handle(ctx context.Context, scope *unitScope, cmd ApprovePropertyCommand) (*dto.PropertyDTO, error) {
	prop, err := scope.unit.Properties().ByID(ctx, cmd.PropertyID)
	if err != nil {
		return nil, err
	}
	prop.IsApproved = cmd.Approved
	if err := scope.unit.Properties().Save(ctx, prop); err != nil {
		return nil, err
	}
	result := dto.MapProperty(prop)
	return &result, nil
}
