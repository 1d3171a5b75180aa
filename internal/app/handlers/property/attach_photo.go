package property

import (
	"context"
	"strings"

	"dreamstay/internal/app/dto"
	"dreamstay/internal/app/uow"
	"dreamstay/internal/domain/shared/apperr"
)

const attachPhotoKey = "property.attach_photo"

// AttachPhotoCommand records an uploaded photo URL on a listing. The file
// itself is already in object storage by the time this command runs; the
// transport layer streams the upload and hands the resulting URL here.
type AttachPhotoCommand struct {
	HostID     int64
	PropertyID int64
	PhotoURL   string
}

func (c AttachPhotoCommand) Key() string { return attachPhotoKey }

func (c AttachPhotoCommand) Validate() error {
	if c.PropertyID <= 0 {
		return apperr.Validation("property id is required")
	}
	if strings.TrimSpace(c.PhotoURL) == "" {
		return apperr.Validation("photo url is required")
	}
	return nil
}

type AttachPhotoHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *AttachPhotoHandler) Handle(ctx context.Context, cmd AttachPhotoCommand) (*dto.PropertyDTO, error) {
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

func (h *AttachPhotoHandler) handle(ctx context.Context, scope *unitScope, cmd AttachPhotoCommand) (*dto.PropertyDTO, error) {
	prop, err := scope.unit.Properties().ByID(ctx, cmd.PropertyID)
	if err != nil {
		return nil, err
	}
	if !prop.OwnedBy(cmd.HostID) {
		return nil, apperr.Authorization("property does not belong to this host")
	}
	prop.PhotoURLs = append(prop.PhotoURLs, strings.TrimSpace(cmd.PhotoURL))
	if err := scope.unit.Properties().Save(ctx, prop); err != nil {
		return nil, err
	}
	result := dto.MapProperty(prop)
	return &result, nil
}
