package property

import (
	"context"

	"dreamstay/internal/app/dto"
	"dreamstay/internal/app/uow"
)

const listHostPropertiesKey = "property.list_by_host"

type ListHostPropertiesQuery struct {
	HostID int64
}

func (q ListHostPropertiesQuery) Key() string { return listHostPropertiesKey }

type ListHostPropertiesHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListHostPropertiesHandler) Handle(ctx context.Context, q ListHostPropertiesQuery) (*dto.PropertyCollection, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return nil, err
		}
		ctx = uow.BindContext(ctx, unit)
		managed = true
	}
	if managed {
		defer func() { _ = unit.Rollback(ctx) }()
	}

	props, err := unit.Properties().ListByHost(ctx, q.HostID)
	if err != nil {
		return nil, err
	}
	result := dto.MapProperties(q.HostID, props)
	return &result, nil
}
