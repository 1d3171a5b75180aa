package property_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	propertyapp "dreamstay/internal/app/handlers/property"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/infra/storage/memory"
)

func newFactory() memory.Factory {
	properties := memory.NewPropertyRepository()
	return memory.Factory{
		PropertyRepo:  properties,
		InventoryRepo: memory.NewInventoryRepository(),
		BookingRepo:   memory.NewBookingRepository(properties),
	}
}

// TestCreateProperty_startsUnapproved verifies that a new listing needs
// moderation before it can surface anywhere.
func TestCreateProperty_startsUnapproved(t *testing.T) {
	factory := newFactory()
	h := &propertyapp.CreatePropertyHandler{UoWFactory: factory}

	created, err := h.Handle(context.Background(), propertyapp.CreatePropertyCommand{
		HostID:      7,
		Title:       "  Sea View Villa  ",
		Description: "Two bedrooms over the caldera",
		Location:    "Santorini",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Sea View Villa", created.Title)
	require.False(t, created.IsApproved)
}

func TestCreateProperty_blankTitleRejected(t *testing.T) {
	factory := newFactory()
	h := &propertyapp.CreatePropertyHandler{UoWFactory: factory}

	_, err := h.Handle(context.Background(), propertyapp.CreatePropertyCommand{
		HostID:   7,
		Title:    "   ",
		Location: "Santorini",
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

// TestCreateProperty_duplicateListing verifies that a host cannot list the
// same title and location twice, regardless of case.
func TestCreateProperty_duplicateListing(t *testing.T) {
	factory := newFactory()
	h := &propertyapp.CreatePropertyHandler{UoWFactory: factory}
	cmd := propertyapp.CreatePropertyCommand{
		HostID:   7,
		Title:    "Sea View Villa",
		Location: "Santorini",
	}

	_, err := h.Handle(context.Background(), cmd)
	require.NoError(t, err)

	cmd.Title = "SEA VIEW VILLA"
	_, err = h.Handle(context.Background(), cmd)
	require.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Another host may reuse the name.
	cmd.HostID = 8
	_, err = h.Handle(context.Background(), cmd)
	require.NoError(t, err)
}

// TestApproveProperty_togglesVisibility verifies approval and revocation.
func TestApproveProperty_togglesVisibility(t *testing.T) {
	factory := newFactory()
	create := &propertyapp.CreatePropertyHandler{UoWFactory: factory}
	created, err := create.Handle(context.Background(), propertyapp.CreatePropertyCommand{
		HostID:   7,
		Title:    "Sea View Villa",
		Location: "Santorini",
	})
	require.NoError(t, err)

	approve := &propertyapp.ApprovePropertyHandler{UoWFactory: factory}
	approved, err := approve.Handle(context.Background(), propertyapp.ApprovePropertyCommand{
		PropertyID: created.ID,
		Approved:   true,
	})
	require.NoError(t, err)
	require.True(t, approved.IsApproved)

	revoked, err := approve.Handle(context.Background(), propertyapp.ApprovePropertyCommand{
		PropertyID: created.ID,
		Approved:   false,
	})
	require.NoError(t, err)
	require.False(t, revoked.IsApproved)
}

func TestApproveProperty_unknownID(t *testing.T) {
	factory := newFactory()
	approve := &propertyapp.ApprovePropertyHandler{UoWFactory: factory}

	_, err := approve.Handle(context.Background(), propertyapp.ApprovePropertyCommand{
		PropertyID: 99,
		Approved:   true,
	})
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

// TestAttachPhoto_ownerOnly verifies photo URLs accumulate on the listing
// and that a foreign host is refused.
func TestAttachPhoto_ownerOnly(t *testing.T) {
	factory := newFactory()
	create := &propertyapp.CreatePropertyHandler{UoWFactory: factory}
	created, err := create.Handle(context.Background(), propertyapp.CreatePropertyCommand{
		HostID:   7,
		Title:    "Sea View Villa",
		Location: "Santorini",
	})
	require.NoError(t, err)

	attach := &propertyapp.AttachPhotoHandler{UoWFactory: factory}
	updated, err := attach.Handle(context.Background(), propertyapp.AttachPhotoCommand{
		HostID:     7,
		PropertyID: created.ID,
		PhotoURL:   "https://cdn.example.com/p/1/a.jpg",
	})
	require.NoError(t, err)
	updated, err = attach.Handle(context.Background(), propertyapp.AttachPhotoCommand{
		HostID:     7,
		PropertyID: created.ID,
		PhotoURL:   "https://cdn.example.com/p/1/b.jpg",
	})
	require.NoError(t, err)
	require.Len(t, updated.PhotoURLs, 2)

	_, err = attach.Handle(context.Background(), propertyapp.AttachPhotoCommand{
		HostID:     8,
		PropertyID: created.ID,
		PhotoURL:   "https://cdn.example.com/p/1/c.jpg",
	})
	require.True(t, apperr.IsKind(err, apperr.KindAuthorization))
}

// TestListHostProperties verifies the list is scoped to the asking host.
func TestListHostProperties(t *testing.T) {
	factory := newFactory()
	create := &propertyapp.CreatePropertyHandler{UoWFactory: factory}
	for _, tc := range []struct {
		host  int64
		title string
	}{
		{7, "Sea View Villa"},
		{7, "Harbour Loft"},
		{8, "Forest Cabin"},
	} {
		_, err := create.Handle(context.Background(), propertyapp.CreatePropertyCommand{
			HostID:   tc.host,
			Title:    tc.title,
			Location: "Santorini",
		})
		require.NoError(t, err)
	}

	list := &propertyapp.ListHostPropertiesHandler{UoWFactory: factory}
	res, err := list.Handle(context.Background(), propertyapp.ListHostPropertiesQuery{HostID: 7})
	require.NoError(t, err)
	require.Equal(t, int64(7), res.HostID)
	require.Len(t, res.Items, 2)
}
