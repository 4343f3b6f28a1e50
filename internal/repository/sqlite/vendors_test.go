package sqlite

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rms/internal/domain"
)

func TestVendorAppendGet(t *testing.T) {
	ctx := context.Background()
	vendors := newTestConn(t, true).Vendors()

	in := domain.Vendor{Name: "Metro", Address: "Kaarnatie 1, Oulu", Email: "metro@example.com", Phone: "0207888000"}
	id, ok, err := vendors.Append(ctx, in)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.VendorID(3), id)

	got, err := vendors.Get(ctx, id.String())
	require.NoError(t, err)
	require.NotNil(t, got)

	in.ID = id
	assert.Equal(t, in, *got)

	_, ok, err = vendors.Append(ctx, domain.Vendor{Name: "Metro"})
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := vendors.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, domain.VendorSummary{ID: id, Name: "Metro", Address: in.Address, Phone: in.Phone}, list[2])
}

func TestVendorKeys(t *testing.T) {
	ctx := context.Background()
	vendors := newTestConn(t, true).Vendors()

	got, err := vendors.Get(ctx, "v-9999")
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, key := range []string{"it-1", "v-", "v-1x", "1"} {
		_, err := vendors.Get(ctx, key)
		assert.True(t, errors.Is(err, domain.ErrInvalidIdentifier), key)

		_, err = vendors.Modify(ctx, key, domain.Vendor{Name: "x"})
		assert.True(t, errors.Is(err, domain.ErrInvalidIdentifier), key)

		_, err = vendors.Delete(ctx, key)
		assert.True(t, errors.Is(err, domain.ErrInvalidIdentifier), key)
	}
}

func TestVendorModify(t *testing.T) {
	ctx := context.Background()
	vendors := newTestConn(t, true).Vendors()

	ok, err := vendors.Modify(ctx, "v-1", domain.Vendor{Name: "Valio Oy", Email: "sales@valio.example.com"})
	require.NoError(t, err)
	require.True(t, ok)

	got, err := vendors.Get(ctx, "v-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Vendor{ID: domain.VendorID(1), Name: "Valio Oy", Email: "sales@valio.example.com"}, *got)

	ok, err = vendors.Modify(ctx, "v-1", domain.Vendor{Name: "Kespro"})
	require.NoError(t, err)
	assert.False(t, ok, "name belongs to v-2")

	ok, err = vendors.Modify(ctx, "v-9999", domain.Vendor{Name: "Ghost"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVendorDeleteCascades(t *testing.T) {
	ctx := context.Background()
	c := newTestConn(t, true)

	ok, err := c.Vendors().Delete(ctx, "v-9999")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, count(t, c, "vendor"))

	ok, err = c.Vendors().Delete(ctx, "v-1")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 1, count(t, c, "vendor"))
	assert.Equal(t, 1, count(t, c, "item"), "Milk and Butter belong to v-1")
	assert.Equal(t, 1, count(t, c, "stock"))
}
