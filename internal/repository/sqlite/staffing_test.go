package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rms/internal/domain"
)

func TestAssignRequiresBothSides(t *testing.T) {
	ctx := context.Background()
	c := newTestConn(t, false)

	_, ok, err := c.Users().Append(ctx, newUser("ali"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Staffing().Assign(ctx, "ali", "Sheraz", domain.PositionOwner)
	require.NoError(t, err)
	assert.False(t, ok, "Sheraz was never created")

	_, ok, err = c.Restaurants().Append(ctx, domain.Restaurant{Name: "Sheraz"})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Staffing().Assign(ctx, "nobody", "Sheraz", domain.PositionEmployee)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, count(t, c, "restaurantUser"))

	ok, err = c.Staffing().Assign(ctx, "ali", "Sheraz", domain.PositionOwner)
	require.NoError(t, err)
	assert.True(t, ok)

	staff, err := c.Staffing().ListByRestaurant(ctx, "Sheraz")
	require.NoError(t, err)
	assert.Equal(t, []domain.Staffing{{Username: "ali", RestaurantName: "Sheraz", Position: domain.PositionOwner}}, staff)
}

func TestAssignOnePositionPerRestaurant(t *testing.T) {
	ctx := context.Background()
	c := newTestConn(t, true)
	staffing := c.Staffing()

	ok, err := staffing.Assign(ctx, "dat", "Sheraz", domain.PositionOwner)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = staffing.Assign(ctx, "dat", "Kebab Oulu", domain.PositionEmployee)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, count(t, c, "restaurantUser"))
}

func TestAssignUnknownPosition(t *testing.T) {
	c := newTestConn(t, true)

	ok, err := c.Staffing().Assign(context.Background(), "dat", "Kebab Oulu", domain.Position("chef"))
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, count(t, c, "restaurantUser"))
}

func TestUnassign(t *testing.T) {
	ctx := context.Background()
	c := newTestConn(t, true)
	staffing := c.Staffing()

	ok, err := staffing.Unassign(ctx, "dat", "Kebab Oulu")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = staffing.Unassign(ctx, "dat", "Sheraz")
	require.NoError(t, err)
	assert.True(t, ok)

	staff, err := staffing.ListByRestaurant(ctx, "Sheraz")
	require.NoError(t, err)
	assert.Equal(t, []domain.Staffing{{Username: "ali", RestaurantName: "Sheraz", Position: domain.PositionOwner}}, staff)

	user, err := c.Users().Get(ctx, "dat")
	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestStaffingList(t *testing.T) {
	staff, err := newTestConn(t, true).Staffing().List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Staffing{
		{Username: "ali", RestaurantName: "Sheraz", Position: domain.PositionOwner},
		{Username: "dat", RestaurantName: "Sheraz", Position: domain.PositionEmployee},
		{Username: "ahmad", RestaurantName: "Kebab Oulu", Position: domain.PositionOwner},
	}, staff)
}
