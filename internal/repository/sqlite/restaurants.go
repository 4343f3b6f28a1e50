package sqlite

import (
	"context"

	"rms/internal/domain"
	"rms/internal/repository"
)

var _ repository.RestaurantRepository = (*RestaurantRepository)(nil)

// RestaurantRepository stores restaurants keyed by name.
// Names are unique by lookup only; the schema does not enforce it.
type RestaurantRepository struct {
	c *Connection
}

// Get returns the restaurant with the given name, including its first
// owner if one is staffed, or nil if there is no such restaurant.
func (r *RestaurantRepository) Get(ctx context.Context, name string) (*domain.Restaurant, error) {
	var row restaurantRow
	found, err := r.c.get(ctx, "get restaurant", &row, `
SELECT `+restaurantColumns+`,
	u.username AS ownerUsername, u.firstname AS ownerFirstname, u.lastname AS ownerLastname
FROM restaurant r
LEFT JOIN restaurantUser ru ON ru.id = (
	SELECT id FROM restaurantUser
	WHERE restaurantId = r.restaurantId AND position = 'owner'
	ORDER BY id LIMIT 1
)
LEFT JOIN user u ON u.userId = ru.userId
WHERE r.restaurantName = ?
ORDER BY r.restaurantId LIMIT 1`, name)
	if err != nil || !found {
		return nil, err
	}

	return row.toRecord(), nil
}

// List returns every restaurant in table order
func (r *RestaurantRepository) List(ctx context.Context) ([]domain.RestaurantSummary, error) {
	var rows []restaurantRow
	if err := r.c.list(ctx, "list restaurants", &rows,
		`SELECT `+restaurantColumns+` FROM restaurant r ORDER BY r.restaurantId`); err != nil {
		return nil, err
	}

	restaurants := make([]domain.RestaurantSummary, 0, len(rows))
	for i := range rows {
		restaurants = append(restaurants, rows[i].toSummary())
	}

	return restaurants, nil
}

// Append inserts restaurant and returns its name.
// It reports false if the name is already taken.
func (r *RestaurantRepository) Append(ctx context.Context, restaurant domain.Restaurant) (string, bool, error) {
	taken, err := r.nameTaken(ctx, "append restaurant", restaurant.Name)
	if err != nil || taken {
		return "", false, err
	}

	_, _, err = r.c.exec(ctx, "append restaurant",
		`INSERT INTO restaurant (restaurantName, address, phone) VALUES (?, ?, ?)`,
		restaurant.Name, stringToNull(restaurant.Address), stringToNull(restaurant.Phone))
	if err != nil {
		return "", false, err
	}

	return restaurant.Name, true, nil
}

// Modify updates the restaurant with the given name. restaurant.Name
// renames it unless it is empty. It reports false if there is no such
// restaurant or the new name belongs to another one.
func (r *RestaurantRepository) Modify(ctx context.Context, name string, restaurant domain.Restaurant) (bool, error) {
	id, found, err := r.lookup(ctx, "modify restaurant", name)
	if err != nil || !found {
		return false, err
	}

	newName := restaurant.Name
	if newName == "" {
		newName = name
	}
	if newName != name {
		taken, err := r.c.exists(ctx, "modify restaurant",
			`SELECT restaurantId FROM restaurant WHERE restaurantName = ? AND restaurantId <> ? LIMIT 1`, newName, id)
		if err != nil || taken {
			return false, err
		}
	}

	affected, _, err := r.c.exec(ctx, "modify restaurant",
		`UPDATE restaurant SET restaurantName = ?, address = ?, phone = ? WHERE restaurantId = ?`,
		newName, stringToNull(restaurant.Address), stringToNull(restaurant.Phone), id)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Delete removes the restaurant together with its staffing and stock rows
func (r *RestaurantRepository) Delete(ctx context.Context, name string) (bool, error) {
	id, found, err := r.lookup(ctx, "delete restaurant", name)
	if err != nil || !found {
		return false, err
	}

	affected, _, err := r.c.exec(ctx, "delete restaurant", `DELETE FROM restaurant WHERE restaurantId = ?`, id)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *RestaurantRepository) nameTaken(ctx context.Context, op, name string) (bool, error) {
	_, found, err := r.lookup(ctx, op, name)
	return found, err
}

// lookup resolves name to a surrogate id. Of several rows sharing the
// name, inserted by scripts, the lowest id wins.
func (r *RestaurantRepository) lookup(ctx context.Context, op, name string) (int64, bool, error) {
	var id int64
	found, err := r.c.get(ctx, op, &id,
		`SELECT restaurantId FROM restaurant WHERE restaurantName = ? ORDER BY restaurantId LIMIT 1`, name)
	return id, found, err
}
