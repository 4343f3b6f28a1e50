package sqlite

import (
	"context"

	"github.com/pkg/errors"

	"rms/internal/domain"
	"rms/internal/repository"
)

var _ repository.StaffingRepository = (*StaffingRepository)(nil)

// StaffingRepository links users to restaurants
type StaffingRepository struct {
	c *Connection
}

const staffingQuery = `
SELECT u.username, r.restaurantName, ru.position
FROM restaurantUser ru
JOIN user u ON u.userId = ru.userId
JOIN restaurant r ON r.restaurantId = ru.restaurantId`

// Assign staffs the user at the restaurant with the given position.
// It reports false if either of them does not exist or the user already
// holds a position there.
func (r *StaffingRepository) Assign(
	ctx context.Context, username, restaurantName string, position domain.Position,
) (bool, error) {
	if !position.Valid() {
		return false, errors.Errorf("can't assign user %q: unknown position %q", username, position)
	}

	userID, restaurantID, ok, err := r.resolve(ctx, "assign staffing", username, restaurantName)
	if err != nil || !ok {
		return false, err
	}

	assigned, err := r.c.exists(ctx, "assign staffing",
		`SELECT id FROM restaurantUser WHERE userId = ? AND restaurantId = ?`, userID, restaurantID)
	if err != nil || assigned {
		return false, err
	}

	_, _, err = r.c.exec(ctx, "assign staffing",
		`INSERT INTO restaurantUser (userId, restaurantId, position) VALUES (?, ?, ?)`,
		userID, restaurantID, string(position))
	if err != nil {
		return false, err
	}

	return true, nil
}

// Unassign removes the user from the restaurant's staff
func (r *StaffingRepository) Unassign(ctx context.Context, username, restaurantName string) (bool, error) {
	userID, restaurantID, ok, err := r.resolve(ctx, "unassign staffing", username, restaurantName)
	if err != nil || !ok {
		return false, err
	}

	affected, _, err := r.c.exec(ctx, "unassign staffing",
		`DELETE FROM restaurantUser WHERE userId = ? AND restaurantId = ?`, userID, restaurantID)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// List returns every staffing row in table order
func (r *StaffingRepository) List(ctx context.Context) ([]domain.Staffing, error) {
	var rows []staffingRow
	if err := r.c.list(ctx, "list staffing", &rows, staffingQuery+` ORDER BY ru.id`); err != nil {
		return nil, err
	}

	return staffingRecords(rows), nil
}

// ListByRestaurant returns the staff of the named restaurant.
// Names are resolved like RestaurantRepository.Get.
func (r *StaffingRepository) ListByRestaurant(ctx context.Context, restaurantName string) ([]domain.Staffing, error) {
	var rows []staffingRow
	if err := r.c.list(ctx, "list staffing", &rows,
		staffingQuery+` WHERE r.restaurantId = (
	SELECT restaurantId FROM restaurant WHERE restaurantName = ? ORDER BY restaurantId LIMIT 1
) ORDER BY ru.id`, restaurantName); err != nil {
		return nil, err
	}

	return staffingRecords(rows), nil
}

// resolve maps the natural keys to surrogate ids
func (r *StaffingRepository) resolve(
	ctx context.Context, op, username, restaurantName string,
) (userID, restaurantID int64, ok bool, err error) {
	found, err := r.c.get(ctx, op, &userID, `SELECT userId FROM user WHERE username = ?`, username)
	if err != nil || !found {
		return 0, 0, false, err
	}

	restaurantID, found, err = r.c.Restaurants().lookup(ctx, op, restaurantName)
	if err != nil || !found {
		return 0, 0, false, err
	}

	return userID, restaurantID, true, nil
}

func staffingRecords(rows []staffingRow) []domain.Staffing {
	staffing := make([]domain.Staffing, 0, len(rows))
	for i := range rows {
		staffing = append(staffing, rows[i].toRecord())
	}
	return staffing
}
