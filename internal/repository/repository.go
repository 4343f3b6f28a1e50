package repository

import (
	"context"
	"time"

	"rms/internal/domain"
)

// UserRepository accesses users by username
type UserRepository interface {
	Get(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.UserSummary, error)
	Append(ctx context.Context, user domain.User) (string, bool, error)
	Modify(ctx context.Context, username string, user domain.User) (string, bool, error)
	Delete(ctx context.Context, username string) (bool, error)
	CheckPassword(ctx context.Context, username, password string) (bool, error)
}

// RestaurantRepository accesses restaurants by name
type RestaurantRepository interface {
	Get(ctx context.Context, name string) (*domain.Restaurant, error)
	List(ctx context.Context) ([]domain.RestaurantSummary, error)
	Append(ctx context.Context, restaurant domain.Restaurant) (string, bool, error)
	Modify(ctx context.Context, name string, restaurant domain.Restaurant) (bool, error)
	Delete(ctx context.Context, name string) (bool, error)
}

// StaffingRepository links users to restaurants
type StaffingRepository interface {
	Assign(ctx context.Context, username, restaurantName string, position domain.Position) (bool, error)
	Unassign(ctx context.Context, username, restaurantName string) (bool, error)
	List(ctx context.Context) ([]domain.Staffing, error)
	ListByRestaurant(ctx context.Context, restaurantName string) ([]domain.Staffing, error)
}

// VendorRepository accesses vendors by "v-<n>" keys
type VendorRepository interface {
	Get(ctx context.Context, key string) (*domain.Vendor, error)
	List(ctx context.Context) ([]domain.VendorSummary, error)
	Append(ctx context.Context, vendor domain.Vendor) (domain.ID, bool, error)
	Modify(ctx context.Context, key string, vendor domain.Vendor) (bool, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// ItemRepository accesses items by "it-<n>" keys
type ItemRepository interface {
	Get(ctx context.Context, key string) (*domain.Item, error)
	List(ctx context.Context) ([]domain.ItemSummary, error)
	Append(ctx context.Context, item domain.Item) (domain.ID, bool, error)
	Modify(ctx context.Context, key string, item domain.Item) (bool, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// StockRepository accesses stock transactions by "st-<n>" keys.
// Append returns the creation timestamp stamped on the row.
type StockRepository interface {
	Get(ctx context.Context, key string) (*domain.Stock, error)
	List(ctx context.Context) ([]domain.StockSummary, error)
	Append(ctx context.Context, stock domain.Stock) (time.Time, bool, error)
	Modify(ctx context.Context, key string, stock domain.Stock) (bool, error)
	Delete(ctx context.Context, key string) (bool, error)
}
