package wage

import (
	"context"
	"time"

	employeedomain "shiftboard-go/internal/domain/employee"
	shiftdomain "shiftboard-go/internal/domain/shift"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListRates(ctx context.Context, groupID int64) ([]WageRate, error)
	CreateRate(ctx context.Context, rate *WageRate) error
	UpdateEffectiveTo(ctx context.Context, rateID int64, effectiveTo time.Time) error
}

type ShiftSource interface {
	ListShifts(ctx context.Context, filter shiftdomain.ListFilter) ([]shiftdomain.Shift, error)
}

type EmployeeSource interface {
	GetMany(ctx context.Context, ids []int64) (map[int64]employeedomain.Employee, error)
}

type Authorizer interface {
	GroupExists(ctx context.Context, groupID int64) (bool, error)
	IsGroupAdmin(ctx context.Context, userID, groupID int64) (bool, error)
}
