package swap

import (
	"context"
	"time"

	shiftdomain "shiftboard-go/internal/domain/shift"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetShift(ctx context.Context, shiftID int64) (*shiftdomain.Shift, error)
	ShiftSlotTaken(ctx context.Context, employeeID int64, date time.Time, start, end string) (bool, error)
	ReassignShift(ctx context.Context, shiftID, employeeID int64) error
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)

	CreateSwap(ctx context.Context, swap *Swap) error
	GetSwap(ctx context.Context, swapID int64) (*Swap, error)
	// ListSwaps lists swaps whose shift belongs to one of groupIDs.
	ListSwaps(ctx context.Context, status string, groupIDs []int64) ([]Swap, error)
	HasPendingSwap(ctx context.Context, shiftID int64) (bool, error)
	// ResolveSwap moves a pending swap to a terminal status and reports
	// whether a row was updated.
	ResolveSwap(ctx context.Context, swapID int64, status string, newEmployeeID *int64, resolvedBy string, resolvedAt time.Time) (bool, error)

	AppendHistory(ctx context.Context, entry *History) error
	ListHistory(ctx context.Context, shiftID int64) ([]History, error)
}

type Authorizer interface {
	IsGroupAdmin(ctx context.Context, userID, groupID int64) (bool, error)
	IsMember(ctx context.Context, userID, groupID int64) (bool, error)
	MemberGroupIDs(ctx context.Context, userID int64) ([]int64, error)
}
