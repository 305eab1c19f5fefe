package shift

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateShift(ctx context.Context, shift *Shift) error
	GetShift(ctx context.Context, shiftID int64) (*Shift, error)
	ListShifts(ctx context.Context, filter ListFilter) ([]Shift, error)
	ShiftExists(ctx context.Context, employeeID int64, date time.Time, start, end string) (bool, error)
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)

	CreateRequest(ctx context.Context, request *Request) error
	GetRequest(ctx context.Context, requestID int64) (*Request, error)
	ListRequests(ctx context.Context, groupIDs []int64) ([]Request, error)

	CreateResponse(ctx context.Context, response *Response) error
	GetResponse(ctx context.Context, responseID int64) (*Response, error)
	ListResponses(ctx context.Context, requestID int64) ([]Response, error)
}

// Authorizer answers group-role questions for the acting user.
type Authorizer interface {
	GroupExists(ctx context.Context, groupID int64) (bool, error)
	IsGroupAdmin(ctx context.Context, userID, groupID int64) (bool, error)
	IsMember(ctx context.Context, userID, groupID int64) (bool, error)
	MemberGroupIDs(ctx context.Context, userID int64) ([]int64, error)
}
