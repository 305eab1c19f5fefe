package swap

import "errors"

var (
	ErrSwapNotFound        = errors.New("shift swap not found")
	ErrShiftNotFound       = errors.New("shift not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrNotShiftOwner       = errors.New("only the current shift holder can request a swap")
	ErrNotGroupAdmin       = errors.New("admin permission required for this group")
	ErrNotGroupMember      = errors.New("not a member of this group")
	ErrInvalidStatus       = errors.New("status must be approved or rejected")
	ErrNewEmployeeRequired = errors.New("new_employee_id is required for approval")
	ErrSameEmployee        = errors.New("new employee already holds this shift")
	ErrSwapResolved        = errors.New("shift swap already resolved")
	ErrSwapPending         = errors.New("a swap for this shift is already pending")
	ErrShiftConflict       = errors.New("new employee already has an identical shift")
)
