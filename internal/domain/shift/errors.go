package shift

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrRequestNotFound    = errors.New("shift request not found")
	ErrResponseNotFound   = errors.New("shift response not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrResponseIncomplete = errors.New("response is missing preferred date or time")
	ErrShiftConflict      = errors.New("shift already exists for this employee and time")
	ErrInvalidTime        = errors.New("invalid time, expected HH:MM")
	ErrInvalidTimeRange   = errors.New("end time must be after start time")
	ErrTitleRequired      = errors.New("title is required")
	ErrNotGroupAdmin      = errors.New("admin permission required for this group")
	ErrNotGroupMember     = errors.New("not a member of this group")
)
