package wage

import "errors"

var (
	ErrDuplicateEffectiveFrom = errors.New("a wage rate with this effective_from already exists")
	ErrGroupNotFound          = errors.New("group not found")
	ErrInvalidRate            = errors.New("hourly_rate must not be negative")
	ErrInvalidRange           = errors.New("effective_to must not be before effective_from")
	ErrNotGroupAdmin          = errors.New("admin permission required for this group")
	ErrRateNotFound           = errors.New("wage rate not found")
)
