package group

import "errors"

var (
	ErrGroupNotFound        = errors.New("group not found")
	ErrGroupCodeNotFound    = errors.New("group code not found")
	ErrGroupCodeTaken       = errors.New("group code already exists")
	ErrAlreadyMember        = errors.New("already a member of this group")
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrNotGroupAdmin        = errors.New("admin permission required for this group")
	ErrNameRequired         = errors.New("group name is required")
	ErrCodeRequired         = errors.New("group code is required")
	ErrCodeGenerationFailed = errors.New("group code generation failed")
)
