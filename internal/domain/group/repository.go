package group

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateGroup(ctx context.Context, group *Group) error
	GetGroup(ctx context.Context, groupID int64) (*Group, error)
	GetGroupByCode(ctx context.Context, code string) (*Group, error)
	ListGroups(ctx context.Context) ([]GroupSummary, error)
	AddMember(ctx context.Context, member *Membership) error
	GetMembership(ctx context.Context, userID, groupID int64) (*Membership, error)
	ListMembershipsByUser(ctx context.Context, userID int64) ([]MembershipWithGroup, error)
	CountSharedAdminGroups(ctx context.Context, adminUserID, memberUserID int64) (int64, error)
	IsCodeTaken(ctx context.Context, code string) (bool, error)
}
