package group

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type Group struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Code        string    `gorm:"size:20;not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	CreatedBy   *int64    `gorm:"index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

type Membership struct {
	ID       int64     `gorm:"primaryKey"`
	UserID   int64     `gorm:"not null;uniqueIndex:uq_group_memberships_user_group"`
	GroupID  int64     `gorm:"not null;uniqueIndex:uq_group_memberships_user_group;index"`
	Role     string    `gorm:"size:20;not null;default:employee"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (Membership) TableName() string {
	return "group_memberships"
}

type GroupSummary struct {
	Group
	MemberCount int64
}

type MembershipWithGroup struct {
	Membership
	Group Group
}

type CreateInput struct {
	UserID      int64
	Name        string
	Description string
	Code        string
}
