package group

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	groupdomain "shiftboard-go/internal/domain/group"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(groupdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateGroup(ctx context.Context, group *groupdomain.Group) error {
	err := r.db.WithContext(ctx).Create(group).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return groupdomain.ErrGroupCodeTaken
	}
	return err
}

func (r *PostgresRepository) GetGroup(ctx context.Context, groupID int64) (*groupdomain.Group, error) {
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).Where("id = ?", groupID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) GetGroupByCode(ctx context.Context, code string) (*groupdomain.Group, error) {
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupCodeNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) ListGroups(ctx context.Context) ([]groupdomain.GroupSummary, error) {
	var groups []groupdomain.Group
	if err := r.db.WithContext(ctx).Order("id asc").Find(&groups).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		GroupID int64 `gorm:"column:group_id"`
		Total   int64 `gorm:"column:total"`
	}
	var counts []countRow
	if err := r.db.WithContext(ctx).
		Model(&groupdomain.Membership{}).
		Select("group_id, count(*) as total").
		Group("group_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byGroup := make(map[int64]int64, len(counts))
	for _, row := range counts {
		byGroup[row.GroupID] = row.Total
	}

	summaries := make([]groupdomain.GroupSummary, 0, len(groups))
	for _, group := range groups {
		summaries = append(summaries, groupdomain.GroupSummary{
			Group:       group,
			MemberCount: byGroup[group.ID],
		})
	}
	return summaries, nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, member *groupdomain.Membership) error {
	err := r.db.WithContext(ctx).Create(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return groupdomain.ErrAlreadyMember
	}
	return err
}

func (r *PostgresRepository) GetMembership(ctx context.Context, userID, groupID int64) (*groupdomain.Membership, error) {
	var member groupdomain.Membership
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrMembershipNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMembershipsByUser(ctx context.Context, userID int64) ([]groupdomain.MembershipWithGroup, error) {
	type membershipRow struct {
		ID          int64     `gorm:"column:id"`
		UserID      int64     `gorm:"column:user_id"`
		GroupID     int64     `gorm:"column:group_id"`
		Role        string    `gorm:"column:role"`
		JoinedAt    time.Time `gorm:"column:joined_at"`
		Name        string    `gorm:"column:name"`
		Code        string    `gorm:"column:code"`
		Description string    `gorm:"column:description"`
		CreatedBy   *int64    `gorm:"column:created_by"`
		CreatedAt   time.Time `gorm:"column:created_at"`
	}

	var rows []membershipRow
	if err := r.db.WithContext(ctx).
		Table("group_memberships").
		Select(`group_memberships.id, group_memberships.user_id, group_memberships.group_id,
			group_memberships.role, group_memberships.joined_at,
			g.name, g.code, g.description, g.created_by, g.created_at`).
		Joins(`join "groups" g on g.id = group_memberships.group_id`).
		Where("group_memberships.user_id = ?", userID).
		Order("group_memberships.joined_at asc, group_memberships.id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	memberships := make([]groupdomain.MembershipWithGroup, 0, len(rows))
	for _, row := range rows {
		memberships = append(memberships, groupdomain.MembershipWithGroup{
			Membership: groupdomain.Membership{
				ID:       row.ID,
				UserID:   row.UserID,
				GroupID:  row.GroupID,
				Role:     row.Role,
				JoinedAt: row.JoinedAt,
			},
			Group: groupdomain.Group{
				ID:          row.GroupID,
				Name:        row.Name,
				Code:        row.Code,
				Description: row.Description,
				CreatedBy:   row.CreatedBy,
				CreatedAt:   row.CreatedAt,
			},
		})
	}
	return memberships, nil
}

func (r *PostgresRepository) CountSharedAdminGroups(ctx context.Context, adminUserID, memberUserID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("group_memberships AS admin").
		Joins("join group_memberships AS member on member.group_id = admin.group_id").
		Where("admin.user_id = ? AND admin.role = ? AND member.user_id = ?", adminUserID, groupdomain.RoleAdmin, memberUserID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&groupdomain.Group{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
