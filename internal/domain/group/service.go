package group

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	groupCodeLength   = 8
	groupCodeAttempts = 10
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateGroup creates the group and makes the creator its admin.
func (s *Service) CreateGroup(ctx context.Context, input CreateInput) (*Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	customCode := strings.ToUpper(strings.TrimSpace(input.Code))

	var result Group
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		code := customCode
		if code != "" {
			taken, err := tx.IsCodeTaken(ctx, code)
			if err != nil {
				return err
			}
			if taken {
				return ErrGroupCodeTaken
			}
		} else {
			generated, err := generateUniqueCode(ctx, tx)
			if err != nil {
				return err
			}
			code = generated
		}

		creator := input.UserID
		group := Group{
			Name:        name,
			Code:        code,
			Description: strings.TrimSpace(input.Description),
			CreatedBy:   &creator,
		}
		if err := tx.CreateGroup(ctx, &group); err != nil {
			return err
		}

		member := Membership{
			UserID:  input.UserID,
			GroupID: group.ID,
			Role:    RoleAdmin,
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}

		result = group
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) JoinGroup(ctx context.Context, userID int64, code string) (*Group, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrCodeRequired
	}

	var result Group
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		group, err := tx.GetGroupByCode(ctx, code)
		if err != nil {
			return err
		}

		_, err = tx.GetMembership(ctx, userID, group.ID)
		switch {
		case err == nil:
			return ErrAlreadyMember
		case !errors.Is(err, ErrMembershipNotFound):
			return err
		}

		member := Membership{
			UserID:  userID,
			GroupID: group.ID,
			Role:    RoleEmployee,
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}

		result = *group
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) GetGroup(ctx context.Context, groupID int64) (*Group, error) {
	return s.repo.GetGroup(ctx, groupID)
}

func (s *Service) ListGroups(ctx context.Context) ([]GroupSummary, error) {
	return s.repo.ListGroups(ctx)
}

func (s *Service) MyGroups(ctx context.Context, userID int64) ([]MembershipWithGroup, error) {
	return s.repo.ListMembershipsByUser(ctx, userID)
}

// PrimaryMembership is the earliest membership, used to seed token claims.
func (s *Service) PrimaryMembership(ctx context.Context, userID int64) (*MembershipWithGroup, error) {
	memberships, err := s.repo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, ErrMembershipNotFound
	}
	return &memberships[0], nil
}

func (s *Service) IsGroupAdmin(ctx context.Context, userID, groupID int64) (bool, error) {
	member, err := s.repo.GetMembership(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return false, nil
		}
		return false, err
	}
	return member.Role == RoleAdmin, nil
}

func (s *Service) IsMember(ctx context.Context, userID, groupID int64) (bool, error) {
	_, err := s.repo.GetMembership(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) GroupExists(ctx context.Context, groupID int64) (bool, error) {
	if _, err := s.repo.GetGroup(ctx, groupID); err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MemberGroupIDs lists the groups userID belongs to. Listings are limited to
// these groups.
func (s *Service) MemberGroupIDs(ctx context.Context, userID int64) ([]int64, error) {
	memberships, err := s.repo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(memberships))
	for _, membership := range memberships {
		ids = append(ids, membership.GroupID)
	}
	return ids, nil
}

// SharesAdminGroup reports whether adminUserID administers a group that
// memberUserID belongs to.
func (s *Service) SharesAdminGroup(ctx context.Context, adminUserID, memberUserID int64) (bool, error) {
	count, err := s.repo.CountSharedAdminGroups(ctx, adminUserID, memberUserID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func generateUniqueCode(ctx context.Context, repo Repository) (string, error) {
	for i := 0; i < groupCodeAttempts; i++ {
		code, err := generateCode(groupCodeLength)
		if err != nil {
			return "", err
		}
		taken, err := repo.IsCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGenerationFailed
}

func generateCode(length int) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	max := big.NewInt(int64(len(alphabet)))

	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}

	return builder.String(), nil
}
