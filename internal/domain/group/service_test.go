package group

import (
	"context"
	"errors"
	"testing"
)

type fakeGroupRepo struct {
	groups      map[int64]Group
	memberships map[[2]int64]Membership
	nextID      int64
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:      make(map[int64]Group),
		memberships: make(map[[2]int64]Membership),
	}
}

func (r *fakeGroupRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeGroupRepo) CreateGroup(ctx context.Context, group *Group) error {
	r.nextID++
	group.ID = r.nextID
	r.groups[group.ID] = *group
	return nil
}

func (r *fakeGroupRepo) GetGroup(ctx context.Context, groupID int64) (*Group, error) {
	group, ok := r.groups[groupID]
	if !ok {
		return nil, ErrGroupNotFound
	}
	return &group, nil
}

func (r *fakeGroupRepo) GetGroupByCode(ctx context.Context, code string) (*Group, error) {
	for _, group := range r.groups {
		if group.Code == code {
			return &group, nil
		}
	}
	return nil, ErrGroupCodeNotFound
}

func (r *fakeGroupRepo) ListGroups(ctx context.Context) ([]GroupSummary, error) {
	result := make([]GroupSummary, 0, len(r.groups))
	for _, group := range r.groups {
		summary := GroupSummary{Group: group}
		for key := range r.memberships {
			if key[1] == group.ID {
				summary.MemberCount++
			}
		}
		result = append(result, summary)
	}
	return result, nil
}

func (r *fakeGroupRepo) AddMember(ctx context.Context, member *Membership) error {
	r.nextID++
	member.ID = r.nextID
	r.memberships[[2]int64{member.UserID, member.GroupID}] = *member
	return nil
}

func (r *fakeGroupRepo) GetMembership(ctx context.Context, userID, groupID int64) (*Membership, error) {
	member, ok := r.memberships[[2]int64{userID, groupID}]
	if !ok {
		return nil, ErrMembershipNotFound
	}
	return &member, nil
}

func (r *fakeGroupRepo) ListMembershipsByUser(ctx context.Context, userID int64) ([]MembershipWithGroup, error) {
	result := make([]MembershipWithGroup, 0)
	for id := int64(1); id <= r.nextID; id++ {
		member, ok := r.memberships[[2]int64{userID, id}]
		if !ok {
			continue
		}
		result = append(result, MembershipWithGroup{Membership: member, Group: r.groups[id]})
	}
	return result, nil
}

func (r *fakeGroupRepo) CountSharedAdminGroups(ctx context.Context, adminUserID, memberUserID int64) (int64, error) {
	var count int64
	for key, admin := range r.memberships {
		if key[0] != adminUserID || admin.Role != RoleAdmin {
			continue
		}
		if _, ok := r.memberships[[2]int64{memberUserID, key[1]}]; ok {
			count++
		}
	}
	return count, nil
}

func (r *fakeGroupRepo) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	_, err := r.GetGroupByCode(context.Background(), code)
	return err == nil, nil
}

func TestCreateGroupMakesCreatorAdmin(t *testing.T) {
	repo := newFakeGroupRepo()
	service := NewService(repo)
	ctx := context.Background()

	group, err := service.CreateGroup(ctx, CreateInput{UserID: 1, Name: "  Cafe  "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if group.Name != "Cafe" {
		t.Fatalf("expected trimmed name, got %q", group.Name)
	}
	if len(group.Code) != groupCodeLength {
		t.Fatalf("expected generated code of length %d, got %q", groupCodeLength, group.Code)
	}

	admin, err := service.IsGroupAdmin(ctx, 1, group.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !admin {
		t.Fatalf("expected creator to be admin")
	}
}

func TestCreateGroupCustomCode(t *testing.T) {
	service := NewService(newFakeGroupRepo())
	ctx := context.Background()

	group, err := service.CreateGroup(ctx, CreateInput{UserID: 1, Name: "Cafe", Code: "cafe1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if group.Code != "CAFE1" {
		t.Fatalf("expected upper-cased code, got %q", group.Code)
	}

	if _, err := service.CreateGroup(ctx, CreateInput{UserID: 2, Name: "Other", Code: "CAFE1"}); !errors.Is(err, ErrGroupCodeTaken) {
		t.Fatalf("expected ErrGroupCodeTaken, got %v", err)
	}
	if _, err := service.CreateGroup(ctx, CreateInput{UserID: 2, Name: " "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestJoinGroup(t *testing.T) {
	service := NewService(newFakeGroupRepo())
	ctx := context.Background()

	group, err := service.CreateGroup(ctx, CreateInput{UserID: 1, Name: "Cafe", Code: "CAFE1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	joined, err := service.JoinGroup(ctx, 2, " cafe1 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if joined.ID != group.ID {
		t.Fatalf("expected group %d, got %d", group.ID, joined.ID)
	}

	member, err := service.IsMember(ctx, 2, group.ID)
	if err != nil || !member {
		t.Fatalf("expected membership, got %v (%v)", member, err)
	}
	admin, err := service.IsGroupAdmin(ctx, 2, group.ID)
	if err != nil || admin {
		t.Fatalf("expected employee role, got admin=%v (%v)", admin, err)
	}

	if _, err := service.JoinGroup(ctx, 2, "CAFE1"); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
	if _, err := service.JoinGroup(ctx, 2, "NOPE"); !errors.Is(err, ErrGroupCodeNotFound) {
		t.Fatalf("expected ErrGroupCodeNotFound, got %v", err)
	}
	if _, err := service.JoinGroup(ctx, 2, ""); !errors.Is(err, ErrCodeRequired) {
		t.Fatalf("expected ErrCodeRequired, got %v", err)
	}
}

func TestAdminChecksAndSharedGroups(t *testing.T) {
	service := NewService(newFakeGroupRepo())
	ctx := context.Background()

	group, err := service.CreateGroup(ctx, CreateInput{UserID: 1, Name: "Cafe", Code: "CAFE1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := service.JoinGroup(ctx, 2, "CAFE1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if admin, err := service.IsGroupAdmin(ctx, 1, group.ID); err != nil || !admin {
		t.Fatalf("expected creator to be admin, got %v (%v)", admin, err)
	}
	if admin, err := service.IsGroupAdmin(ctx, 2, group.ID); err != nil || admin {
		t.Fatalf("expected joined user not to be admin, got %v (%v)", admin, err)
	}
	if exists, err := service.GroupExists(ctx, group.ID); err != nil || !exists {
		t.Fatalf("expected group to exist, got %v (%v)", exists, err)
	}
	if exists, err := service.GroupExists(ctx, 999); err != nil || exists {
		t.Fatalf("expected unknown group to be missing, got %v (%v)", exists, err)
	}

	shared, err := service.SharesAdminGroup(ctx, 1, 2)
	if err != nil || !shared {
		t.Fatalf("expected shared admin group, got %v (%v)", shared, err)
	}
	shared, err = service.SharesAdminGroup(ctx, 2, 1)
	if err != nil || shared {
		t.Fatalf("expected no shared admin group, got %v (%v)", shared, err)
	}
}

func TestMemberGroupIDs(t *testing.T) {
	service := NewService(newFakeGroupRepo())
	ctx := context.Background()

	cafe, err := service.CreateGroup(ctx, CreateInput{UserID: 1, Name: "Cafe", Code: "CAFE1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := service.CreateGroup(ctx, CreateInput{UserID: 2, Name: "Bar", Code: "BAR1"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ids, err := service.MemberGroupIDs(ctx, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ids) != 1 || ids[0] != cafe.ID {
		t.Fatalf("expected only group %d, got %v", cafe.ID, ids)
	}

	ids, err = service.MemberGroupIDs(ctx, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no groups, got %v", ids)
	}
}

func TestPrimaryMembership(t *testing.T) {
	service := NewService(newFakeGroupRepo())
	ctx := context.Background()

	if _, err := service.PrimaryMembership(ctx, 1); !errors.Is(err, ErrMembershipNotFound) {
		t.Fatalf("expected ErrMembershipNotFound, got %v", err)
	}

	first, err := service.CreateGroup(ctx, CreateInput{UserID: 1, Name: "First", Code: "FIRST"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := service.CreateGroup(ctx, CreateInput{UserID: 1, Name: "Second", Code: "SECOND"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	primary, err := service.PrimaryMembership(ctx, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if primary.Group.Code != first.Code || primary.Role != RoleAdmin {
		t.Fatalf("expected admin of FIRST, got %+v", primary)
	}
}

func TestGenerateCodeAlphabet(t *testing.T) {
	code, err := generateCode(32)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, r := range code {
		if r == 'O' || r == '0' || r == 'I' || r == '1' {
			t.Fatalf("expected no ambiguous characters, got %q", code)
		}
	}
}
