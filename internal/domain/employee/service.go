package employee

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Employee, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return nil, ErrCodeRequired
	}

	taken, err := s.repo.IsCodeTaken(ctx, code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCodeTaken
	}

	employee := Employee{EmployeeCode: code, Name: name}
	if email := strings.TrimSpace(input.Email); email != "" {
		employee.Email = &email
	}
	if err := s.repo.Create(ctx, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetMany(ctx context.Context, ids []int64) (map[int64]Employee, error) {
	if len(ids) == 0 {
		return map[int64]Employee{}, nil
	}
	return s.repo.GetByIDs(ctx, ids)
}

func (s *Service) List(ctx context.Context, scope Scope) ([]Employee, error) {
	if len(scope.GroupIDs) == 0 && !scope.IncludeUnlinked {
		return []Employee{}, nil
	}
	return s.repo.List(ctx, scope)
}
