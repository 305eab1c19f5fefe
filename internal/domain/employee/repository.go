package employee

import "context"

type Repository interface {
	Create(ctx context.Context, employee *Employee) error
	GetByID(ctx context.Context, id int64) (*Employee, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]Employee, error)
	List(ctx context.Context, scope Scope) ([]Employee, error)
	IsCodeTaken(ctx context.Context, code string) (bool, error)
}
