package employee

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	employeedomain "shiftboard-go/internal/domain/employee"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, employee *employeedomain.Employee) error {
	err := r.db.WithContext(ctx).Create(employee).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return employeedomain.ErrCodeTaken
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*employeedomain.Employee, error) {
	var employee employeedomain.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeedomain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]employeedomain.Employee, error) {
	result := make(map[int64]employeedomain.Employee, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var employees []employeedomain.Employee
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&employees).Error; err != nil {
		return nil, err
	}
	for _, employee := range employees {
		result[employee.ID] = employee
	}
	return result, nil
}

func (r *PostgresRepository) List(ctx context.Context, scope employeedomain.Scope) ([]employeedomain.Employee, error) {
	var (
		conds []string
		args  []interface{}
	)
	if len(scope.GroupIDs) > 0 {
		conds = append(conds,
			`employees.id IN (SELECT users.employee_id FROM users
				JOIN group_memberships ON group_memberships.user_id = users.id
				WHERE group_memberships.group_id IN ? AND users.employee_id IS NOT NULL)`,
			`employees.id IN (SELECT shifts.employee_id FROM shifts WHERE shifts.group_id IN ?)`,
		)
		args = append(args, scope.GroupIDs, scope.GroupIDs)
	}
	if scope.IncludeUnlinked {
		conds = append(conds, `NOT EXISTS (SELECT 1 FROM users WHERE users.employee_id = employees.id)`)
	}

	var employees []employeedomain.Employee
	if len(conds) == 0 {
		return employees, nil
	}
	if err := r.db.WithContext(ctx).
		Where(strings.Join(conds, " OR "), args...).
		Order("employees.id asc").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *PostgresRepository) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&employeedomain.Employee{}).
		Where("employee_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
