package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	employeedomain "shiftboard-go/internal/domain/employee"
	domain "shiftboard-go/internal/domain/user"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "lower(email) = lower(?)", email)
}

func (r *PostgresRepository) GetByEmployeeID(ctx context.Context, employeeID int64) (*domain.User, error) {
	return r.first(ctx, "employee_id = ?", employeeID)
}

func (r *PostgresRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("lower(email) = lower(?)", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) LinkEmployee(ctx context.Context, userID, employeeID int64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("employee_id", employeeID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateEmployee(ctx context.Context, employee *employeedomain.Employee) error {
	err := r.db.WithContext(ctx).Create(employee).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return employeedomain.ErrCodeTaken
	}
	return err
}

func (r *PostgresRepository) GetEmployee(ctx context.Context, id int64) (*employeedomain.Employee, error) {
	var employee employeedomain.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeedomain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *PostgresRepository) IsEmployeeCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&employeedomain.Employee{}).
		Where("employee_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) first(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
