package user

import (
	"context"

	employeedomain "shiftboard-go/internal/domain/employee"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateUser(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmployeeID(ctx context.Context, employeeID int64) (*User, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	LinkEmployee(ctx context.Context, userID, employeeID int64) error

	CreateEmployee(ctx context.Context, employee *employeedomain.Employee) error
	GetEmployee(ctx context.Context, id int64) (*employeedomain.Employee, error)
	IsEmployeeCodeTaken(ctx context.Context, code string) (bool, error)
}
