package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"

	employeedomain "shiftboard-go/internal/domain/employee"
)

const employeeCodeAttempts = 5

type Service struct {
	repo     Repository
	hashCost int
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, hashCost: bcrypt.DefaultCost}
}

// NewServiceWithCost lets tests trade hash strength for speed.
func NewServiceWithCost(repo Repository, cost int) *Service {
	return &Service{repo: repo, hashCost: cost}
}

// Register creates the account and its linked employee in one transaction.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, *employeedomain.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, nil, ErrCredentialsMissing
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = RoleEmployee
	}
	if role != RoleEmployee && role != RoleAdmin {
		return nil, nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	var (
		createdUser     User
		createdEmployee employeedomain.Employee
	)
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.IsEmailTaken(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		createdUser = User{Email: email, PasswordHash: string(hash), Role: role}
		if err := tx.CreateUser(ctx, &createdUser); err != nil {
			return err
		}

		employee, err := provisionEmployee(ctx, tx, &createdUser, input.Name)
		if err != nil {
			return err
		}
		createdEmployee = *employee
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &createdUser, &createdEmployee, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) GetByEmployee(ctx context.Context, employeeID int64) (*User, error) {
	return s.repo.GetByEmployeeID(ctx, employeeID)
}

// EmployeeForUser resolves the caller's employee record, creating and linking
// one when the account has none yet.
func (s *Service) EmployeeForUser(ctx context.Context, userID int64) (*employeedomain.Employee, error) {
	var result employeedomain.Employee
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		account, err := tx.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if account.EmployeeID != nil {
			employee, err := tx.GetEmployee(ctx, *account.EmployeeID)
			if err == nil {
				result = *employee
				return nil
			}
			if !errors.Is(err, employeedomain.ErrEmployeeNotFound) {
				return err
			}
		}

		employee, err := provisionEmployee(ctx, tx, account, "")
		if err != nil {
			return err
		}
		result = *employee
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func provisionEmployee(ctx context.Context, tx Repository, account *User, name string) (*employeedomain.Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = displayName(account.Email)
	}

	code, err := uniqueEmployeeCode(ctx, tx, account.ID)
	if err != nil {
		return nil, err
	}

	email := account.Email
	employee := employeedomain.Employee{
		EmployeeCode: code,
		Name:         name,
		Email:        &email,
	}
	if err := tx.CreateEmployee(ctx, &employee); err != nil {
		return nil, err
	}
	if err := tx.LinkEmployee(ctx, account.ID, employee.ID); err != nil {
		return nil, err
	}
	account.EmployeeID = &employee.ID
	return &employee, nil
}

func uniqueEmployeeCode(ctx context.Context, tx Repository, userID int64) (string, error) {
	code := fmt.Sprintf("EMP-U%06d", userID)
	for i := 0; i < employeeCodeAttempts; i++ {
		taken, err := tx.IsEmployeeCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
		suffix, err := rand.Int(rand.Reader, big.NewInt(10000))
		if err != nil {
			return "", err
		}
		code = fmt.Sprintf("EMP-U%06d-%04d", userID, suffix.Int64())
	}
	return "", employeedomain.ErrCodeTaken
}

func displayName(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	return local
}
