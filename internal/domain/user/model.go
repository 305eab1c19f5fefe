package user

import "time"

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// User is the authentication identity. EmployeeID links it to the employee
// record that shifts, responses and swaps refer to.
type User struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"size:150;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:50;not null;default:employee"`
	EmployeeID   *int64    `gorm:"uniqueIndex"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}
