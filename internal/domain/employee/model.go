package employee

import "time"

type Employee struct {
	ID           int64     `gorm:"primaryKey"`
	EmployeeCode string    `gorm:"column:employee_code;size:20;not null;uniqueIndex"`
	Name         string    `gorm:"size:100;not null"`
	Email        *string   `gorm:"size:150"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

type CreateInput struct {
	Code  string
	Name  string
	Email string
}

// Scope limits an employee listing to the people a caller works with.
type Scope struct {
	// GroupIDs are the caller's groups. Employees whose user belongs to one of
	// them, or who hold a shift in one of them, are visible.
	GroupIDs []int64
	// IncludeUnlinked adds employees no user account points at.
	IncludeUnlinked bool
}
