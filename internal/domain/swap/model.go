package swap

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Swap asks for a shift to change hands. A shift has at most one pending swap.
type Swap struct {
	ID            int64  `gorm:"primaryKey"`
	ShiftID       int64  `gorm:"not null;index;uniqueIndex:uq_shift_swaps_pending,where:status = 'pending'"`
	RequesterID   int64  `gorm:"not null;index"`
	Reason        string `gorm:"size:255"`
	Status        string `gorm:"size:20;not null;default:pending"`
	NewEmployeeID *int64
	ResolvedBy    *string `gorm:"size:150"`
	ResolvedAt    *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Swap) TableName() string {
	return "shift_swaps"
}

func (s Swap) Terminal() bool {
	return s.Status == StatusApproved || s.Status == StatusRejected
}

// History is an append-only record of a shift changing hands.
type History struct {
	ID            int64     `gorm:"primaryKey"`
	ShiftID       int64     `gorm:"not null;index"`
	OldEmployeeID int64     `gorm:"not null"`
	NewEmployeeID int64     `gorm:"not null"`
	ChangedBy     string    `gorm:"size:150"`
	ChangedAt     time.Time `gorm:"not null"`
}

func (History) TableName() string {
	return "shift_histories"
}

type CreateInput struct {
	RequesterID int64
	ShiftID     int64
	Reason      string
}

type SetStatusInput struct {
	ActorUserID   int64
	ActorName     string
	SwapID        int64
	Status        string
	NewEmployeeID *int64
}
