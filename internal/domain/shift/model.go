package shift

import "time"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Shift is one employee's assignment to a group for a date and same-day
// time range. (EmployeeID, Date, StartTime, EndTime) is unique.
type Shift struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID int64     `gorm:"not null;uniqueIndex:uq_shifts_employee_slot"`
	GroupID    int64     `gorm:"not null;index"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uq_shifts_employee_slot"`
	StartTime  string    `gorm:"size:5;not null;uniqueIndex:uq_shifts_employee_slot"`
	EndTime    string    `gorm:"size:5;not null;uniqueIndex:uq_shifts_employee_slot"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// DurationHours is end minus start on the same day. Overnight ranges are not
// supported and come out non-positive.
func (s Shift) DurationHours() float64 {
	minutes, err := ClockSpanMinutes(s.StartTime, s.EndTime)
	if err != nil {
		return 0
	}
	return float64(minutes) / 60
}

type Request struct {
	ID          int64     `gorm:"primaryKey"`
	GroupID     int64     `gorm:"not null;index"`
	Title       string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:255"`
	CreatedBy   int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Request) TableName() string {
	return "shift_requests"
}

type Response struct {
	ID             int64      `gorm:"primaryKey"`
	RequestID      int64      `gorm:"not null;index"`
	EmployeeID     int64      `gorm:"not null;index"`
	PreferredDate  *time.Time `gorm:"type:date"`
	PreferredStart *string    `gorm:"size:5"`
	PreferredEnd   *string    `gorm:"size:5"`
	Comment        string     `gorm:"size:255"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
}

func (Response) TableName() string {
	return "shift_responses"
}

// Complete reports whether the response carries a full date and time range.
func (r Response) Complete() bool {
	return r.PreferredDate != nil && r.PreferredStart != nil && r.PreferredEnd != nil
}

type ListFilter struct {
	GroupID *int64
	// GroupIDs, when non-nil, limits the result to these groups.
	GroupIDs   []int64
	EmployeeID *int64
	From       *time.Time
	To         *time.Time
}

type CreateShiftInput struct {
	ActorUserID int64
	EmployeeID  int64
	GroupID     int64
	Date        time.Time
	StartTime   string
	EndTime     string
}

type CreateRequestInput struct {
	ActorUserID int64
	GroupID     int64
	Title       string
	Description string
}

type SubmitResponseInput struct {
	ActorUserID    int64
	EmployeeID     int64
	RequestID      int64
	PreferredDate  *time.Time
	PreferredStart *string
	PreferredEnd   *string
	Comment        string
}
