package wage

import "time"

const MonthLayout = "2006-01"

// WageRate is an hourly rate for a group starting on EffectiveFrom.
// EffectiveTo is informational; resolution only looks at EffectiveFrom.
type WageRate struct {
	ID            int64      `gorm:"primaryKey"`
	GroupID       int64      `gorm:"not null;uniqueIndex:uq_wage_rates_group_from"`
	HourlyRate    float64    `gorm:"not null"`
	Note          string     `gorm:"size:255"`
	EffectiveFrom time.Time  `gorm:"type:date;not null;uniqueIndex:uq_wage_rates_group_from"`
	EffectiveTo   *time.Time `gorm:"type:date"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

type CreateRateInput struct {
	ActorUserID   int64
	GroupID       int64
	HourlyRate    float64
	Note          string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

// SalaryEstimate is a month of one employee's shifts priced at the rates in
// force on each shift's date. NoShifts distinguishes an empty month from a
// month whose shifts earned nothing.
type SalaryEstimate struct {
	EmployeeID  int64
	Month       string
	ShiftCount  int
	TotalHours  float64
	TotalSalary float64
	NoShifts    bool
}

type EmployeeSalary struct {
	EmployeeID   int64
	EmployeeCode string
	Name         string
	ShiftCount   int
	TotalHours   float64
	TotalSalary  float64
}

type GroupReport struct {
	GroupID int64
	Month   string
	Rows    []EmployeeSalary
}
