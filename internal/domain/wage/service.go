package wage

import (
	"context"
	"sort"
	"strings"
	"time"

	shiftdomain "shiftboard-go/internal/domain/shift"
)

const defaultCacheTTL = 5 * time.Minute

type Service struct {
	repo      Repository
	shifts    ShiftSource
	employees EmployeeSource
	auth      Authorizer
	cache     RateCache
	cacheTTL  time.Duration
}

func NewService(repo Repository, shifts ShiftSource, employees EmployeeSource, auth Authorizer) *Service {
	return NewServiceWithCache(repo, shifts, employees, auth, nil, 0)
}

func NewServiceWithCache(repo Repository, shifts ShiftSource, employees EmployeeSource, auth Authorizer, cache RateCache, ttl time.Duration) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{
		repo:      repo,
		shifts:    shifts,
		employees: employees,
		auth:      auth,
		cache:     cache,
		cacheTTL:  ttl,
	}
}

// ResolveRate returns the rate in force for the group on date, or nil when
// the group has no rate starting on or before it.
func (s *Service) ResolveRate(ctx context.Context, groupID int64, date time.Time) (*WageRate, error) {
	rates, err := s.rates(ctx, groupID)
	if err != nil {
		return nil, err
	}
	rate := pickRate(rates, date)
	if rate == nil {
		return nil, nil
	}
	resolved := *rate
	return &resolved, nil
}

func (s *Service) ListRates(ctx context.Context, groupID int64) ([]WageRate, error) {
	rates, err := s.rates(ctx, groupID)
	if err != nil {
		return nil, err
	}
	result := make([]WageRate, len(rates))
	copy(result, rates)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EffectiveFrom.Before(result[j].EffectiveFrom)
	})
	return result, nil
}

func (s *Service) CreateRate(ctx context.Context, input CreateRateInput) (*WageRate, error) {
	if input.HourlyRate < 0 {
		return nil, ErrInvalidRate
	}
	from := shiftdomain.DateOnly(input.EffectiveFrom)
	var to *time.Time
	if input.EffectiveTo != nil {
		day := shiftdomain.DateOnly(*input.EffectiveTo)
		if day.Before(from) {
			return nil, ErrInvalidRange
		}
		to = &day
	}

	exists, err := s.auth.GroupExists(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGroupNotFound
	}
	admin, err := s.auth.IsGroupAdmin(ctx, input.ActorUserID, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrNotGroupAdmin
	}

	var result WageRate
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.ListRates(ctx, input.GroupID)
		if err != nil {
			return err
		}

		var open *WageRate
		for i := range existing {
			rate := &existing[i]
			rateFrom := shiftdomain.DateOnly(rate.EffectiveFrom)
			if rateFrom.Equal(from) {
				return ErrDuplicateEffectiveFrom
			}
			if rate.EffectiveTo == nil && rateFrom.Before(from) {
				if open == nil || rateFrom.After(shiftdomain.DateOnly(open.EffectiveFrom)) {
					open = rate
				}
			}
		}

		if open != nil {
			if err := tx.UpdateEffectiveTo(ctx, open.ID, from.AddDate(0, 0, -1)); err != nil {
				return err
			}
		}

		rate := WageRate{
			GroupID:       input.GroupID,
			HourlyRate:    input.HourlyRate,
			Note:          strings.TrimSpace(input.Note),
			EffectiveFrom: from,
			EffectiveTo:   to,
		}
		if err := tx.CreateRate(ctx, &rate); err != nil {
			return err
		}
		result = rate
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteRates(ctx, input.GroupID)
	return &result, nil
}

// EstimateSalary prices every shift the employee holds in month. A shift whose
// group has no applicable rate contributes its hours at zero pay.
func (s *Service) EstimateSalary(ctx context.Context, employeeID int64, month time.Time) (SalaryEstimate, error) {
	from, to := MonthRange(month)
	estimate := SalaryEstimate{
		EmployeeID: employeeID,
		Month:      from.Format(MonthLayout),
	}

	shifts, err := s.shifts.ListShifts(ctx, shiftdomain.ListFilter{
		EmployeeID: &employeeID,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		return SalaryEstimate{}, err
	}
	if len(shifts) == 0 {
		estimate.NoShifts = true
		return estimate, nil
	}

	hours, salary, err := s.price(ctx, shifts)
	if err != nil {
		return SalaryEstimate{}, err
	}

	estimate.ShiftCount = len(shifts)
	estimate.TotalHours = roundHours(hours)
	estimate.TotalSalary = roundSalary(salary)
	return estimate, nil
}

// GroupReport estimates the month for every employee with a shift in the group.
func (s *Service) GroupReport(ctx context.Context, actorUserID, groupID int64, month time.Time) (*GroupReport, error) {
	admin, err := s.auth.IsGroupAdmin(ctx, actorUserID, groupID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrNotGroupAdmin
	}

	from, to := MonthRange(month)
	shifts, err := s.shifts.ListShifts(ctx, shiftdomain.ListFilter{
		GroupID: &groupID,
		From:    &from,
		To:      &to,
	})
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[int64][]shiftdomain.Shift)
	ids := make([]int64, 0)
	for _, item := range shifts {
		if _, ok := byEmployee[item.EmployeeID]; !ok {
			ids = append(ids, item.EmployeeID)
		}
		byEmployee[item.EmployeeID] = append(byEmployee[item.EmployeeID], item)
	}

	employees, err := s.employees.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]EmployeeSalary, 0, len(ids))
	for _, id := range ids {
		hours, salary, err := s.price(ctx, byEmployee[id])
		if err != nil {
			return nil, err
		}
		row := EmployeeSalary{
			EmployeeID:  id,
			ShiftCount:  len(byEmployee[id]),
			TotalHours:  roundHours(hours),
			TotalSalary: roundSalary(salary),
		}
		if employee, ok := employees[id]; ok {
			row.EmployeeCode = employee.EmployeeCode
			row.Name = employee.Name
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})

	return &GroupReport{
		GroupID: groupID,
		Month:   from.Format(MonthLayout),
		Rows:    rows,
	}, nil
}

func (s *Service) price(ctx context.Context, shifts []shiftdomain.Shift) (float64, float64, error) {
	ratesByGroup := make(map[int64][]WageRate)

	var hours, salary float64
	for _, item := range shifts {
		rates, ok := ratesByGroup[item.GroupID]
		if !ok {
			loaded, err := s.rates(ctx, item.GroupID)
			if err != nil {
				return 0, 0, err
			}
			rates = loaded
			ratesByGroup[item.GroupID] = rates
		}

		duration := item.DurationHours()
		rate := 0.0
		if resolved := pickRate(rates, item.Date); resolved != nil {
			rate = resolved.HourlyRate
		}
		hours += duration
		salary += duration * rate
	}
	return hours, salary, nil
}

func (s *Service) rates(ctx context.Context, groupID int64) ([]WageRate, error) {
	cached, version, ok := s.cache.GetRates(ctx, groupID)
	if ok {
		return cached, nil
	}
	rates, err := s.repo.ListRates(ctx, groupID)
	if err != nil {
		return nil, err
	}
	s.cache.SetRates(ctx, groupID, version, rates, s.cacheTTL)
	return rates, nil
}
