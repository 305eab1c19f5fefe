package wage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	employeedomain "shiftboard-go/internal/domain/employee"
	shiftdomain "shiftboard-go/internal/domain/shift"
)

type fakeWageRepo struct {
	rates  []WageRate
	nextID int64
	lists  int
	// afterList runs once, after the next ListRates has taken its snapshot.
	afterList func()
}

func (r *fakeWageRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	snapshot := append([]WageRate(nil), r.rates...)
	if err := fn(r); err != nil {
		r.rates = snapshot
		return err
	}
	return nil
}

func (r *fakeWageRepo) ListRates(ctx context.Context, groupID int64) ([]WageRate, error) {
	r.lists++
	result := make([]WageRate, 0)
	for _, rate := range r.rates {
		if rate.GroupID == groupID {
			result = append(result, rate)
		}
	}
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return result, nil
}

func (r *fakeWageRepo) CreateRate(ctx context.Context, rate *WageRate) error {
	for _, existing := range r.rates {
		if existing.GroupID == rate.GroupID && existing.EffectiveFrom.Equal(rate.EffectiveFrom) {
			return ErrDuplicateEffectiveFrom
		}
	}
	r.nextID++
	rate.ID = r.nextID
	rate.CreatedAt = time.Now().UTC()
	r.rates = append(r.rates, *rate)
	return nil
}

func (r *fakeWageRepo) UpdateEffectiveTo(ctx context.Context, rateID int64, effectiveTo time.Time) error {
	for i := range r.rates {
		if r.rates[i].ID == rateID {
			to := effectiveTo
			r.rates[i].EffectiveTo = &to
			return nil
		}
	}
	return ErrRateNotFound
}

func (r *fakeWageRepo) add(groupID int64, rate float64, from string) {
	r.nextID++
	r.rates = append(r.rates, WageRate{
		ID:            r.nextID,
		GroupID:       groupID,
		HourlyRate:    rate,
		EffectiveFrom: mustDate(from),
		CreatedAt:     time.Now().UTC(),
	})
}

type fakeShiftSource struct {
	shifts []shiftdomain.Shift
}

func (s *fakeShiftSource) ListShifts(ctx context.Context, filter shiftdomain.ListFilter) ([]shiftdomain.Shift, error) {
	result := make([]shiftdomain.Shift, 0)
	for _, item := range s.shifts {
		if filter.EmployeeID != nil && item.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.GroupID != nil && item.GroupID != *filter.GroupID {
			continue
		}
		if filter.From != nil && item.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && item.Date.After(*filter.To) {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *fakeShiftSource) add(employeeID, groupID int64, date, start, end string) {
	s.shifts = append(s.shifts, shiftdomain.Shift{
		ID:         int64(len(s.shifts) + 1),
		EmployeeID: employeeID,
		GroupID:    groupID,
		Date:       mustDate(date),
		StartTime:  start,
		EndTime:    end,
	})
}

type fakeEmployees map[int64]employeedomain.Employee

func (f fakeEmployees) GetMany(ctx context.Context, ids []int64) (map[int64]employeedomain.Employee, error) {
	result := make(map[int64]employeedomain.Employee)
	for _, id := range ids {
		if employee, ok := f[id]; ok {
			result[id] = employee
		}
	}
	return result, nil
}

type fakeAuth struct {
	admins map[int64]bool
}

func (a fakeAuth) IsGroupAdmin(ctx context.Context, userID, groupID int64) (bool, error) {
	return a.admins[userID], nil
}

func (a fakeAuth) GroupExists(ctx context.Context, groupID int64) (bool, error) {
	return groupID != missingGroupID, nil
}

const missingGroupID = 404

type countingCache struct {
	mu       sync.Mutex
	items    map[int64][]WageRate
	versions map[int64]uint64
	deletes  int
}

func newCountingCache() *countingCache {
	return &countingCache{items: make(map[int64][]WageRate), versions: make(map[int64]uint64)}
}

func (c *countingCache) GetRates(ctx context.Context, groupID int64) ([]WageRate, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rates, ok := c.items[groupID]
	return rates, c.versions[groupID], ok
}

func (c *countingCache) SetRates(ctx context.Context, groupID int64, version uint64, rates []WageRate, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[groupID] == version {
		c.items[groupID] = rates
	}
}

func (c *countingCache) DeleteRates(ctx context.Context, groupID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	c.versions[groupID]++
	delete(c.items, groupID)
}

func mustDate(value string) time.Time {
	parsed, err := time.Parse(shiftdomain.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func newTestService(repo *fakeWageRepo, shifts *fakeShiftSource) *Service {
	return NewService(repo, shifts, fakeEmployees{}, fakeAuth{admins: map[int64]bool{1: true}})
}

func TestResolveRatePicksLatestEffectiveFrom(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1000, "2025-01-01")
	repo.add(1, 1200, "2025-06-01")
	repo.add(2, 5000, "2024-01-01")
	service := newTestService(repo, &fakeShiftSource{})
	ctx := context.Background()

	cases := []struct {
		date string
		want float64
	}{
		{"2025-03-15", 1000},
		{"2025-05-31", 1000},
		{"2025-06-01", 1200},
		{"2025-07-01", 1200},
	}
	for _, tc := range cases {
		rate, err := service.ResolveRate(ctx, 1, mustDate(tc.date))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if rate == nil || rate.HourlyRate != tc.want {
			t.Fatalf("expected rate %v on %s, got %+v", tc.want, tc.date, rate)
		}
	}
}

func TestResolveRateReturnsNilBeforeFirstRate(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1000, "2025-01-01")
	service := newTestService(repo, &fakeShiftSource{})

	rate, err := service.ResolveRate(context.Background(), 1, mustDate("2024-12-31"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rate != nil {
		t.Fatalf("expected no rate, got %+v", rate)
	}
}

func TestResolveRateIgnoresEffectiveTo(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1000, "2025-01-01")
	closed := mustDate("2025-01-31")
	repo.rates[0].EffectiveTo = &closed
	service := newTestService(repo, &fakeShiftSource{})

	rate, err := service.ResolveRate(context.Background(), 1, mustDate("2025-03-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rate == nil || rate.HourlyRate != 1000 {
		t.Fatalf("expected closed rate to still apply, got %+v", rate)
	}
}

func TestPickRateBreaksTiesByNewestRow(t *testing.T) {
	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	rates := []WageRate{
		{ID: 1, HourlyRate: 900, EffectiveFrom: mustDate("2025-01-01"), CreatedAt: created},
		{ID: 2, HourlyRate: 950, EffectiveFrom: mustDate("2025-01-01"), CreatedAt: created.Add(time.Hour)},
		{ID: 3, HourlyRate: 990, EffectiveFrom: mustDate("2025-01-01"), CreatedAt: created.Add(time.Hour)},
	}

	got := pickRate(rates, mustDate("2025-02-01"))
	if got == nil || got.ID != 3 {
		t.Fatalf("expected rate 3, got %+v", got)
	}
}

func TestMonthRange(t *testing.T) {
	cases := []struct {
		month, from, to string
	}{
		{"2024-02-10", "2024-02-01", "2024-02-29"},
		{"2025-02-01", "2025-02-01", "2025-02-28"},
		{"2025-12-31", "2025-12-01", "2025-12-31"},
		{"2025-04-15", "2025-04-01", "2025-04-30"},
	}
	for _, tc := range cases {
		from, to := MonthRange(mustDate(tc.month))
		if !from.Equal(mustDate(tc.from)) || !to.Equal(mustDate(tc.to)) {
			t.Fatalf("expected %s..%s for %s, got %s..%s", tc.from, tc.to, tc.month, from.Format(shiftdomain.DateLayout), to.Format(shiftdomain.DateLayout))
		}
	}
}

func TestEstimateSalarySumsShiftsInMonth(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1000, "2025-01-01")
	repo.add(1, 1200, "2025-06-01")

	shifts := &fakeShiftSource{}
	shifts.add(7, 1, "2025-03-15", "09:00", "11:00")
	shifts.add(7, 1, "2025-07-01", "09:00", "12:00")
	shifts.add(7, 1, "2025-07-31", "13:00", "14:30")
	shifts.add(7, 1, "2025-08-01", "09:00", "17:00")
	shifts.add(8, 1, "2025-07-02", "09:00", "17:00")
	service := newTestService(repo, shifts)

	estimate, err := service.EstimateSalary(context.Background(), 7, mustDate("2025-07-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if estimate.NoShifts {
		t.Fatalf("expected shifts to be found")
	}
	if estimate.ShiftCount != 2 {
		t.Fatalf("expected 2 shifts, got %d", estimate.ShiftCount)
	}
	if estimate.TotalHours != 4.5 {
		t.Fatalf("expected 4.5 hours, got %v", estimate.TotalHours)
	}
	if estimate.TotalSalary != 5400 {
		t.Fatalf("expected salary 5400, got %v", estimate.TotalSalary)
	}
	if estimate.Month != "2025-07" {
		t.Fatalf("expected month 2025-07, got %s", estimate.Month)
	}
}

func TestEstimateSalaryAcrossRateChange(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1000, "2025-01-01")
	repo.add(1, 1200, "2025-03-16")

	shifts := &fakeShiftSource{}
	shifts.add(7, 1, "2025-03-15", "09:00", "11:00")
	shifts.add(7, 1, "2025-03-16", "09:00", "11:00")
	service := newTestService(repo, shifts)

	estimate, err := service.EstimateSalary(context.Background(), 7, mustDate("2025-03-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if estimate.TotalSalary != 4400 {
		t.Fatalf("expected salary 4400, got %v", estimate.TotalSalary)
	}
}

func TestEstimateSalaryWithoutRateEarnsZero(t *testing.T) {
	shifts := &fakeShiftSource{}
	shifts.add(7, 3, "2025-07-01", "09:00", "10:20")
	service := newTestService(&fakeWageRepo{}, shifts)

	estimate, err := service.EstimateSalary(context.Background(), 7, mustDate("2025-07-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if estimate.NoShifts {
		t.Fatalf("expected a zero-valued result, not no-shifts")
	}
	if estimate.TotalHours != 1.33 {
		t.Fatalf("expected 1.33 hours, got %v", estimate.TotalHours)
	}
	if estimate.TotalSalary != 0 {
		t.Fatalf("expected zero salary, got %v", estimate.TotalSalary)
	}
}

func TestEstimateSalaryNoShifts(t *testing.T) {
	service := newTestService(&fakeWageRepo{}, &fakeShiftSource{})

	estimate, err := service.EstimateSalary(context.Background(), 7, mustDate("2025-07-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !estimate.NoShifts {
		t.Fatalf("expected no-shifts result, got %+v", estimate)
	}
}

func TestEstimateSalaryRoundsSalaryOnce(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1001, "2025-01-01")

	shifts := &fakeShiftSource{}
	shifts.add(7, 1, "2025-07-01", "09:00", "09:20")
	shifts.add(7, 1, "2025-07-02", "09:00", "09:20")
	shifts.add(7, 1, "2025-07-03", "09:00", "09:20")
	service := newTestService(repo, shifts)

	estimate, err := service.EstimateSalary(context.Background(), 7, mustDate("2025-07-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if estimate.TotalSalary != 1001 {
		t.Fatalf("expected salary 1001, got %v", estimate.TotalSalary)
	}
	if estimate.TotalHours != 1 {
		t.Fatalf("expected 1 hour, got %v", estimate.TotalHours)
	}
}

func TestCreateRateRequiresAdmin(t *testing.T) {
	service := newTestService(&fakeWageRepo{}, &fakeShiftSource{})

	_, err := service.CreateRate(context.Background(), CreateRateInput{
		ActorUserID:   2,
		GroupID:       1,
		HourlyRate:    1000,
		EffectiveFrom: mustDate("2025-01-01"),
	})
	if !errors.Is(err, ErrNotGroupAdmin) {
		t.Fatalf("expected ErrNotGroupAdmin, got %v", err)
	}

	_, err = service.CreateRate(context.Background(), CreateRateInput{
		ActorUserID:   1,
		GroupID:       missingGroupID,
		HourlyRate:    1000,
		EffectiveFrom: mustDate("2025-01-01"),
	})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestCreateRateRejectsDuplicateEffectiveFrom(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1000, "2025-01-01")
	service := newTestService(repo, &fakeShiftSource{})

	_, err := service.CreateRate(context.Background(), CreateRateInput{
		ActorUserID:   1,
		GroupID:       1,
		HourlyRate:    1100,
		EffectiveFrom: mustDate("2025-01-01"),
	})
	if !errors.Is(err, ErrDuplicateEffectiveFrom) {
		t.Fatalf("expected ErrDuplicateEffectiveFrom, got %v", err)
	}
	if len(repo.rates) != 1 {
		t.Fatalf("expected 1 rate, got %d", len(repo.rates))
	}
}

func TestCreateRateValidatesInput(t *testing.T) {
	service := newTestService(&fakeWageRepo{}, &fakeShiftSource{})
	ctx := context.Background()

	_, err := service.CreateRate(ctx, CreateRateInput{ActorUserID: 1, GroupID: 1, HourlyRate: -1, EffectiveFrom: mustDate("2025-01-01")})
	if !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}

	before := mustDate("2024-12-31")
	_, err = service.CreateRate(ctx, CreateRateInput{ActorUserID: 1, GroupID: 1, HourlyRate: 1, EffectiveFrom: mustDate("2025-01-01"), EffectiveTo: &before})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestCreateRateClosesPreviousOpenRate(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1000, "2025-01-01")
	service := newTestService(repo, &fakeShiftSource{})

	created, err := service.CreateRate(context.Background(), CreateRateInput{
		ActorUserID:   1,
		GroupID:       1,
		HourlyRate:    1200,
		Note:          "  raise  ",
		EffectiveFrom: mustDate("2025-06-01"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Note != "raise" {
		t.Fatalf("expected trimmed note, got %q", created.Note)
	}
	if repo.rates[0].EffectiveTo == nil || !repo.rates[0].EffectiveTo.Equal(mustDate("2025-05-31")) {
		t.Fatalf("expected previous rate closed on 2025-05-31, got %v", repo.rates[0].EffectiveTo)
	}
	if created.EffectiveTo != nil {
		t.Fatalf("expected new rate to be open-ended, got %v", created.EffectiveTo)
	}
}

func TestCreateRateBackdatedKeepsLaterRatesOpen(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1200, "2025-06-01")
	service := newTestService(repo, &fakeShiftSource{})

	if _, err := service.CreateRate(context.Background(), CreateRateInput{
		ActorUserID:   1,
		GroupID:       1,
		HourlyRate:    1000,
		EffectiveFrom: mustDate("2025-01-01"),
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.rates[0].EffectiveTo != nil {
		t.Fatalf("expected later rate to stay open, got %v", repo.rates[0].EffectiveTo)
	}
}

func TestCreateRateInvalidatesCache(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1000, "2025-01-01")
	cache := newCountingCache()
	service := NewServiceWithCache(repo, &fakeShiftSource{}, fakeEmployees{}, fakeAuth{admins: map[int64]bool{1: true}}, cache, time.Minute)
	ctx := context.Background()

	if _, err := service.ResolveRate(ctx, 1, mustDate("2025-07-01")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := service.ResolveRate(ctx, 1, mustDate("2025-07-02")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.lists != 1 {
		t.Fatalf("expected one repository read, got %d", repo.lists)
	}

	if _, err := service.CreateRate(ctx, CreateRateInput{ActorUserID: 1, GroupID: 1, HourlyRate: 1200, EffectiveFrom: mustDate("2025-06-01")}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cache.deletes != 1 {
		t.Fatalf("expected cache invalidation, got %d deletes", cache.deletes)
	}

	rate, err := service.ResolveRate(ctx, 1, mustDate("2025-07-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rate == nil || rate.HourlyRate != 1200 {
		t.Fatalf("expected fresh rate 1200, got %+v", rate)
	}
}

func TestResolveRateAfterWriteDuringCacheFill(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1000, "2025-01-01")
	cache := newCountingCache()
	service := NewServiceWithCache(repo, &fakeShiftSource{}, fakeEmployees{}, fakeAuth{admins: map[int64]bool{1: true}}, cache, time.Minute)
	ctx := context.Background()

	listed := make(chan struct{})
	release := make(chan struct{})
	repo.afterList = func() {
		close(listed)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := service.ResolveRate(ctx, 1, mustDate("2025-07-01"))
		done <- err
	}()

	<-listed
	if _, err := service.CreateRate(ctx, CreateRateInput{ActorUserID: 1, GroupID: 1, HourlyRate: 1200, EffectiveFrom: mustDate("2025-06-01")}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rate, err := service.ResolveRate(ctx, 1, mustDate("2025-07-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rate == nil || rate.HourlyRate != 1200 {
		t.Fatalf("expected rate 1200 after the write, got %+v", rate)
	}
}

func TestListRatesOrdersByEffectiveFrom(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1200, "2025-06-01")
	repo.add(1, 1000, "2025-01-01")
	service := newTestService(repo, &fakeShiftSource{})

	rates, err := service.ListRates(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rates) != 2 || rates[0].HourlyRate != 1000 || rates[1].HourlyRate != 1200 {
		t.Fatalf("expected rates ordered by effective_from, got %+v", rates)
	}
}

func TestGroupReport(t *testing.T) {
	repo := &fakeWageRepo{}
	repo.add(1, 1000, "2025-01-01")

	shifts := &fakeShiftSource{}
	shifts.add(7, 1, "2025-07-01", "09:00", "11:00")
	shifts.add(8, 1, "2025-07-02", "09:00", "10:00")
	shifts.add(7, 1, "2025-07-03", "09:00", "12:00")
	shifts.add(7, 2, "2025-07-03", "13:00", "15:00")
	employees := fakeEmployees{
		7: {ID: 7, EmployeeCode: "EMP-007", Name: "Zoe"},
		8: {ID: 8, EmployeeCode: "EMP-008", Name: "Adam"},
	}
	service := NewService(repo, shifts, employees, fakeAuth{admins: map[int64]bool{1: true}})

	report, err := service.GroupReport(context.Background(), 1, 1, mustDate("2025-07-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}
	if report.Rows[0].Name != "Adam" || report.Rows[0].TotalSalary != 1000 {
		t.Fatalf("expected Adam first with 1000, got %+v", report.Rows[0])
	}
	if report.Rows[1].Name != "Zoe" || report.Rows[1].TotalHours != 5 || report.Rows[1].TotalSalary != 5000 {
		t.Fatalf("expected Zoe with 5h and 5000, got %+v", report.Rows[1])
	}

	if _, err := service.GroupReport(context.Background(), 2, 1, mustDate("2025-07-01")); !errors.Is(err, ErrNotGroupAdmin) {
		t.Fatalf("expected ErrNotGroupAdmin, got %v", err)
	}
}
