package shift

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	employeedomain "shiftboard-go/internal/domain/employee"
	shiftdomain "shiftboard-go/internal/domain/shift"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(shiftdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateShift(ctx context.Context, shift *shiftdomain.Shift) error {
	err := r.db.WithContext(ctx).Create(shift).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shiftdomain.ErrShiftConflict
	}
	return err
}

func (r *PostgresRepository) GetShift(ctx context.Context, shiftID int64) (*shiftdomain.Shift, error) {
	var shift shiftdomain.Shift
	if err := r.db.WithContext(ctx).Where("id = ?", shiftID).First(&shift).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shiftdomain.ErrShiftNotFound
		}
		return nil, err
	}
	return &shift, nil
}

func (r *PostgresRepository) ListShifts(ctx context.Context, filter shiftdomain.ListFilter) ([]shiftdomain.Shift, error) {
	query := r.db.WithContext(ctx).Model(&shiftdomain.Shift{})
	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}
	if filter.GroupIDs != nil {
		query = query.Where("group_id IN ?", filter.GroupIDs)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", shiftdomain.DateOnly(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("date <= ?", shiftdomain.DateOnly(*filter.To))
	}

	var shifts []shiftdomain.Shift
	if err := query.Order("date asc, start_time asc, id asc").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *PostgresRepository) ShiftExists(ctx context.Context, employeeID int64, date time.Time, start, end string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&shiftdomain.Shift{}).
		Where("employee_id = ? AND date = ? AND start_time = ? AND end_time = ?", employeeID, shiftdomain.DateOnly(date), start, end).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&employeedomain.Employee{}).
		Where("id = ?", employeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateRequest(ctx context.Context, request *shiftdomain.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *PostgresRepository) GetRequest(ctx context.Context, requestID int64) (*shiftdomain.Request, error) {
	var request shiftdomain.Request
	if err := r.db.WithContext(ctx).Where("id = ?", requestID).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shiftdomain.ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *PostgresRepository) ListRequests(ctx context.Context, groupIDs []int64) ([]shiftdomain.Request, error) {
	var requests []shiftdomain.Request
	if len(groupIDs) == 0 {
		return requests, nil
	}
	if err := r.db.WithContext(ctx).
		Where("group_id IN ?", groupIDs).
		Order("created_at desc, id desc").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *PostgresRepository) CreateResponse(ctx context.Context, response *shiftdomain.Response) error {
	return r.db.WithContext(ctx).Create(response).Error
}

func (r *PostgresRepository) GetResponse(ctx context.Context, responseID int64) (*shiftdomain.Response, error) {
	var response shiftdomain.Response
	if err := r.db.WithContext(ctx).Where("id = ?", responseID).First(&response).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shiftdomain.ErrResponseNotFound
		}
		return nil, err
	}
	return &response, nil
}

func (r *PostgresRepository) ListResponses(ctx context.Context, requestID int64) ([]shiftdomain.Response, error) {
	var responses []shiftdomain.Response
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at asc, id asc").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}
