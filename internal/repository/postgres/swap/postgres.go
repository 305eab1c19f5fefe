package swap

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	employeedomain "shiftboard-go/internal/domain/employee"
	shiftdomain "shiftboard-go/internal/domain/shift"
	swapdomain "shiftboard-go/internal/domain/swap"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(swapdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetShift(ctx context.Context, shiftID int64) (*shiftdomain.Shift, error) {
	var shift shiftdomain.Shift
	if err := r.db.WithContext(ctx).Where("id = ?", shiftID).First(&shift).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, swapdomain.ErrShiftNotFound
		}
		return nil, err
	}
	return &shift, nil
}

func (r *PostgresRepository) ShiftSlotTaken(ctx context.Context, employeeID int64, date time.Time, start, end string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&shiftdomain.Shift{}).
		Where("employee_id = ? AND date = ? AND start_time = ? AND end_time = ?", employeeID, shiftdomain.DateOnly(date), start, end).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) ReassignShift(ctx context.Context, shiftID, employeeID int64) error {
	result := r.db.WithContext(ctx).
		Model(&shiftdomain.Shift{}).
		Where("id = ?", shiftID).
		Update("employee_id", employeeID)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return swapdomain.ErrShiftConflict
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return swapdomain.ErrShiftNotFound
	}
	return nil
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

func (r *PostgresRepository) CreateSwap(ctx context.Context, swap *swapdomain.Swap) error {
	err := r.db.WithContext(ctx).Create(swap).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return swapdomain.ErrSwapPending
	}
	return err
}

func (r *PostgresRepository) GetSwap(ctx context.Context, swapID int64) (*swapdomain.Swap, error) {
	var swap swapdomain.Swap
	if err := r.db.WithContext(ctx).Where("id = ?", swapID).First(&swap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, swapdomain.ErrSwapNotFound
		}
		return nil, err
	}
	return &swap, nil
}

func (r *PostgresRepository) ListSwaps(ctx context.Context, status string, groupIDs []int64) ([]swapdomain.Swap, error) {
	var swaps []swapdomain.Swap
	if len(groupIDs) == 0 {
		return swaps, nil
	}

	query := r.db.WithContext(ctx).
		Model(&swapdomain.Swap{}).
		Joins("JOIN shifts ON shifts.id = shift_swaps.shift_id").
		Where("shifts.group_id IN ?", groupIDs)
	if status != "" {
		query = query.Where("shift_swaps.status = ?", status)
	}

	if err := query.Order("shift_swaps.created_at desc, shift_swaps.id desc").Find(&swaps).Error; err != nil {
		return nil, err
	}
	return swaps, nil
}

func (r *PostgresRepository) HasPendingSwap(ctx context.Context, shiftID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&swapdomain.Swap{}).
		Where("shift_id = ? AND status = ?", shiftID, swapdomain.StatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ResolveSwap only touches rows still pending, so two concurrent resolutions
// cannot both succeed.
func (r *PostgresRepository) ResolveSwap(ctx context.Context, swapID int64, status string, newEmployeeID *int64, resolvedBy string, resolvedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&swapdomain.Swap{}).
		Where("id = ? AND status = ?", swapID, swapdomain.StatusPending).
		Updates(map[string]interface{}{
			"status":          status,
			"new_employee_id": newEmployeeID,
			"resolved_by":     resolvedBy,
			"resolved_at":     resolvedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) AppendHistory(ctx context.Context, entry *swapdomain.History) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) ListHistory(ctx context.Context, shiftID int64) ([]swapdomain.History, error) {
	var entries []swapdomain.History
	if err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("changed_at asc, id asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
