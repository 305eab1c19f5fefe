package wage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	wagedomain "shiftboard-go/internal/domain/wage"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(wagedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListRates(ctx context.Context, groupID int64) ([]wagedomain.WageRate, error) {
	var rates []wagedomain.WageRate
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("effective_from asc, created_at asc, id asc").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *PostgresRepository) CreateRate(ctx context.Context, rate *wagedomain.WageRate) error {
	err := r.db.WithContext(ctx).Create(rate).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return wagedomain.ErrDuplicateEffectiveFrom
	}
	return err
}

func (r *PostgresRepository) UpdateEffectiveTo(ctx context.Context, rateID int64, effectiveTo time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&wagedomain.WageRate{}).
		Where("id = ?", rateID).
		Update("effective_to", effectiveTo)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return wagedomain.ErrRateNotFound
	}
	return nil
}
