package wage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftboard-go/internal/db/dbtest"
	wagedomain "shiftboard-go/internal/domain/wage"
)

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestCreateRateRejectsDuplicateEffectiveFrom(t *testing.T) {
	repo := NewPostgres(dbtest.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateRate(ctx, &wagedomain.WageRate{GroupID: 1, HourlyRate: 1000, EffectiveFrom: day("2025-01-01")}))
	require.NoError(t, repo.CreateRate(ctx, &wagedomain.WageRate{GroupID: 2, HourlyRate: 1000, EffectiveFrom: day("2025-01-01")}))

	err := repo.CreateRate(ctx, &wagedomain.WageRate{GroupID: 1, HourlyRate: 1100, EffectiveFrom: day("2025-01-01")})
	assert.ErrorIs(t, err, wagedomain.ErrDuplicateEffectiveFrom)
}

func TestListRatesOrdersAndScopesByGroup(t *testing.T) {
	repo := NewPostgres(dbtest.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateRate(ctx, &wagedomain.WageRate{GroupID: 1, HourlyRate: 1200, EffectiveFrom: day("2025-06-01")}))
	require.NoError(t, repo.CreateRate(ctx, &wagedomain.WageRate{GroupID: 1, HourlyRate: 1000, EffectiveFrom: day("2025-01-01")}))
	require.NoError(t, repo.CreateRate(ctx, &wagedomain.WageRate{GroupID: 2, HourlyRate: 900, EffectiveFrom: day("2025-01-01")}))

	rates, err := repo.ListRates(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, 1000.0, rates[0].HourlyRate)
	assert.Equal(t, 1200.0, rates[1].HourlyRate)
}

func TestUpdateEffectiveTo(t *testing.T) {
	repo := NewPostgres(dbtest.Open(t))
	ctx := context.Background()

	rate := wagedomain.WageRate{GroupID: 1, HourlyRate: 1000, EffectiveFrom: day("2025-01-01")}
	require.NoError(t, repo.CreateRate(ctx, &rate))
	require.NoError(t, repo.UpdateEffectiveTo(ctx, rate.ID, day("2025-05-31")))

	rates, err := repo.ListRates(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	require.NotNil(t, rates[0].EffectiveTo)
	assert.True(t, rates[0].EffectiveTo.Equal(day("2025-05-31")))

	assert.ErrorIs(t, repo.UpdateEffectiveTo(ctx, 999, day("2025-05-31")), wagedomain.ErrRateNotFound)
}

func TestTransactionRollsBack(t *testing.T) {
	repo := NewPostgres(dbtest.Open(t))
	ctx := context.Background()

	err := repo.Transaction(ctx, func(tx wagedomain.Repository) error {
		if err := tx.CreateRate(ctx, &wagedomain.WageRate{GroupID: 1, HourlyRate: 1000, EffectiveFrom: day("2025-01-01")}); err != nil {
			return err
		}
		return tx.CreateRate(ctx, &wagedomain.WageRate{GroupID: 1, HourlyRate: 1100, EffectiveFrom: day("2025-01-01")})
	})
	assert.ErrorIs(t, err, wagedomain.ErrDuplicateEffectiveFrom)

	rates, err := repo.ListRates(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, rates)
}
