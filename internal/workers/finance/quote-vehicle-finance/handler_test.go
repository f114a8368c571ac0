// internal/workers/finance/quote-vehicle-finance/handler_test.go
package quotevehiclefinance

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"dealer-finance-workers/internal/common/errors"
	"dealer-finance-workers/internal/common/logger"
	"dealer-finance-workers/internal/finance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func setupRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func createTestConfig() *Config {
	return &Config{
		Enabled:               true,
		Timeout:               10 * time.Second,
		CacheTTL:              5 * time.Minute,
		DefaultInterestRate:   13.5,
		MaxBalloonPercent:     40,
		DefaultBalloonPercent: 35,
		DefaultTermMonths:     72,
	}
}

func createTestHandler(t *testing.T, db *sql.DB, redisClient *redis.Client) *Handler {
	return NewHandler(createTestConfig(), db, redisClient, logger.NewTestLogger(t))
}

func expectPolicyQuery(mock sqlmock.Sqlmock, siteID string, rate, maxBalloon, defaultBalloon float64) {
	rows := sqlmock.NewRows([]string{"default_interest_rate", "max_balloon_percent", "default_balloon_percent"}).
		AddRow(rate, maxBalloon, defaultBalloon)
	mock.ExpectQuery(`SELECT default_interest_rate, max_balloon_percent, default_balloon_percent FROM site_settings WHERE site_id = \$1`).
		WithArgs(siteID).
		WillReturnRows(rows)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_TeaserQuote(t *testing.T) {
	rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	expectPolicyQuery(mock, "site-1", 13.5, 40, 35)

	handler := createTestHandler(t, db, rdb)
	currentYear := time.Now().Year()

	output, err := handler.Execute(context.Background(), &Input{
		SiteID:         "site-1",
		VehiclePrice:   200000,
		VehicleYear:    currentYear,
		BodyType:       "Sedan",
		DepositPercent: 10,
	})

	require.NoError(t, err)
	assert.True(t, output.Teaser)
	assert.Equal(t, 72, output.TermMonths)
	assert.Equal(t, 13.5, output.RateBreakdown.FinalRate)
	assert.Equal(t, 12.5, output.AppliedRate)
	assert.Equal(t, 35.0, output.BalloonPercent)
	assert.Equal(t, 70000.0, output.BalloonAmount)
	assert.Equal(t, 180000.0, output.Principal)
	assert.Equal(t, finance.Installment(180000, 12.5, 72, 70000), output.MonthlyInstallment)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_PersonalizedRate(t *testing.T) {
	rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	expectPolicyQuery(mock, "site-1", 13.5, 40, 35)

	handler := createTestHandler(t, db, rdb)
	personalized := 11.25

	output, err := handler.Execute(context.Background(), &Input{
		SiteID:           "site-1",
		VehiclePrice:     400000,
		VehicleYear:      time.Now().Year(),
		DepositPercent:   10,
		PersonalizedRate: &personalized,
	})

	require.NoError(t, err)
	assert.False(t, output.Teaser)
	assert.Equal(t, 72, output.TermMonths)
	assert.Equal(t, 11.25, output.AppliedRate)
	assert.Equal(t, 11.25, output.RateBreakdown.BaseRate)
	assert.Equal(t, 11.25, output.RateBreakdown.FinalRate)
	assert.Zero(t, output.RateBreakdown.AgePenalty)
	assert.Zero(t, output.RateBreakdown.TypePenalty)
	assert.Zero(t, output.RateBreakdown.DepositBonus)
}

func TestHandler_Execute_RiskAdjustmentsApplied(t *testing.T) {
	rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	expectPolicyQuery(mock, "site-1", 13.5, 40, 35)

	handler := createTestHandler(t, db, rdb)
	currentYear := time.Now().Year()
	requested := 35.0

	output, err := handler.Execute(context.Background(), &Input{
		SiteID:                  "site-1",
		VehiclePrice:            180000,
		VehicleYear:             currentYear - 7,
		BodyType:                "Coupe",
		DepositPercent:          25,
		RequestedBalloonPercent: &requested,
	})

	require.NoError(t, err)
	assert.Equal(t, 1.5, output.RateBreakdown.AgePenalty)
	assert.Equal(t, 0.5, output.RateBreakdown.TypePenalty)
	assert.Equal(t, -1.0, output.RateBreakdown.DepositBonus)
	assert.Equal(t, 14.5, output.RateBreakdown.FinalRate)
	// Teaser framing sits on top of the risk-adjusted rate.
	assert.Equal(t, 13.5, output.AppliedRate)
	// Seven-year-old vehicle: balloon ceiling drops to 20.
	assert.Equal(t, 20.0, output.BalloonPercent)
}

func TestHandler_Execute_PolicyCacheHit(t *testing.T) {
	rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	// No db expectations: the policy must come from cache.

	cached, _ := json.Marshal(sitePolicy{
		DefaultInterestRate:   12.0,
		MaxBalloonPercent:     30,
		DefaultBalloonPercent: 25,
	})
	require.NoError(t, rdb.Set(context.Background(), "policy:site:site-9", cached, 5*time.Minute).Err())

	handler := createTestHandler(t, db, rdb)

	output, err := handler.Execute(context.Background(), &Input{
		SiteID:       "site-9",
		VehiclePrice: 150000,
		VehicleYear:  time.Now().Year(),
	})

	require.NoError(t, err)
	assert.Equal(t, 11.0, output.AppliedRate)
	assert.Equal(t, 25.0, output.BalloonPercent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_MissingPolicyRowUsesDefaults(t *testing.T) {
	rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT default_interest_rate, max_balloon_percent, default_balloon_percent FROM site_settings WHERE site_id = \$1`).
		WithArgs("unknown-site").
		WillReturnError(sql.ErrNoRows)

	handler := createTestHandler(t, db, rdb)

	output, err := handler.Execute(context.Background(), &Input{
		SiteID:       "unknown-site",
		VehiclePrice: 100000,
		VehicleYear:  time.Now().Year(),
	})

	require.NoError(t, err)
	assert.Equal(t, 12.5, output.AppliedRate) // config default 13.5 less teaser point
	assert.Equal(t, 35.0, output.BalloonPercent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_PolicyLookupFailure(t *testing.T) {
	rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT default_interest_rate, max_balloon_percent, default_balloon_percent FROM site_settings WHERE site_id = \$1`).
		WithArgs("site-1").
		WillReturnError(assert.AnError)

	handler := createTestHandler(t, db, rdb)

	output, err := handler.Execute(context.Background(), &Input{
		SiteID:       "site-1",
		VehiclePrice: 100000,
	})

	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodePolicyLookupFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHandler_Execute_SanitizesDegenerateInputs(t *testing.T) {
	rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	expectPolicyQuery(mock, "site-1", 13.5, 40, 35)

	handler := createTestHandler(t, db, rdb)

	output, err := handler.Execute(context.Background(), &Input{
		SiteID:         "site-1",
		VehiclePrice:   -500000,
		DepositPercent: 150,
		TermMonths:     -6,
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, output.Principal)
	assert.Equal(t, 0.0, output.MonthlyInstallment)
	assert.Equal(t, 72, output.TermMonths)
}

func BenchmarkHandler_Execute_CachedPolicy(b *testing.B) {
	mr, err := miniredis.Run()
	if err != nil {
		b.Fatal(err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	db, _, _ := sqlmock.New()
	defer db.Close()

	cached, _ := json.Marshal(sitePolicy{DefaultInterestRate: 13.5, MaxBalloonPercent: 40, DefaultBalloonPercent: 35})
	rdb.Set(context.Background(), "policy:site:bench", cached, 5*time.Minute)

	handler := NewHandler(createTestConfig(), db, rdb, logger.NewNoOpLogger())
	input := &Input{SiteID: "bench", VehiclePrice: 300000, VehicleYear: time.Now().Year(), DepositPercent: 10}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := handler.Execute(context.Background(), input); err != nil {
			b.Fatal(err)
		}
	}
}
