// internal/workers/finance/select-bank-offer/handler_test.go
package selectbankoffer

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"dealer-finance-workers/internal/common/errors"
	"dealer-finance-workers/internal/common/logger"
	"dealer-finance-workers/internal/common/validation"
	"dealer-finance-workers/internal/finance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Enabled:           true,
		Timeout:           10 * time.Second,
		CacheTTL:          5 * time.Minute,
		MaxBalloonPercent: 40,
		DefaultTermMonths: 72,
	}
}

func createTestHandler(t *testing.T, db *sql.DB, redisClient *redis.Client) *Handler {
	return NewHandler(createTestConfig(), db, redisClient, logger.NewTestLogger(t))
}

const offerQuery = `SELECT id, bank_name, cash_price, principal_debt, term_months, interest_rate_linked, interest_rate_fixed, balloon_amount, license_fee, delivery_fee, admin_fee, initiation_fee FROM bank_offers WHERE application_id = \$1`

func offerColumns() []string {
	return []string{
		"id", "bank_name", "cash_price", "principal_debt", "term_months",
		"interest_rate_linked", "interest_rate_fixed", "balloon_amount",
		"license_fee", "delivery_fee", "admin_fee", "initiation_fee",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SelectsLowestRate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()

	cacheKey := "offer:best:app-1"
	redisMock.ExpectGet(cacheKey).RedisNil()

	rows := sqlmock.NewRows(offerColumns()).
		AddRow("offer-1", "Alpha", 320000.0, 315000.0, 72, 13.5, nil, nil, 1500.0, 2000.0, 1200.0, 1207.0).
		AddRow("offer-2", "Bravo", 320000.0, 310000.0, 72, nil, 12.25, 105000.0, 1500.0, 2000.0, 1200.0, 1207.0).
		AddRow("offer-3", "Declined", 320000.0, 0.0, 0, nil, nil, nil, 0.0, 0.0, 0.0, 0.0)
	mock.ExpectQuery(offerQuery).WithArgs("app-1").WillReturnRows(rows)

	expected := &Output{
		ApplicationID:      "app-1",
		OfferID:            "offer-2",
		BankName:           "Bravo",
		Rate:               12.25,
		BalloonPercent:     35,
		BalloonAmount:      105000,
		TermMonths:         72,
		TotalFees:          5907,
		MonthlyInstallment: finance.Installment(310000, 12.25, 72, 105000),
	}
	cachedData, _ := json.Marshal(expected)
	redisMock.ExpectSet(cacheKey, cachedData, 5*time.Minute).SetVal("OK")

	handler := createTestHandler(t, db, redisClient)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "app-1",
		VehiclePrice:  300000,
	})

	require.NoError(t, err)
	assert.Equal(t, expected, output)

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestHandler_Execute_CacheHit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()

	cached := &Output{
		ApplicationID: "app-cached",
		OfferID:       "offer-9",
		BankName:      "Charlie",
		Rate:          11.9,
		TermMonths:    72,
	}
	cachedData, _ := json.Marshal(cached)
	redisMock.ExpectGet("offer:best:app-cached").SetVal(string(cachedData))

	handler := createTestHandler(t, db, redisClient)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "app-cached",
		VehiclePrice:  300000,
	})

	require.NoError(t, err)
	assert.Equal(t, cached, output)

	// Database must not be queried on a cache hit.
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestHandler_Execute_NoOffers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet("offer:best:app-empty").RedisNil()

	mock.ExpectQuery(offerQuery).WithArgs("app-empty").
		WillReturnRows(sqlmock.NewRows(offerColumns()))

	handler := createTestHandler(t, db, redisClient)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "app-empty",
		VehiclePrice:  300000,
	})

	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNoEligibleOffer, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestHandler_Execute_OnlyRatelessOffers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet("offer:best:app-2").RedisNil()

	rows := sqlmock.NewRows(offerColumns()).
		AddRow("offer-1", "Declined", 320000.0, 0.0, 0, nil, nil, nil, 0.0, 0.0, 0.0, 0.0)
	mock.ExpectQuery(offerQuery).WithArgs("app-2").WillReturnRows(rows)

	handler := createTestHandler(t, db, redisClient)

	_, err = handler.Execute(context.Background(), &Input{
		ApplicationID: "app-2",
		VehiclePrice:  300000,
	})

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNoEligibleOffer, stdErr.Code)
}

func TestHandler_Execute_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet("offer:best:app-3").RedisNil()

	mock.ExpectQuery(offerQuery).WithArgs("app-3").WillReturnError(assert.AnError)

	handler := createTestHandler(t, db, redisClient)

	_, err = handler.Execute(context.Background(), &Input{
		ApplicationID: "app-3",
		VehiclePrice:  300000,
	})

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeOfferLookupFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestGetInputSchema_RejectsMissingFields(t *testing.T) {
	result := validation.ValidateAgainstSchema(map[string]interface{}{
		"vehiclePrice": 300000,
	}, GetInputSchema())

	assert.False(t, result.Valid)
	assert.Contains(t, result.GetErrorMessages(), "applicationId")
}

func TestGetInputSchema_AcceptsValidInput(t *testing.T) {
	result := validation.ValidateAgainstSchema(map[string]interface{}{
		"applicationId": "app-1",
		"vehiclePrice":  300000,
	}, GetInputSchema())

	assert.True(t, result.Valid)
}
