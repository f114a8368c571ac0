// internal/workers/finance/select-bank-offer/handler.go
package selectbankoffer

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"dealer-finance-workers/internal/common/errors"
	"dealer-finance-workers/internal/common/logger"
	"dealer-finance-workers/internal/common/metrics"
	"dealer-finance-workers/internal/common/validation"
	"dealer-finance-workers/internal/finance"
	"dealer-finance-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const TaskType = "select-bank-offer"

type Handler struct {
	config       *Config
	db           *sql.DB
	redis        *redis.Client
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
		redis:        redisClient,
		logger:       scoped,
		errorHandler: errors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing offer selection", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}

	result := validation.ValidateAgainstSchema(variables, GetInputSchema())
	if !result.Valid {
		return nil, errors.NewValidationFailedError(result.GetErrorMessages())
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}

	return &input, nil
}

// Execute selects and normalizes the best bank offer. Exposed for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	cacheKey := "offer:best:" + input.ApplicationID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var output Output
		if err := json.Unmarshal([]byte(val), &output); err == nil {
			return &output, nil
		}
	}

	offers, err := h.loadOffers(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	best := finance.PickBestOffer(offers)
	if best == nil {
		return nil, errors.NewNoEligibleOfferError(input.ApplicationID)
	}

	rate, balloonPercent := finance.NormalizeOffer(*best, input.VehiclePrice, h.config.MaxBalloonPercent)

	var balloonAmount float64
	if best.BalloonAmount != nil {
		balloonAmount = input.VehiclePrice * balloonPercent / 100
	}

	term := best.TermMonths
	if term <= 0 {
		term = h.config.DefaultTermMonths
	}

	output := &Output{
		ApplicationID:      input.ApplicationID,
		OfferID:            best.ID,
		BankName:           best.BankName,
		Rate:               rate,
		BalloonPercent:     balloonPercent,
		BalloonAmount:      balloonAmount,
		TermMonths:         term,
		TotalFees:          best.LicenseFee + best.DeliveryFee + best.AdminFee + best.InitiationFee,
		MonthlyInstallment: finance.Installment(best.PrincipalDebt, rate, term, balloonAmount),
	}

	if data, err := json.Marshal(output); err == nil {
		h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)
	}

	return output, nil
}

func (h *Handler) loadOffers(ctx context.Context, applicationID string) ([]models.BankOffer, error) {
	query := `SELECT id, bank_name, cash_price, principal_debt, term_months, interest_rate_linked, interest_rate_fixed, balloon_amount, license_fee, delivery_fee, admin_fee, initiation_fee FROM bank_offers WHERE application_id = $1`

	rows, err := h.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, errors.NewOfferLookupFailedError(err)
	}
	defer rows.Close()

	var offers []models.BankOffer
	for rows.Next() {
		var offer models.BankOffer
		var linked, fixed, balloon sql.NullFloat64

		if err := rows.Scan(
			&offer.ID, &offer.BankName, &offer.CashPrice, &offer.PrincipalDebt, &offer.TermMonths,
			&linked, &fixed, &balloon,
			&offer.LicenseFee, &offer.DeliveryFee, &offer.AdminFee, &offer.InitiationFee,
		); err != nil {
			return nil, errors.NewOfferLookupFailedError(err)
		}

		offer.ApplicationID = applicationID
		if linked.Valid {
			offer.InterestRateLinked = &linked.Float64
		}
		if fixed.Valid {
			offer.InterestRateFixed = &fixed.Float64
		}
		if balloon.Valid {
			offer.BalloonAmount = &balloon.Float64
		}

		offers = append(offers, offer)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewOfferLookupFailedError(err)
	}

	return offers, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	h.logger.Info("offer selected", map[string]interface{}{
		"jobKey":        job.GetKey(),
		"applicationId": output.ApplicationID,
		"bankName":      output.BankName,
		"rate":          output.Rate,
	})
}

func extractErrorCode(err error) string {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
}
