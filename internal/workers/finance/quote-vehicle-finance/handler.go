// internal/workers/finance/quote-vehicle-finance/handler.go
package quotevehiclefinance

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

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const TaskType = "quote-vehicle-finance"

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

	h.logger.Info("processing quote request", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeInputParsingFailed)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, errors.NewInputParsingFailedError(err))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) {
			errorCode = string(stdErr.Code)
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// Execute runs the quote computation. Exposed for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	price := validation.Amount(input.VehiclePrice)
	deposit := validation.Percent(input.DepositPercent)

	policy, err := h.sitePolicy(ctx, input.SiteID)
	if err != nil {
		return nil, err
	}

	var breakdown finance.RateAdjustment
	var offer finance.MarketingOffer

	if input.PersonalizedRate != nil {
		offer = finance.MarketingConfig(price, policy.DefaultInterestRate, input.PersonalizedRate)
		// Bank-derived rate is applied verbatim, no risk adjustments.
		breakdown = finance.RateAdjustment{BaseRate: offer.Rate, FinalRate: offer.Rate}
		metrics.QuotesComputed.WithLabelValues("personalized").Inc()
	} else {
		breakdown = finance.AdjustRate(policy.DefaultInterestRate, finance.RiskProfile{
			VehicleYear:    input.VehicleYear,
			BodyType:       input.BodyType,
			DepositPercent: deposit,
		})
		offer = finance.MarketingConfig(price, breakdown.FinalRate, nil)
		metrics.QuotesComputed.WithLabelValues("teaser").Inc()
	}

	term := validation.TermMonths(input.TermMonths, offer.TermMonths)

	balloonPercent := policy.DefaultBalloonPercent
	if input.RequestedBalloonPercent != nil {
		balloonPercent = validation.Percent(*input.RequestedBalloonPercent)
	}
	balloonPercent = finance.ClampBalloonPercent(balloonPercent, input.VehicleYear, policy.MaxBalloonPercent)

	principal := price * (1 - deposit/100)
	balloonAmount := price * balloonPercent / 100

	return &Output{
		RateBreakdown:      breakdown,
		TermMonths:         term,
		AppliedRate:        offer.Rate,
		Teaser:             offer.Teaser,
		BalloonPercent:     balloonPercent,
		BalloonAmount:      balloonAmount,
		Principal:          principal,
		MonthlyInstallment: finance.Installment(principal, offer.Rate, term, balloonAmount),
	}, nil
}

// sitePolicy loads the site finance policy cache-aside: Redis first, then
// site_settings, falling back to the configured defaults when the site has
// no row.
func (h *Handler) sitePolicy(ctx context.Context, siteID string) (*sitePolicy, error) {
	cacheKey := "policy:site:" + siteID

	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var policy sitePolicy
		if err := json.Unmarshal([]byte(val), &policy); err == nil {
			metrics.PolicyCacheHits.WithLabelValues("hit").Inc()
			return &policy, nil
		}
	}
	metrics.PolicyCacheHits.WithLabelValues("miss").Inc()

	policy := sitePolicy{
		DefaultInterestRate:   h.config.DefaultInterestRate,
		MaxBalloonPercent:     h.config.MaxBalloonPercent,
		DefaultBalloonPercent: h.config.DefaultBalloonPercent,
	}

	query := `SELECT default_interest_rate, max_balloon_percent, default_balloon_percent FROM site_settings WHERE site_id = $1`
	err := h.db.QueryRowContext(ctx, query, siteID).Scan(
		&policy.DefaultInterestRate, &policy.MaxBalloonPercent, &policy.DefaultBalloonPercent,
	)
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewPolicyLookupFailedError(err)
	}

	if data, err := json.Marshal(policy); err == nil {
		h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)
	}

	return &policy, nil
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

	h.logger.Info("quote computed", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"appliedRate": output.AppliedRate,
		"termMonths":  output.TermMonths,
		"installment": output.MonthlyInstallment,
	})
}
