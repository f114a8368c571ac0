// internal/workers/profit/compute-deal-profit/handler.go
package computedealprofit

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"dealer-finance-workers/internal/common/errors"
	"dealer-finance-workers/internal/common/logger"
	"dealer-finance-workers/internal/common/metrics"
	"dealer-finance-workers/internal/models"
	"dealer-finance-workers/internal/profit"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "compute-deal-profit"

type Handler struct {
	config       *Config
	db           *sql.DB
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
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

	h.logger.Info("processing deal profit computation", map[string]interface{}{
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// Execute loads the deal, enforces the lock, computes the summary and
// persists an audit snapshot. Exposed for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	deal, err := h.loadDeal(ctx, input.DealID)
	if err != nil {
		return nil, err
	}

	// A closed deal is immutable: recomputing from possibly mutated inputs
	// requires the upstream admin unlock confirmation.
	if deal.IsClosed && !input.UnlockConfirmed {
		return nil, errors.NewDealLockedError(input.DealID)
	}

	summary := profit.ComputeProfit(*deal)

	metrics.ProfitRecomputations.Inc()
	for _, advisory := range summary.Advisories {
		metrics.DataQualityAdvisories.WithLabelValues(advisory).Inc()
	}

	snapshotID, err := h.writeSnapshot(ctx, input.DealID, summary)
	if err != nil {
		return nil, err
	}

	return &Output{
		DealID:     input.DealID,
		IsClosed:   deal.IsClosed,
		SnapshotID: snapshotID,
		Summary:    summary,
	}, nil
}

func (h *Handler) loadDeal(ctx context.Context, dealID string) (*models.DealRecord, error) {
	query := `SELECT sold_price, cost_price, recon_cost, dic_amount, discount_amount, dealer_deposit_contribution, sales_rep_name, sales_rep_commission, referral_name, referral_commission_amount, referral_income_amount, addons_data, is_closed FROM deals WHERE id = $1`

	deal := models.DealRecord{ID: dealID}
	var salesRepName, referralName sql.NullString
	var addonsData []byte

	err := h.db.QueryRowContext(ctx, query, dealID).Scan(
		&deal.SoldPrice, &deal.CostPrice, &deal.ReconCost, &deal.DICAmount, &deal.DiscountAmount,
		&deal.DealerDepositContribution, &salesRepName, &deal.SalesRepCommission,
		&referralName, &deal.ReferralCommissionAmount, &deal.ReferralIncomeAmount,
		&addonsData, &deal.IsClosed,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewDealNotFoundError(dealID)
		}
		return nil, errors.NewDealLookupFailedError(err)
	}

	deal.SalesRepName = salesRepName.String
	deal.ReferralName = referralName.String

	if len(addonsData) > 0 {
		if err := json.Unmarshal(addonsData, &deal.AddOns); err != nil {
			h.logger.Warn("ignoring malformed addons data", map[string]interface{}{
				"dealId": dealID,
				"error":  err.Error(),
			})
		}
	}

	expenses, err := h.loadAftersalesExpenses(ctx, dealID)
	if err != nil {
		return nil, err
	}
	deal.AftersalesExpenses = expenses

	return &deal, nil
}

func (h *Handler) loadAftersalesExpenses(ctx context.Context, dealID string) ([]models.AftersalesExpense, error) {
	query := `SELECT type, amount FROM aftersales_expenses WHERE deal_id = $1`

	rows, err := h.db.QueryContext(ctx, query, dealID)
	if err != nil {
		return nil, errors.NewDealLookupFailedError(err)
	}
	defer rows.Close()

	var expenses []models.AftersalesExpense
	for rows.Next() {
		var expense models.AftersalesExpense
		if err := rows.Scan(&expense.Type, &expense.Amount); err != nil {
			return nil, errors.NewDealLookupFailedError(err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewDealLookupFailedError(err)
	}

	return expenses, nil
}

func (h *Handler) writeSnapshot(ctx context.Context, dealID string, summary profit.ProfitSummary) (string, error) {
	snapshotID := uuid.New().String()
	advisories, _ := json.Marshal(summary.Advisories)

	query := `INSERT INTO deal_profit_snapshots (id, deal_id, gross_income, total_costs, gross_profit, aftersales_total, current_profit, net_profit, advisories, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := h.db.ExecContext(ctx, query,
		snapshotID, dealID,
		summary.GrossIncome, summary.TotalCosts, summary.GrossProfit,
		summary.AftersalesTotal, summary.CurrentProfit, summary.NetProfit,
		advisories, time.Now().UTC(),
	)
	if err != nil {
		return "", errors.NewSnapshotWriteFailedError(err)
	}

	return snapshotID, nil
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

	h.logger.Info("deal profit computed", map[string]interface{}{
		"jobKey":        job.GetKey(),
		"dealId":        output.DealID,
		"snapshotId":    output.SnapshotID,
		"currentProfit": output.Summary.CurrentProfit,
		"advisories":    output.Summary.Advisories,
	})
}

func extractErrorCode(err error) string {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
}
