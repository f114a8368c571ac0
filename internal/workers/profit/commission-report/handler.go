// internal/workers/profit/commission-report/handler.go
package commissionreport

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
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

const TaskType = "commission-report"

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

	h.logger.Info("processing commission report", map[string]interface{}{
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

// Execute aggregates commissions over closed deals in the requested
// window. Exposed for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start, end, err := parsePeriod(input)
	if err != nil {
		return nil, err
	}

	deals, err := h.loadClosedDeals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	totals := profit.AggregateByPerson(deals)

	entries := make([]ReportEntry, 0, len(totals))
	var grandTotal float64
	for name, t := range totals {
		entries = append(entries, ReportEntry{
			Name:               name,
			SalesCommission:    t.SalesCommission,
			ReferralCommission: t.ReferralCommission,
			Total:              t.Total,
		})
		grandTotal += t.Total
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return &Output{
		ReportID:    uuid.New().String(),
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
		Entries:     entries,
		GrandTotal:  grandTotal,
		DealCount:   len(deals),
	}, nil
}

func parsePeriod(input *Input) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, input.PeriodStart)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewInvalidPeriodError(fmt.Sprintf("periodStart: %v", err))
	}

	end, err := time.Parse(time.RFC3339, input.PeriodEnd)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewInvalidPeriodError(fmt.Sprintf("periodEnd: %v", err))
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, errors.NewInvalidPeriodError("periodStart must be before periodEnd")
	}

	return start, end, nil
}

func (h *Handler) loadClosedDeals(ctx context.Context, start, end time.Time) ([]models.DealRecord, error) {
	query := `SELECT sales_rep_name, sales_rep_commission, referral_name, referral_commission_amount FROM deals WHERE is_closed = true AND closed_at >= $1 AND closed_at < $2`

	rows, err := h.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, errors.NewReportQueryFailedError(err)
	}
	defer rows.Close()

	var deals []models.DealRecord
	for rows.Next() {
		var deal models.DealRecord
		var salesRepName, referralName sql.NullString

		if err := rows.Scan(&salesRepName, &deal.SalesRepCommission, &referralName, &deal.ReferralCommissionAmount); err != nil {
			return nil, errors.NewReportQueryFailedError(err)
		}

		deal.SalesRepName = salesRepName.String
		deal.ReferralName = referralName.String
		deals = append(deals, deal)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewReportQueryFailedError(err)
	}

	return deals, nil
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

	h.logger.Info("commission report produced", map[string]interface{}{
		"jobKey":     job.GetKey(),
		"reportId":   output.ReportID,
		"dealCount":  output.DealCount,
		"grandTotal": output.GrandTotal,
	})
}

func extractErrorCode(err error) string {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
}
