// internal/workers/profit/partner-statement/handler.go
package partnerstatement

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"dealer-finance-workers/internal/common/errors"
	"dealer-finance-workers/internal/common/logger"
	"dealer-finance-workers/internal/common/metrics"
	"dealer-finance-workers/internal/profit"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "partner-statement"

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

	h.logger.Info("processing partner statement", map[string]interface{}{
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

// Execute loads the deal's partner split configuration and produces the
// settlement. Exposed for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	cfg, err := h.loadSplitConfig(ctx, input.DealID)
	if err != nil {
		return nil, err
	}

	if !cfg.IsSharedCapital {
		return nil, errors.NewNotSharedDealError(input.DealID)
	}
	if !profit.ValidSplitType(cfg.SplitType) {
		return nil, errors.NewInvalidSplitTypeError(cfg.SplitType)
	}

	dist := profit.Distribute(input.NetSharedProfit, profit.SplitType(cfg.SplitType), cfg.SplitValue, cfg.PartnerCapital)

	return &Output{
		DealID:             input.DealID,
		SplitType:          cfg.SplitType,
		SplitValue:         cfg.SplitValue,
		PartnerCapital:     cfg.PartnerCapital,
		PartnerShare:       dist.PartnerShare,
		LuminaShare:        dist.LuminaShare,
		PartnerPayoutTotal: dist.PartnerPayoutTotal,
	}, nil
}

func (h *Handler) loadSplitConfig(ctx context.Context, dealID string) (*splitConfig, error) {
	query := `SELECT is_shared_capital, partner_split_type, partner_split_value, partner_capital_contribution FROM deals WHERE id = $1`

	var cfg splitConfig
	var splitType sql.NullString

	err := h.db.QueryRowContext(ctx, query, dealID).Scan(
		&cfg.IsSharedCapital, &splitType, &cfg.SplitValue, &cfg.PartnerCapital,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewDealNotFoundError(dealID)
		}
		return nil, errors.NewDealLookupFailedError(err)
	}

	cfg.SplitType = splitType.String
	return &cfg, nil
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

	h.logger.Info("partner statement produced", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"dealId":             output.DealID,
		"partnerShare":       output.PartnerShare,
		"partnerPayoutTotal": output.PartnerPayoutTotal,
	})
}

func extractErrorCode(err error) string {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
}
