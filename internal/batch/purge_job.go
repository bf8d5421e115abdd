package batch

import (
	"context"
	"log/slog"
	"time"

	"account-service/internal/config"
	"account-service/internal/domain/account"
	"account-service/internal/domain/customer"
)

// PurgeJob hard-deletes soft-deleted rows once they fall outside the
// retention window. Accounts go first so that customer rows are never
// removed while an account still references them.
type PurgeJob struct {
	cfg       config.BatchConfig
	customers customer.Store
	accounts  account.Store
	logger    *slog.Logger
}

func NewPurgeJob(cfg config.BatchConfig, customers customer.Store, accounts account.Store, logger *slog.Logger) *PurgeJob {
	return &PurgeJob{
		cfg:       cfg,
		customers: customers,
		accounts:  accounts,
		logger:    logger.With("component", "PurgeJob"),
	}
}

// Run performs a single retention sweep.
func (j *PurgeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.PurgeTimeout)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -j.cfg.RetentionDays)
	j.logger.Info("Starting retention purge", slog.Time("cutoff", cutoff))

	accountsPurged, err := j.accounts.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to purge deleted accounts", slog.Any("error", err))
		return
	}

	customersPurged, err := j.customers.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to purge deleted customers", slog.Any("error", err))
		return
	}

	j.logger.Info("Retention purge finished",
		slog.Int64("accountsPurged", accountsPurged),
		slog.Int64("customersPurged", customersPurged),
	)
}
