// Package reconciliation serves planned versus actual summaries of distributions.
package reconciliation

import (
	"context"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/reconciliation"
	"github.com/reliefops/cva/internal/shared/logger"
)

// Reporter computes summaries from the stored records. Summaries of closed
// distributions never change again and are served from the cache once built.
type Reporter struct {
	distributions distribution.Repository
	records       distribution.RecordRepository
	cache         reconciliation.Cache
	logger        logger.Interface
}

func NewReporter(
	distributions distribution.Repository,
	records distribution.RecordRepository,
	cache reconciliation.Cache,
	log logger.Interface,
) *Reporter {
	return &Reporter{
		distributions: distributions,
		records:       records,
		cache:         cache,
		logger:        log,
	}
}

// Summarize fails only when the distribution does not exist. Cache errors are
// logged and the summary is computed from the database instead.
func (r *Reporter) Summarize(ctx context.Context, distributionID uint) (*reconciliation.Summary, error) {
	if cached, err := r.cache.Get(ctx, distributionID); err != nil {
		r.logger.Warnw("summary cache read failed", "distribution_id", distributionID, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	d, err := r.distributions.GetByID(ctx, distributionID)
	if err != nil {
		return nil, common.ToAppError(err, "failed to get distribution")
	}

	agg, err := r.records.Aggregate(ctx, distributionID)
	if err != nil {
		r.logger.Errorw("failed to aggregate distribution records", "distribution_id", distributionID, "error", err)
		return nil, common.ToAppError(err, "failed to summarize distribution")
	}

	summary := reconciliation.Summarize(d, agg)
	if summary.Cacheable() {
		if err := r.cache.Set(ctx, summary); err != nil {
			r.logger.Warnw("summary cache write failed", "distribution_id", distributionID, "error", err)
		}
	}
	return summary, nil
}
