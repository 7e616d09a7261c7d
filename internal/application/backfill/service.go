// Package backfill fills the stored normalized reaction column for report
// rows that predate normalization. It is driven by the CLI, not the server.
package backfill

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/gamotph/adr-intelligence/internal/domain/report"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/internal/normalization"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

const defaultPageSize = 500

// Result summarizes one backfill run.
type Result struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Service pages through report rows and writes normalized reaction values.
type Service struct {
	repo      report.ReportRepository
	reactions *normalization.ReactionNormalizer

	listThreshold int
	pageSize      int
	logger        logging.Logger
}

// NewService wires a backfill run. A non-positive pageSize falls back to
// the default.
func NewService(repo report.ReportRepository, reactions *normalization.ReactionNormalizer, listThreshold, pageSize int, log logging.Logger) *Service {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Service{
		repo:          repo,
		reactions:     reactions,
		listThreshold: listThreshold,
		pageSize:      pageSize,
		logger:        log.Named("backfill"),
	}
}

// Run scans every report row in id order and fills reaction_normalized for
// rows lacking it. Rows already normalized, and rows whose reaction text
// yields no canonical term, are skipped. The run stops at the first write
// failure; rows written before the failure stay written.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	after := uuid.Nil

	for {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrap(err, errors.CodeBackfillFailed, "backfill cancelled")
		}

		rows, err := s.repo.PageForBackfill(ctx, after, s.pageSize)
		if err != nil {
			return res, errors.Wrap(err, errors.CodeBackfillFailed, "load backfill page")
		}
		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			after = row.ID
			res.Scanned++

			if strings.TrimSpace(row.ReactionNormalized) != "" {
				res.Skipped++
				continue
			}
			labels := s.reactions.NormalizeADRList(row.ReactionText, s.listThreshold)
			if len(labels) == 0 {
				res.Skipped++
				continue
			}
			if err := s.repo.SetReactionNormalized(ctx, row.ID, strings.Join(labels, ", ")); err != nil {
				return res, errors.Wrap(err, errors.CodeBackfillFailed, "write normalized reaction")
			}
			res.Updated++
		}

		if len(rows) < s.pageSize {
			break
		}
	}

	s.logger.Info("backfill complete",
		logging.Int("scanned", res.Scanned),
		logging.Int("updated", res.Updated),
		logging.Int("skipped", res.Skipped))
	return res, nil
}
