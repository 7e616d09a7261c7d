package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gamotph/adr-intelligence/internal/domain/report"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/database/postgres"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

type postgresReportRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresReportRepo builds the report repository over the pool.
func NewPostgresReportRepo(conn *postgres.Connection, log logging.Logger) report.ReportRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &postgresReportRepo{
		conn:     conn,
		log:      log,
		executor: conn.DB(),
	}
}

func (r *postgresReportRepo) RawReactionBuckets(ctx context.Context) ([]report.ReactionBucket, error) {
	query := `
		SELECT reaction_text, COUNT(*)
		FROM reports
		WHERE reaction_text IS NOT NULL AND reaction_text <> ''
		GROUP BY reaction_text
	`
	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "query reaction buckets")
	}
	defer rows.Close()

	var buckets []report.ReactionBucket
	for rows.Next() {
		var b report.ReactionBucket
		if err := rows.Scan(&b.Text, &b.Count); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "scan reaction bucket")
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "iterate reaction buckets")
	}
	return buckets, nil
}

func (r *postgresReportRepo) MedicineReferenceCounts(ctx context.Context) (map[uuid.UUID]int, error) {
	query := `
		SELECT medicine_id, COUNT(*)
		FROM reports
		WHERE medicine_id IS NOT NULL
		GROUP BY medicine_id
	`
	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "query medicine reference counts")
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "scan medicine reference count")
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "iterate medicine reference counts")
	}
	return counts, nil
}

func (r *postgresReportRepo) NormalizedReactionRows(ctx context.Context, filter report.SummaryFilter) ([]string, error) {
	var (
		conds = []string{"reaction_normalized IS NOT NULL", "reaction_normalized <> ''"}
		args  []interface{}
	)
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.MedicineID != nil {
		args = append(args, *filter.MedicineID)
		conds = append(conds, fmt.Sprintf("medicine_id = $%d", len(args)))
	}

	query := "SELECT reaction_normalized FROM reports WHERE " + strings.Join(conds, " AND ")
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "query normalized reactions")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "scan normalized reaction")
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "iterate normalized reactions")
	}
	return out, nil
}

func (r *postgresReportRepo) PageForBackfill(ctx context.Context, afterID uuid.UUID, pageSize int) ([]report.ReportRow, error) {
	query := `
		SELECT id, COALESCE(reaction_text, ''), COALESCE(reaction_normalized, '')
		FROM reports
		WHERE id > $1
		ORDER BY id
		LIMIT $2
	`
	rows, err := r.executor.QueryContext(ctx, query, afterID, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "query backfill page")
	}
	defer rows.Close()

	var out []report.ReportRow
	for rows.Next() {
		var row report.ReportRow
		if err := rows.Scan(&row.ID, &row.ReactionText, &row.ReactionNormalized); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "scan backfill row")
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "iterate backfill page")
	}
	return out, nil
}

func (r *postgresReportRepo) SetReactionNormalized(ctx context.Context, id uuid.UUID, normalized string) error {
	query := `UPDATE reports SET reaction_normalized = $2 WHERE id = $1`
	res, err := r.executor.ExecContext(ctx, query, id, normalized)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "update normalized reaction")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("report not found").WithDetail("id=" + id.String())
	}
	return nil
}
