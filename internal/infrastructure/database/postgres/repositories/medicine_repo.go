package repositories

import (
	"context"

	"github.com/gamotph/adr-intelligence/internal/domain/report"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/database/postgres"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

type postgresMedicineRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresMedicineRepo builds the medicine master repository.
func NewPostgresMedicineRepo(conn *postgres.Connection, log logging.Logger) report.MedicineRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &postgresMedicineRepo{
		conn:     conn,
		log:      log,
		executor: conn.DB(),
	}
}

func (r *postgresMedicineRepo) ListMedicines(ctx context.Context) ([]report.MedicineRecord, error) {
	query := `
		SELECT id, COALESCE(brand_name, ''), COALESCE(generic_name, '')
		FROM medicines
	`
	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "query medicines")
	}
	defer rows.Close()

	var out []report.MedicineRecord
	for rows.Next() {
		var rec report.MedicineRecord
		if err := rows.Scan(&rec.ID, &rec.BrandNameText, &rec.GenericNameText); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "scan medicine record")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "iterate medicines")
	}
	return out, nil
}
