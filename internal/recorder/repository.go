package recorder

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/joao-fontenele/procon-bom/internal/domain"
)

type LookupRepository struct {
	db *sql.DB
}

func NewLookupRepository(db *sql.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// Insert stores rec. Redelivered events with a known id are ignored.
func (r *LookupRepository) Insert(ctx context.Context, rec domain.LookupRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lookups (id, material_number, explosion_date, oxygen_sensor, wire_harness, message, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`, rec.ID, rec.MaterialNumber, rec.ExplosionDate, rec.OxygenSensor, rec.WireHarness, rec.Message, rec.Outcome, rec.CreatedAt)
	return err
}

func (r *LookupRepository) ListByMaterial(ctx context.Context, materialNumber string, limit int) ([]domain.LookupRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, material_number, to_char(explosion_date, 'YYYY-MM-DD'), oxygen_sensor, wire_harness, message, outcome, created_at
		FROM lookups
		WHERE material_number = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, materialNumber, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := []domain.LookupRecord{}
	for rows.Next() {
		var (
			rec          domain.LookupRecord
			oxygen, wire sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.MaterialNumber, &rec.ExplosionDate, &oxygen, &wire, &rec.Message, &rec.Outcome, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.OxygenSensor = nullableString(oxygen)
		rec.WireHarness = nullableString(wire)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *LookupRepository) CountByOutcome(ctx context.Context, outcomes []domain.Outcome) (map[domain.Outcome]int, error) {
	names := make([]string, len(outcomes))
	for i, o := range outcomes {
		names[i] = string(o)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT outcome, COUNT(*)
		FROM lookups
		WHERE outcome = ANY($1)
		GROUP BY outcome
	`, pq.Array(names))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[domain.Outcome]int, len(outcomes))
	for rows.Next() {
		var (
			outcome domain.Outcome
			count   int
		)
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, err
		}
		counts[outcome] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
