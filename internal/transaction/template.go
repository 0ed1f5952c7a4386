package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrTemplateNotFound = errors.New("transaction template not found")

const BOMExplosionTemplateID = 1

const bomExplosionTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<BomExplosionRequest>
  <MaterialNumber/>
  <Plant/>
  <BomUsage/>
  <BomAlternative/>
  <BomStatus/>
  <BomStlIndicator/>
  <Application/>
  <ExplosionDate/>
  <IndicatorBomExplosionLevel/>
</BomExplosionRequest>`

type TemplateSource interface {
	Template(ctx context.Context, id int) (string, error)
}

// StaticTemplates serves templates from memory.
type StaticTemplates map[int]string

func DefaultTemplates() StaticTemplates {
	return StaticTemplates{BOMExplosionTemplateID: bomExplosionTemplate}
}

func (s StaticTemplates) Template(_ context.Context, id int) (string, error) {
	body, ok := s[id]
	if !ok {
		return "", fmt.Errorf("template %d: %w", id, ErrTemplateNotFound)
	}
	return body, nil
}

// TemplateRepository reads templates from the process database.
type TemplateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Template(ctx context.Context, id int) (string, error) {
	var body string
	err := r.db.QueryRowContext(ctx, `
		SELECT body
		FROM transaction_templates
		WHERE id = $1
	`, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("template %d: %w", id, ErrTemplateNotFound)
		}
		return "", err
	}
	return body, nil
}

func (r *TemplateRepository) Save(ctx context.Context, id int, description, body string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transaction_templates (id, description, body, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET description = EXCLUDED.description, body = EXCLUDED.body, updated_at = NOW()
	`, id, description, body)
	return err
}
