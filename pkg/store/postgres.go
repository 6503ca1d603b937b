package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contentkit/customfields/pkg/db"
	"github.com/contentkit/customfields/pkg/field"
)

// Migrations holds the embedded schema for the Postgres store. Apply them
// with db.Migrate before first use.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const pgUniqueViolation = "23505"

var _ Store = (*Postgres)(nil)

// Postgres is a pgx-backed Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Store on an existing connection pool.
// The pool's lifecycle belongs to the caller.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Setup connects and migrates in one step for hosts that let the subsystem
// own its database wiring.
func Setup(ctx context.Context, cfg db.Config, log *slog.Logger) (*Postgres, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, pool, Migrations, cfg.MigrationsTable, log); err != nil {
		pool.Close()
		return nil, err
	}
	return NewPostgres(pool), nil
}

// Close releases the underlying pool. Only call it when the store was
// created through Setup.
func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) Definitions(ctx context.Context, scope field.Scope) ([]*field.Category, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, description, context_id, sort_order, created_at, updated_at
		FROM customfield_categories
		WHERE component = $1 AND area = $2 AND item_id = $3
		ORDER BY sort_order, created_at`,
		scope.Component, scope.Area, scope.ItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []*field.Category
	byID := make(map[string]*field.Category)
	for rows.Next() {
		c := &field.Category{Scope: scope}
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ContextID, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	frows, err := p.pool.Query(ctx, `
		SELECT id, category_id, type, short_name, name, description, required,
		       visibility, sort_order, config, created_at, updated_at
		FROM customfield_fields
		WHERE component = $1 AND area = $2 AND item_id = $3
		ORDER BY sort_order, created_at`,
		scope.Component, scope.Area, scope.ItemID)
	if err != nil {
		return nil, err
	}
	defer frows.Close()

	for frows.Next() {
		f, err := scanField(frows, scope)
		if err != nil {
			return nil, err
		}
		if cat, ok := byID[f.CategoryID]; ok {
			cat.Fields = append(cat.Fields, f)
		}
	}
	if err := frows.Err(); err != nil {
		return nil, err
	}

	return cats, nil
}

func (p *Postgres) CategoryNameExists(ctx context.Context, scope field.Scope, name string) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM customfield_categories
			WHERE component = $1 AND area = $2 AND item_id = $3 AND name = $4
		)`,
		scope.Component, scope.Area, scope.ItemID, name).Scan(&exists)
	return exists, err
}

func (p *Postgres) SaveCategory(ctx context.Context, c *field.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	c.UpdatedAt = time.Now()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO customfield_categories
			(id, component, area, item_id, name, description, context_id, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			context_id = EXCLUDED.context_id,
			sort_order = EXCLUDED.sort_order,
			updated_at = EXCLUDED.updated_at`,
		c.ID, c.Scope.Component, c.Scope.Area, c.Scope.ItemID,
		c.Name, c.Description, c.ContextID, c.SortOrder, c.CreatedAt, c.UpdatedAt)
	return wrapUniqueViolation(err)
}

func (p *Postgres) DeleteCategory(ctx context.Context, id string) error {
	// Fields and data rows cascade via foreign keys. The remaining
	// categories of the scope are renumbered in the same transaction to
	// close the sort-order gap.
	return db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		var scope field.Scope
		err := tx.QueryRow(ctx, `
			DELETE FROM customfield_categories WHERE id = $1
			RETURNING component, area, item_id`,
			id).Scan(&scope.Component, &scope.Area, &scope.ItemID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE customfield_categories c SET sort_order = ranked.rn - 1
			FROM (
				SELECT id, ROW_NUMBER() OVER (ORDER BY sort_order, created_at) AS rn
				FROM customfield_categories
				WHERE component = $1 AND area = $2 AND item_id = $3
			) ranked
			WHERE c.id = ranked.id`,
			scope.Component, scope.Area, scope.ItemID)
		return err
	})
}

func (p *Postgres) SaveField(ctx context.Context, f *field.Field) error {
	if err := f.Validate(); err != nil {
		return err
	}

	cfg, err := json.Marshal(f.Config)
	if err != nil {
		return fmt.Errorf("store: marshal field config: %w", err)
	}

	f.UpdatedAt = time.Now()
	_, err = p.pool.Exec(ctx, `
		INSERT INTO customfield_fields
			(id, category_id, component, area, item_id, type, short_name, name,
			 description, required, visibility, sort_order, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			category_id = EXCLUDED.category_id,
			short_name = EXCLUDED.short_name,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			required = EXCLUDED.required,
			visibility = EXCLUDED.visibility,
			sort_order = EXCLUDED.sort_order,
			config = EXCLUDED.config,
			updated_at = EXCLUDED.updated_at`,
		f.ID, f.CategoryID, f.Scope.Component, f.Scope.Area, f.Scope.ItemID,
		f.Type, f.ShortName, f.Name, f.Description, f.Required,
		int(f.Visibility), f.SortOrder, cfg, f.CreatedAt, f.UpdatedAt)
	return wrapUniqueViolation(err)
}

func (p *Postgres) DeleteField(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM customfield_fields WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) FieldByShortName(ctx context.Context, scope field.Scope, shortName string) (*field.Field, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, category_id, type, short_name, name, description, required,
		       visibility, sort_order, config, created_at, updated_at
		FROM customfield_fields
		WHERE component = $1 AND area = $2 AND item_id = $3 AND short_name = $4`,
		scope.Component, scope.Area, scope.ItemID, shortName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return scanField(rows, scope)
}

func (p *Postgres) FieldsWithData(ctx context.Context, scope field.Scope, recordID int64) ([]Entry, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT f.id, f.category_id, f.type, f.short_name, f.name, f.description,
		       f.required, f.visibility, f.sort_order, f.config, f.created_at, f.updated_at,
		       d.id, d.value, d.value_format, d.context_id, d.created_at, d.updated_at
		FROM customfield_fields f
		JOIN customfield_categories c ON c.id = f.category_id
		LEFT JOIN customfield_data d ON d.field_id = f.id AND d.record_id = $4
		WHERE f.component = $1 AND f.area = $2 AND f.item_id = $3
		ORDER BY c.sort_order, c.created_at, f.sort_order, f.created_at`,
		scope.Component, scope.Area, scope.ItemID, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		f := &field.Field{Scope: scope}
		var cfg []byte
		var visibility int
		var (
			dataID      *string
			value       *string
			valueFormat *int
			contextID   *int64
			createdAt   *time.Time
			updatedAt   *time.Time
		)
		if err := rows.Scan(
			&f.ID, &f.CategoryID, &f.Type, &f.ShortName, &f.Name, &f.Description,
			&f.Required, &visibility, &f.SortOrder, &cfg, &f.CreatedAt, &f.UpdatedAt,
			&dataID, &value, &valueFormat, &contextID, &createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		f.Visibility = field.Visibility(visibility)
		if err := json.Unmarshal(cfg, &f.Config); err != nil {
			return nil, fmt.Errorf("store: unmarshal field config: %w", err)
		}

		entry := Entry{Field: f}
		if dataID != nil {
			entry.Data = &field.Data{
				ID:          *dataID,
				FieldID:     f.ID,
				RecordID:    recordID,
				Value:       *value,
				ValueFormat: *valueFormat,
				ContextID:   *contextID,
				CreatedAt:   *createdAt,
				UpdatedAt:   *updatedAt,
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (p *Postgres) Data(ctx context.Context, fieldID string, recordID int64) (*field.Data, error) {
	d := &field.Data{FieldID: fieldID, RecordID: recordID}
	err := p.pool.QueryRow(ctx, `
		SELECT id, value, value_format, context_id, created_at, updated_at
		FROM customfield_data
		WHERE field_id = $1 AND record_id = $2`,
		fieldID, recordID).Scan(&d.ID, &d.Value, &d.ValueFormat, &d.ContextID, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Postgres) SaveData(ctx context.Context, d *field.Data) error {
	if err := d.Validate(); err != nil {
		return err
	}

	d.UpdatedAt = time.Now()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO customfield_data
			(id, field_id, record_id, context_id, value, value_format, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (field_id, record_id) DO UPDATE SET
			value = EXCLUDED.value,
			value_format = EXCLUDED.value_format,
			context_id = EXCLUDED.context_id,
			updated_at = EXCLUDED.updated_at`,
		d.ID, d.FieldID, d.RecordID, d.ContextID, d.Value, d.ValueFormat, d.CreatedAt, d.UpdatedAt)
	return err
}

func (p *Postgres) DeleteData(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM customfield_data WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteOrphanData(ctx context.Context) (int64, error) {
	// The field FK cascades deletes, so orphans only appear if rows were
	// imported out of band. The sweep keeps the table honest either way.
	tag, err := p.pool.Exec(ctx, `
		DELETE FROM customfield_data d
		WHERE NOT EXISTS (SELECT 1 FROM customfield_fields f WHERE f.id = d.field_id)`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanField(rows pgx.Rows, scope field.Scope) (*field.Field, error) {
	f := &field.Field{Scope: scope}
	var cfg []byte
	var visibility int
	if err := rows.Scan(
		&f.ID, &f.CategoryID, &f.Type, &f.ShortName, &f.Name, &f.Description,
		&f.Required, &visibility, &f.SortOrder, &cfg, &f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	f.Visibility = field.Visibility(visibility)
	if err := json.Unmarshal(cfg, &f.Config); err != nil {
		return nil, fmt.Errorf("store: unmarshal field config: %w", err)
	}
	return f, nil
}

func wrapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return errors.Join(field.ErrValidation, ErrDuplicateName, err)
	}
	return err
}
