package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"shaft-planner/internal/archive/models"
)

// ============================================================
// SQLite Repository
// ============================================================

var ErrNotFound = errors.New("drawing not found")

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет миграции архива.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Ping проверяет, что база доступна (для readiness).
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) Create(ctx context.Context, d *models.Drawing) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO drawings (id, name, kind, format, request, lifts, total_width, total_depth)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, d.ID, d.Name, d.Kind, d.Format, string(d.Request), d.Lifts, d.TotalWidth, d.TotalDepth)
	if err != nil {
		return fmt.Errorf("insert drawing: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `SELECT created_at FROM drawings WHERE id = ?`, d.ID)
	return row.Scan(&d.CreatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Drawing, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, kind, format, request, lifts, total_width, total_depth, created_at
        FROM drawings
        WHERE id = ?
    `, id)

	var (
		d       models.Drawing
		request string
	)
	if err := row.Scan(&d.ID, &d.Name, &d.Kind, &d.Format, &request, &d.Lifts, &d.TotalWidth, &d.TotalDepth, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d.Request = []byte(request)
	return &d, nil
}

// List отдаёт чертежи от новых к старым, без тела запроса.
func (r *Repository) List(ctx context.Context, kind string) ([]models.Drawing, error) {
	query := `
        SELECT id, name, kind, format, lifts, total_width, total_depth, created_at
        FROM drawings`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	defer rows.Close()

	out := []models.Drawing{}
	for rows.Next() {
		var d models.Drawing
		if err := rows.Scan(&d.ID, &d.Name, &d.Kind, &d.Format, &d.Lifts, &d.TotalWidth, &d.TotalDepth, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drawings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
