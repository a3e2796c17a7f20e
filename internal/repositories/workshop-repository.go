package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"atolye-takip/internal/entities"
	apperrors "atolye-takip/pkg/errors"
	"atolye-takip/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbWorkshop struct {
	ID          uint64
	Name        string
	Location    string
	ContactName string
	Phone       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   sql.NullTime
}

func (db *dbWorkshop) ToEntity() entities.Workshop {
	return entities.Workshop{
		ID:          db.ID,
		Name:        db.Name,
		Location:    db.Location,
		ContactName: db.ContactName,
		Phone:       db.Phone,
		IsActive:    db.IsActive,
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   utils.NullTimeToPtr(db.UpdatedAt),
	}
}

const (
	workshopTable  = "workshops"
	workshopFields = "id, name, location, contact_name, phone, is_active, created_at, updated_at"
)

type WorkshopRepositoryInterface interface {
	GetWorkshops(ctx context.Context, onlyActive bool) ([]entities.Workshop, error)
	FindWorkshop(ctx context.Context, id uint64) (*entities.Workshop, error)
	CreateWorkshop(ctx context.Context, name, location, contactName, phone string) (*entities.Workshop, error)
	UpdateWorkshop(ctx context.Context, id uint64, name, location, contactName, phone *string, isActive *bool) (*entities.Workshop, error)
	DeactivateWorkshop(ctx context.Context, id uint64) error
}

type workshopRepository struct{ storage *pgxpool.Pool }

func NewWorkshopRepository(storage *pgxpool.Pool) WorkshopRepositoryInterface {
	return &workshopRepository{storage: storage}
}

func (r *workshopRepository) scan(row pgx.Row) (*dbWorkshop, error) {
	var dbRow dbWorkshop
	err := row.Scan(&dbRow.ID, &dbRow.Name, &dbRow.Location, &dbRow.ContactName, &dbRow.Phone,
		&dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &dbRow, nil
}

func (r *workshopRepository) GetWorkshops(ctx context.Context, onlyActive bool) ([]entities.Workshop, error) {
	whereClause := ""
	if onlyActive {
		whereClause = "WHERE is_active = TRUE"
	}
	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY name", workshopFields, workshopTable, whereClause)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workshops := make([]entities.Workshop, 0)
	for rows.Next() {
		var dbRow dbWorkshop
		if err := rows.Scan(&dbRow.ID, &dbRow.Name, &dbRow.Location, &dbRow.ContactName, &dbRow.Phone,
			&dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, err
		}
		workshops = append(workshops, dbRow.ToEntity())
	}
	return workshops, rows.Err()
}

func (r *workshopRepository) FindWorkshop(ctx context.Context, id uint64) (*entities.Workshop, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", workshopFields, workshopTable)
	dbRow, err := r.scan(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	workshop := dbRow.ToEntity()
	return &workshop, nil
}

func (r *workshopRepository) CreateWorkshop(ctx context.Context, name, location, contactName, phone string) (*entities.Workshop, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, location, contact_name, phone) VALUES($1, $2, $3, $4) RETURNING %s",
		workshopTable, workshopFields)
	dbRow, err := r.scan(r.storage.QueryRow(ctx, query, name, location, contactName, phone))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	workshop := dbRow.ToEntity()
	return &workshop, nil
}

func (r *workshopRepository) UpdateWorkshop(ctx context.Context, id uint64, name, location, contactName, phone *string, isActive *bool) (*entities.Workshop, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	apply := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argID))
		args = append(args, val)
		argID++
	}

	if name != nil {
		apply("name", *name)
	}
	if location != nil {
		apply("location", *location)
	}
	if contactName != nil {
		apply("contact_name", *contactName)
	}
	if phone != nil {
		apply("phone", *phone)
	}
	if isActive != nil {
		apply("is_active", *isActive)
	}
	if len(setClauses) == 0 {
		return r.FindWorkshop(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		workshopTable, strings.Join(setClauses, ", "), argID, workshopFields)
	args = append(args, id)

	dbRow, err := r.scan(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	workshop := dbRow.ToEntity()
	return &workshop, nil
}

func (r *workshopRepository) DeactivateWorkshop(ctx context.Context, id uint64) error {
	var assigned uint64
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM orders WHERE workshop_id = $1 AND status = 'in_progress' AND is_active = TRUE", id).Scan(&assigned)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return apperrors.ErrWorkshopInUse
	}

	result, err := r.storage.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET is_active = FALSE, updated_at = NOW() WHERE id = $1", workshopTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
