package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"atolye-takip/internal/dto"
	apperrors "atolye-takip/pkg/errors"
	"atolye-takip/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbFirm struct {
	ID          uint64
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   sql.NullTime
}

func (db *dbFirm) ToDTO() dto.FirmDTO {
	return dto.FirmDTO{
		ID:          db.ID,
		Name:        db.Name,
		ContactName: db.ContactName,
		Phone:       db.Phone,
		Email:       db.Email,
		Address:     db.Address,
		IsActive:    db.IsActive,
		CreatedAt:   db.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		UpdatedAt:   utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const (
	firmTable  = "firms"
	firmFields = "id, name, contact_name, phone, email, address, is_active, created_at, updated_at"
)

type FirmRepositoryInterface interface {
	GetFirms(ctx context.Context, limit, offset uint64, search string) ([]dto.FirmDTO, uint64, error)
	FindFirm(ctx context.Context, id uint64) (*dto.FirmDTO, error)
	CreateFirm(ctx context.Context, payload dto.CreateFirmDTO) (*dto.FirmDTO, error)
	UpdateFirm(ctx context.Context, id uint64, payload dto.UpdateFirmDTO) (*dto.FirmDTO, error)
	DeactivateFirm(ctx context.Context, id uint64) error
}

type firmRepository struct{ storage *pgxpool.Pool }

func NewFirmRepository(storage *pgxpool.Pool) FirmRepositoryInterface {
	return &firmRepository{storage: storage}
}

func (r *firmRepository) scanRow(row pgx.Row) (*dbFirm, error) {
	var dbRow dbFirm
	err := row.Scan(&dbRow.ID, &dbRow.Name, &dbRow.ContactName, &dbRow.Phone, &dbRow.Email,
		&dbRow.Address, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &dbRow, nil
}

func (r *firmRepository) GetFirms(ctx context.Context, limit, offset uint64, search string) ([]dto.FirmDTO, uint64, error) {
	var total uint64
	var args []interface{}
	whereClause := ""

	if search != "" {
		whereClause = "WHERE name ILIKE $1 OR contact_name ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", firmTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.FirmDTO{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY name LIMIT $%d OFFSET $%d",
		firmFields, firmTable, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	firms := make([]dto.FirmDTO, 0)
	for rows.Next() {
		var dbRow dbFirm
		if err := rows.Scan(&dbRow.ID, &dbRow.Name, &dbRow.ContactName, &dbRow.Phone, &dbRow.Email,
			&dbRow.Address, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		firms = append(firms, dbRow.ToDTO())
	}
	return firms, total, rows.Err()
}

func (r *firmRepository) FindFirm(ctx context.Context, id uint64) (*dto.FirmDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", firmFields, firmTable)
	dbRow, err := r.scanRow(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	firmDTO := dbRow.ToDTO()
	return &firmDTO, nil
}

func (r *firmRepository) CreateFirm(ctx context.Context, payload dto.CreateFirmDTO) (*dto.FirmDTO, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, contact_name, phone, email, address) VALUES($1, $2, $3, $4, $5) RETURNING %s",
		firmTable, firmFields)
	dbRow, err := r.scanRow(r.storage.QueryRow(ctx, query, payload.Name, payload.ContactName, payload.Phone, payload.Email, payload.Address))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	firmDTO := dbRow.ToDTO()
	return &firmDTO, nil
}

func (r *firmRepository) UpdateFirm(ctx context.Context, id uint64, payload dto.UpdateFirmDTO) (*dto.FirmDTO, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	apply := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argID))
		args = append(args, val)
		argID++
	}

	if payload.Name != nil {
		apply("name", *payload.Name)
	}
	if payload.ContactName != nil {
		apply("contact_name", *payload.ContactName)
	}
	if payload.Phone != nil {
		apply("phone", *payload.Phone)
	}
	if payload.Email != nil {
		apply("email", *payload.Email)
	}
	if payload.Address != nil {
		apply("address", *payload.Address)
	}
	if payload.IsActive != nil {
		apply("is_active", *payload.IsActive)
	}
	if len(setClauses) == 0 {
		return r.FindFirm(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		firmTable, strings.Join(setClauses, ", "), argID, firmFields)
	args = append(args, id)

	dbRow, err := r.scanRow(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	firmDTO := dbRow.ToDTO()
	return &firmDTO, nil
}

func (r *firmRepository) DeactivateFirm(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("UPDATE %s SET is_active = FALSE, updated_at = NOW() WHERE id = $1", firmTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
