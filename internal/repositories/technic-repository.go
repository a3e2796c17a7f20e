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

type dbTechnic struct {
	ID          uint64
	Name        string
	Description sql.NullString
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   sql.NullTime
}

func (db *dbTechnic) ToDTO() dto.TechnicDTO {
	return dto.TechnicDTO{
		ID:          db.ID,
		Name:        db.Name,
		Description: utils.NullStringToString(db.Description),
		IsActive:    db.IsActive,
		CreatedAt:   db.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		UpdatedAt:   utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const technicFields = "id, name, description, is_active, created_at, updated_at"

type TechnicRepositoryInterface interface {
	GetTechnics(ctx context.Context, limit, offset uint64, search string) ([]dto.TechnicDTO, uint64, error)
	FindTechnic(ctx context.Context, id uint64) (*dto.TechnicDTO, error)
	CreateTechnic(ctx context.Context, payload dto.CreateTechnicDTO) (*dto.TechnicDTO, error)
	UpdateTechnic(ctx context.Context, id uint64, payload dto.UpdateTechnicDTO) (*dto.TechnicDTO, error)
	DeactivateTechnic(ctx context.Context, id uint64) error
}

type technicRepository struct{ storage *pgxpool.Pool }

func NewTechnicRepository(storage *pgxpool.Pool) TechnicRepositoryInterface {
	return &technicRepository{storage: storage}
}

func (r *technicRepository) GetTechnics(ctx context.Context, limit, offset uint64, search string) ([]dto.TechnicDTO, uint64, error) {
	whereClause := ""
	var args []interface{}
	if search != "" {
		whereClause = "WHERE name ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM technics %s", whereClause), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.TechnicDTO{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM technics %s ORDER BY name LIMIT $%d OFFSET $%d",
		technicFields, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	technics := make([]dto.TechnicDTO, 0)
	for rows.Next() {
		var dbRow dbTechnic
		if err := rows.Scan(&dbRow.ID, &dbRow.Name, &dbRow.Description, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		technics = append(technics, dbRow.ToDTO())
	}
	return technics, total, rows.Err()
}

func (r *technicRepository) FindTechnic(ctx context.Context, id uint64) (*dto.TechnicDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM technics WHERE id = $1", technicFields)
	var dbRow dbTechnic
	err := r.storage.QueryRow(ctx, query, id).Scan(&dbRow.ID, &dbRow.Name, &dbRow.Description, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	technicDTO := dbRow.ToDTO()
	return &technicDTO, nil
}

func (r *technicRepository) CreateTechnic(ctx context.Context, payload dto.CreateTechnicDTO) (*dto.TechnicDTO, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, "INSERT INTO technics (name, description) VALUES($1, $2) RETURNING id",
		payload.Name, payload.Description).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return r.FindTechnic(ctx, id)
}

func (r *technicRepository) UpdateTechnic(ctx context.Context, id uint64, payload dto.UpdateTechnicDTO) (*dto.TechnicDTO, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	if payload.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		args = append(args, *payload.Name)
		argID++
	}
	if payload.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argID))
		args = append(args, *payload.Description)
		argID++
	}
	if payload.IsActive != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", argID))
		args = append(args, *payload.IsActive)
		argID++
	}
	if len(setClauses) == 0 {
		return r.FindTechnic(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE technics SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindTechnic(ctx, id)
}

func (r *technicRepository) DeactivateTechnic(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "UPDATE technics SET is_active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
