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

type dbModel struct {
	ID        uint64
	FirmID    uint64
	FirmName  string
	Name      string
	Code      string
	ImagePath string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt sql.NullTime
}

func (db *dbModel) ToDTO() dto.ModelDTO {
	return dto.ModelDTO{
		ID:        db.ID,
		Firm:      dto.ShortFirmDTO{ID: db.FirmID, Name: db.FirmName},
		Name:      db.Name,
		Code:      db.Code,
		ImagePath: db.ImagePath,
		IsActive:  db.IsActive,
		CreatedAt: db.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		UpdatedAt: utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const modelFields = "m.id, m.firm_id, f.name, m.name, m.code, m.image_path, m.is_active, m.created_at, m.updated_at"

type ModelRepositoryInterface interface {
	GetModels(ctx context.Context, limit, offset uint64, search string, firmID uint64) ([]dto.ModelDTO, uint64, error)
	FindModel(ctx context.Context, id uint64) (*dto.ModelDTO, error)
	CreateModel(ctx context.Context, payload dto.CreateModelDTO) (*dto.ModelDTO, error)
	UpdateModel(ctx context.Context, id uint64, payload dto.UpdateModelDTO, imagePath *string) (*dto.ModelDTO, error)
	DeactivateModel(ctx context.Context, id uint64) error
}

type modelRepository struct{ storage *pgxpool.Pool }

func NewModelRepository(storage *pgxpool.Pool) ModelRepositoryInterface {
	return &modelRepository{storage: storage}
}

func (r *modelRepository) scan(row pgx.Row) (*dbModel, error) {
	var dbRow dbModel
	err := row.Scan(&dbRow.ID, &dbRow.FirmID, &dbRow.FirmName, &dbRow.Name, &dbRow.Code,
		&dbRow.ImagePath, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &dbRow, nil
}

func (r *modelRepository) GetModels(ctx context.Context, limit, offset uint64, search string, firmID uint64) ([]dto.ModelDTO, uint64, error) {
	var conditions []string
	var args []interface{}

	if search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("(m.name ILIKE $%d OR m.code ILIKE $%d)", len(args), len(args)))
	}
	if firmID != 0 {
		args = append(args, firmID)
		conditions = append(conditions, fmt.Sprintf("m.firm_id = $%d", len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM models m %s", whereClause)
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.ModelDTO{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM models m JOIN firms f ON m.firm_id = f.id %s ORDER BY m.name LIMIT $%d OFFSET $%d`,
		modelFields, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	models := make([]dto.ModelDTO, 0)
	for rows.Next() {
		var dbRow dbModel
		if err := rows.Scan(&dbRow.ID, &dbRow.FirmID, &dbRow.FirmName, &dbRow.Name, &dbRow.Code,
			&dbRow.ImagePath, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		models = append(models, dbRow.ToDTO())
	}
	return models, total, rows.Err()
}

func (r *modelRepository) FindModel(ctx context.Context, id uint64) (*dto.ModelDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM models m JOIN firms f ON m.firm_id = f.id WHERE m.id = $1", modelFields)
	dbRow, err := r.scan(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	modelDTO := dbRow.ToDTO()
	return &modelDTO, nil
}

func (r *modelRepository) CreateModel(ctx context.Context, payload dto.CreateModelDTO) (*dto.ModelDTO, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO models (firm_id, name, code) VALUES($1, $2, $3) RETURNING id",
		payload.FirmID, payload.Name, payload.Code).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, apperrors.ErrConflict
			case "23503":
				return nil, apperrors.ErrNotFound
			}
		}
		return nil, err
	}
	return r.FindModel(ctx, id)
}

func (r *modelRepository) UpdateModel(ctx context.Context, id uint64, payload dto.UpdateModelDTO, imagePath *string) (*dto.ModelDTO, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	apply := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argID))
		args = append(args, val)
		argID++
	}

	if payload.FirmID != nil {
		apply("firm_id", *payload.FirmID)
	}
	if payload.Name != nil {
		apply("name", *payload.Name)
	}
	if payload.Code != nil {
		apply("code", *payload.Code)
	}
	if imagePath != nil {
		apply("image_path", *imagePath)
	}
	if payload.IsActive != nil {
		apply("is_active", *payload.IsActive)
	}
	if len(setClauses) == 0 {
		return r.FindModel(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE models SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindModel(ctx, id)
}

func (r *modelRepository) DeactivateModel(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "UPDATE models SET is_active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
