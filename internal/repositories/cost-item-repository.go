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

type dbCostItem struct {
	ID        uint64
	Name      string
	Unit      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt sql.NullTime
}

func (db *dbCostItem) ToDTO() dto.CostItemDTO {
	return dto.CostItemDTO{
		ID:        db.ID,
		Name:      db.Name,
		Unit:      db.Unit,
		IsActive:  db.IsActive,
		CreatedAt: db.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		UpdatedAt: utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const costItemFields = "id, name, unit, is_active, created_at, updated_at"

type CostItemRepositoryInterface interface {
	GetCostItems(ctx context.Context, limit, offset uint64, search string) ([]dto.CostItemDTO, uint64, error)
	FindCostItem(ctx context.Context, id uint64) (*dto.CostItemDTO, error)
	CreateCostItem(ctx context.Context, payload dto.CreateCostItemDTO) (*dto.CostItemDTO, error)
	UpdateCostItem(ctx context.Context, id uint64, payload dto.UpdateCostItemDTO) (*dto.CostItemDTO, error)
	DeactivateCostItem(ctx context.Context, id uint64) error
}

type costItemRepository struct{ storage *pgxpool.Pool }

func NewCostItemRepository(storage *pgxpool.Pool) CostItemRepositoryInterface {
	return &costItemRepository{storage: storage}
}

func (r *costItemRepository) GetCostItems(ctx context.Context, limit, offset uint64, search string) ([]dto.CostItemDTO, uint64, error) {
	whereClause := ""
	var args []interface{}
	if search != "" {
		whereClause = "WHERE name ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM cost_items %s", whereClause), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.CostItemDTO{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM cost_items %s ORDER BY name LIMIT $%d OFFSET $%d",
		costItemFields, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]dto.CostItemDTO, 0)
	for rows.Next() {
		var dbRow dbCostItem
		if err := rows.Scan(&dbRow.ID, &dbRow.Name, &dbRow.Unit, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, dbRow.ToDTO())
	}
	return items, total, rows.Err()
}

func (r *costItemRepository) FindCostItem(ctx context.Context, id uint64) (*dto.CostItemDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM cost_items WHERE id = $1", costItemFields)
	var dbRow dbCostItem
	err := r.storage.QueryRow(ctx, query, id).Scan(&dbRow.ID, &dbRow.Name, &dbRow.Unit, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	itemDTO := dbRow.ToDTO()
	return &itemDTO, nil
}

func (r *costItemRepository) CreateCostItem(ctx context.Context, payload dto.CreateCostItemDTO) (*dto.CostItemDTO, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, "INSERT INTO cost_items (name, unit) VALUES($1, $2) RETURNING id",
		payload.Name, payload.Unit).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return r.FindCostItem(ctx, id)
}

func (r *costItemRepository) UpdateCostItem(ctx context.Context, id uint64, payload dto.UpdateCostItemDTO) (*dto.CostItemDTO, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	if payload.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		args = append(args, *payload.Name)
		argID++
	}
	if payload.Unit != nil {
		setClauses = append(setClauses, fmt.Sprintf("unit = $%d", argID))
		args = append(args, *payload.Unit)
		argID++
	}
	if payload.IsActive != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", argID))
		args = append(args, *payload.IsActive)
		argID++
	}
	if len(setClauses) == 0 {
		return r.FindCostItem(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE cost_items SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)
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
	return r.FindCostItem(ctx, id)
}

func (r *costItemRepository) DeactivateCostItem(ctx context.Context, id uint64) error {
	var referenced uint64
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM workshop_cost_items WHERE cost_item_id = $1 AND is_active = TRUE", id).Scan(&referenced)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return apperrors.ErrCostItemInUse
	}

	result, err := r.storage.Exec(ctx, "UPDATE cost_items SET is_active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
