package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/entities"
	apperrors "atolye-takip/pkg/errors"
	"atolye-takip/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbWorkshopCostItem struct {
	ID              uint64
	WorkshopID      uint64
	WorkshopName    string
	CostItemID      uint64
	CostItemName    string
	CostItemUnit    string
	Price           float64
	Currency        string
	CalculationType string
	Priority        sql.NullInt64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       sql.NullTime
}

func (db *dbWorkshopCostItem) ToDTO() dto.WorkshopCostItemDTO {
	return dto.WorkshopCostItemDTO{
		ID:              db.ID,
		Workshop:        dto.ShortWorkshopDTO{ID: db.WorkshopID, Name: db.WorkshopName},
		CostItemID:      db.CostItemID,
		CostItemName:    db.CostItemName,
		CostItemUnit:    db.CostItemUnit,
		Price:           db.Price,
		Currency:        db.Currency,
		CalculationType: db.CalculationType,
		Priority:        null.NewInt(int(db.Priority.Int64), db.Priority.Valid),
		IsActive:        db.IsActive,
		CreatedAt:       db.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		UpdatedAt:       utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

func (db *dbWorkshopCostItem) ToEntity() entities.WorkshopCostItem {
	var priority *int
	if db.Priority.Valid {
		p := int(db.Priority.Int64)
		priority = &p
	}
	return entities.WorkshopCostItem{
		ID:              db.ID,
		WorkshopID:      db.WorkshopID,
		CostItemID:      db.CostItemID,
		CostItemName:    db.CostItemName,
		CostItemUnit:    db.CostItemUnit,
		Price:           db.Price,
		Currency:        db.Currency,
		CalculationType: entities.CalculationType(db.CalculationType),
		Priority:        priority,
		IsActive:        db.IsActive,
		CreatedAt:       db.CreatedAt,
		UpdatedAt:       utils.NullTimeToPtr(db.UpdatedAt),
	}
}

const workshopCostItemFields = `wci.id, wci.workshop_id, w.name, wci.cost_item_id, ci.name, ci.unit,
	wci.price, wci.currency, wci.calculation_type, wci.priority, wci.is_active, wci.created_at, wci.updated_at`

type WorkshopCostItemRepositoryInterface interface {
	GetWorkshopCostItems(ctx context.Context, workshopID uint64, limit, offset uint64) ([]dto.WorkshopCostItemDTO, uint64, error)
	GetCatalogForWorkshop(ctx context.Context, workshopID uint64) ([]entities.WorkshopCostItem, error)
	FindWorkshopCostItem(ctx context.Context, id uint64) (*dto.WorkshopCostItemDTO, error)
	CreateWorkshopCostItem(ctx context.Context, payload dto.CreateWorkshopCostItemDTO) (*dto.WorkshopCostItemDTO, error)
	UpdateWorkshopCostItem(ctx context.Context, id uint64, payload dto.UpdateWorkshopCostItemDTO) (*dto.WorkshopCostItemDTO, error)
	DeactivateWorkshopCostItem(ctx context.Context, id uint64) error
}

type workshopCostItemRepository struct{ storage *pgxpool.Pool }

func NewWorkshopCostItemRepository(storage *pgxpool.Pool) WorkshopCostItemRepositoryInterface {
	return &workshopCostItemRepository{storage: storage}
}

func (r *workshopCostItemRepository) scanRows(rows pgx.Rows) ([]dbWorkshopCostItem, error) {
	defer rows.Close()
	var items []dbWorkshopCostItem
	for rows.Next() {
		var dbRow dbWorkshopCostItem
		if err := rows.Scan(&dbRow.ID, &dbRow.WorkshopID, &dbRow.WorkshopName, &dbRow.CostItemID,
			&dbRow.CostItemName, &dbRow.CostItemUnit, &dbRow.Price, &dbRow.Currency, &dbRow.CalculationType,
			&dbRow.Priority, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, dbRow)
	}
	return items, rows.Err()
}

func (r *workshopCostItemRepository) GetWorkshopCostItems(ctx context.Context, workshopID uint64, limit, offset uint64) ([]dto.WorkshopCostItemDTO, uint64, error) {
	var conditions []string
	var args []interface{}
	if workshopID != 0 {
		args = append(args, workshopID)
		conditions = append(conditions, fmt.Sprintf("wci.workshop_id = $%d", len(args)))
	}
	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM workshop_cost_items wci %s", whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.WorkshopCostItemDTO{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM workshop_cost_items wci
		JOIN workshops w ON wci.workshop_id = w.id
		JOIN cost_items ci ON wci.cost_item_id = ci.id
		%s ORDER BY wci.priority NULLS LAST, ci.name LIMIT $%d OFFSET $%d`,
		workshopCostItemFields, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	dbRows, err := r.scanRows(rows)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.WorkshopCostItemDTO, 0, len(dbRows))
	for i := range dbRows {
		items = append(items, dbRows[i].ToDTO())
	}
	return items, total, nil
}

// GetCatalogForWorkshop returns every binding of the workshop, active or
// not. Filtering for the transfer catalog happens in the transfer package.
func (r *workshopCostItemRepository) GetCatalogForWorkshop(ctx context.Context, workshopID uint64) ([]entities.WorkshopCostItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM workshop_cost_items wci
		JOIN workshops w ON wci.workshop_id = w.id
		JOIN cost_items ci ON wci.cost_item_id = ci.id
		WHERE wci.workshop_id = $1 ORDER BY wci.priority NULLS LAST, ci.name`, workshopCostItemFields)

	rows, err := r.storage.Query(ctx, query, workshopID)
	if err != nil {
		return nil, err
	}
	dbRows, err := r.scanRows(rows)
	if err != nil {
		return nil, err
	}

	items := make([]entities.WorkshopCostItem, 0, len(dbRows))
	for i := range dbRows {
		items = append(items, dbRows[i].ToEntity())
	}
	return items, nil
}

func (r *workshopCostItemRepository) FindWorkshopCostItem(ctx context.Context, id uint64) (*dto.WorkshopCostItemDTO, error) {
	query := fmt.Sprintf(`SELECT %s FROM workshop_cost_items wci
		JOIN workshops w ON wci.workshop_id = w.id
		JOIN cost_items ci ON wci.cost_item_id = ci.id
		WHERE wci.id = $1`, workshopCostItemFields)

	var dbRow dbWorkshopCostItem
	err := r.storage.QueryRow(ctx, query, id).Scan(&dbRow.ID, &dbRow.WorkshopID, &dbRow.WorkshopName,
		&dbRow.CostItemID, &dbRow.CostItemName, &dbRow.CostItemUnit, &dbRow.Price, &dbRow.Currency,
		&dbRow.CalculationType, &dbRow.Priority, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	itemDTO := dbRow.ToDTO()
	return &itemDTO, nil
}

func (r *workshopCostItemRepository) CreateWorkshopCostItem(ctx context.Context, payload dto.CreateWorkshopCostItemDTO) (*dto.WorkshopCostItemDTO, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO workshop_cost_items (workshop_id, cost_item_id, price, currency, calculation_type, priority)
		 VALUES($1, $2, $3, $4, $5, $6) RETURNING id`,
		payload.WorkshopID, payload.CostItemID, payload.Price, payload.Currency, payload.CalculationType, payload.Priority).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, apperrors.ErrConflict
			case "23503":
				return nil, apperrors.NewHttpError(400, "workshop or cost item does not exist", err, nil)
			}
		}
		return nil, err
	}
	return r.FindWorkshopCostItem(ctx, id)
}

func (r *workshopCostItemRepository) UpdateWorkshopCostItem(ctx context.Context, id uint64, payload dto.UpdateWorkshopCostItemDTO) (*dto.WorkshopCostItemDTO, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	apply := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argID))
		args = append(args, val)
		argID++
	}

	if payload.Price != nil {
		apply("price", *payload.Price)
	}
	if payload.Currency != nil {
		apply("currency", *payload.Currency)
	}
	if payload.CalculationType != nil {
		apply("calculation_type", *payload.CalculationType)
	}
	if payload.Priority != nil {
		apply("priority", *payload.Priority)
	}
	if payload.IsActive != nil {
		apply("is_active", *payload.IsActive)
	}
	if len(setClauses) == 0 {
		return r.FindWorkshopCostItem(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE workshop_cost_items SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindWorkshopCostItem(ctx, id)
}

func (r *workshopCostItemRepository) DeactivateWorkshopCostItem(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "UPDATE workshop_cost_items SET is_active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
