package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/entities"
	apperrors "atolye-takip/pkg/errors"
	"atolye-takip/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbModelCost struct {
	ID           uint64
	OrderID      uint64
	WorkshopID   uint64
	WorkshopName string
	CostItemID   uint64
	CostItemName string
	QuantityUsed float64
	Quantity2    sql.NullFloat64
	Unit         sql.NullString
	Unit2        sql.NullString
	ActualPrice  float64
	Currency     string
	TotalCost    float64
	Note         sql.NullString
	CreatedAt    time.Time
}

func (db *dbModelCost) ToDTO() dto.ModelCostDTO {
	return dto.ModelCostDTO{
		ID:           db.ID,
		OrderID:      db.OrderID,
		Workshop:     dto.ShortWorkshopDTO{ID: db.WorkshopID, Name: db.WorkshopName},
		CostItemID:   db.CostItemID,
		CostItemName: db.CostItemName,
		QuantityUsed: db.QuantityUsed,
		Quantity2:    null.NewFloat64(db.Quantity2.Float64, db.Quantity2.Valid),
		Unit:         utils.NullStringToString(db.Unit),
		Unit2:        utils.NullStringToString(db.Unit2),
		ActualPrice:  db.ActualPrice,
		Currency:     db.Currency,
		TotalCost:    db.TotalCost,
		Note:         utils.NullStringToString(db.Note),
		CreatedAt:    db.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}
}

const modelCostFields = `mc.id, mc.order_id, mc.workshop_id, w.name, mc.cost_item_id, ci.name,
	mc.quantity_used, mc.quantity2, mc.unit, mc.unit2, mc.actual_price, mc.currency, mc.total_cost,
	mc.note, mc.created_at`

type ModelCostRepositoryInterface interface {
	CreateModelCost(ctx context.Context, record entities.ModelCost) (*dto.ModelCostDTO, error)
	GetOrderCosts(ctx context.Context, orderID uint64) ([]dto.ModelCostDTO, error)
	GetWorkshopCostReport(ctx context.Context, from, to *time.Time) ([]dto.WorkshopCostReportRowDTO, error)
}

type modelCostRepository struct{ storage *pgxpool.Pool }

func NewModelCostRepository(storage *pgxpool.Pool) ModelCostRepositoryInterface {
	return &modelCostRepository{storage: storage}
}

func (r *modelCostRepository) CreateModelCost(ctx context.Context, record entities.ModelCost) (*dto.ModelCostDTO, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO model_costs (order_id, workshop_id, cost_item_id, quantity_used, quantity2, unit, unit2,
			actual_price, currency, total_cost, note)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		record.OrderID, record.WorkshopID, record.CostItemID, record.QuantityUsed, record.Quantity2,
		record.Unit, record.Unit2, record.ActualPrice, record.Currency, record.TotalCost, record.Note).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewHttpError(400, "order, workshop or cost item does not exist", err, nil)
		}
		return nil, err
	}
	return r.find(ctx, id)
}

func (r *modelCostRepository) find(ctx context.Context, id uint64) (*dto.ModelCostDTO, error) {
	query := `SELECT ` + modelCostFields + ` FROM model_costs mc
		JOIN workshops w ON mc.workshop_id = w.id
		JOIN cost_items ci ON mc.cost_item_id = ci.id
		WHERE mc.id = $1`
	var dbRow dbModelCost
	err := r.storage.QueryRow(ctx, query, id).Scan(&dbRow.ID, &dbRow.OrderID, &dbRow.WorkshopID, &dbRow.WorkshopName,
		&dbRow.CostItemID, &dbRow.CostItemName, &dbRow.QuantityUsed, &dbRow.Quantity2, &dbRow.Unit, &dbRow.Unit2,
		&dbRow.ActualPrice, &dbRow.Currency, &dbRow.TotalCost, &dbRow.Note, &dbRow.CreatedAt)
	if err != nil {
		return nil, err
	}
	costDTO := dbRow.ToDTO()
	return &costDTO, nil
}

func (r *modelCostRepository) GetOrderCosts(ctx context.Context, orderID uint64) ([]dto.ModelCostDTO, error) {
	query := `SELECT ` + modelCostFields + ` FROM model_costs mc
		JOIN workshops w ON mc.workshop_id = w.id
		JOIN cost_items ci ON mc.cost_item_id = ci.id
		WHERE mc.order_id = $1 ORDER BY mc.created_at, mc.id`

	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	costs := make([]dto.ModelCostDTO, 0)
	for rows.Next() {
		var dbRow dbModelCost
		if err := rows.Scan(&dbRow.ID, &dbRow.OrderID, &dbRow.WorkshopID, &dbRow.WorkshopName,
			&dbRow.CostItemID, &dbRow.CostItemName, &dbRow.QuantityUsed, &dbRow.Quantity2, &dbRow.Unit, &dbRow.Unit2,
			&dbRow.ActualPrice, &dbRow.Currency, &dbRow.TotalCost, &dbRow.Note, &dbRow.CreatedAt); err != nil {
			return nil, err
		}
		costs = append(costs, dbRow.ToDTO())
	}
	return costs, rows.Err()
}

// GetWorkshopCostReport aggregates saved cost records per workshop and
// currency. Totals are kept in their original currency; conversion to the
// base currency happens in the report service where rates are available.
func (r *modelCostRepository) GetWorkshopCostReport(ctx context.Context, from, to *time.Time) ([]dto.WorkshopCostReportRowDTO, error) {
	query := `SELECT mc.workshop_id, w.name, mc.currency, COUNT(*), COALESCE(SUM(mc.total_cost), 0)
		FROM model_costs mc
		JOIN workshops w ON mc.workshop_id = w.id
		WHERE ($1::timestamptz IS NULL OR mc.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR mc.created_at < $2)
		GROUP BY mc.workshop_id, w.name, mc.currency
		ORDER BY w.name, mc.currency`

	rows, err := r.storage.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]dto.WorkshopCostReportRowDTO, 0)
	for rows.Next() {
		var row dto.WorkshopCostReportRowDTO
		if err := rows.Scan(&row.WorkshopID, &row.WorkshopName, &row.Currency, &row.RecordCount, &row.TotalCost); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
