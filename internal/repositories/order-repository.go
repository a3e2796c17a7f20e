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
	"atolye-takip/pkg/db"
	apperrors "atolye-takip/pkg/errors"
	"atolye-takip/pkg/types"
	"atolye-takip/pkg/utils"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbOrder struct {
	ID           uint64
	FirmID       uint64
	FirmName     string
	ModelID      uint64
	ModelName    string
	ModelCode    string
	Quantity     float64
	Unit         string
	Price        float64
	Currency     string
	WorkshopID   sql.NullInt64
	WorkshopName sql.NullString
	OperatorID   sql.NullInt64
	OperatorName sql.NullString
	Status       string
	Deadline     sql.NullTime
	AcceptedAt   sql.NullTime
	CompletedAt  sql.NullTime
	Note         sql.NullString
	TechnicIDs   []int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    sql.NullTime
}

func (db *dbOrder) technicIDs() []uint64 {
	ids := make([]uint64, 0, len(db.TechnicIDs))
	for _, id := range db.TechnicIDs {
		ids = append(ids, uint64(id))
	}
	return ids
}

func (db *dbOrder) ToDTO() dto.OrderDTO {
	orderDTO := dto.OrderDTO{
		ID:          db.ID,
		Firm:        dto.ShortFirmDTO{ID: db.FirmID, Name: db.FirmName},
		Model:       dto.ShortModelDTO{ID: db.ModelID, Name: db.ModelName, Code: db.ModelCode},
		Quantity:    db.Quantity,
		Unit:        db.Unit,
		Price:       db.Price,
		Currency:    db.Currency,
		Status:      db.Status,
		Deadline:    utils.NullTimeToEmptyString(db.Deadline),
		AcceptedAt:  utils.NullTimeToEmptyString(db.AcceptedAt),
		CompletedAt: utils.NullTimeToEmptyString(db.CompletedAt),
		Note:        utils.NullStringToString(db.Note),
		TechnicIDs:  db.technicIDs(),
		Images:      []dto.OrderImageDTO{},
		IsActive:    db.IsActive,
		CreatedAt:   db.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		UpdatedAt:   utils.NullTimeToEmptyString(db.UpdatedAt),
	}
	if db.WorkshopID.Valid {
		orderDTO.Workshop = &dto.ShortWorkshopDTO{ID: uint64(db.WorkshopID.Int64), Name: db.WorkshopName.String}
	}
	if db.OperatorID.Valid {
		orderDTO.Operator = &dto.ShortUserDTO{ID: uint64(db.OperatorID.Int64), FullName: db.OperatorName.String}
	}
	return orderDTO
}

func (db *dbOrder) ToEntity() entities.Order {
	return entities.Order{
		ID:          db.ID,
		FirmID:      db.FirmID,
		ModelID:     db.ModelID,
		Quantity:    db.Quantity,
		Unit:        db.Unit,
		Price:       db.Price,
		Currency:    db.Currency,
		WorkshopID:  utils.NullInt64ToPtr(db.WorkshopID),
		OperatorID:  utils.NullInt64ToPtr(db.OperatorID),
		Status:      entities.OrderStatus(db.Status),
		Deadline:    utils.NullTimeToPtr(db.Deadline),
		AcceptedAt:  utils.NullTimeToPtr(db.AcceptedAt),
		CompletedAt: utils.NullTimeToPtr(db.CompletedAt),
		Note:        utils.NullStringToString(db.Note),
		TechnicIDs:  db.technicIDs(),
		IsActive:    db.IsActive,
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   utils.NullTimeToPtr(db.UpdatedAt),
	}
}

const orderFields = `o.id, o.firm_id, f.name, o.model_id, m.name, m.code, o.quantity, o.unit,
	o.price, o.currency, o.workshop_id, w.name, o.operator_id, u.full_name, o.status,
	o.deadline, o.accepted_at, o.completed_at, o.note,
	COALESCE(ARRAY_AGG(ot.technic_id) FILTER (WHERE ot.technic_id IS NOT NULL), '{}'),
	o.is_active, o.created_at, o.updated_at`

const orderJoins = `orders o
	JOIN firms f ON o.firm_id = f.id
	JOIN models m ON o.model_id = m.id
	LEFT JOIN workshops w ON o.workshop_id = w.id
	LEFT JOIN users u ON o.operator_id = u.id
	LEFT JOIN order_technics ot ON ot.order_id = o.id`

const orderGroupBy = "o.id, f.name, m.name, m.code, w.name, u.full_name"

// orderFilterColumns whitelists the query keys accepted by the order list.
var orderFilterColumns = map[string]string{
	"status":      "o.status",
	"firm_id":     "o.firm_id",
	"model_id":    "o.model_id",
	"workshop_id": "o.workshop_id",
	"currency":    "o.currency",
	"deadline":    "o.deadline",
	"created_at":  "o.created_at",
}

type OrderRepositoryInterface interface {
	GetOrders(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error)
	FindOrder(ctx context.Context, id uint64) (*dto.OrderDTO, error)
	FindOrderEntity(ctx context.Context, id uint64) (*entities.Order, error)
	GetBoardOrders(ctx context.Context) ([]entities.Order, error)
	CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderDTO, error)
	UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error)
	UpdateOrderStatus(ctx context.Context, id uint64, status entities.OrderStatus) error
	AssignOrder(ctx context.Context, id uint64, workshopID, operatorID uint64, status entities.OrderStatus) error
	DeactivateOrder(ctx context.Context, id uint64) error
	AddOrderImage(ctx context.Context, orderID uint64, filePath, originalName string) (*dto.OrderImageDTO, error)
	GetOrderImages(ctx context.Context, orderID uint64) ([]dto.OrderImageDTO, error)
	DeleteOrderImage(ctx context.Context, orderID, imageID uint64) (string, error)
}

type orderRepository struct{ storage *pgxpool.Pool }

func NewOrderRepository(storage *pgxpool.Pool) OrderRepositoryInterface {
	return &orderRepository{storage: storage}
}

func scanOrder(row pgx.Row) (*dbOrder, error) {
	var dbRow dbOrder
	err := row.Scan(&dbRow.ID, &dbRow.FirmID, &dbRow.FirmName, &dbRow.ModelID, &dbRow.ModelName, &dbRow.ModelCode,
		&dbRow.Quantity, &dbRow.Unit, &dbRow.Price, &dbRow.Currency, &dbRow.WorkshopID, &dbRow.WorkshopName,
		&dbRow.OperatorID, &dbRow.OperatorName, &dbRow.Status, &dbRow.Deadline, &dbRow.AcceptedAt,
		&dbRow.CompletedAt, &dbRow.Note, &dbRow.TechnicIDs, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &dbRow, nil
}

func (r *orderRepository) GetOrders(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(DISTINCT o.id)").From(orderJoins)
	listBuilder := psql.Select(orderFields).From(orderJoins).GroupBy(orderGroupBy)

	if filter.Search != "" {
		search := sq.Or{
			sq.ILike{"f.name": "%" + filter.Search + "%"},
			sq.ILike{"m.name": "%" + filter.Search + "%"},
			sq.ILike{"m.code": "%" + filter.Search + "%"},
			sq.ILike{"o.note": "%" + filter.Search + "%"},
		}
		countBuilder = countBuilder.Where(search)
		listBuilder = listBuilder.Where(search)
	}

	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, orderFilterColumns)
	listBuilder = db.ApplyListParams(listBuilder, filter, orderFilterColumns)
	if len(filter.Sort) == 0 {
		listBuilder = listBuilder.OrderBy("o.created_at DESC")
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.OrderDTO{}, 0, nil
	}

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]dto.OrderDTO, 0)
	for rows.Next() {
		dbRow, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, dbRow.ToDTO())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachImages(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) attachImages(ctx context.Context, orders []dto.OrderDTO) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(orders))
	index := make(map[uint64]int, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = i
	}

	rows, err := r.storage.Query(ctx,
		"SELECT id, order_id, file_path, original_name FROM order_images WHERE order_id = ANY($1) ORDER BY id", ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var img dto.OrderImageDTO
		var orderID uint64
		if err := rows.Scan(&img.ID, &orderID, &img.FilePath, &img.OriginalName); err != nil {
			return err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Images = append(orders[i].Images, img)
		}
	}
	return rows.Err()
}

func (r *orderRepository) findRow(ctx context.Context, id uint64) (*dbOrder, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE o.id = $1 GROUP BY %s", orderFields, orderJoins, orderGroupBy)
	return scanOrder(r.storage.QueryRow(ctx, query, id))
}

func (r *orderRepository) FindOrder(ctx context.Context, id uint64) (*dto.OrderDTO, error) {
	dbRow, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	orderDTO := dbRow.ToDTO()
	images, err := r.GetOrderImages(ctx, id)
	if err != nil {
		return nil, err
	}
	orderDTO.Images = images
	return &orderDTO, nil
}

func (r *orderRepository) FindOrderEntity(ctx context.Context, id uint64) (*entities.Order, error) {
	dbRow, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	order := dbRow.ToEntity()
	return &order, nil
}

// GetBoardOrders returns every active order. The board shows cancelled and
// completed work too, so only deactivated rows are excluded.
func (r *orderRepository) GetBoardOrders(ctx context.Context) ([]entities.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE o.is_active = TRUE GROUP BY %s ORDER BY o.created_at DESC",
		orderFields, orderJoins, orderGroupBy)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		dbRow, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, dbRow.ToEntity())
	}
	return orders, rows.Err()
}

func parseDate(value *string) (interface{}, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("invalid date %q, expected YYYY-MM-DD", *value)
	}
	return t, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderDTO, error) {
	deadline, err := parseDate(payload.Deadline)
	if err != nil {
		return nil, err
	}
	acceptedAt, err := parseDate(payload.AcceptedAt)
	if err != nil {
		return nil, err
	}

	var id uint64
	err = WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO orders (firm_id, model_id, quantity, unit, price, currency, status, deadline, accepted_at, note)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
			payload.FirmID, payload.ModelID, payload.Quantity, payload.Unit, payload.Price, payload.Currency,
			entities.StatusUnassigned, deadline, acceptedAt, payload.Note).Scan(&id)
		if err != nil {
			return err
		}
		return insertOrderTechnics(ctx, tx, id, payload.TechnicIDs)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewHttpError(400, "firm, model or technic does not exist", err, nil)
		}
		return nil, err
	}
	return r.FindOrder(ctx, id)
}

func insertOrderTechnics(ctx context.Context, tx pgx.Tx, orderID uint64, technicIDs []uint64) error {
	for _, technicID := range technicIDs {
		if _, err := tx.Exec(ctx,
			"INSERT INTO order_technics (order_id, technic_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
			orderID, technicID); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error) {
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
	if payload.ModelID != nil {
		apply("model_id", *payload.ModelID)
	}
	if payload.Quantity != nil {
		apply("quantity", *payload.Quantity)
	}
	if payload.Unit != nil {
		apply("unit", *payload.Unit)
	}
	if payload.Price != nil {
		apply("price", *payload.Price)
	}
	if payload.Currency != nil {
		apply("currency", *payload.Currency)
	}
	if payload.Deadline != nil {
		deadline, err := parseDate(payload.Deadline)
		if err != nil {
			return nil, err
		}
		apply("deadline", deadline)
	}
	if payload.AcceptedAt != nil {
		acceptedAt, err := parseDate(payload.AcceptedAt)
		if err != nil {
			return nil, err
		}
		apply("accepted_at", acceptedAt)
	}
	if payload.Note != nil {
		apply("note", *payload.Note)
	}
	if payload.IsActive != nil {
		apply("is_active", *payload.IsActive)
	}

	err := WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		if len(setClauses) > 0 {
			setClauses = append(setClauses, "updated_at = NOW()")
			query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)
			args = append(args, id)

			result, err := tx.Exec(ctx, query, args...)
			if err != nil {
				return err
			}
			if result.RowsAffected() == 0 {
				return apperrors.ErrNotFound
			}
		}
		if payload.TechnicIDs != nil {
			if _, err := tx.Exec(ctx, "DELETE FROM order_technics WHERE order_id = $1", id); err != nil {
				return err
			}
			return insertOrderTechnics(ctx, tx, id, payload.TechnicIDs)
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewHttpError(400, "firm, model or technic does not exist", err, nil)
		}
		return nil, err
	}
	return r.FindOrder(ctx, id)
}

// UpdateOrderStatus changes the lifecycle state. completed_at is always set
// server-side so client clocks never influence the completion timestamp.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uint64, status entities.OrderStatus) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE orders SET status = $1,
			completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE NULL END,
			updated_at = NOW()
		 WHERE id = $2 AND is_active = TRUE`, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AssignOrder is the single write that concludes a transfer: workshop,
// operator and status move together in one statement.
func (r *orderRepository) AssignOrder(ctx context.Context, id uint64, workshopID, operatorID uint64, status entities.OrderStatus) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE orders SET workshop_id = $1, operator_id = $2, status = $3,
			completed_at = CASE WHEN $3 = 'completed' THEN NOW() ELSE NULL END,
			updated_at = NOW()
		 WHERE id = $4 AND is_active = TRUE`, workshopID, operatorID, status, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewHttpError(400, "workshop or operator does not exist", err, nil)
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) DeactivateOrder(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "UPDATE orders SET is_active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) AddOrderImage(ctx context.Context, orderID uint64, filePath, originalName string) (*dto.OrderImageDTO, error) {
	var img dto.OrderImageDTO
	err := r.storage.QueryRow(ctx,
		"INSERT INTO order_images (order_id, file_path, original_name) VALUES($1, $2, $3) RETURNING id, file_path, original_name",
		orderID, filePath, originalName).Scan(&img.ID, &img.FilePath, &img.OriginalName)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &img, nil
}

func (r *orderRepository) GetOrderImages(ctx context.Context, orderID uint64) ([]dto.OrderImageDTO, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT id, file_path, original_name FROM order_images WHERE order_id = $1 ORDER BY id", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]dto.OrderImageDTO, 0)
	for rows.Next() {
		var img dto.OrderImageDTO
		if err := rows.Scan(&img.ID, &img.FilePath, &img.OriginalName); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteOrderImage removes the row and returns the stored file path so the
// caller can unlink the file from disk.
func (r *orderRepository) DeleteOrderImage(ctx context.Context, orderID, imageID uint64) (string, error) {
	var filePath string
	err := r.storage.QueryRow(ctx,
		"DELETE FROM order_images WHERE id = $1 AND order_id = $2 RETURNING file_path", imageID, orderID).Scan(&filePath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return filePath, nil
}
