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

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbUser struct {
	ID           uint64
	FullName     string
	Email        string
	PasswordHash string
	Role         string
	WorkshopID   sql.NullInt64
	WorkshopName sql.NullString
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    sql.NullTime
}

func (db *dbUser) ToDTO() dto.UserDTO {
	userDTO := dto.UserDTO{
		ID:        db.ID,
		FullName:  db.FullName,
		Email:     db.Email,
		Role:      db.Role,
		IsActive:  db.IsActive,
		CreatedAt: db.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		UpdatedAt: utils.NullTimeToEmptyString(db.UpdatedAt),
	}
	if db.WorkshopID.Valid {
		userDTO.Workshop = &dto.ShortWorkshopDTO{
			ID:   uint64(db.WorkshopID.Int64),
			Name: db.WorkshopName.String,
		}
	}
	return userDTO
}

func (db *dbUser) ToEntity() entities.User {
	return entities.User{
		ID:           db.ID,
		FullName:     db.FullName,
		Email:        db.Email,
		PasswordHash: db.PasswordHash,
		Role:         entities.UserRole(db.Role),
		WorkshopID:   utils.NullInt64ToPtr(db.WorkshopID),
		IsActive:     db.IsActive,
		CreatedAt:    db.CreatedAt,
		UpdatedAt:    utils.NullTimeToPtr(db.UpdatedAt),
	}
}

const userFields = "u.id, u.full_name, u.email, u.password_hash, u.role, u.workshop_id, w.name, u.is_active, u.created_at, u.updated_at"

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, limit, offset uint64, search string, workshopID uint64) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	FindUserEntity(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, passwordHash *string) (*dto.UserDTO, error)
	DeactivateUser(ctx context.Context, id uint64) error
}

type userRepository struct{ storage *pgxpool.Pool }

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &userRepository{storage: storage}
}

func (r *userRepository) scan(row pgx.Row) (*dbUser, error) {
	var dbRow dbUser
	err := row.Scan(&dbRow.ID, &dbRow.FullName, &dbRow.Email, &dbRow.PasswordHash, &dbRow.Role,
		&dbRow.WorkshopID, &dbRow.WorkshopName, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &dbRow, nil
}

func (r *userRepository) GetUsers(ctx context.Context, limit, offset uint64, search string, workshopID uint64) ([]dto.UserDTO, uint64, error) {
	var conditions []string
	var args []interface{}

	if search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("(u.full_name ILIKE $%d OR u.email ILIKE $%d)", len(args), len(args)))
	}
	if workshopID != 0 {
		args = append(args, workshopID)
		conditions = append(conditions, fmt.Sprintf("u.workshop_id = $%d", len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users u %s", whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.UserDTO{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM users u LEFT JOIN workshops w ON u.workshop_id = w.id %s ORDER BY u.full_name LIMIT $%d OFFSET $%d`,
		userFields, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]dto.UserDTO, 0)
	for rows.Next() {
		var dbRow dbUser
		if err := rows.Scan(&dbRow.ID, &dbRow.FullName, &dbRow.Email, &dbRow.PasswordHash, &dbRow.Role,
			&dbRow.WorkshopID, &dbRow.WorkshopName, &dbRow.IsActive, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, dbRow.ToDTO())
	}
	return users, total, rows.Err()
}

func (r *userRepository) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM users u LEFT JOIN workshops w ON u.workshop_id = w.id WHERE u.id = $1", userFields)
	dbRow, err := r.scan(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	userDTO := dbRow.ToDTO()
	return &userDTO, nil
}

func (r *userRepository) FindUserEntity(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users u LEFT JOIN workshops w ON u.workshop_id = w.id WHERE u.id = $1", userFields)
	dbRow, err := r.scan(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	user := dbRow.ToEntity()
	return &user, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users u LEFT JOIN workshops w ON u.workshop_id = w.id WHERE u.email = $1", userFields)
	dbRow, err := r.scan(r.storage.QueryRow(ctx, query, email))
	if err != nil {
		return nil, err
	}
	user := dbRow.ToEntity()
	return &user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (*dto.UserDTO, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO users (full_name, email, password_hash, role, workshop_id) VALUES($1, $2, $3, $4, $5) RETURNING id",
		payload.FullName, payload.Email, passwordHash, payload.Role, payload.WorkshopID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return r.FindUser(ctx, id)
}

func (r *userRepository) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, passwordHash *string) (*dto.UserDTO, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	apply := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argID))
		args = append(args, val)
		argID++
	}

	if payload.FullName != nil {
		apply("full_name", *payload.FullName)
	}
	if payload.Email != nil {
		apply("email", *payload.Email)
	}
	if passwordHash != nil {
		apply("password_hash", *passwordHash)
	}
	if payload.Role != nil {
		apply("role", *payload.Role)
	}
	if payload.WorkshopID != nil {
		apply("workshop_id", *payload.WorkshopID)
	}
	if payload.IsActive != nil {
		apply("is_active", *payload.IsActive)
	}
	if len(setClauses) == 0 {
		return r.FindUser(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)
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
	return r.FindUser(ctx, id)
}

func (r *userRepository) DeactivateUser(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
