package services

import (
	"context"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/repositories"
	"atolye-takip/pkg/types"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter, workshopID uint64) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	repo   repositories.UserRepositoryInterface
	logger *zap.Logger
}

func NewUserService(repo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter, workshopID uint64) ([]dto.UserDTO, uint64, error) {
	return s.repo.GetUsers(ctx, uint64(filter.Limit), uint64(filter.Offset), filter.Search, workshopID)
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	return s.repo.FindUser(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, payload, string(hash))
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	var passwordHash *string
	if payload.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		passwordHash = &h
	}
	return s.repo.UpdateUser(ctx, id, payload, passwordHash)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	return s.repo.DeactivateUser(ctx, id)
}
