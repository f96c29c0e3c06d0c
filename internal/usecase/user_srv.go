package usecase

import (
	"context"
	"fmt"

	"sith-voyages/internal/data/entity"
	"sith-voyages/internal/data/repository"
	"sith-voyages/internal/dto/response"
	"sith-voyages/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return convertUserResponse(user), nil
}

func convertUserResponse(user *entity.User) *response.UserResponse {
	var fullName string
	if user.FullName != nil {
		fullName = *user.FullName
	}

	return &response.UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		FullName:    user.FullName,
		DisplayName: utils.DisplayName(fullName, user.Email),
		Email:       user.Email,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}
}
