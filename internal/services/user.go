package services

import (
	"context"

	"github.com/mflix-users/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (types.User, error)
	ExistsByEmail(ctx context.Context, email string, exclude *primitive.ObjectID) (bool, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, id primitive.ObjectID, upd types.UserUpdate) (types.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (types.User, error)
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) EmailExists(ctx context.Context, email string, exclude *primitive.ObjectID) (bool, error) {
	return s.repo.ExistsByEmail(ctx, email, exclude)
}

func (s *UserService) Create(ctx context.Context, user types.User) (types.User, error) {
	return s.repo.Create(ctx, user)
}

func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, upd types.UserUpdate) (types.User, error) {
	return s.repo.Update(ctx, id, upd)
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	return s.repo.Delete(ctx, id)
}
