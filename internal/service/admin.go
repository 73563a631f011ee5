package service

import (
	"context"

	"github.com/itemvault/backend/internal/model"
)

type AdminRepo interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

// AdminService backs the superuser-only surface. Authorization is the
// router's job (SuperuserMiddleware); this layer is a pass-through.
type AdminService struct {
	repo AdminRepo
}

func NewAdminService(repo AdminRepo) *AdminService {
	return &AdminService{repo: repo}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}
