package service

import (
	"context"
	"errors"

	"github.com/itemvault/backend/internal/db"
	"github.com/itemvault/backend/internal/model"
)

var ErrItemNotFound = errors.New("item not found")

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

type ItemRepo interface {
	CreateItem(ctx context.Context, item *model.Item) (*model.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]model.Item, error)
	GetItemByID(ctx context.Context, id int64) (*model.Item, error)
	UpdateItem(ctx context.Context, id int64, upd model.ItemUpdate) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

type ItemService struct {
	repo ItemRepo
}

func NewItemService(repo ItemRepo) *ItemService {
	return &ItemService{repo: repo}
}

func (s *ItemService) Create(ctx context.Context, owner *model.User, req model.ItemCreate) (*model.Item, error) {
	return s.repo.CreateItem(ctx, &model.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		OwnerID:     owner.ID,
	})
}

func (s *ItemService) List(ctx context.Context, owner *model.User, skip, limit int) ([]model.Item, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	return s.repo.ListItemsByOwner(ctx, owner.ID, skip, limit)
}

// Get loads an item and enforces ownership: unknown ids are not found,
// someone else's items are forbidden.
func (s *ItemService) Get(ctx context.Context, user *model.User, id int64) (*model.Item, error) {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if item.OwnerID != user.ID {
		return nil, ErrForbidden
	}
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, user *model.User, id int64, upd model.ItemUpdate) (*model.Item, error) {
	if _, err := s.Get(ctx, user, id); err != nil {
		return nil, err
	}
	return s.repo.UpdateItem(ctx, id, upd)
}

func (s *ItemService) Delete(ctx context.Context, user *model.User, id int64) error {
	if _, err := s.Get(ctx, user, id); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, id)
}
