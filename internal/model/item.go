package model

import "time"

type Item struct {
	ID          int64
	Name        string
	Description *string
	Price       float64
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ItemCreate struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// ItemUpdate is a partial update: nil fields are left untouched.
type ItemUpdate struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

type ItemRead struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	OwnerID     int64   `json:"owner_id"`
}

func (i *Item) Read() ItemRead {
	return ItemRead{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
		OwnerID:     i.OwnerID,
	}
}
