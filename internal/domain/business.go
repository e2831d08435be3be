package domain

import "time"

type Business struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerID"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
