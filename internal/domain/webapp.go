package domain

import "time"

// AppConfiguration is a draft of a restaurant web app. Its Subdomain field
// holds a pending claim until the configuration is published.
type AppConfiguration struct {
	ID         int64     `json:"id"`
	PublicID   string    `json:"publicID"`
	BusinessID int64     `json:"businessID"`
	OwnerID    int64     `json:"ownerID"`
	Name       string    `json:"name"`
	Template   string    `json:"template"`
	Subdomain  *string   `json:"subdomain"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}

// WebApp is a published app, the committed claim on its subdomain.
type WebApp struct {
	ID              int64     `json:"id"`
	PublicID        string    `json:"publicID"`
	ConfigurationID int64     `json:"configurationID"`
	BusinessID      int64     `json:"businessID"`
	OwnerID         int64     `json:"ownerID"`
	Subdomain       string    `json:"subdomain"`
	PublishedAt     time.Time `json:"publishedAt"`
	Version         int32     `json:"-"`
}
