package domain

import "time"

type User struct {
	ID        int64      `db:"id" json:"id"`
	Name      *string    `db:"name" json:"name,omitempty"`
	Email     string     `db:"email" json:"email"`
	Password  string     `db:"password" json:"-"`
	City      *string    `db:"city" json:"city,omitempty"`
	State     *string    `db:"state" json:"state,omitempty"`
	Country   *string    `db:"country" json:"country,omitempty"`
	ImageURL  *string    `db:"image_url" json:"image_url,omitempty"`
	RoleID    int64      `db:"role_id" json:"role_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
