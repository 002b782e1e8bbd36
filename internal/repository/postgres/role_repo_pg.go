package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
)

type RoleRepository struct {
	db *sqlx.DB
}

func NewRoleRepo(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	const query = `SELECT id, role_name FROM role_table WHERE id = $1`

	var role domain.Role
	if err := r.db.GetContext(ctx, &role, query, id); err != nil {
		return nil, err
	}
	return &role, nil
}
