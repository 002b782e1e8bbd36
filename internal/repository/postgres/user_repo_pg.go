package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
)

const userColumns = "id, name, email, password, city, state, country, image_url, role_id, created_at, updated_at"

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, name *string, email, passwordDigest string, city, state, country *string, roleID int64) (*domain.User, error) {
	const query = `
        INSERT INTO user_account (name, email, password, city, state, country, role_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, name, email, passwordDigest, city, state, country, roleID)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_account WHERE email = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_account WHERE id = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateAccount applies profile fields and an optional credential rotation in
// one statement, so a failure never leaves a half-updated record.
func (r *UserRepository) UpdateAccount(ctx context.Context, id int64, name, city, state, country, passwordDigest *string) (*domain.User, error) {
	const query = `
        UPDATE user_account
        SET name = COALESCE($2, name),
            city = COALESCE($3, city),
            state = COALESCE($4, state),
            country = COALESCE($5, country),
            password = COALESCE($6, password),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, id, name, city, state, country, passwordDigest)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordDigest string) error {
	const query = `
        UPDATE user_account
        SET password = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordDigest)
	return err
}

func (r *UserRepository) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	const query = `
        UPDATE user_account
        SET image_url = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, imageURL)
	return err
}

// userSortColumns whitelists the columns list endpoints may sort on.
var userSortColumns = map[string]string{
	"id":      "id",
	"name":    "name",
	"email":   "email",
	"city":    "city",
	"state":   "state",
	"country": "country",
}

func (r *UserRepository) List(ctx context.Context, limit, offset int, sortBy, sortDirection string) ([]domain.User, error) {
	column, ok := userSortColumns[sortBy]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if sortDirection == "desc" {
		direction = "DESC"
	}

	query := fmt.Sprintf(`SELECT `+userColumns+` FROM user_account ORDER BY %s %s LIMIT $1 OFFSET $2`, column, direction)

	users := []domain.User{}
	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM user_account`); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_account WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errNoRows
	}
	return nil
}
