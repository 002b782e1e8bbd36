package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
	"github.com/accounthub/Account_Hub_BackEnd/internal/repository/ports"
)

// errNoRows aliases the stdlib sentinel so repo code reads uniformly.
var errNoRows = sql.ErrNoRows

const companyColumns = "id, company_name, company_email, company_number, company_zipcode, company_city, company_state, company_country, user_id, created_at, updated_at"

type CompanyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepo(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	const query = `
        INSERT INTO company_table (company_name, company_email, company_number, company_zipcode, company_city, company_state, company_country, user_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + companyColumns

	row := r.db.QueryRowxContext(ctx, query,
		company.Name, company.Email, company.Number, company.Zipcode,
		company.City, company.State, company.Country, company.CreatorID)
	var created domain.Company
	if err := row.StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *CompanyRepository) FindByEmail(ctx context.Context, email string) (*domain.Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM company_table WHERE company_email = $1`

	var company domain.Company
	if err := r.db.GetContext(ctx, &company, query, email); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*domain.Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM company_table WHERE id = $1`

	var company domain.Company
	if err := r.db.GetContext(ctx, &company, query, id); err != nil {
		return nil, err
	}
	return &company, nil
}

var companySortColumns = map[string]string{
	"id":              "c.id",
	"company_name":    "c.company_name",
	"company_email":   "c.company_email",
	"company_city":    "c.company_city",
	"company_state":   "c.company_state",
	"company_country": "c.company_country",
}

func (r *CompanyRepository) List(ctx context.Context, limit, offset int, sortBy, sortDirection string) ([]domain.CompanyWithCreator, error) {
	column, ok := companySortColumns[sortBy]
	if !ok {
		column = "c.id"
	}
	direction := "ASC"
	if sortDirection == "desc" {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
        SELECT c.id, c.company_name, c.company_email, c.company_number, c.company_zipcode,
               c.company_city, c.company_state, c.company_country, c.user_id, c.created_at, c.updated_at,
               u.name AS creator_name, u.email AS creator_email, u.country AS creator_country
        FROM company_table c
        LEFT JOIN user_account u ON u.id = c.user_id
        ORDER BY %s %s
        LIMIT $1 OFFSET $2`, column, direction)

	companies := []domain.CompanyWithCreator{}
	if err := r.db.SelectContext(ctx, &companies, query, limit, offset); err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM company_table`); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *CompanyRepository) Update(ctx context.Context, id int64, update ports.CompanyUpdate) (*domain.Company, error) {
	const query = `
        UPDATE company_table
        SET company_name = COALESCE($2, company_name),
            company_email = COALESCE($3, company_email),
            company_number = COALESCE($4, company_number),
            company_zipcode = COALESCE($5, company_zipcode),
            company_city = COALESCE($6, company_city),
            company_state = COALESCE($7, company_state),
            company_country = COALESCE($8, company_country),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + companyColumns

	row := r.db.QueryRowxContext(ctx, query, id,
		update.Name, update.Email, update.Number, update.Zipcode,
		update.City, update.State, update.Country)
	var company domain.Company
	if err := row.StructScan(&company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM company_table WHERE id = $1`, id)
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

func (r *CompanyRepository) AddMember(ctx context.Context, companyID, userID int64) (*domain.UserCompany, error) {
	const query = `
        INSERT INTO user_company (user_id, company_id)
        VALUES ($1, $2)
        RETURNING id, user_id, company_id
    `
	row := r.db.QueryRowxContext(ctx, query, userID, companyID)
	var membership domain.UserCompany
	if err := row.StructScan(&membership); err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *CompanyRepository) ListMembers(ctx context.Context, companyID int64) ([]domain.CompanyMember, error) {
	const query = `
        SELECT u.id AS user_id, u.name AS user_name, u.email AS user_email
        FROM user_account u
        JOIN user_company uc ON uc.user_id = u.id
        WHERE uc.company_id = $1
        ORDER BY u.id
    `
	members := []domain.CompanyMember{}
	if err := r.db.SelectContext(ctx, &members, query, companyID); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *CompanyRepository) AddImage(ctx context.Context, companyID int64, imagePath string) (*domain.CompanyImage, error) {
	const query = `
        INSERT INTO company_image_table (company_id, image_path)
        VALUES ($1, $2)
        RETURNING id, company_id, image_path
    `
	row := r.db.QueryRowxContext(ctx, query, companyID, imagePath)
	var image domain.CompanyImage
	if err := row.StructScan(&image); err != nil {
		return nil, err
	}
	return &image, nil
}
