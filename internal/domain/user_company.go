package domain

type UserCompany struct {
	ID        int64 `db:"id" json:"id"`
	UserID    int64 `db:"user_id" json:"user_id"`
	CompanyID int64 `db:"company_id" json:"company_id"`
}

// CompanyMember is the projection returned when listing the users
// associated with a company.
type CompanyMember struct {
	UserID int64   `db:"user_id" json:"user_id"`
	Name   *string `db:"user_name" json:"user_name,omitempty"`
	Email  string  `db:"user_email" json:"user_email"`
}
