package domain

import "time"

type Company struct {
	ID      int64   `db:"id" json:"id"`
	Name    string  `db:"company_name" json:"company_name"`
	Email   string  `db:"company_email" json:"company_email"`
	Number  string  `db:"company_number" json:"company_number"`
	Zipcode *string `db:"company_zipcode" json:"company_zipcode,omitempty"`
	City    *string `db:"company_city" json:"company_city,omitempty"`
	State   *string `db:"company_state" json:"company_state,omitempty"`
	Country *string `db:"company_country" json:"company_country,omitempty"`

	// CreatorID references the user that registered the company.
	CreatorID int64      `db:"user_id" json:"user_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// CompanyWithCreator is the list-view projection joining the registering user.
type CompanyWithCreator struct {
	Company
	CreatorName    *string `db:"creator_name" json:"creator_name,omitempty"`
	CreatorEmail   *string `db:"creator_email" json:"creator_email,omitempty"`
	CreatorCountry *string `db:"creator_country" json:"creator_country,omitempty"`
}
