package domain

type CompanyImage struct {
	ID        int64  `db:"id" json:"id"`
	CompanyID int64  `db:"company_id" json:"company_id"`
	ImagePath string `db:"image_path" json:"image_path"`
}
