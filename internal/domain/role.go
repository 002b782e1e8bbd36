package domain

// Role ids are seeded by the initial migration and referenced by
// user_account.role_id. The numeric values are part of the stored data;
// authorization decisions go through the permission table instead of
// comparing these literals directly.
const (
	RoleSuperAdmin   int64 = 1
	RoleCompanyAdmin int64 = 2
	RoleMember       int64 = 3
)

type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"role_name" json:"role_name"`
}
