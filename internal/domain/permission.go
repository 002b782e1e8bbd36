package domain

// Operation names an action a caller may be authorized to perform.
type Operation string

const (
	OpCompanyRegister    Operation = "company.register"
	OpCompanyList        Operation = "company.list"
	OpCompanyView        Operation = "company.view"
	OpCompanyUpdate      Operation = "company.update"
	OpCompanyDelete      Operation = "company.delete"
	OpCompanyAddUser     Operation = "company.add_user"
	OpCompanyListUsers   Operation = "company.list_users"
	OpCompanyUploadImage Operation = "company.upload_image"
)

// rolePermissions is the single place that maps role ids to the operations
// they may perform. Handlers call Allowed instead of comparing role ids.
var rolePermissions = map[Operation][]int64{
	OpCompanyRegister:    {RoleSuperAdmin},
	OpCompanyList:        {RoleSuperAdmin},
	OpCompanyView:        {RoleSuperAdmin, RoleCompanyAdmin},
	OpCompanyUpdate:      {RoleSuperAdmin},
	OpCompanyDelete:      {RoleSuperAdmin},
	OpCompanyAddUser:     {RoleSuperAdmin},
	OpCompanyListUsers:   {RoleSuperAdmin, RoleCompanyAdmin},
	OpCompanyUploadImage: {RoleSuperAdmin},
}

// Allowed reports whether a role may perform the given operation. Unknown
// operations are denied.
func Allowed(roleID int64, op Operation) bool {
	for _, id := range rolePermissions[op] {
		if id == roleID {
			return true
		}
	}
	return false
}
