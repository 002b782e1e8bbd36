package http

import (
	"encoding/json"
	"time"
)

// OTPCode accepts both JSON shapes clients send for a reset code, the bare
// number 482913 and the string "482913", and carries it as the string the
// reset flow compares.
type OTPCode string

func (o *OTPCode) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OTPCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*o = OTPCode(n.String())
	return nil
}

// LoginRequest carries the credential pair for email login.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"StrongPass!23"`
}

// LoginResponse is the payload returned on a successful login.
type LoginResponse struct {
	Name        *string `json:"name,omitempty" example:"Asha Rao"`
	Email       string  `json:"email" example:"user@example.com"`
	AccessToken string  `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Role        string  `json:"role" example:"user"`
}

// RegisterRequest carries user registration fields.
type RegisterRequest struct {
	Name     *string `json:"name,omitempty" example:"Asha Rao"`
	Email    string  `json:"email" example:"user@example.com"`
	Password string  `json:"password" example:"StrongPass!23"`
	City     *string `json:"city,omitempty" example:"Pune"`
	State    *string `json:"state,omitempty" example:"Maharashtra"`
	Country  *string `json:"country,omitempty" example:"India"`
}

// UserUpdateRequest captures the partial update of the caller's own record.
type UserUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	NewPassword *string `json:"new_password,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Country     *string `json:"country,omitempty"`
}

// UserResponse is the sanitized user representation.
type UserResponse struct {
	ID       int64   `json:"id" example:"12"`
	Name     *string `json:"name,omitempty"`
	Email    string  `json:"email" example:"user@example.com"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
	Country  *string `json:"country,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	RoleID   int64   `json:"role_id" example:"3"`
}

// ListMeta describes pagination metadata for list endpoints.
type ListMeta struct {
	Limit  int   `json:"limit" example:"20"`
	Offset int   `json:"offset" example:"0"`
	Total  int64 `json:"total" example:"42"`
	Count  int   `json:"count" example:"20"`
}

// PasswordResetRequest asks for a reset code.
type PasswordResetRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

// OTPVerifyRequest carries a code to check without consuming it.
type OTPVerifyRequest struct {
	Email string  `json:"email" example:"user@example.com"`
	OTP   OTPCode `json:"otp" example:"482913"`
}

// ChangePasswordRequest consumes a code and rotates the credential.
type ChangePasswordRequest struct {
	Email           string  `json:"email" example:"user@example.com"`
	OTP             OTPCode `json:"otp" example:"482913"`
	NewPassword     string  `json:"new_password" example:"NewPass!45"`
	ConfirmPassword string  `json:"confirm_password" example:"NewPass!45"`
}

// CompanyRegisterRequest carries company registration fields.
type CompanyRegisterRequest struct {
	CompanyName    string  `json:"company_name" example:"Acme Pvt Ltd"`
	CompanyEmail   string  `json:"company_email" example:"contact@acme.example"`
	CompanyNumber  string  `json:"company_number" example:"+91-2012345678"`
	CompanyZipcode *string `json:"company_zipcode,omitempty" example:"411001"`
	CompanyCity    *string `json:"company_city,omitempty" example:"Pune"`
	CompanyState   *string `json:"company_state,omitempty" example:"Maharashtra"`
	CompanyCountry *string `json:"company_country,omitempty" example:"India"`
}

// CompanyUpdateRequest captures the partial update of a company.
type CompanyUpdateRequest struct {
	CompanyName    *string `json:"company_name,omitempty"`
	CompanyEmail   *string `json:"company_email,omitempty"`
	CompanyNumber  *string `json:"company_number,omitempty"`
	CompanyZipcode *string `json:"company_zipcode,omitempty"`
	CompanyCity    *string `json:"company_city,omitempty"`
	CompanyState   *string `json:"company_state,omitempty"`
	CompanyCountry *string `json:"company_country,omitempty"`
}

// CompanyResponse is the company representation returned by the API.
type CompanyResponse struct {
	ID             int64      `json:"id" example:"3"`
	CompanyName    string     `json:"company_name"`
	CompanyEmail   string     `json:"company_email"`
	CompanyNumber  string     `json:"company_number"`
	CompanyZipcode *string    `json:"company_zipcode,omitempty"`
	CompanyCity    *string    `json:"company_city,omitempty"`
	CompanyState   *string    `json:"company_state,omitempty"`
	CompanyCountry *string    `json:"company_country,omitempty"`
	UserID         int64      `json:"user_id" example:"1"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
