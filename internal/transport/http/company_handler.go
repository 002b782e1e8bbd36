package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
	"github.com/accounthub/Account_Hub_BackEnd/internal/repository/ports"
	"github.com/accounthub/Account_Hub_BackEnd/internal/service"
	"github.com/accounthub/Account_Hub_BackEnd/internal/util"
)

type CompanyHandler struct {
	auth      *service.AuthService
	companies *service.CompanyService
}

func RegisterCompanies(e *echo.Echo, auth *service.AuthService, companies *service.CompanyService) {
	handler := &CompanyHandler{auth: auth, companies: companies}

	g := e.Group("/company", RequireAuth(auth))
	g.POST("/register", handler.register, RequirePermission(domain.OpCompanyRegister))
	g.GET("/list", handler.list, RequirePermission(domain.OpCompanyList))
	g.GET("/:company_id", handler.get, RequirePermission(domain.OpCompanyView))
	g.PUT("/:company_id", handler.update, RequirePermission(domain.OpCompanyUpdate))
	g.DELETE("/:company_id", handler.delete, RequirePermission(domain.OpCompanyDelete))
	g.POST("/:company_id/users/:user_id", handler.addMember, RequirePermission(domain.OpCompanyAddUser))
	g.GET("/:company_id/users", handler.members, RequirePermission(domain.OpCompanyListUsers))
	g.POST("/:company_id/image", handler.uploadImage, RequirePermission(domain.OpCompanyUploadImage))
}

func (h *CompanyHandler) register(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req CompanyRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	name := strings.TrimSpace(req.CompanyName)
	email := strings.TrimSpace(req.CompanyEmail)
	if name == "" || email == "" || strings.TrimSpace(req.CompanyNumber) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("company_name, company_email and company_number are required"))
	}

	company, err := h.companies.Register(c.Request().Context(), user.ID, service.CompanyRegisterInput{
		Name:    name,
		Email:   email,
		Number:  strings.TrimSpace(req.CompanyNumber),
		Zipcode: req.CompanyZipcode,
		City:    req.CompanyCity,
		State:   req.CompanyState,
		Country: req.CompanyCountry,
	})
	if err != nil {
		if errors.Is(err, service.ErrCompanyAlreadyExists) {
			return c.JSON(http.StatusConflict, util.Error("company already exists"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to register company"))
	}
	return c.JSON(http.StatusCreated, util.Response(true, "company registered successfully", toCompanyResponse(company)))
}

func (h *CompanyHandler) list(c echo.Context) error {
	limit, offset := parsePagination(c, 20, 0)
	result, err := h.companies.List(c.Request().Context(), limit, offset, c.QueryParam("sort_by"), c.QueryParam("sort_direction"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load companies"))
	}

	items := make([]util.Envelope, 0, len(result.Companies))
	for i := range result.Companies {
		company := &result.Companies[i]
		item := util.Envelope{
			"company": toCompanyResponse(&company.Company),
			"creator": util.Envelope{
				"name":    company.CreatorName,
				"email":   company.CreatorEmail,
				"country": company.CreatorCountry,
			},
		}
		items = append(items, item)
	}

	return c.JSON(http.StatusOK, util.Response(true, "companies found", util.Envelope{
		"companies": items,
		"meta": ListMeta{
			Limit:  result.Limit,
			Offset: result.Offset,
			Total:  result.Total,
			Count:  len(items),
		},
	}))
}

func (h *CompanyHandler) get(c echo.Context) error {
	id, err := parseID(c.Param("company_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("company_id must be a positive integer"))
	}

	company, err := h.companies.Get(c.Request().Context(), id)
	if err != nil {
		return h.companyError(c, err)
	}
	return c.JSON(http.StatusOK, util.Response(true, "company found", toCompanyResponse(company)))
}

func (h *CompanyHandler) update(c echo.Context) error {
	id, err := parseID(c.Param("company_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("company_id must be a positive integer"))
	}

	var req CompanyUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	company, err := h.companies.Update(c.Request().Context(), id, ports.CompanyUpdate{
		Name:    req.CompanyName,
		Email:   req.CompanyEmail,
		Number:  req.CompanyNumber,
		Zipcode: req.CompanyZipcode,
		City:    req.CompanyCity,
		State:   req.CompanyState,
		Country: req.CompanyCountry,
	})
	if err != nil {
		if errors.Is(err, service.ErrCompanyAlreadyExists) {
			return c.JSON(http.StatusConflict, util.Error("company email already in use"))
		}
		return h.companyError(c, err)
	}
	return c.JSON(http.StatusOK, util.Response(true, "company updated successfully", toCompanyResponse(company)))
}

func (h *CompanyHandler) delete(c echo.Context) error {
	id, err := parseID(c.Param("company_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("company_id must be a positive integer"))
	}

	if err := h.companies.Delete(c.Request().Context(), id); err != nil {
		return h.companyError(c, err)
	}
	return c.JSON(http.StatusOK, util.Response(true, "company deleted successfully", nil))
}

func (h *CompanyHandler) addMember(c echo.Context) error {
	companyID, err := parseID(c.Param("company_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("company_id must be a positive integer"))
	}
	userID, err := parseID(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("user_id must be a positive integer"))
	}

	membership, err := h.companies.AddMember(c.Request().Context(), companyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error("user not found"))
		case errors.Is(err, service.ErrMemberAlreadyAdded):
			return c.JSON(http.StatusConflict, util.Error("user is already associated with this company"))
		default:
			return h.companyError(c, err)
		}
	}
	return c.JSON(http.StatusCreated, util.Response(true, "user added to company", membership))
}

func (h *CompanyHandler) members(c echo.Context) error {
	companyID, err := parseID(c.Param("company_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("company_id must be a positive integer"))
	}

	result, err := h.companies.Members(c.Request().Context(), companyID)
	if err != nil {
		return h.companyError(c, err)
	}

	return c.JSON(http.StatusOK, util.Response(true, "company users found", util.Envelope{
		"company_id":      result.Company.ID,
		"company_name":    result.Company.Name,
		"company_email":   result.Company.Email,
		"company_state":   result.Company.State,
		"company_country": result.Company.Country,
		"users":           result.Members,
	}))
}

func (h *CompanyHandler) uploadImage(c echo.Context) error {
	companyID, err := parseID(c.Param("company_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("company_id must be a positive integer"))
	}

	upload, err := formImage(c, "image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	defer upload.close()

	image, err := h.companies.UploadImage(c.Request().Context(), companyID, upload.media)
	if err != nil {
		if errors.Is(err, service.ErrImageTooLarge) {
			return c.JSON(http.StatusRequestEntityTooLarge, util.Error("image exceeds the allowed size"))
		}
		return h.companyError(c, err)
	}
	return c.JSON(http.StatusOK, util.Response(true, "image uploaded successfully", image))
}

func (h *CompanyHandler) companyError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrCompanyNotFound) {
		return c.JSON(http.StatusNotFound, util.Error("company not found"))
	}
	return c.JSON(http.StatusInternalServerError, util.Error("unable to process request"))
}

func toCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:             company.ID,
		CompanyName:    company.Name,
		CompanyEmail:   company.Email,
		CompanyNumber:  company.Number,
		CompanyZipcode: company.Zipcode,
		CompanyCity:    company.City,
		CompanyState:   company.State,
		CompanyCountry: company.Country,
		UserID:         company.CreatorID,
		CreatedAt:      company.CreatedAt,
		UpdatedAt:      company.UpdatedAt,
	}
}
