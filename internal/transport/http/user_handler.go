package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/Account_Hub_BackEnd/internal/domain"
	"github.com/accounthub/Account_Hub_BackEnd/internal/media"
	"github.com/accounthub/Account_Hub_BackEnd/internal/service"
	"github.com/accounthub/Account_Hub_BackEnd/internal/util"
)

type UserHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

func RegisterUsers(e *echo.Echo, auth *service.AuthService, users *service.UserService) {
	handler := &UserHandler{auth: auth, users: users}

	e.POST("/user/register", handler.register)

	protected := e.Group("/user", RequireAuth(auth))
	protected.GET("/list", handler.list)
	protected.GET("/:id", handler.get)
	protected.PUT("/update", handler.update)
	protected.DELETE("/delete/:id", handler.delete)
	protected.POST("/upload_image", handler.uploadImage)
}

func (h *UserHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Error("email and password are required"))
	}

	user, err := h.users.Register(c.Request().Context(), service.UserRegisterInput{
		Name:     req.Name,
		Email:    email,
		Password: req.Password,
		City:     req.City,
		State:    req.State,
		Country:  req.Country,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyRegistered) {
			return c.JSON(http.StatusConflict, util.Error("user already exists"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to register user"))
	}

	return c.JSON(http.StatusCreated, util.Response(true, "user registered successfully", toUserResponse(user)))
}

func (h *UserHandler) list(c echo.Context) error {
	limit, offset := parsePagination(c, 20, 0)
	sortBy := c.QueryParam("sort_by")
	sortDirection := c.QueryParam("sort_direction")

	result, err := h.users.List(c.Request().Context(), limit, offset, sortBy, sortDirection)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load users"))
	}

	items := make([]UserResponse, 0, len(result.Users))
	for i := range result.Users {
		items = append(items, toUserResponse(&result.Users[i]))
	}

	return c.JSON(http.StatusOK, util.Response(true, "users found", util.Envelope{
		"users": items,
		"meta": ListMeta{
			Limit:  result.Limit,
			Offset: result.Offset,
			Total:  result.Total,
			Count:  len(items),
		},
	}))
}

func (h *UserHandler) get(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a positive integer"))
	}

	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("user not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load user"))
	}
	return c.JSON(http.StatusOK, util.Response(true, "user found", toUserResponse(user)))
}

func (h *UserHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	updated, err := h.users.Update(c.Request().Context(), user, service.UserUpdateInput{
		Name:        req.Name,
		NewPassword: req.NewPassword,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSamePassword):
			return c.JSON(http.StatusBadRequest, util.Error("new password must be different from the current password"))
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error("user not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to update user"))
		}
	}
	return c.JSON(http.StatusOK, util.Response(true, "user updated successfully", toUserResponse(updated)))
}

func (h *UserHandler) delete(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a positive integer"))
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("user not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to delete user"))
	}
	return c.JSON(http.StatusOK, util.Response(true, "user deleted successfully", nil))
}

func (h *UserHandler) uploadImage(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	upload, err := formImage(c, "image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	defer upload.close()

	url, err := h.users.UploadProfileImage(c.Request().Context(), user.ID, upload.media)
	if err != nil {
		if errors.Is(err, service.ErrImageTooLarge) {
			return c.JSON(http.StatusRequestEntityTooLarge, util.Error("image exceeds the allowed size"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to upload image"))
	}
	return c.JSON(http.StatusOK, util.Response(true, "image uploaded successfully", util.Envelope{"image_url": url}))
}

type formUpload struct {
	media media.Upload
	close func()
}

func formImage(c echo.Context, field string) (*formUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, errors.New(field + " file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("unable to read uploaded file")
	}
	return &formUpload{
		media: media.Upload{
			Reader:      src,
			Size:        fileHeader.Size,
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
		},
		close: func() { _ = src.Close() },
	}, nil
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		City:     user.City,
		State:    user.State,
		Country:  user.Country,
		ImageURL: user.ImageURL,
		RoleID:   user.RoleID,
	}
}

func parsePagination(c echo.Context, defaultLimit, defaultOffset int) (int, int) {
	limit := defaultLimit
	offset := defaultOffset
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			offset = v
		}
	}
	return limit, offset
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
