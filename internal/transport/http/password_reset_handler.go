package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/Account_Hub_BackEnd/internal/service"
	"github.com/accounthub/Account_Hub_BackEnd/internal/util"
)

type PasswordResetHandler struct {
	resets *service.PasswordResetService
}

func RegisterPasswordReset(e *echo.Echo, resets *service.PasswordResetService) {
	handler := &PasswordResetHandler{resets: resets}
	e.POST("/otp_sent", handler.requestReset)
	e.POST("/otp_verify", handler.verifyOTP)
	e.POST("/change_password", handler.changePassword)
}

func (h *PasswordResetHandler) requestReset(c echo.Context) error {
	var req PasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return c.JSON(http.StatusBadRequest, util.Error("email is required"))
	}

	result, err := h.resets.RequestReset(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("account not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to send reset code"))
	}

	data := util.Envelope{"message": result.Message}
	if result.OTP != "" {
		data["otp"] = result.OTP
	}
	return c.JSON(http.StatusOK, util.Response(true, result.Message, data))
}

func (h *PasswordResetHandler) verifyOTP(c echo.Context) error {
	var req OTPVerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	err := h.resets.VerifyOTP(c.Request().Context(), strings.TrimSpace(req.Email), strings.TrimSpace(string(req.OTP)))
	if err != nil {
		return h.resetError(c, err)
	}
	return c.JSON(http.StatusOK, util.Response(true, "OTP is valid", util.Envelope{"message": "OTP is valid"}))
}

func (h *PasswordResetHandler) changePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	err := h.resets.ChangePassword(c.Request().Context(),
		strings.TrimSpace(req.Email), strings.TrimSpace(string(req.OTP)),
		req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return h.resetError(c, err)
	}
	return c.JSON(http.StatusOK, util.Response(true, "Password changed successfully", util.Envelope{"message": "Password changed successfully"}))
}

func (h *PasswordResetHandler) resetError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNoPendingOTP):
		return c.JSON(http.StatusBadRequest, util.Error("no pending reset code for this account"))
	case errors.Is(err, service.ErrOTPExpired):
		return c.JSON(http.StatusBadRequest, util.Error("OTP has expired"))
	case errors.Is(err, service.ErrOTPMismatch):
		return c.JSON(http.StatusBadRequest, util.Error("OTP does not match"))
	case errors.Is(err, service.ErrPasswordConfirmation):
		return c.JSON(http.StatusBadRequest, util.Error("new password and confirm password do not match"))
	case errors.Is(err, service.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, util.Error("account not found"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("unable to process request"))
	}
}
