// README: Registration and login handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/modules/account"
)

type AccountService interface {
	Register(ctx context.Context, cmd account.RegisterCommand) (*account.User, error)
	Login(ctx context.Context, email, password string) (*account.LoginResult, error)
}

type AuthHandler struct {
	accounts AccountService
}

func NewAuthHandler(svc AccountService) *AuthHandler {
	return &AuthHandler{accounts: svc}
}

type registerReq struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	LicenseNumber string `json:"license_number"`
	VehicleModel  string `json:"vehicle_model"`
	VehiclePlate  string `json:"vehicle_plate"`
	VehicleSeats  int    `json:"vehicle_seats"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.accounts.Register(c.Request.Context(), account.RegisterCommand{
		Email:         req.Email,
		Password:      req.Password,
		Name:          req.Name,
		Phone:         req.Phone,
		Role:          account.Role(req.Role),
		LicenseNumber: req.LicenseNumber,
		VehicleModel:  req.VehicleModel,
		VehiclePlate:  req.VehiclePlate,
		VehicleSeats:  req.VehicleSeats,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, u)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if !bindJSON(c, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(c, http.StatusBadRequest, "email and password are required")
		return
	}
	res, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}
