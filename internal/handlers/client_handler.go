package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amaraspa/spa-scheduler/internal/config"
	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/httpresp"
	"github.com/amaraspa/spa-scheduler/internal/middleware"
	"github.com/amaraspa/spa-scheduler/internal/models"
	"github.com/amaraspa/spa-scheduler/internal/validators"
)

type ClientHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewClientHandler(db *gorm.DB, cfg *config.Config) *ClientHandler {
	return &ClientHandler{db: db, config: cfg}
}

// --------- Requests ---------

type ClientRegisterRequest struct {
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=6"`
}

type ClientStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive banned"`
}

// --------- Handlers ---------

func (h *ClientHandler) Register(c *gin.Context) {
	var req ClientRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not resolve.")
		return
	}

	var count int64
	h.db.Model(&models.Client{}).
		Where("email = ? OR username = ?", email, req.Username).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "account_already_exists", "Email or username already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	client := models.Client{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        email,
		Phone:        req.Phone,
		Status:       models.ClientStatusActive,
		PasswordHash: string(hashed),
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Could not create account.")
		return
	}

	token, err := GenerateToken(h.config, client.ID, middleware.RoleClient)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not sign session token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"client": client,
		"token":  token,
	})
}

func (h *ClientHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var client models.Client
	if err := h.db.Where("email = ?", email).First(&client).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is wrong.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is wrong.")
		return
	}

	if client.Status == models.ClientStatusBanned {
		httperr.Forbidden(c, "client_banned", "This account is banned.")
		return
	}

	token, err := GenerateToken(h.config, client.ID, middleware.RoleClient)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not sign session token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client": client,
		"token":  token,
	})
}

func (h *ClientHandler) List(c *gin.Context) {
	var clients []models.Client
	if err := h.db.Order("created_at DESC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list clients.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Client id must be numeric.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, uint(id)).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Client id must be numeric.")
		return
	}

	var req ClientStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var client models.Client
	if err := h.db.First(&client, uint(id)).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	client.Status = req.Status
	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not update client.")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Client id must be numeric.")
		return
	}

	if err := h.db.Delete(&models.Client{}, uint(id)).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not delete client.")
		return
	}

	c.Status(http.StatusNoContent)
}
