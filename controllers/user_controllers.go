package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rcsmith8/starter-restaurant-reservation/middlewares"
	"github.com/rcsmith8/starter-restaurant-reservation/services"
	"github.com/rcsmith8/starter-restaurant-reservation/utils"
)

type UserController struct {
	Service services.UserService
}

func NewUserController(service services.UserService) *UserController {
	return &UserController{Service: service}
}

// Register -> creates a staff account; see services.UserService.Register for who may call it
func (uc *UserController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			utils.RespondError(c, services.RegistrationError(fields))
			return
		}
		utils.RespondStatus(c, http.StatusBadRequest, "Request body must be a JSON object.")
		return
	}

	user, err := uc.Service.Register(c.Request.Context(), req, c.GetString(middlewares.RoleKey))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, user)
}

// Login -> returns a bearer token
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondStatus(c, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, err := uc.Service.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetUint(middlewares.UserIDKey)
	if userID == 0 {
		utils.RespondStatus(c, http.StatusUnauthorized, "Authorization required.")
		return
	}
	user, err := uc.Service.Profile(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, user)
}
