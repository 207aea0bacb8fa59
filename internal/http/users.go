package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/services"
)

type UsersController struct {
	users UserManager
}

func NewUsersController(users UserManager) *UsersController {
	return &UsersController{users: users}
}

func (controller *UsersController) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := controller.users.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Status:  statusSuccess,
		Message: "user registered successfully",
		User:    result.User,
		Token:   result.Token,
	})
}

func (controller *UsersController) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := controller.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Status:  statusSuccess,
		Message: "login successful",
		User:    result.User,
		Token:   result.Token,
	})
}

func (controller *UsersController) ListUsers(c *gin.Context) {
	result, err := controller.users.ListUsers(c.Request.Context(), parsePage(c))
	if err != nil {
		respondListError(c, err)
		return
	}
	respondPage(c, result)
}

func (controller *UsersController) GetUser(c *gin.Context) {
	user, err := controller.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", user)
}

func (controller *UsersController) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := controller.users.UpdateUser(c.Request.Context(), c.Param("id"), services.UserUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "user data updated successfully", user)
}

func (controller *UsersController) DeleteUser(c *gin.Context) {
	if err := controller.users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "user deleted successfully", nil)
}
