package handlers

import (
	"net/http"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/repositories"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateUser provisions an account below the caller in the hierarchy.
func CreateUser(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req services.CreateUserInput
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UserService{RequestID: middleware.GetRequestID(c)}
	user, err := svc.Create(principal, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, "user created", user)
}

// GetUsers lists accounts. Non-master roles only see accounts they
// provisioned.
func GetUsers(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	page := parsePage(c)

	filter := repositories.UserFilter{}
	if role, ok := domain.ParseRole(c.Query("role")); ok && c.Query("role") != "" {
		filter.Role = role
	}
	if principal.Role != domain.RoleMasterAdmin {
		filter.CreatedBy = principal.UserID
	}

	users, total, err := repositories.UserRepository{}.List(filter, page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "users fetched", listPayload("users", users, NewPageMeta(page, total)))
}

func GetUserByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	user, err := repositories.UserRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if principal.Role != domain.RoleMasterAdmin && user.ID != principal.UserID {
		if user.CreatedBy == nil || *user.CreatedBy != principal.UserID {
			respondError(c, http.StatusForbidden, "account outside your hierarchy", nil)
			return
		}
	}
	respondOK(c, "user fetched", user)
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	var req updateUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Name == "" {
		respondError(c, http.StatusBadRequest, "name required", nil)
		return
	}

	repo := repositories.UserRepository{}
	target, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if principal.Role != domain.RoleMasterAdmin && target.ID != principal.UserID {
		if target.CreatedBy == nil || *target.CreatedBy != principal.UserID {
			respondError(c, http.StatusForbidden, "account outside your hierarchy", nil)
			return
		}
	}

	user, err := repo.Update(id, req.Name, req.Phone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "user updated", user)
}

// DeleteUser is a hard delete; bookings and expenses referencing the user
// are left orphaned on purpose.
func DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)
	if id == principal.UserID {
		respondError(c, http.StatusBadRequest, "cannot delete your own account", nil)
		return
	}

	repo := repositories.UserRepository{}
	target, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if principal.Role != domain.RoleMasterAdmin {
		if target.CreatedBy == nil || *target.CreatedBy != principal.UserID {
			respondError(c, http.StatusForbidden, "account outside your hierarchy", nil)
			return
		}
	}

	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "user deleted", nil)
}
