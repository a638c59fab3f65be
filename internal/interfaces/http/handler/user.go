package handler

import (
	"github.com/clubfinanzas/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler manages the administrative users of a club
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns the users of the caller's club
func (h *UserHandler) List(c *gin.Context) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	var filter identity.UserListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.userService.List(c.Request.Context(), clubID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// Create adds a user to the caller's club
func (h *UserHandler) Create(c *gin.Context) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	var req identity.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), clubID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Update changes name, email and optionally the password of a user
func (h *UserHandler) Update(c *gin.Context) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req identity.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), clubID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangeRole assigns a new role, keeping at least one active admin
func (h *UserHandler) ChangeRole(c *gin.Context) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req identity.ChangeRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), clubID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Deactivate disables a user's access
func (h *UserHandler) Deactivate(c *gin.Context) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Deactivate(c.Request.Context(), clubID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Activate restores a user's access
func (h *UserHandler) Activate(c *gin.Context) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Activate(c.Request.Context(), clubID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete removes a user; the caller cannot delete themself
func (h *UserHandler) Delete(c *gin.Context) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "No autenticado")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), clubID, actorID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
