package handler

import (
	appaudit "github.com/clubfinanzas/backend/internal/application/audit"
	appclub "github.com/clubfinanzas/backend/internal/application/club"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClubHandler is the super-admin surface over every club of the platform
type ClubHandler struct {
	BaseHandler
	service *appclub.Service
}

// NewClubHandler creates a new ClubHandler
func NewClubHandler(service *appclub.Service) *ClubHandler {
	return &ClubHandler{service: service}
}

// List returns a page of clubs
func (h *ClubHandler) List(c *gin.Context) {
	var filter appclub.ClubListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

func (h *ClubHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	club, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, club)
}

// Create registers a new club with its default configuration
func (h *ClubHandler) Create(c *gin.Context) {
	var req appclub.CreateClubRequest
	if !h.bindJSON(c, &req) {
		return
	}
	var createdBy *uuid.UUID
	if id, err := getUserID(c); err == nil {
		createdBy = &id
	}

	club, err := h.service.Create(c.Request.Context(), createdBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, club)
}

func (h *ClubHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appclub.UpdateClubRequest
	if !h.bindJSON(c, &req) {
		return
	}
	club, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, club)
}

func (h *ClubHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateAdmin adds an administrator to the club in the path
func (h *ClubHandler) CreateAdmin(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appclub.CreateAdminRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.service.CreateAdmin(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Stats returns platform-wide counters
func (h *ClubHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// ConfigHandler handles /configuracion of the caller's club
type ConfigHandler struct {
	BaseHandler
	service *appclub.ConfigService
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(service *appclub.ConfigService) *ConfigHandler {
	return &ConfigHandler{service: service}
}

func (h *ConfigHandler) Get(c *gin.Context) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	cfg, err := h.service.Get(c.Request.Context(), clubID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

func (h *ConfigHandler) Update(c *gin.Context) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	var req appclub.UpdateConfigRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cfg, err := h.service.Update(c.Request.Context(), clubID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// AuditHandler exposes the audit trail of the caller's club
type AuditHandler struct {
	BaseHandler
	service *appaudit.Service
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(service *appaudit.Service) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) List(c *gin.Context) {
	listInClub(&h.BaseHandler, c, h.service.List)
}

// PublicHandler serves the unauthenticated club page
type PublicHandler struct {
	BaseHandler
	service *appclub.PublicService
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(service *appclub.PublicService) *PublicHandler {
	return &PublicHandler{service: service}
}

func (h *PublicHandler) Club(c *gin.Context) {
	club, err := h.service.Club(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, club)
}

// Campaigns lists the club's campaigns, optionally narrowed by ?estado=
func (h *PublicHandler) Campaigns(c *gin.Context) {
	campaigns, err := h.service.Campaigns(c.Request.Context(), c.Param("slug"), c.Query("estado"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, campaigns)
}

func (h *PublicHandler) Campaign(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	campaign, err := h.service.Campaign(c.Request.Context(), c.Param("slug"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, campaign)
}

// Summary returns the finance totals when the club has public transparency on
func (h *PublicHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
