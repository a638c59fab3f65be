package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Club-scoped CRUD endpoints share the same shape: resolve the club, bind
// the query, body or path id, call the service, write the envelope. These
// helpers keep each handler down to wiring.

func listInClub[F, R any](h *BaseHandler, c *gin.Context, list func(context.Context, uuid.UUID, F) (R, error)) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	var filter F
	if !h.bindQuery(c, &filter) {
		return
	}
	result, err := list(c.Request.Context(), clubID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func getInClub[R any](h *BaseHandler, c *gin.Context, get func(context.Context, uuid.UUID, uuid.UUID) (R, error)) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	result, err := get(c.Request.Context(), clubID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func createInClub[Q, R any](h *BaseHandler, c *gin.Context, create func(context.Context, uuid.UUID, Q) (R, error)) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	var req Q
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := create(c.Request.Context(), clubID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

func updateInClub[Q, R any](h *BaseHandler, c *gin.Context, update func(context.Context, uuid.UUID, uuid.UUID, Q) (R, error)) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req Q
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := update(c.Request.Context(), clubID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func deleteInClub(h *BaseHandler, c *gin.Context, remove func(context.Context, uuid.UUID, uuid.UUID) error) {
	clubID, ok := h.club(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := remove(c.Request.Context(), clubID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
