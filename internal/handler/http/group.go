package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type GroupHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	ListMembers(w http.ResponseWriter, r *http.Request)
	AddMember(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
}

type groupHandlerImpl struct {
	groupService group.GroupService
}

func NewGroupHandler(groupService group.GroupService) GroupHandler {
	return &groupHandlerImpl{groupService: groupService}
}

// Create handles POST /groups
func (h *groupHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req group.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateGroup decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.groupService.CreateGroup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance group created", result)
}

// Get handles GET /groups/{id}
func (h *groupHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.groupService.GetGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /groups
func (h *groupHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.groupService.ListGroups(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

// Update handles PUT /groups/{id}
func (h *groupHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req group.UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateGroup decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.groupService.UpdateGroup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance group updated", result)
}

// Delete handles DELETE /groups/{id}
func (h *groupHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.DeleteGroup(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance group deleted", nil)
}

// ListMembers handles GET /groups/{id}/members
func (h *groupHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	result, err := h.groupService.ListMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

// AddMember handles POST /groups/{id}/members/{userID}
func (h *groupHandlerImpl) AddMember(w http.ResponseWriter, r *http.Request) {
	result, err := h.groupService.AddMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User assigned to group", result)
}

// RemoveMember handles DELETE /groups/{id}/members/{userID}
func (h *groupHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.RemoveMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User removed from group", nil)
}
