package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ndukwe/athenaeum/data/dto"
	"github.com/ndukwe/athenaeum/internal/validator"
	"github.com/ndukwe/athenaeum/service"
)

// RegisterMember godoc
// @Summary Register a new library member
// @Description This endpoint registers a new member. The membership ID and registration date are assigned by the server and a welcome email is sent in the background.
// @Tags members
// @Accept  json
// @Produce json
// @Param body body dto.RegisterMemberRequestBody true "JSON request body"
// @Success 201 {object} data.Member
// @Failure 400
// @Failure 422
// @Failure 500
// @Router /members [post]
func (h *Handler) registerMemberHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.RegisterMemberRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	member, err := h.service.RegisterMember(requestBody.Name, requestBody.Email, requestBody.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/members/%d", member.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"member": member}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowMember godoc
// @Summary Show details of a member
// @Description This endpoint shows the details of a specific member
// @Tags members
// @Accept  json
// @Produce json
// @Param memberId path int true "ID of member to show"
// @Success 200 {object} data.Member
// @Failure 404
// @Failure 500
// @Router /members/{memberId} [get]
func (h *Handler) showMemberHandler(w http.ResponseWriter, r *http.Request) {
	memberID, err := h.readIDParam(r, "memberId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	member, err := h.service.GetMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"member": member}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListMembers godoc
// @Summary List all members
// @Description This endpoint lists all members. The list can be searched, filtered by status and sorted.
// @Tags members
// @Accept  json
// @Produce json
// @Param search query string false "Search by name, email or membership ID"
// @Param status query string false "Filter by status (ACTIVE or SUSPENDED)"
// @Param page query int false "Query string param for pagination (min 1)"
// @Param page_size query int false "Query string param for pagination (max 100)"
// @Param sort query string false "Sort by ascending or descending order. Asc: id, name, registration_date. Desc: -id, -name, -registration_date"
// @Success 200 {array} data.Member
// @Failure 422
// @Failure 500
// @Router /members [get]
func (h *Handler) listMembersHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListMembers
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Search = h.readString(qs, "search", "")
	qsInput.Status = h.readString(qs, "status", "")
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 20, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "id")
	qsInput.Filters.SortSafeList = []string{"id", "name", "registration_date", "-id", "-name", "-registration_date"}
	members, metadata, err := h.service.ListMembers(qsInput.Search, qsInput.Status, qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"members": members, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateMember godoc
// @Summary Update details of a member
// @Description This endpoint updates the details of a specific member, including suspending or reactivating the account
// @Tags members
// @Accept  json
// @Produce json
// @Param memberId path int true "ID of member to update"
// @Param body body dto.UpdateMemberRequestBody true "JSON request body"
// @Success 200 {object} data.Member
// @Failure 400
// @Failure 404
// @Failure 409
// @Failure 422
// @Failure 500
// @Router /members/{memberId} [put]
func (h *Handler) updateMemberHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.UpdateMemberRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	memberID, err := h.readIDParam(r, "memberId")
	if err != nil || memberID < 1 {
		h.notFoundResponse(w, r)
		return
	}
	member, err := h.service.UpdateMember(memberID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"member": member}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteMember godoc
// @Summary Delete a member
// @Description This endpoint deletes a specific member. A member with books out on loan cannot be deleted.
// @Tags members
// @Accept  json
// @Produce json
// @Param memberId path int true "ID of member to delete"
// @Success 200
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /members/{memberId} [delete]
func (h *Handler) deleteMemberHandler(w http.ResponseWriter, r *http.Request) {
	memberID, err := h.readIDParam(r, "memberId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrOutstandingBorrows):
			h.outstandingBorrowsResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "member successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
