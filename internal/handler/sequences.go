package handler

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/popeskul/lead-messenger/internal/api"
	"github.com/popeskul/lead-messenger/internal/service"
)

const reasonOperatorCancelled = "cancelled by operator"

// CreateSequence implements api.ServerInterface.
func (h *Handler) CreateSequence(w http.ResponseWriter, r *http.Request) {
	var req api.CreateSequenceJSONRequestBody
	if !h.decode(w, r, &req) {
		return
	}

	in := &service.CreateSequenceInput{
		Name:                  req.Name,
		TargetLifecycleStatus: deref(req.TargetLifecycleStatus),
		TargetSource:          deref(req.TargetSource),
		AutoEnroll:            req.AutoEnroll != nil && *req.AutoEnroll,
		Steps:                 make([]service.StepInput, 0, len(req.Steps)),
	}
	for _, st := range req.Steps {
		in.Steps = append(in.Steps, service.StepInput{
			StepOrder:    st.StepOrder,
			DelayMinutes: st.DelayMinutes,
			TemplateID:   st.TemplateId,
			StopOnReply:  st.StopOnReply != nil && *st.StopOnReply,
		})
	}

	view, err := h.service.Sequence.Create(r.Context(), in)
	if err != nil {
		h.handleServiceError(w, r, "create sequence", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toSequence(view))
}

// EnrollLead implements api.ServerInterface.
func (h *Handler) EnrollLead(w http.ResponseWriter, r *http.Request, id int64) {
	var req api.EnrollLeadJSONRequestBody
	if !h.decode(w, r, &req) {
		return
	}

	assignment, err := h.service.Sequence.Enroll(r.Context(), id, req.LeadId)
	if err != nil {
		h.handleServiceError(w, r, "enroll lead", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAssignment(assignment))
}

// CancelAssignment implements api.ServerInterface. The body is optional.
func (h *Handler) CancelAssignment(w http.ResponseWriter, r *http.Request, id int64) {
	reason := reasonOperatorCancelled
	if r.ContentLength > 0 {
		var req api.CancelAssignmentJSONRequestBody
		if !h.decode(w, r, &req) {
			return
		}
		if req.Reason != nil && *req.Reason != "" {
			reason = *req.Reason
		}
	}

	if err := h.service.Sequence.Cancel(r.Context(), id, reason); err != nil {
		h.handleServiceError(w, r, "cancel assignment", err)
		return
	}
	render.NoContent(w, r)
}

// PauseAssignment implements api.ServerInterface.
func (h *Handler) PauseAssignment(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Sequence.Pause(r.Context(), id); err != nil {
		h.handleServiceError(w, r, "pause assignment", err)
		return
	}
	render.NoContent(w, r)
}

// ResumeAssignment implements api.ServerInterface.
func (h *Handler) ResumeAssignment(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Sequence.Resume(r.Context(), id); err != nil {
		h.handleServiceError(w, r, "resume assignment", err)
		return
	}
	render.NoContent(w, r)
}
