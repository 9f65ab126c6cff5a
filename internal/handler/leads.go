package handler

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/popeskul/lead-messenger/internal/api"
	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/service"
)

// CreateLead implements api.ServerInterface.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req api.CreateLeadJSONRequestBody
	if !h.decode(w, r, &req) {
		return
	}

	lead, err := h.service.Lead.Create(r.Context(), &service.CreateLeadInput{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           deref(req.Email),
		Program:         deref(req.Program),
		Source:          deref(req.Source),
		SourceInfo:      deref(req.SourceInfo),
		LifecycleStatus: models.LifecycleStatus(deref(req.LifecycleStatus)),
	})
	if err != nil {
		h.handleServiceError(w, r, "create lead", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toLead(lead))
}

// GetLead implements api.ServerInterface.
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request, id int64, params api.GetLeadParams) {
	records := 0
	if params.Records != nil {
		records = *params.Records
	}

	view, err := h.service.Lead.Get(r.Context(), id, records)
	if err != nil {
		h.handleServiceError(w, r, "get lead", err)
		return
	}

	render.JSON(w, r, toLeadDetail(view))
}

// DeleteLead implements api.ServerInterface.
func (h *Handler) DeleteLead(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Lead.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, "delete lead", err)
		return
	}
	render.NoContent(w, r)
}

// UpdateLeadPhone implements api.ServerInterface.
func (h *Handler) UpdateLeadPhone(w http.ResponseWriter, r *http.Request, id int64) {
	var req api.UpdateLeadPhoneJSONRequestBody
	if !h.decode(w, r, &req) {
		return
	}

	lead, err := h.service.Lead.UpdatePhone(r.Context(), id, req.Phone)
	if err != nil {
		h.handleServiceError(w, r, "update lead phone", err)
		return
	}

	render.JSON(w, r, toLead(lead))
}

// SendToLead implements api.ServerInterface.
// Provider and contact failures are not errors here: they come back as the
// recorded status of the attempt.
func (h *Handler) SendToLead(w http.ResponseWriter, r *http.Request, id int64) {
	var req api.SendToLeadJSONRequestBody
	if !h.decode(w, r, &req) {
		return
	}

	rec, err := h.service.Dispatch.Dispatch(r.Context(), &service.DispatchRequest{
		LeadID:      id,
		TemplateID:  req.TemplateId,
		TriggeredBy: models.TriggeredByManual,
	})
	if err != nil {
		h.handleServiceError(w, r, "send to lead", err)
		return
	}

	render.JSON(w, r, toDispatchResponse(rec))
}

// VerifyLead implements api.ServerInterface.
func (h *Handler) VerifyLead(w http.ResponseWriter, r *http.Request, id int64) {
	rec, err := h.service.Dispatch.Verify(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, "verify lead", err)
		return
	}

	resp := api.VerifyResponse{
		LeadId: rec.LeadID,
		Status: string(rec.Status),
	}
	if rec.Status != models.StatusInvalidPhone && rec.Phone != "" {
		phone := rec.Phone
		resp.NormalizedPhone = &phone
	}
	render.JSON(w, r, resp)
}

// StartBulkSend implements api.ServerInterface.
func (h *Handler) StartBulkSend(w http.ResponseWriter, r *http.Request) {
	var req api.StartBulkSendJSONRequestBody
	if !h.decode(w, r, &req) {
		return
	}

	in := &service.BulkRequest{TemplateID: req.TemplateId}
	if req.Filter != nil {
		in.Filter = models.BulkFilter(*req.Filter)
	}
	if req.LeadIds != nil {
		in.LeadIDs = *req.LeadIds
	}

	batch, err := h.service.Bulk.Start(r.Context(), in)
	if err != nil {
		h.handleServiceError(w, r, "start bulk send", err)
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, api.BulkSendResponse{
		BatchId: batch.ID,
		Total:   batch.Total,
	})
}

// GetBulkProgress implements api.ServerInterface.
func (h *Handler) GetBulkProgress(w http.ResponseWriter, r *http.Request, id string) {
	progress, err := h.service.Bulk.Progress(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, "get bulk progress", err)
		return
	}

	render.JSON(w, r, api.BulkProgressResponse{
		BatchId: id,
		Total:   progress.Total,
		Sent:    progress.Sent,
		Failed:  progress.Failed,
		Done:    progress.Sent+progress.Failed >= progress.Total,
	})
}
