package handler

import (
	"database/sql"
	"time"

	"github.com/popeskul/lead-messenger/internal/api"
	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/scheduler"
	"github.com/popeskul/lead-messenger/internal/service"
)

func toLead(l *models.Lead) api.Lead {
	return api.Lead{
		Id:                l.ID,
		Name:              l.Name,
		Phone:             l.Phone,
		NormalizedPhone:   stringPtr(l.NormalizedPhone),
		Email:             stringPtr(l.Email),
		Program:           l.Program,
		Source:            l.Source,
		SourceInfo:        l.SourceInfo,
		LifecycleStatus:   string(l.LifecycleStatus),
		DeliveryStatus:    string(l.DeliveryStatus),
		Attempts:          l.Attempts,
		LastSentAt:        timePtr(l.LastSentAt),
		NextRetryAt:       timePtr(l.NextRetryAt),
		LastError:         stringPtr(l.LastError),
		TriggeredBy:       stringPtr(l.TriggeredBy),
		ProviderMessageId: stringPtr(l.ProviderMessageID),
		LastRepliedAt:     timePtr(l.LastRepliedAt),
		CreatedAt:         l.CreatedAt,
	}
}

func toLeadDetail(v *service.LeadView) api.LeadDetail {
	detail := api.LeadDetail{
		Lead:        toLead(v.Lead),
		Records:     make([]api.DispatchRecord, 0, len(v.Records)),
		Assignments: make([]api.Assignment, 0, len(v.Assignments)),
	}
	for _, rec := range v.Records {
		detail.Records = append(detail.Records, toDispatchRecord(rec))
	}
	for _, a := range v.Assignments {
		detail.Assignments = append(detail.Assignments, toAssignment(a))
	}
	return detail
}

func toDispatchRecord(rec *models.DispatchRecord) api.DispatchRecord {
	return api.DispatchRecord{
		Id:                rec.ID,
		Phone:             rec.Phone,
		TemplateId:        rec.TemplateID,
		Message:           rec.Message,
		TriggeredBy:       string(rec.TriggeredBy),
		SequenceId:        int64Ptr(rec.SequenceID),
		StepId:            int64Ptr(rec.StepID),
		BatchId:           stringPtr(rec.BatchID),
		Status:            string(rec.Status),
		Outcome:           string(rec.Outcome),
		ProviderMessageId: stringPtr(rec.ProviderMessageID),
		ErrorMessage:      stringPtr(rec.ErrorMessage),
		Attempts:          rec.Attempts,
		NextRetryAt:       timePtr(rec.NextRetryAt),
		CreatedAt:         rec.CreatedAt,
	}
}

func toDispatchResponse(rec *models.DispatchRecord) api.DispatchResponse {
	return api.DispatchResponse{
		LeadId:            rec.LeadID,
		RecordId:          rec.ID,
		Status:            string(rec.Status),
		Attempts:          rec.Attempts,
		ProviderMessageId: stringPtr(rec.ProviderMessageID),
		ErrorMessage:      stringPtr(rec.ErrorMessage),
		NextRetryAt:       timePtr(rec.NextRetryAt),
	}
}

func toAssignment(a *models.SequenceAssignment) api.Assignment {
	return api.Assignment{
		Id:                 a.ID,
		LeadId:             a.LeadID,
		SequenceId:         a.SequenceID,
		CurrentStepOrder:   a.CurrentStepOrder,
		Status:             api.AssignmentStatus(a.Status),
		NextSendAt:         timePtr(a.NextSendAt),
		LastSentAt:         timePtr(a.LastSentAt),
		CompletedAt:        timePtr(a.CompletedAt),
		CancellationReason: stringPtr(a.CancellationReason),
	}
}

func toSequence(v *service.SequenceView) api.Sequence {
	seq := api.Sequence{
		Id:                    v.Sequence.ID,
		Name:                  v.Sequence.Name,
		TargetLifecycleStatus: stringPtr(v.Sequence.TargetLifecycleStatus),
		TargetSource:          stringPtr(v.Sequence.TargetSource),
		AutoEnroll:            v.Sequence.AutoEnroll,
		Active:                v.Sequence.Active,
		CreatedAt:             v.Sequence.CreatedAt,
		Steps:                 make([]api.SequenceStep, 0, len(v.Steps)),
	}
	for _, st := range v.Steps {
		seq.Steps = append(seq.Steps, api.SequenceStep{
			Id:           st.ID,
			StepOrder:    st.StepOrder,
			DelayMinutes: st.DelayMinutes,
			TemplateId:   st.TemplateID,
			StopOnReply:  st.StopOnReply,
		})
	}
	return seq
}

func toSchedulerHealth(st scheduler.Status) api.SchedulerHealth {
	out := api.SchedulerHealth{
		Name:   st.Name,
		Status: api.HealthResponseSchedulerStatusStopped,
	}
	if st.Running {
		out.Status = api.HealthResponseSchedulerStatusRunning
	}
	if !st.LastRunAt.IsZero() {
		at := st.LastRunAt
		out.LastRunAt = &at
	}
	if st.LastError != "" {
		msg := st.LastError
		out.LastError = &msg
	}
	return out
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
