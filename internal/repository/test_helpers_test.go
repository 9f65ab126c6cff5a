package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/repository"
)

func insertTestLead(t *testing.T, repo repository.Repository, name, phone string) *models.Lead {
	t.Helper()

	lead := &models.Lead{
		Name:            name,
		Phone:           phone,
		NormalizedPhone: sql.NullString{String: phone, Valid: phone != ""},
		Program:         "MBA",
		Source:          "facebook",
		SourceInfo:      "spring campaign",
	}
	require.NoError(t, repo.Lead().Create(context.Background(), lead))
	return lead
}

func insertTestLeads(t *testing.T, repo repository.Repository, count int) []*models.Lead {
	t.Helper()

	leads := make([]*models.Lead, count)
	for i := range leads {
		leads[i] = insertTestLead(t, repo, fmt.Sprintf("Lead %d", i), fmt.Sprintf("+2126612345%02d", i))
	}
	return leads
}

func claimTestAttempt(t *testing.T, repo repository.Repository, leadID int64, link models.DispatchLink, at time.Time) *models.DispatchRecord {
	t.Helper()

	_, rec, err := repo.Dispatch().Claim(context.Background(), &models.ClaimRequest{
		LeadID:      leadID,
		TemplateID:  "welcome",
		TriggeredBy: models.TriggeredByManual,
		Link:        link,
		Attempts:    1,
		At:          at,
	})
	require.NoError(t, err)
	return rec
}

// finishTestAttempt closes rec with outcome, adding a provider id or retry time when the status needs one.
func finishTestAttempt(t *testing.T, repo repository.Repository, rec *models.DispatchRecord, outcome, status models.DeliveryStatus, at time.Time) *models.DispatchRecord {
	t.Helper()

	res := &models.AttemptResult{
		RecordID:     rec.ID,
		Phone:        rec.Phone,
		Message:      "Hello",
		Outcome:      outcome,
		Status:       status,
		Attempts:     rec.Attempts,
		CountAttempt: outcome != models.StatusInvalidPhone,
		At:           at,
	}
	if status.HasProviderMessage() {
		res.ProviderMessageID = sql.NullString{String: fmt.Sprintf("wamid.%d", rec.ID), Valid: true}
	}
	if status == models.StatusPendingRetry {
		res.NextRetryAt = sql.NullTime{Time: at.Add(time.Minute), Valid: true}
	}
	if !outcome.Succeeded() {
		res.ErrorMessage = sql.NullString{String: "provider timeout", Valid: true}
	}

	done, err := repo.Dispatch().Complete(context.Background(), res)
	require.NoError(t, err)
	return done
}
