// Package handler provides HTTP request handlers for the application.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/api"
	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/middleware"
	"github.com/popeskul/lead-messenger/internal/repository"
	"github.com/popeskul/lead-messenger/internal/scheduler"
	"github.com/popeskul/lead-messenger/internal/service"
)

const (
	errorCodeSchedulerAlreadyRunning = "SCHEDULER_ALREADY_RUNNING"
	errorCodeSchedulerNotRunning     = "SCHEDULER_NOT_RUNNING"
	errorCodeInvalidRequest          = "INVALID_REQUEST"
	errorCodeValidationFailed        = "VALIDATION_FAILED"
	errorCodeNotFound                = "NOT_FOUND"
	errorCodeDispatchInFlight        = "DISPATCH_IN_FLIGHT"
	errorCodeDeliveryOpen            = "DELIVERY_OPEN"
	errorCodeAlreadyEnrolled         = "ALREADY_ENROLLED"
	errorCodeAssignmentClosed        = "ASSIGNMENT_CLOSED"
	errorCodeInvalidSignature        = "INVALID_SIGNATURE"
	errorCodeForbidden               = "FORBIDDEN"
)

const (
	errorMessageSchedulerAlreadyRunning = "Scheduler is already running"
	errorMessageSchedulerNotRunning     = "Scheduler is not running"
	errorMessageFailedToStartScheduler  = "Failed to start scheduler"
	errorMessageFailedToStopScheduler   = "Failed to stop scheduler"
	errorMessageInvalidBody             = "Request body is not valid JSON"
	errorMessageInvalidSignature        = "Webhook signature does not match"
	errorMessageVerifyTokenMismatch     = "Verify token does not match"
	errorMessageInternal                = "Internal server error"
)

const (
	schedulerMessageStarted = "Scheduler started successfully"
	schedulerMessageStopped = "Scheduler stopped successfully"
)

// errorMapping ties service and repository sentinels to HTTP responses.
// The first matching entry wins.
var errorMappings = []struct {
	err    error
	status int
	code   string
}{
	{repository.ErrLeadNotFound, http.StatusNotFound, errorCodeNotFound},
	{repository.ErrRecordNotFound, http.StatusNotFound, errorCodeNotFound},
	{repository.ErrSequenceNotFound, http.StatusNotFound, errorCodeNotFound},
	{repository.ErrStepNotFound, http.StatusNotFound, errorCodeNotFound},
	{repository.ErrAssignmentNotFound, http.StatusNotFound, errorCodeNotFound},
	{repository.ErrBatchNotFound, http.StatusNotFound, errorCodeNotFound},
	{repository.ErrDispatchInFlight, http.StatusConflict, errorCodeDispatchInFlight},
	{repository.ErrDeliveryOpen, http.StatusConflict, errorCodeDeliveryOpen},
	{repository.ErrAlreadyEnrolled, http.StatusConflict, errorCodeAlreadyEnrolled},
	{repository.ErrAssignmentClosed, http.StatusConflict, errorCodeAssignmentClosed},
	{service.ErrInvalidLead, http.StatusUnprocessableEntity, errorCodeValidationFailed},
	{service.ErrInvalidFilter, http.StatusUnprocessableEntity, errorCodeValidationFailed},
	{service.ErrInvalidSequence, http.StatusUnprocessableEntity, errorCodeValidationFailed},
	{service.ErrUnknownTemplate, http.StatusUnprocessableEntity, errorCodeValidationFailed},
	{service.ErrEmptyRecipients, http.StatusUnprocessableEntity, errorCodeValidationFailed},
	{service.ErrSequenceInactive, http.StatusUnprocessableEntity, errorCodeValidationFailed},
}

type Handler struct {
	service *service.Service
	webhook config.WebhookConfig
	logger  *zap.Logger
}

// NewHandler creates a new handler instance that implements api.ServerInterface.
func NewHandler(service *service.Service, webhook config.WebhookConfig, logger *zap.Logger) api.ServerInterface {
	return &Handler{
		service: service,
		webhook: webhook,
		logger:  logger,
	}
}

// StartScheduler implements api.ServerInterface.
func (h *Handler) StartScheduler(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	err := h.service.Scheduler.Start()
	if err != nil {
		if errors.Is(err, scheduler.ErrSchedulerAlreadyRunning) {
			h.sendError(w, r, http.StatusConflict, errorCodeSchedulerAlreadyRunning, errorMessageSchedulerAlreadyRunning)
			return
		}

		h.logger.Error("Failed to start scheduler",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToStartScheduler)
		return
	}

	render.JSON(w, r, api.SchedulerResponse{
		Status:  api.Started,
		Message: schedulerMessageStarted,
	})
}

// StopScheduler implements api.ServerInterface.
func (h *Handler) StopScheduler(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	err := h.service.Scheduler.Stop()
	if err != nil {
		if errors.Is(err, scheduler.ErrSchedulerNotRunning) {
			h.sendError(w, r, http.StatusConflict, errorCodeSchedulerNotRunning, errorMessageSchedulerNotRunning)
			return
		}

		h.logger.Error("Failed to stop scheduler",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToStopScheduler)
		return
	}

	render.JSON(w, r, api.SchedulerResponse{
		Status:  api.Stopped,
		Message: schedulerMessageStopped,
	})
}

// HealthCheck implements api.ServerInterface.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth(r.Context())

	response := api.HealthResponse{
		Status:    health.Status,
		Timestamp: time.Now(),
	}

	if len(health.Schedulers) > 0 {
		schedulers := make([]api.SchedulerHealth, 0, len(health.Schedulers))
		for _, st := range health.Schedulers {
			schedulers = append(schedulers, toSchedulerHealth(st))
		}
		response.Schedulers = &schedulers
	}

	if health.DatabaseStatus != "" {
		status := health.DatabaseStatus
		response.DatabaseStatus = &status
	}

	if health.RedisStatus != "" {
		status := health.RedisStatus
		response.RedisStatus = &status
	}

	if health.CircuitBreakerStatus != "" {
		response.CircuitBreakerStatus = &health.CircuitBreakerStatus
	}

	if health.CircuitBreakerState != "" {
		state := health.CircuitBreakerState
		response.CircuitBreakerState = &state
	}

	// Degraded stays 200 so the service remains routable while the breaker is open.
	if health.Status == api.Unhealthy {
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, response)
}

// decode reads a JSON body into v, answering 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeInvalidRequest, errorMessageInvalidBody)
		return false
	}
	return true
}

// handleServiceError maps known sentinels to client errors; anything else is
// logged and reported as 500.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			h.sendError(w, r, m.status, m.code, err.Error())
			return
		}
	}

	h.logger.Error("Request failed",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("operation", op),
		zap.Error(err))
	h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageInternal)
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, api.ErrorResponse{
		Error:   errorCode,
		Message: message,
		Timestamp: func() *time.Time {
			t := time.Now()
			return &t
		}(),
	})
}
