package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/service"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
	"github.com/uniplan/uniplan-api/pkg/response"
)

type schedulerRunner interface {
	Run(ctx context.Context, req dto.RunScheduleRequest) (*dto.RunResult, error)
	LastResult(ctx context.Context) (*dto.RunResult, error)
	Status(ctx context.Context) (*dto.ScheduleStatus, error)
}

// SchedulerHandler exposes the scheduling endpoints.
type SchedulerHandler struct {
	service schedulerRunner
}

// NewSchedulerHandler constructs the handler.
func NewSchedulerHandler(svc *service.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{service: svc}
}

// Generate godoc
// @Summary Run timetable generation
// @Description Executes the chosen scheduling algorithm over all active courses and replaces the persisted timetable with the outcome.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.RunScheduleRequest true "Scheduling run payload"
// @Success 200 {object} response.Envelope
// @Router /scheduler/generate [post]
func (h *SchedulerHandler) Generate(c *gin.Context) {
	var req dto.RunScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid scheduling payload"))
		return
	}
	result, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// LastRun godoc
// @Summary Fetch the most recent scheduling run result
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduler/last-run [get]
func (h *SchedulerHandler) LastRun(c *gin.Context) {
	result, err := h.service.LastResult(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Status godoc
// @Summary Report schedule completion status
// @Description Compares the persisted timetable against the required sessions of all active courses.
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduler/status [get]
func (h *SchedulerHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}
