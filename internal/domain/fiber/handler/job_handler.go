package handler

import (
	"time"

	"github.com/fadilmartias/job-portal/internal/dto"
	apperrors "github.com/fadilmartias/job-portal/internal/errors"
	"github.com/fadilmartias/job-portal/internal/middleware"
	"github.com/fadilmartias/job-portal/internal/usecase"
	"github.com/fadilmartias/job-portal/internal/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type JobHandler struct {
	uc              *usecase.JobUsecase
	logger          *zap.Logger
	rateLimitMax    int
	rateLimitWindow time.Duration
}

func NewJobHandler(uc *usecase.JobUsecase, logger *zap.Logger, rateLimitMax int, rateLimitWindow time.Duration) *JobHandler {
	return &JobHandler{
		uc:              uc,
		logger:          logger,
		rateLimitMax:    rateLimitMax,
		rateLimitWindow: rateLimitWindow,
	}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	jobs := app.Group("/api/jobs")
	writes := middleware.RateLimiter(h.rateLimitMax, h.rateLimitWindow)

	jobs.Get("/", h.List)
	jobs.Get("/:id", h.Get)
	jobs.Post("/", writes, h.Create)
	jobs.Put("/:id", writes, h.Update)
	jobs.Delete("/:id", writes, h.Delete)
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	var filter dto.JobFilter
	if err := c.QueryParser(&filter); err != nil {
		return util.ErrorResponse(c, h.logger, apperrors.InvalidInput("Invalid query parameters", err))
	}

	jobs, err := h.uc.ListJobs(c.UserContext(), filter)
	if err != nil {
		return util.ErrorResponse(c, h.logger, err)
	}
	return util.SuccessResponse(c, fiber.StatusOK, dto.FromModels(jobs))
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return util.ErrorResponse(c, h.logger, err)
	}

	job, err := h.uc.GetJob(c.UserContext(), id)
	if err != nil {
		return util.ErrorResponse(c, h.logger, err)
	}
	return util.SuccessResponse(c, fiber.StatusOK, dto.FromModel(*job))
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	req, err := parseJobRequest(c)
	if err != nil {
		return util.ErrorResponse(c, h.logger, err)
	}

	id, err := h.uc.CreateJob(c.UserContext(), req)
	if err != nil {
		return util.ErrorResponse(c, h.logger, err)
	}
	return util.SuccessResponse(c, fiber.StatusCreated, dto.CreateJobResponse{
		Message: "Job created successfully",
		JobID:   id,
	})
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return util.ErrorResponse(c, h.logger, err)
	}
	req, err := parseJobRequest(c)
	if err != nil {
		return util.ErrorResponse(c, h.logger, err)
	}

	if err := h.uc.UpdateJob(c.UserContext(), id, req); err != nil {
		return util.ErrorResponse(c, h.logger, err)
	}
	return util.SuccessResponse(c, fiber.StatusOK, dto.MessageResponse{Message: "Job updated successfully"})
}

func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return util.ErrorResponse(c, h.logger, err)
	}

	if err := h.uc.DeleteJob(c.UserContext(), id); err != nil {
		return util.ErrorResponse(c, h.logger, err)
	}
	return util.SuccessResponse(c, fiber.StatusOK, dto.MessageResponse{Message: "Job deleted successfully"})
}

// jobID parses the :id segment. Anything that is not a positive integer
// cannot name a row, so it is reported as not found.
func jobID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.NotFound("Job not found", err)
	}
	return uint(id), nil
}

// parseJobRequest decodes the JSON body. An empty body decodes to an empty
// request and is left for the store to reject.
func parseJobRequest(c *fiber.Ctx) (dto.JobPostingRequest, error) {
	var req dto.JobPostingRequest
	body := c.Body()
	if len(body) == 0 {
		return req, nil
	}
	if err := c.App().Config().JSONDecoder(body, &req); err != nil {
		return req, apperrors.InvalidInput("Invalid JSON body", err)
	}
	return req, nil
}
