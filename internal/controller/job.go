package controller

import (
	"net/http"

	"job-market-api/internal/entity"
	"job-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type jobRoutesHandler struct {
	jobService service.Job
	validate   *validator.Validate
}

func newJobRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *jobRoutesHandler {
	h := &jobRoutesHandler{jobService: services.Job, validate: v}
	outer.POST("/jobs/new", h.PostJob)
	outer.GET("/jobs", h.GetOpenJobs)
	outer.GET("/jobs/:jobId", h.GetJob)
	outer.PUT("/jobs/:jobId/status", h.UpdateJobStatus)

	return h
}

type postJobInput struct {
	CustomerId string `json:"customerId" validate:"required,uuid"`
	Title      string `json:"title" validate:"required,max=100"`
	Details    string `json:"details" validate:"required,max=2000"`
	Location   string `json:"location" validate:"required,max=200"`
	Urgent     bool   `json:"urgent"`
}

// /jobs/new
func (h *jobRoutesHandler) PostJob(c echo.Context) error {
	var input postJobInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.CreateJobInput{
		CustomerId: input.CustomerId, Title: input.Title, Details: input.Details,
		Location: input.Location, Urgent: input.Urgent,
	}

	job, err := h.jobService.CreateJob(c.Request().Context(), model)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, job); e != nil {
		return e
	}

	return nil
}

// /jobs/:jobId
func (h *jobRoutesHandler) GetJob(c echo.Context) error {
	job, err := h.jobService.GetJobById(c.Request().Context(), c.Param("jobId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, job); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrJobNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getOpenJobsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /jobs
func (h *jobRoutesHandler) GetOpenJobs(c echo.Context) error {
	input := getOpenJobsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	jobs, err := h.jobService.GetOpenJobs(c.Request().Context(),
		entity.NewPaginationInput(int(input.Limit), int(input.Offset)))
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, jobs); e != nil {
		return e
	}

	return nil
}

type updateJobStatusInput struct {
	CustomerId string `json:"customerId" validate:"required,uuid"`
	Status     string `json:"status" validate:"required,oneof=open rejected completed"`
}

// /jobs/:jobId/status
func (h *jobRoutesHandler) UpdateJobStatus(c echo.Context) error {
	var input updateJobStatusInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	job, err := h.jobService.UpdateJobStatusById(c.Request().Context(),
		c.Param("jobId"), entity.JobStatus(input.Status), input.CustomerId)
	if err == nil {
		if e := c.JSON(http.StatusOK, job); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrJobNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"}); e != nil {
			return e
		}
	case service.ErrUserHasNoAccessToJob:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the job author can change its status"}); e != nil {
			return e
		}
	case service.ErrInvalidStatusTransition:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Job status can't move this way"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
