package controller

import (
	"net/http"

	"job-market-api/internal/entity"
	"job-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v}
	outer.POST("/bids/new", h.PostBid)
	outer.GET("/bids/my", h.GetProviderBids)
	outer.GET("/bids/:jobId/list", h.GetJobBids)
	outer.POST("/jobs/:jobId/award/:bidId", h.AwardBid)

	return h
}

type postBidInput struct {
	JobId      string `json:"jobId" validate:"required,uuid"`
	ProviderId string `json:"providerId" validate:"required,uuid"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Notes      string `json:"notes" validate:"max=1000"`
}

// /bids/new
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
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

	model := &entity.CreateBidInput{
		JobId: input.JobId, ProviderId: input.ProviderId,
		Amount: input.Amount, Notes: input.Notes,
	}

	bid, err := h.bidService.SubmitBid(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrJobNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"}); e != nil {
			return e
		}
	case service.ErrProviderNotFound:
		if e := c.JSON(http.StatusUnauthorized, errorResponse{"There is no provider with given id"}); e != nil {
			return e
		}
	case service.ErrJobNotOpen:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Job isn't open, so you can't submit a bid"}); e != nil {
			return e
		}
	case service.ErrNonPositiveAmount:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Bid amount must be greater than zero"}); e != nil {
			return e
		}
	case service.ErrInsufficientBalance:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Balance doesn't cover the submission commission"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /bids/:jobId/list
func (h *bidRoutesHandler) GetJobBids(c echo.Context) error {
	bids, err := h.bidService.GetJobBids(c.Request().Context(), c.Param("jobId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, bids); e != nil {
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

type getProviderBidsInput struct {
	Limit      int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset     int32  `query:"offset" validate:"gte=0"`
	ProviderId string `query:"providerId" validate:"required,uuid"`
}

// /bids/my
func (h *bidRoutesHandler) GetProviderBids(c echo.Context) error {
	input := getProviderBidsInput{Limit: defaultLimit, Offset: defaultOffset}
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

	bids, err := h.bidService.GetProviderBids(c.Request().Context(), input.ProviderId,
		entity.NewPaginationInput(int(input.Limit), int(input.Offset)))
	if err == nil {
		if e := c.JSON(http.StatusOK, bids); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrProviderNotFound:
		if e := c.JSON(http.StatusUnauthorized, errorResponse{"There is no provider with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type awardBidInput struct {
	CustomerId string `json:"customerId" validate:"required,uuid"`
}

type awardBidOutput struct {
	ConversationId string `json:"conversationId"`
}

// /jobs/:jobId/award/:bidId
func (h *bidRoutesHandler) AwardBid(c echo.Context) error {
	var input awardBidInput
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

	conversationId, err := h.bidService.AwardBid(c.Request().Context(),
		c.Param("jobId"), c.Param("bidId"), input.CustomerId)
	if err == nil {
		if e := c.JSON(http.StatusOK, awardBidOutput{ConversationId: conversationId}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrJobNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"}); e != nil {
			return e
		}
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case service.ErrUserHasNoAccessToJob:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the job author can accept a bid"}); e != nil {
			return e
		}
	case service.ErrBidNotOnJob:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Bid doesn't belong to the given job"}); e != nil {
			return e
		}
	case service.ErrBidAlreadyRejected:
		if e := c.JSON(http.StatusConflict, errorResponse{"Bid has already been rejected"}); e != nil {
			return e
		}
	case service.ErrJobAlreadyAwarded:
		if e := c.JSON(http.StatusConflict, errorResponse{"Job is already awarded to another provider"}); e != nil {
			return e
		}
	case service.ErrJobNotOpen:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Job isn't open for awarding"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
