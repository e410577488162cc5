package controller

import (
	"net/http"

	"job-market-api/internal/entity"
	"job-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type conversationRoutesHandler struct {
	conversationService service.Conversation
	validate            *validator.Validate
}

func newConversationRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *conversationRoutesHandler {
	h := &conversationRoutesHandler{conversationService: services.Conversation, validate: v}
	outer.GET("/conversations/my", h.GetUserConversations)
	outer.GET("/conversations/:jobId/:providerId", h.GetConversation)

	return h
}

// /conversations/:jobId/:providerId
func (h *conversationRoutesHandler) GetConversation(c echo.Context) error {
	conversation, err := h.conversationService.GetConversation(c.Request().Context(),
		c.Param("jobId"), c.Param("providerId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, conversation); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrConversationNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no conversation for given job and provider"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getUserConversationsInput struct {
	Limit  int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset int32  `query:"offset" validate:"gte=0"`
	UserId string `query:"userId" validate:"required,uuid"`
}

// /conversations/my
func (h *conversationRoutesHandler) GetUserConversations(c echo.Context) error {
	input := getUserConversationsInput{Limit: defaultLimit, Offset: defaultOffset}
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

	conversations, err := h.conversationService.GetUserConversations(c.Request().Context(),
		input.UserId, entity.NewPaginationInput(int(input.Limit), int(input.Offset)))
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, conversations); e != nil {
		return e
	}

	return nil
}
