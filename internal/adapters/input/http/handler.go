package http

import (
	"errors"

	"support-relay/internal/domain"
	"support-relay/internal/ports/input"
	"support-relay/internal/ports/output"
	"support-relay/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	relay     input.RelayService
	directory input.DirectoryService
	store     output.SessionStore
	validator validator.Validator
}

// New func - Creates new HTTP handler
func New(relay input.RelayService, directory input.DirectoryService, store output.SessionStore) *HTTPHandler {
	return &HTTPHandler{
		relay:     relay,
		directory: directory,
		store:     store,
		validator: validator.New(),
	}
}

// errorStatus maps a domain error to the HTTP response envelope
func errorStatus(err error) (int, ResponseBody) {
	switch {
	case errors.Is(err, domain.ErrInvalidSessionID),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrInvalidRequest):
		msg := ResponseBody{Status: BadRequest}
		msg.Status.Message = []string{err.Error()}
		return fiber.StatusBadRequest, msg
	case errors.Is(err, domain.ErrSessionNotFound):
		msg := ResponseBody{Status: NotFound}
		msg.Status.Message = []string{err.Error()}
		return fiber.StatusNotFound, msg
	default:
		msg := ResponseBody{Status: InternalServerError}
		msg.Status.Message = []string{err.Error()}
		return fiber.StatusInternalServerError, msg
	}
}

// HealthCheck func
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if err := hdl.store.Ping(c.Context()); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// CreateSession godoc
// @Summary Mint a session id
// @Description Returns a fresh collision-resistant session identifier for a widget
// @Tags SESSIONS
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/sessions [post]
// @Produce json
func (hdl *HTTPHandler) CreateSession(c *fiber.Ctx) error {
	session, err := hdl.relay.OpenSession(c.Context())
	if err != nil {
		logrus.Errorln(err)
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: SessionResponse{ID: session.ID}})
}

// SubmitVisitorMessage godoc
// @Summary Submit a visitor message
// @Description Stores the visitor's message and, when configured, an automated assistant reply
// @Tags MESSAGES
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/messages/visitor [post]
// @Produce json
// @param SubmitVisitorMessage body VisitorMessageRequest true "SubmitVisitorMessage"
func (hdl *HTTPHandler) SubmitVisitorMessage(c *fiber.Ctx) error {
	var request VisitorMessageRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		msg := ResponseBody{
			Status: BadRequest,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	}

	exchange, err := hdl.relay.SubmitVisitorMessage(c.Context(), domain.VisitorMessageRequest{
		SessionID: request.SessionID,
		Text:      request.Text,
		Context:   request.Context,
	})
	if err != nil {
		logrus.Errorln(err)
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}

	response := ExchangeResponse{
		StoredMessage:    toMessageResponse(exchange.Stored),
		ReplyMessage:     toMessageResponse(exchange.Reply),
		ReplyUnavailable: exchange.ReplyUnavailable,
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: response})
}

// SubmitStaffMessage godoc
// @Summary Submit a staff reply
// @Description Stores an operator's reply into a session
// @Tags MESSAGES
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/messages/staff [post]
// @Produce json
// @param SubmitStaffMessage body StaffMessageRequest true "SubmitStaffMessage"
func (hdl *HTTPHandler) SubmitStaffMessage(c *fiber.Ctx) error {
	var request StaffMessageRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		msg := ResponseBody{
			Status: BadRequest,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	}

	stored, err := hdl.relay.SubmitStaffMessage(c.Context(), domain.StaffMessageRequest{
		SessionID: request.SessionID,
		Text:      request.Text,
	})
	if err != nil {
		logrus.Errorln(err)
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: toMessageResponse(stored)})
}

// ListSessions godoc
// @Summary List active sessions
// @Description Snapshot of all known sessions with previews of their latest messages
// @Tags SESSIONS
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/sessions [get]
// @Produce json
func (hdl *HTTPHandler) ListSessions(c *fiber.Ctx) error {
	summaries, err := hdl.directory.ListSessions(c.Context())
	if err != nil {
		logrus.Errorln(err)
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}

	rows := make([]SessionSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, SessionSummaryResponse{
			ID:           summary.ID,
			Preview:      summary.Preview,
			MessageCount: summary.MessageCount,
			UpdatedAt:    summary.UpdatedAt,
		})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: rows})
}

// GetSessionMessages godoc
// @Summary Get a session's messages
// @Description Full message history of one session in append order
// @Tags SESSIONS
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/sessions/{id}/messages [get]
// @Produce json
// @param id path string true "session id"
func (hdl *HTTPHandler) GetSessionMessages(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	history, err := hdl.directory.SessionMessages(c.Context(), id)
	if err != nil {
		logrus.Errorln(err)
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}

	rows := make([]MessageResponse, 0, len(history))
	for i := range history {
		rows = append(rows, *toMessageResponse(&history[i]))
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: rows})
}
