package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/weiawesome/contact-service/internal/domain"
	"github.com/weiawesome/contact-service/internal/service"
	"github.com/weiawesome/contact-service/pkg/log"
	"github.com/weiawesome/contact-service/pkg/response"
)

// DefaultFormPage is where the browser returns after a submission.
const DefaultFormPage = "/contact.html"

// Handler handles HTTP requests for contact service.
type Handler struct {
	contactService service.ContactService
	formPage       string
}

// NewHandler creates a new HTTP handler.
func NewHandler(contactService service.ContactService, formPage string) *Handler {
	if formPage == "" {
		formPage = DefaultFormPage
	}
	return &Handler{
		contactService: contactService,
		formPage:       formPage,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/submit-message", h.SubmitMessage)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/messages", h.ListMessages)
	}
}

// SubmitMessage stores a contact-form submission.
func (h *Handler) SubmitMessage(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	req, err := bindSubmitRequest(c)
	if err != nil {
		l.Warn().Err(err).Msg("failed to bind submit message request")
		h.respondValidation(c, "invalid request body")
		return
	}

	msg, err := h.contactService.SubmitMessage(ctx, req)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			l.Warn().Str("validation", verr.Summary()).Msg("contact message rejected")
			h.respondValidation(c, verr.Summary())
			return
		}
		l.Error().Err(err).Msg("failed to store contact message")
		h.respondServerError(c)
		return
	}

	l.Info().Str(log.FieldMessageID, msg.ID).Msg("contact message stored")

	if wantsJSON(c) {
		response.Success(c, domain.SubmitResult{ID: msg.ID, Message: MsgSubmitted})
		return
	}
	renderFragment(c, http.StatusOK, MsgSubmitted, h.formPage)
}

// ListMessages returns every stored message, newest first.
func (h *Handler) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	messages, err := h.contactService.ListMessages(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Health reports whether the message store is reachable.
func (h *Handler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.contactService.Health(ctx); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Recover writes the generic server error after a handler panic. It is
// meant to be passed to log.GinRecovery.
func (h *Handler) Recover(c *gin.Context, _ any) {
	h.respondServerError(c)
	c.Abort()
}

func (h *Handler) respondValidation(c *gin.Context, summary string) {
	if wantsJSON(c) {
		response.ValidationFailed(c, summary)
		return
	}
	renderFragment(c, http.StatusBadRequest, MsgValidationError+summary, h.formPage)
}

func (h *Handler) respondServerError(c *gin.Context) {
	if wantsJSON(c) {
		response.InternalError(c, MsgServerError)
		return
	}
	renderFragment(c, http.StatusInternalServerError, MsgServerError, h.formPage)
}

// wantsJSON reports whether the client prefers JSON over the HTML fragment.
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) == binding.MIMEJSON
}

// bindSubmitRequest decodes JSON bodies into the optional-field request and
// falls back to form values for everything else.
func bindSubmitRequest(c *gin.Context) (domain.SubmitRequest, error) {
	var req domain.SubmitRequest

	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, err
		}
		return req, nil
	}

	for name, field := range map[string]*domain.Field{
		"name":    &req.Name,
		"email":   &req.Email,
		"subject": &req.Subject,
		"message": &req.Message,
	} {
		if v, ok := c.GetPostForm(name); ok {
			*field = domain.Text(v)
		}
	}
	return req, nil
}
