package httpapi

import (
	"net/http"
	"strings"
	"time"

	"calling-gateway/internal/config"
	"calling-gateway/internal/telephony"
	"calling-gateway/internal/token"
	"calling-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "Twilio Calling API"
	version     = "1.0.0"

	contentTypeXML     = "text/xml"
	statusCallbackPath = "/api/calling/call-status"
)

// Handlers groups the gateway's HTTP handlers for dependency injection.
// Keep these thin: parse input, call internal logic that returns
// (value, error), and map the result to a transport status here.
type Handlers struct {
	Cfg    *config.Config
	Tokens *token.Manager
	Events telephony.EventSink

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (h Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// errorEnvelope is the uniform JSON error shape for transport-level
// failures and token issuance errors.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// --- Health ---

func (h Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"version":   version,
	})
}

// --- Token issuance ---

type tokenRequest struct {
	Identity string `json:"identity"`
}

// CreateToken mints an outbound-voice access grant. A missing or
// unreadable body is treated as an anonymous session, not an error.
func (h Handlers) CreateToken(c *gin.Context) {
	log := logger.FromGin(c)

	var req tokenRequest
	_ = c.ShouldBindJSON(&req)

	now := h.now()
	identity := strings.TrimSpace(req.Identity)
	if identity == "" {
		identity = token.DeriveIdentity(now)
	}

	log.Info("generating access token", "identity", identity)

	signed, err := h.Tokens.Issue(now, identity)
	if err != nil {
		// Never echo signing errors; they may reference key material.
		log.Error("token issuance failed", "identity", identity, "err", err)
		c.JSON(http.StatusInternalServerError, errorEnvelope{
			Success: false,
			Error:   "token signing failed",
			Message: "Failed to generate access token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      signed,
		"identity":   identity,
		"expires_in": h.Tokens.TTLSeconds(),
	})
}

// --- Voice webhook ---

// Voice answers the provider's call-setup webhook with a dial directive
// for the configured destination. Routing is invariant to the caller:
// From/CallSid feed logging only. On failure the provider still gets
// well-formed markup (spoken apology) so the live call fails cleanly.
func (h Handlers) Voice(c *gin.Context) {
	log := logger.FromGin(c)

	form, err := telephony.ParseVoiceWebhook(c.Request)
	if err != nil {
		log.Warn("voice webhook parse failed", "err", err)
	}
	log.Info("voice webhook",
		"call_sid", form.CallSid,
		"from", form.From,
		"destination", h.Cfg.Calling.FixedNumber,
	)

	directive := telephony.DialDirective{
		Number:             h.Cfg.Calling.FixedNumber,
		CallerID:           h.Cfg.Twilio.PhoneNumber,
		StatusCallbackPath: statusCallbackPath,
	}
	markup, err := directive.Render()
	if err != nil {
		log.Error("dial directive failed", "call_sid", form.CallSid, "err", err)
		c.Data(http.StatusInternalServerError, contentTypeXML, []byte(telephony.Apology()))
		return
	}

	c.Data(http.StatusOK, contentTypeXML, []byte(markup))
}

// --- Call-status webhook ---

// CallStatus sinks provider status notifications. Empty body either way.
func (h Handlers) CallStatus(c *gin.Context) {
	log := logger.FromGin(c)

	ev, err := telephony.ParseStatusCallback(c.Request, h.now())
	if err != nil {
		log.Error("status callback parse failed", "err", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if err := h.Events.Record(c.Request.Context(), ev); err != nil {
		log.Error("call event sink failed", "call_sid", ev.CallSid, "err", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// --- Config query ---

func (h Handlers) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"config":  h.Cfg.Calling,
	})
}

// --- Transport-level envelopes ---

func (h Handlers) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorEnvelope{
		Success: false,
		Error:   "Endpoint not found",
		Message: "The requested API endpoint does not exist",
	})
}

func (h Handlers) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, errorEnvelope{
		Success: false,
		Error:   "Method not allowed",
		Message: "The HTTP method is not allowed for this endpoint",
	})
}

// Recovered is the panic handler wired into gin.CustomRecovery.
func (h Handlers) Recovered(c *gin.Context, _ any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorEnvelope{
		Success: false,
		Error:   "Internal server error",
		Message: "An unexpected error occurred",
	})
}
