package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mailgenie-backend/config"
	"mailgenie-backend/models"
	"mailgenie-backend/services"
)

// EmailController handles email generation and dispatch operations
type EmailController struct {
	groqService services.GroqService
	mailService services.MailService
	smtpConfig  config.SMTPConfig
}

// NewEmailController creates a new email controller instance
func NewEmailController(groqService services.GroqService, mailService services.MailService, smtpConfig config.SMTPConfig) *EmailController {
	return &EmailController{
		groqService: groqService,
		mailService: mailService,
		smtpConfig:  smtpConfig,
	}
}

// GenerateEmail generates an email from a prompt via the upstream model API
func (ec *EmailController) GenerateEmail(c *gin.Context) {
	var req models.EmailGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.EmailError{
			Error:   "Invalid generation request",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		c.JSON(http.StatusBadRequest, models.EmailError{
			Error: "Prompt cannot be empty",
			Code:  "MISSING_FIELDS",
		})
		return
	}

	generated, err := ec.groqService.GenerateEmail(c.Request.Context(), prompt, req.GroqAPIKey)
	if err != nil {
		var upstreamErr *services.UpstreamError
		switch {
		case errors.As(err, &upstreamErr):
			c.JSON(http.StatusBadRequest, models.EmailError{
				Error: fmt.Sprintf("Failed to generate email. API error: %d", upstreamErr.StatusCode),
				Code:  "UPSTREAM_ERROR",
			})
		case errors.Is(err, services.ErrNetwork):
			log.Printf("Network error generating email: %v", err)
			c.JSON(http.StatusBadGateway, models.EmailError{
				Error: "Network error occurred",
				Code:  "NETWORK_ERROR",
			})
		default:
			log.Printf("Unexpected error generating email: %v", err)
			c.JSON(http.StatusInternalServerError, models.EmailError{
				Error: "Internal server error",
				Code:  "INTERNAL_ERROR",
			})
		}
		return
	}

	c.JSON(http.StatusOK, models.EmailGenerationResponse{
		Subject:     generated.Subject,
		Content:     generated.Content,
		GeneratedAt: time.Now().UTC(),
	})
}

// SendEmail performs a simulated send that records recipients without real delivery
func (ec *EmailController) SendEmail(c *gin.Context) {
	req, ok := ec.bindSendRequest(c)
	if !ok {
		return
	}

	resp, err := ec.mailService.SendSimulated(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error sending email: %v", err)
		c.JSON(http.StatusInternalServerError, models.EmailError{
			Error: "Failed to send email",
			Code:  "SEND_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SendEmailSMTP sends an email to each recipient over an authenticated SMTP session
func (ec *EmailController) SendEmailSMTP(c *gin.Context) {
	req, ok := ec.bindSendRequest(c)
	if !ok {
		return
	}

	if req.SenderEmail == "" || req.SenderPassword == "" {
		c.JSON(http.StatusBadRequest, models.EmailError{
			Error: "Sender email and password are required for SMTP sending",
			Code:  "MISSING_FIELDS",
		})
		return
	}

	resp, err := ec.mailService.SendSMTP(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSMTPAuth):
			c.JSON(http.StatusUnauthorized, models.EmailError{
				Error: "SMTP authentication failed. Check your email and password.",
				Code:  "SMTP_AUTH_FAILED",
			})
		case errors.Is(err, services.ErrNoRecipientsDelivered):
			c.JSON(http.StatusInternalServerError, models.EmailError{
				Error: "Failed to send email to any recipients via SMTP",
				Code:  "SEND_FAILED",
			})
		default:
			log.Printf("Unexpected SMTP error: %v", err)
			c.JSON(http.StatusInternalServerError, models.EmailError{
				Error: "Failed to send email via SMTP",
				Code:  "SEND_FAILED",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetGroqModels proxies the upstream model-list endpoint
func (ec *EmailController) GetGroqModels(c *gin.Context) {
	apiKey := c.Query("api_key")
	if apiKey == "" {
		c.JSON(http.StatusBadRequest, models.EmailError{
			Error: "API key is required",
			Code:  "MISSING_FIELDS",
		})
		return
	}

	body, err := ec.groqService.ListModels(c.Request.Context(), apiKey)
	if err != nil {
		var upstreamErr *services.UpstreamError
		if errors.As(err, &upstreamErr) {
			c.JSON(http.StatusBadRequest, models.EmailError{
				Error: "Failed to fetch models from Groq API",
				Code:  "UPSTREAM_ERROR",
			})
			return
		}
		log.Printf("Error fetching Groq models: %v", err)
		c.JSON(http.StatusInternalServerError, models.EmailError{
			Error: "Failed to fetch available models",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// bindSendRequest binds and validates a send request, applying SMTP defaults.
// All validation happens before any network call.
func (ec *EmailController) bindSendRequest(c *gin.Context) (models.EmailSendRequest, bool) {
	var req models.EmailSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.EmailError{
			Error:   "Invalid email request",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return req, false
	}

	if len(req.Recipients) == 0 {
		c.JSON(http.StatusBadRequest, models.EmailError{
			Error: "Recipients list cannot be empty",
			Code:  "MISSING_FIELDS",
		})
		return req, false
	}

	if req.SMTPServer == "" {
		req.SMTPServer = ec.smtpConfig.DefaultServer
	}
	if req.SMTPPort == 0 {
		req.SMTPPort = ec.smtpConfig.DefaultPort
	}

	return req, true
}
