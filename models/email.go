package models

import (
	"time"
)

// EmailGenerationRequest represents the request to generate an email from a prompt
type EmailGenerationRequest struct {
	Prompt     string `json:"prompt"`
	GroqAPIKey string `json:"groq_api_key" binding:"required"`
}

// EmailGenerationResponse represents a generated email split into subject and body
type EmailGenerationResponse struct {
	Subject     string    `json:"subject"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}

// GeneratedEmail holds the subject/body pair produced by the generation service
type GeneratedEmail struct {
	Subject string
	Content string
}

// EmailSendRequest represents the request to send an email to one or more recipients.
// SenderEmail/SenderPassword are only required for the SMTP path; SMTPServer and
// SMTPPort fall back to configured defaults when omitted.
type EmailSendRequest struct {
	Recipients     []string `json:"recipients" binding:"omitempty,dive,email"`
	Subject        string   `json:"subject"`
	Content        string   `json:"content"`
	SenderEmail    string   `json:"sender_email"`
	SenderPassword string   `json:"sender_password"`
	SMTPServer     string   `json:"smtp_server"`
	SMTPPort       int      `json:"smtp_port"`
}

// EmailSendResponse represents the outcome of a send operation
type EmailSendResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	SentTo  []string  `json:"sent_to"`
	SentAt  time.Time `json:"sent_at"`
}

// HealthResponse represents the liveness probe payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// EmailError represents email-related errors
type EmailError struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
