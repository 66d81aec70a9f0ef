package dto

import (
	"time"

	"github.com/google/uuid"

	"junkops-api/internal/domain"
)

// SendSmsRequest represents the request to send an outbound SMS
type SendSmsRequest struct {
	LeadID   *uuid.UUID `json:"lead_id"`
	ToNumber string     `json:"to_number" binding:"required,e164"`
	Body     string     `json:"body" binding:"required,min=1,max=1600"`
}

// SmsWebhookRequest represents the vendor's inbound/status webhook payload.
// Field names follow the vendor's form naming.
type SmsWebhookRequest struct {
	MessageSid string `form:"MessageSid" binding:"required"`
	From       string `form:"From"`
	To         string `form:"To"`
	Body       string `form:"Body"`
	Status     string `form:"MessageStatus"`
}

// ListSmsLogsRequest captures the query parameters of the SMS audit list
// endpoint
type ListSmsLogsRequest struct {
	LeadID    string `form:"lead_id" binding:"omitempty,uuid"`
	Direction string `form:"direction" binding:"omitempty,oneof=outbound inbound"`
	DateFrom  string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo    string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// SmsLogResponse represents one SMS audit row
type SmsLogResponse struct {
	ID           uuid.UUID  `json:"id"`
	BusinessID   uuid.UUID  `json:"business_id"`
	LeadID       *uuid.UUID `json:"lead_id"`
	ToNumber     string     `json:"to_number"`
	FromNumber   string     `json:"from_number"`
	Body         string     `json:"body"`
	Direction    string     `json:"direction"`
	VendorSID    string     `json:"vendor_sid"`
	VendorStatus string     `json:"vendor_status"`
	ErrorMessage string     `json:"error_message"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToSmsLogResponse converts an SMS log model to its response shape
func ToSmsLogResponse(l *domain.SmsLog) SmsLogResponse {
	return SmsLogResponse{
		ID:           l.ID,
		BusinessID:   l.BusinessID,
		LeadID:       l.LeadID,
		ToNumber:     l.ToNumber,
		FromNumber:   l.FromNumber,
		Body:         l.Body,
		Direction:    string(l.Direction),
		VendorSID:    l.VendorSID,
		VendorStatus: l.VendorStatus,
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}
}

// ToSmsLogResponses converts a slice of SMS log models
func ToSmsLogResponses(logs []*domain.SmsLog) []SmsLogResponse {
	responses := make([]SmsLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, ToSmsLogResponse(l))
	}
	return responses
}
