package dto

import (
	"time"

	"github.com/google/uuid"

	"junkops-api/internal/domain"
)

// CreateLeadRequest represents the request to create a new lead, optionally
// with nested contacts and tag names
type CreateLeadRequest struct {
	Name             string     `json:"name" binding:"required,min=1,max=255"`
	Company          string     `json:"company" binding:"max=255"`
	Email            string     `json:"email" binding:"omitempty,email"`
	Phone            string     `json:"phone" binding:"max=50"`
	Mobile           string     `json:"mobile" binding:"max=50"`
	Address          string     `json:"address" binding:"max=255"`
	City             string     `json:"city" binding:"max=100"`
	State            string     `json:"state" binding:"max=50"`
	ZipCode          string     `json:"zip_code" binding:"max=20"`
	Source           string     `json:"source" binding:"omitempty,oneof=website phone referral google_ads social_media other"`
	Priority         string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	EstimatedValue   float64    `json:"estimated_value" binding:"gte=0"`
	LeadScore        int        `json:"lead_score" binding:"gte=0,lte=100"`
	AssignedTo       *uuid.UUID `json:"assigned_to"`
	NextFollowUpDate *time.Time `json:"next_follow_up_date"`

	Contacts []CreateLeadContactRequest `json:"contacts" binding:"omitempty,dive"`
	TagIDs   []uuid.UUID                `json:"tag_ids" binding:"omitempty,dive,uuid"`
}

// UpdateLeadRequest represents a partial lead update. Only set fields are
// forwarded; unknown fields are rejected by the allow-list downstream.
type UpdateLeadRequest struct {
	Name             *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Company          *string    `json:"company" binding:"omitempty,max=255"`
	Email            *string    `json:"email" binding:"omitempty,email"`
	Phone            *string    `json:"phone" binding:"omitempty,max=50"`
	Mobile           *string    `json:"mobile" binding:"omitempty,max=50"`
	Address          *string    `json:"address" binding:"omitempty,max=255"`
	City             *string    `json:"city" binding:"omitempty,max=100"`
	State            *string    `json:"state" binding:"omitempty,max=50"`
	ZipCode          *string    `json:"zip_code" binding:"omitempty,max=20"`
	Status           *string    `json:"status" binding:"omitempty,oneof=new contacted qualified quoted scheduled lost"`
	Source           *string    `json:"source" binding:"omitempty,oneof=website phone referral google_ads social_media other"`
	Priority         *string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	EstimatedValue   *float64   `json:"estimated_value" binding:"omitempty,gte=0"`
	LeadScore        *int       `json:"lead_score" binding:"omitempty,gte=0,lte=100"`
	AssignedTo       *uuid.UUID `json:"assigned_to"`
	NextFollowUpDate *time.Time `json:"next_follow_up_date"`
}

// Fields flattens the set pointer fields into a column-keyed map for the
// dynamic update path
func (r *UpdateLeadRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Company != nil {
		fields["company"] = *r.Company
	}
	if r.Email != nil {
		fields["email"] = *r.Email
	}
	if r.Phone != nil {
		fields["phone"] = *r.Phone
	}
	if r.Mobile != nil {
		fields["mobile"] = *r.Mobile
	}
	if r.Address != nil {
		fields["address"] = *r.Address
	}
	if r.City != nil {
		fields["city"] = *r.City
	}
	if r.State != nil {
		fields["state"] = *r.State
	}
	if r.ZipCode != nil {
		fields["zip_code"] = *r.ZipCode
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.Source != nil {
		fields["source"] = *r.Source
	}
	if r.Priority != nil {
		fields["priority"] = *r.Priority
	}
	if r.EstimatedValue != nil {
		fields["estimated_value"] = *r.EstimatedValue
	}
	if r.LeadScore != nil {
		fields["lead_score"] = *r.LeadScore
	}
	if r.AssignedTo != nil {
		fields["assigned_to"] = *r.AssignedTo
	}
	if r.NextFollowUpDate != nil {
		fields["next_follow_up_date"] = *r.NextFollowUpDate
	}
	return fields
}

// ListLeadsRequest captures the query parameters of the lead list endpoint
type ListLeadsRequest struct {
	Status    string `form:"status" binding:"omitempty,oneof=new contacted qualified quoted scheduled converted lost"`
	Source    string `form:"source" binding:"omitempty,oneof=website phone referral google_ads social_media other"`
	Priority  string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	City      string `form:"city"`
	Search    string `form:"search"`
	DateFrom  string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo    string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// ConvertLeadRequest represents the request to convert a lead to a customer
type ConvertLeadRequest struct {
	CustomerType    string  `json:"customer_type" binding:"omitempty,oneof=residential commercial"`
	ConversionValue float64 `json:"conversion_value" binding:"gte=0"`
	Notes           string  `json:"notes" binding:"max=2000"`
}

// LeadResponse represents the lead response
type LeadResponse struct {
	ID                  uuid.UUID  `json:"id"`
	BusinessID          uuid.UUID  `json:"business_id"`
	Name                string     `json:"name"`
	Company             string     `json:"company"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	Mobile              string     `json:"mobile"`
	Address             string     `json:"address"`
	City                string     `json:"city"`
	State               string     `json:"state"`
	ZipCode             string     `json:"zip_code"`
	Status              string     `json:"status"`
	Source              string     `json:"source"`
	Priority            string     `json:"priority"`
	EstimatedValue      float64    `json:"estimated_value"`
	LeadScore           int        `json:"lead_score"`
	AssignedTo          *uuid.UUID `json:"assigned_to"`
	LastContactDate     *time.Time `json:"last_contact_date"`
	NextFollowUpDate    *time.Time `json:"next_follow_up_date"`
	ConvertedToCustomer *uuid.UUID `json:"converted_to_customer_id"`
	ConvertedAt         *time.Time `json:"converted_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ToLeadResponse converts a lead model to its response shape
func ToLeadResponse(lead *domain.Lead) LeadResponse {
	return LeadResponse{
		ID:                  lead.ID,
		BusinessID:          lead.BusinessID,
		Name:                lead.Name,
		Company:             lead.Company,
		Email:               lead.Email,
		Phone:               lead.Phone,
		Mobile:              lead.Mobile,
		Address:             lead.Address,
		City:                lead.City,
		State:               lead.State,
		ZipCode:             lead.ZipCode,
		Status:              string(lead.Status),
		Source:              string(lead.Source),
		Priority:            string(lead.Priority),
		EstimatedValue:      lead.EstimatedValue,
		LeadScore:           lead.LeadScore,
		AssignedTo:          lead.AssignedTo,
		LastContactDate:     lead.LastContactDate,
		NextFollowUpDate:    lead.NextFollowUpDate,
		ConvertedToCustomer: lead.ConvertedToCustomer,
		ConvertedAt:         lead.ConvertedAt,
		CreatedAt:           lead.CreatedAt,
		UpdatedAt:           lead.UpdatedAt,
	}
}

// ToLeadResponses converts a slice of lead models
func ToLeadResponses(leads []*domain.Lead) []LeadResponse {
	responses := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		responses = append(responses, ToLeadResponse(lead))
	}
	return responses
}

// LeadSearchResult is a lead plus its computed relevance score
type LeadSearchResult struct {
	LeadResponse
	Relevance int `json:"relevance"`
}

// LeadSearchResponse wraps search results with timing for the caller
type LeadSearchResponse struct {
	Results []LeadSearchResult `json:"results"`
	Count   int                `json:"count"`
	TookMs  int64              `json:"took_ms"`
}

// LeadSummaryResponse aggregates lead counts for the summary endpoint
type LeadSummaryResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	BySource map[string]int64 `json:"by_source"`
}

// ConversionResponse represents the outcome of a lead conversion
type ConversionResponse struct {
	Lead     LeadResponse     `json:"lead"`
	Customer CustomerResponse `json:"customer"`
}
