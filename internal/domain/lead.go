package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LeadStatus represents the position of a lead in the sales funnel
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusQuoted    LeadStatus = "quoted"
	LeadStatusScheduled LeadStatus = "scheduled"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
	// LeadStatusDeleted marks a soft-deleted lead. Rows stay in the table
	// but are excluded from every list/search/read path.
	LeadStatusDeleted LeadStatus = "deleted"
)

// LeadSource represents the acquisition channel of a lead
type LeadSource string

const (
	LeadSourceWebsite   LeadSource = "website"
	LeadSourcePhone     LeadSource = "phone"
	LeadSourceReferral  LeadSource = "referral"
	LeadSourceGoogleAds LeadSource = "google_ads"
	LeadSourceSocial    LeadSource = "social_media"
	LeadSourceOther     LeadSource = "other"
)

// LeadPriority represents how urgently a lead should be worked
type LeadPriority string

const (
	LeadPriorityLow    LeadPriority = "low"
	LeadPriorityMedium LeadPriority = "medium"
	LeadPriorityHigh   LeadPriority = "high"
	LeadPriorityUrgent LeadPriority = "urgent"
)

// Lead represents a prospective customer tracked through the qualification funnel
type Lead struct {
	BaseModel
	BusinessID           uuid.UUID    `gorm:"type:uuid;not null;index:idx_leads_business_id" json:"business_id"`
	Name                 string       `gorm:"type:varchar(255);not null" json:"name"`
	Company              string       `gorm:"type:varchar(255)" json:"company"`
	Email                string       `gorm:"type:varchar(255);index:idx_leads_email" json:"email"`
	Phone                string       `gorm:"type:varchar(50);index:idx_leads_phone" json:"phone"`
	Mobile               string       `gorm:"type:varchar(50)" json:"mobile"`
	Address              string       `gorm:"type:varchar(255)" json:"address"`
	City                 string       `gorm:"type:varchar(100)" json:"city"`
	State                string       `gorm:"type:varchar(50)" json:"state"`
	ZipCode              string       `gorm:"type:varchar(20)" json:"zip_code"`
	Status               LeadStatus   `gorm:"type:varchar(20);not null;default:'new';index:idx_leads_status" json:"status"`
	Source               LeadSource   `gorm:"type:varchar(30);not null;default:'other'" json:"source"`
	Priority             LeadPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	EstimatedValue       float64      `gorm:"type:decimal(12,2);default:0" json:"estimated_value"`
	LeadScore            int          `gorm:"default:0" json:"lead_score"`
	AssignedTo           *uuid.UUID   `gorm:"type:uuid;index:idx_leads_assigned_to" json:"assigned_to"`
	LastContactDate      *time.Time   `json:"last_contact_date"`
	NextFollowUpDate     *time.Time   `json:"next_follow_up_date"`
	ConvertedToCustomer  *uuid.UUID   `gorm:"type:uuid;column:converted_to_customer_id" json:"converted_to_customer_id"`
	ConvertedAt          *time.Time   `json:"converted_at"`

	Contacts       []LeadContact       `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE" json:"contacts,omitempty"`
	Activities     []LeadActivity      `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`
	Notes          []LeadNote          `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	FollowUps      []LeadFollowUp      `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE" json:"follow_ups,omitempty"`
	Qualification  *LeadQualification  `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE" json:"qualification,omitempty"`
	TagAssignments []LeadTagAssignment `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE" json:"tag_assignments,omitempty"`
}

// TableName specifies the table name for Lead
func (Lead) TableName() string {
	return "leads"
}

// IsTerminal reports whether the lead has reached a terminal state
func (l *Lead) IsTerminal() bool {
	return l.Status == LeadStatusConverted || l.Status == LeadStatusLost || l.Status == LeadStatusDeleted
}

// LeadContact represents a person associated with a lead.
// At most one contact per lead carries is_primary_contact=true.
type LeadContact struct {
	BaseModel
	LeadID           uuid.UUID `gorm:"type:uuid;not null;index:idx_lead_contacts_lead_id" json:"lead_id"`
	Name             string    `gorm:"type:varchar(255);not null" json:"name"`
	Email            string    `gorm:"type:varchar(255)" json:"email"`
	Phone            string    `gorm:"type:varchar(50)" json:"phone"`
	Role             string    `gorm:"type:varchar(100)" json:"role"`
	IsPrimaryContact bool      `gorm:"not null;default:false" json:"is_primary_contact"`
}

// TableName specifies the table name for LeadContact
func (LeadContact) TableName() string {
	return "lead_contacts"
}

// ActivityType represents the kind of interaction logged against a lead
type ActivityType string

const (
	ActivityInitialContact ActivityType = "initial_contact"
	ActivityPhoneCall      ActivityType = "phone_call"
	ActivityEmail          ActivityType = "email"
	ActivitySMS            ActivityType = "sms"
	ActivityMeeting        ActivityType = "meeting"
	ActivitySiteVisit      ActivityType = "site_visit"
	ActivityNote           ActivityType = "note"
	ActivityStatusChange   ActivityType = "status_change"
)

// IsContactActivity reports whether the activity type counts as reaching the lead.
// Contact activities stamp Lead.last_contact_date.
func (t ActivityType) IsContactActivity() bool {
	switch t {
	case ActivityPhoneCall, ActivityEmail, ActivitySMS, ActivityMeeting, ActivitySiteVisit:
		return true
	}
	return false
}

// LeadActivity represents a timestamped interaction log entry
type LeadActivity struct {
	BaseModel
	LeadID         uuid.UUID    `gorm:"type:uuid;not null;index:idx_lead_activities_lead_id" json:"lead_id"`
	ActivityType   ActivityType `gorm:"type:varchar(30);not null" json:"activity_type"`
	Subject        string       `gorm:"type:varchar(255)" json:"subject"`
	Description    string       `gorm:"type:text" json:"description"`
	Outcome        string       `gorm:"type:varchar(255)" json:"outcome"`
	NextAction     string       `gorm:"type:varchar(255)" json:"next_action"`
	NextActionDate *time.Time   `json:"next_action_date"`
	PerformedBy    *uuid.UUID   `gorm:"type:uuid" json:"performed_by"`
}

// TableName specifies the table name for LeadActivity
func (LeadActivity) TableName() string {
	return "lead_activities"
}

// LeadNote represents a free-text annotation on a lead
type LeadNote struct {
	BaseModel
	LeadID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_lead_notes_lead_id" json:"lead_id"`
	Note        string       `gorm:"type:text;not null" json:"note"`
	Priority    LeadPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	IsCompleted bool         `gorm:"not null;default:false" json:"is_completed"`
	CreatedBy   *uuid.UUID   `gorm:"type:uuid" json:"created_by"`
}

// TableName specifies the table name for LeadNote
func (LeadNote) TableName() string {
	return "lead_notes"
}

// LeadQualification holds the single scored assessment of a lead
type LeadQualification struct {
	BaseModel
	LeadID             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_lead_qualifications_lead_id" json:"lead_id"`
	IsQualified        bool           `gorm:"not null;default:false" json:"is_qualified"`
	QualificationScore int            `gorm:"default:0" json:"qualification_score"`
	BudgetRange        string         `gorm:"type:varchar(100)" json:"budget_range"`
	Timeline           string         `gorm:"type:varchar(100)" json:"timeline"`
	Criteria           datatypes.JSON `gorm:"type:jsonb" json:"criteria"`
	QualifiedBy        *uuid.UUID     `gorm:"type:uuid" json:"qualified_by"`
}

// TableName specifies the table name for LeadQualification
func (LeadQualification) TableName() string {
	return "lead_qualifications"
}

// FollowUpStatus represents the state of a scheduled follow-up
type FollowUpStatus string

const (
	FollowUpPending   FollowUpStatus = "pending"
	FollowUpCompleted FollowUpStatus = "completed"
	FollowUpOverdue   FollowUpStatus = "overdue"
	FollowUpCancelled FollowUpStatus = "cancelled"
)

// LeadFollowUp represents a scheduled future action on a lead
type LeadFollowUp struct {
	BaseModel
	LeadID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_lead_follow_ups_lead_id" json:"lead_id"`
	FollowUpType  string         `gorm:"type:varchar(30);not null;default:'call'" json:"follow_up_type"`
	ScheduledDate time.Time      `gorm:"not null;index:idx_lead_follow_ups_scheduled_date" json:"scheduled_date"`
	Notes         string         `gorm:"type:text" json:"notes"`
	Status        FollowUpStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_lead_follow_ups_status" json:"status"`
	AssignedTo    *uuid.UUID     `gorm:"type:uuid" json:"assigned_to"`
	CompletedAt   *time.Time     `json:"completed_at"`
}

// TableName specifies the table name for LeadFollowUp
func (LeadFollowUp) TableName() string {
	return "lead_follow_ups"
}

// LeadConversion links a converted lead to the customer it produced.
// One row is written atomically with the new customer.
type LeadConversion struct {
	BaseModel
	LeadID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_lead_conversions_lead_id" json:"lead_id"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null" json:"customer_id"`
	ConversionValue float64    `gorm:"type:decimal(12,2);default:0" json:"conversion_value"`
	ConvertedBy     *uuid.UUID `gorm:"type:uuid" json:"converted_by"`
}

// TableName specifies the table name for LeadConversion
func (LeadConversion) TableName() string {
	return "lead_conversions"
}
