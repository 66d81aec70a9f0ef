package domain

import "github.com/google/uuid"

// LeadTag represents a business-scoped label that can be attached to leads
type LeadTag struct {
	BaseModel
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index:idx_lead_tags_business_id;uniqueIndex:uq_lead_tags_business_name" json:"business_id"`
	Name       string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_lead_tags_business_name" json:"name"`
	Color      string    `gorm:"type:varchar(20);default:'#999999'" json:"color"`
}

// TableName specifies the table name for LeadTag
func (LeadTag) TableName() string {
	return "lead_tags"
}

// LeadTagAssignment associates a tag with a lead, unique per (lead, tag)
type LeadTagAssignment struct {
	BaseModel
	LeadID uuid.UUID `gorm:"type:uuid;not null;index:idx_lead_tag_assignments_lead_id;uniqueIndex:uq_lead_tag_assignments_lead_tag" json:"lead_id"`
	TagID  uuid.UUID `gorm:"type:uuid;not null;index:idx_lead_tag_assignments_tag_id;uniqueIndex:uq_lead_tag_assignments_lead_tag" json:"tag_id"`
	Tag    LeadTag   `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag,omitempty"`
}

// TableName specifies the table name for LeadTagAssignment
func (LeadTagAssignment) TableName() string {
	return "lead_tag_assignments"
}
