package domain

import "github.com/google/uuid"

// SmsDirection distinguishes outbound sends from inbound webhook messages
type SmsDirection string

const (
	SmsDirectionOutbound SmsDirection = "outbound"
	SmsDirectionInbound  SmsDirection = "inbound"
)

// SmsLog is an append-only audit row for every telephony vendor call.
// Rows are never updated or deleted.
type SmsLog struct {
	BaseModel
	BusinessID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_sms_logs_business_id" json:"business_id"`
	LeadID       *uuid.UUID   `gorm:"type:uuid;index:idx_sms_logs_lead_id" json:"lead_id"`
	ToNumber     string       `gorm:"type:varchar(50);not null" json:"to_number"`
	FromNumber   string       `gorm:"type:varchar(50)" json:"from_number"`
	Body         string       `gorm:"type:text" json:"body"`
	Direction    SmsDirection `gorm:"type:varchar(10);not null" json:"direction"`
	VendorSID    string       `gorm:"type:varchar(64);column:vendor_sid;index:idx_sms_logs_vendor_sid" json:"vendor_sid"`
	VendorStatus string       `gorm:"type:varchar(30)" json:"vendor_status"`
	ErrorMessage string       `gorm:"type:text" json:"error_message"`
}

// TableName specifies the table name for SmsLog
func (SmsLog) TableName() string {
	return "sms_logs"
}
