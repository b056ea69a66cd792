package Models

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AuditCreate              = "create"
	AuditUpdate              = "update"
	AuditDelete              = "delete"
	AuditStatusChange        = "status_change"
	AuditPayment             = "payment"
	AuditSettlementGenerated = "settlement_generated"
)

type AuditLog struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID *uint  `gorm:"index" json:"user_id"`

	Action    string `gorm:"size:30;index" json:"action"`
	ModelName string `gorm:"size:50;index" json:"model_name"`

	ObjectID          string `gorm:"size:200" json:"object_id"`
	ObjectDescription string `gorm:"size:500" json:"object_description"`

	Changes string `gorm:"type:text" json:"changes"`

	IPAddress string `gorm:"size:45" json:"ip_address"`
	UserAgent string `json:"user_agent"`

	CreatedAt time.Time `json:"created_at"`
}

func (entry *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return nil
}

// LogAudit records a change best-effort. Audit failures never fail the request
// that triggered them.
func LogAudit(db *gorm.DB, userID *uint, action, modelName, objectID, description, ipAddress, userAgent string) {
	entry := AuditLog{
		UserID:            userID,
		Action:            action,
		ModelName:         modelName,
		ObjectID:          objectID,
		ObjectDescription: description,
		IPAddress:         ipAddress,
		UserAgent:         userAgent,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Println("audit log write failed:", err)
	}
}
