package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityType classifies an interaction logged against a customer.
type ActivityType string

// ActivityType enum constants
const (
	ActivityTypeIntroCall       ActivityType = "INTRO_CALL"
	ActivityTypeWhatsAppMessage ActivityType = "WHATSAPP_MESSAGE"
	ActivityTypeEmail           ActivityType = "EMAIL"
	ActivityTypeQuoteSent       ActivityType = "QUOTE_SENT"
	ActivityTypeShipment        ActivityType = "SHIPMENT"
	ActivityTypeInstallation    ActivityType = "INSTALLATION"
	ActivityTypeNote            ActivityType = "NOTE"
)

// DefaultActivityCreator is recorded when nobody is named as the author of an activity.
const DefaultActivityCreator = "System"

var activityTypes = []ActivityType{
	ActivityTypeIntroCall,
	ActivityTypeWhatsAppMessage,
	ActivityTypeEmail,
	ActivityTypeQuoteSent,
	ActivityTypeShipment,
	ActivityTypeInstallation,
	ActivityTypeNote,
}

// ActivityTypes returns every activity type in display order.
func ActivityTypes() []ActivityType {
	out := make([]ActivityType, len(activityTypes))
	copy(out, activityTypes)
	return out
}

// Valid reports whether t is a member of the closed activity type set.
func (t ActivityType) Valid() bool {
	for _, at := range activityTypes {
		if t == at {
			return true
		}
	}
	return false
}

// ParseActivityType converts a client supplied string into an ActivityType.
func ParseActivityType(s string) (ActivityType, bool) {
	t := ActivityType(s)
	return t, t.Valid()
}

// Attachment references a file stored outside the database.
type Attachment struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Activity is one entry of a customer's append-only timeline.
type Activity struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"customerId"`
	Type        ActivityType `gorm:"type:varchar(30);not null;index" json:"type"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	CreatedBy   string       `gorm:"type:varchar(255);not null;default:'System'" json:"createdBy"`
	Attachments []Attachment `gorm:"type:text;serializer:json" json:"attachments"` // [{url, filename, contentType, size}]
	CreatedAt   time.Time    `gorm:"autoCreateTime:false;index" json:"createdAt"`
}

// BeforeCreate assigns the identifier.
func (a *Activity) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
