package lead

import (
	"time"

	"gfi/internal/domain/friction"
)

// Lead is a submitted assessment with its computed fields.
// Rows are append-only: there is no update or delete path.
type Lead struct {
	ID       int64  `gorm:"column:id;primaryKey" json:"id"`
	PublicID string `gorm:"column:public_id;size:36;uniqueIndex" json:"public_id"`

	// Identity
	Name         string `gorm:"column:name;size:255" json:"name"`
	Email        string `gorm:"column:email;size:255;index" json:"email"`
	Organization string `gorm:"column:organization;size:255" json:"organization"`
	Role         string `gorm:"column:role;size:255" json:"role,omitempty"`

	Intake   friction.Intake   `gorm:"embedded" json:"intake"`
	Estimate friction.Estimate `gorm:"embedded" json:"estimate"`
	Risk     friction.RiskTier `gorm:"embedded;embeddedPrefix:risk_" json:"risk"`

	// Metadata
	Source    string    `gorm:"column:source;size:64" json:"source,omitempty"`
	IPAddress string    `gorm:"column:ip_address;size:64" json:"-"`
	UserAgent string    `gorm:"column:user_agent;size:512" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Lead) TableName() string { return "leads" }

// DispatchKind tells the immediate e-mail apart from the deferred one
type DispatchKind string

const (
	DispatchImmediate DispatchKind = "immediate"
	DispatchFollowUp  DispatchKind = "follow_up"
)

// Dispatch records the outcome of one notification attempt
type Dispatch struct {
	ID           int64        `gorm:"column:id;primaryKey" json:"id"`
	LeadPublicID string       `gorm:"column:lead_public_id;size:36;index" json:"lead_public_id"`
	Kind         DispatchKind `gorm:"column:kind;size:16" json:"kind"`
	OK           bool         `gorm:"column:ok" json:"ok"`
	Message      string       `gorm:"column:message;size:1024" json:"message"`
	ProviderID   string       `gorm:"column:provider_id;size:128" json:"provider_id,omitempty"`
	ScheduledAt  *time.Time   `gorm:"column:scheduled_at" json:"scheduled_at,omitempty"`
	CreatedAt    time.Time    `gorm:"column:created_at" json:"created_at"`
}

func (Dispatch) TableName() string { return "lead_dispatches" }
