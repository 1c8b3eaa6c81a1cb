package assessment

import (
	"gfi/internal/domain/friction"
	"gfi/internal/domain/lead"
	"gfi/internal/notify"
)

// SubmitRequest is a completed calculator form with contact details
type SubmitRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Email        string          `json:"email" validate:"required,email,max=255"`
	Organization string          `json:"organization" validate:"required,max=255"`
	Role         string          `json:"role" validate:"max=255"`
	Source       string          `json:"source" validate:"max=64"`
	Intake       friction.Intake `json:"intake"`
}

// RequestMeta carries request details stored with the lead
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// EstimateResult is the calculator output without a lead
type EstimateResult struct {
	Estimate friction.Estimate `json:"estimate"`
	Risk     friction.RiskTier `json:"risk"`
}

// Status reports one collaborator's outcome
type Status struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// SnapshotFile is the rendered report. PDF is base64 in JSON.
type SnapshotFile struct {
	Filename string `json:"filename"`
	PDF      []byte `json:"pdf"`
}

// Result is what a submitter gets back. Collaborator failures show up in
// the statuses only.
type Result struct {
	PublicID  string            `json:"public_id"`
	Estimate  friction.Estimate `json:"estimate"`
	Risk      friction.RiskTier `json:"risk"`
	Snapshot  SnapshotFile      `json:"snapshot"`
	Persisted Status            `json:"persisted"`
	Notified  Status            `json:"notified"`
	FollowUp  FollowUpStatus    `json:"follow_up"`
}

type FollowUpStatus struct {
	Status
	ScheduledAt string `json:"scheduled_at,omitempty"`
}

// PresetsResponse lists the choices the calculator form offers
type PresetsResponse struct {
	Roles             []friction.RolePreset         `json:"roles"`
	Industries        []friction.Industry           `json:"industries"`
	OrganizationSizes []friction.OrganizationSize   `json:"organization_sizes"`
	EmployeeBands     []friction.EmployeeBand       `json:"employee_bands"`
	Benchmarks        map[friction.Industry]float64 `json:"industry_benchmarks"`
	CustomRole        string                        `json:"custom_role"`
	MinMultiplier     float64                       `json:"min_multiplier"`
	MaxMultiplier     float64                       `json:"max_multiplier"`
}

// DispatchesResponse is the notification log of one lead
type DispatchesResponse struct {
	PublicID   string          `json:"public_id"`
	Dispatches []lead.Dispatch `json:"dispatches"`
}

func statusFromOutcome(out notify.Outcome) Status {
	return Status{OK: out.OK, Message: out.Message}
}
