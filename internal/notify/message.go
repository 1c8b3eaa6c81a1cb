package notify

import "time"

// Dispatch tells the immediate e-mail apart from the deferred one
type Dispatch string

const (
	DispatchImmediate Dispatch = "immediate"
	DispatchFollowUp  Dispatch = "follow_up"
)

type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one e-mail to a lead. Reference ties it back to the lead.
type Message struct {
	Reference   string
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Outcome is the status of one dispatch. Err is set when OK is false.
type Outcome struct {
	Dispatch    Dispatch   `json:"dispatch"`
	OK          bool       `json:"ok"`
	Message     string     `json:"message"`
	ProviderID  string     `json:"provider_id,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Err         error      `json:"-"`
}
