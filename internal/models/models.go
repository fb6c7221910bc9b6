package models

import "time"

// User represents a registered user
type User struct {
	ID            string    `json:"id"`
	Phone         string    `json:"phone"`
	PasswordHash  string    `json:"-"`
	Gender        string    `json:"gender"`
	Username      string    `json:"username"`
	AvatarFileID  string    `json:"avatar_file_id"`
	PartnerID     *string   `json:"partner_id"`
	PartnerPhone  string    `json:"partner_phone"`
	LoveStartDate string    `json:"love_start_date"`
	PushToken     *string   `json:"push_token,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Partner request states. Accepted and rejected are terminal.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

// PartnerRequest represents a pairing invite from one user to another
type PartnerRequest struct {
	ID            string    `json:"id"`
	FromUserID    string    `json:"from_user_id"`
	FromUserPhone string    `json:"from_user_phone"`
	FromUserName  string    `json:"from_user_name"`
	ToUserID      string    `json:"to_user_id"`
	ToUserPhone   string    `json:"to_user_phone"`
	LoveStartDate string    `json:"love_start_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SharedRecord is the common surface of all couple-scoped records.
// PartnerID is a snapshot of the creator's partner at creation time and is
// never re-synced if the pairing changes later.
type SharedRecord interface {
	OwnerID() string
	SharedPartnerID() *string
}

// Visible reports whether a shared record may be shown to the given viewer.
func Visible(r SharedRecord, viewerID string) bool {
	if r.OwnerID() == viewerID {
		return true
	}
	if p := r.SharedPartnerID(); p != nil && *p == viewerID {
		return true
	}
	return false
}

// Anniversary represents a dated event, optionally recurring yearly
type Anniversary struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	PartnerID   *string   `json:"partner_id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	ImageFileID string    `json:"image_file_id"`
	Description string    `json:"description"`
	IsYearly    bool      `json:"is_yearly"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *Anniversary) OwnerID() string          { return a.UserID }
func (a *Anniversary) SharedPartnerID() *string { return a.PartnerID }

// Quarrel severity levels
const (
	SeverityLight   = "light"
	SeverityMedium  = "medium"
	SeveritySerious = "serious"
)

// Quarrel represents an argument log entry
type Quarrel struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	PartnerID     *string    `json:"partner_id"`
	QuarrelDate   string     `json:"quarrel_date"`
	QuarrelTime   string     `json:"quarrel_time"`
	Reason        string     `json:"reason"`
	HurtfulWords  string     `json:"hurtful_words"`
	MyWords       string     `json:"my_words"`
	Severity      string     `json:"severity"`
	Mood          string     `json:"mood"`
	Note          string     `json:"note"`
	IsReconciled  bool       `json:"is_reconciled"`
	ReconciledAt  *time.Time `json:"reconciled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (q *Quarrel) OwnerID() string          { return q.UserID }
func (q *Quarrel) SharedPartnerID() *string { return q.PartnerID }

// PoopRecord represents a bathroom log entry
type PoopRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	PartnerID *string   `json:"partner_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Type      string    `json:"type"`
	Duration  int       `json:"duration"`
	Feeling   string    `json:"feeling"`
	Location  string    `json:"location"`
	HasBlood  bool      `json:"has_blood"`
	Color     string    `json:"color"`
	Smell     string    `json:"smell"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *PoopRecord) OwnerID() string          { return p.UserID }
func (p *PoopRecord) SharedPartnerID() *string { return p.PartnerID }
