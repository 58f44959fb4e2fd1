package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var LeadStatuses = []string{"new", "contacted", "qualified", "lost", "won"}
var LeadSources = []string{"website", "facebook_ads", "google_ads", "referral", "events", "other"}

type LeadModel struct {
	LeadId         string     `bson:"_id" json:"id"`
	FirstName      string     `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName       string     `bson:"last_name,omitempty" json:"last_name,omitempty"`
	Company        string     `bson:"company,omitempty" json:"company,omitempty"`
	City           string     `bson:"city,omitempty" json:"city,omitempty"`
	State          string     `bson:"state,omitempty" json:"state,omitempty"`
	Email          string     `bson:"email" json:"email"`
	Phone          string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Source         string     `bson:"source,omitempty" json:"source,omitempty"`
	Status         string     `bson:"status" json:"status"`
	Score          *int       `bson:"score,omitempty" json:"score,omitempty"`
	LeadValue      *float64   `bson:"lead_value,omitempty" json:"lead_value,omitempty"`
	LastActivityAt *time.Time `bson:"last_activity_at" json:"last_activity_at"`
	IsQualified    bool       `bson:"is_qualified" json:"is_qualified"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`
}

func (m *LeadModel) Id() string {
	if m.LeadId == "" {
		m.LeadId = uuid.New().String()
	}

	return m.LeadId
}

// NewLead returns a lead with schema defaults applied.
func NewLead() *LeadModel {
	return &LeadModel{Status: "new"}
}

// Validate enforces the leads schema constraints. The persistence layer
// calls this before every insert and replace.
func (m *LeadModel) Validate() error {
	if m.Email == "" {
		return &ValidationError{Reason: "email is required"}
	}

	if !contains(LeadStatuses, m.Status) {
		return &ValidationError{Reason: fmt.Sprintf("invalid status: %s", m.Status)}
	}

	if m.Source != "" && !contains(LeadSources, m.Source) {
		return &ValidationError{Reason: fmt.Sprintf("invalid source: %s", m.Source)}
	}

	if m.Score != nil && (*m.Score < 0 || *m.Score > 100) {
		return &ValidationError{Reason: fmt.Sprintf("score must be between 0 and 100, got %d", *m.Score)}
	}

	return nil
}

// LeadPatch carries a partial lead update. Nil fields are left untouched.
type LeadPatch struct {
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Company        *string    `json:"company"`
	City           *string    `json:"city"`
	State          *string    `json:"state"`
	Email          *string    `json:"email"`
	Phone          *string    `json:"phone"`
	Source         *string    `json:"source"`
	Status         *string    `json:"status"`
	Score          *int       `json:"score"`
	LeadValue      *float64   `json:"lead_value"`
	LastActivityAt *time.Time `json:"last_activity_at"`
	IsQualified    *bool      `json:"is_qualified"`
}

// Apply copies the set fields onto lead. Non-nil pointers are applied even
// when they hold a zero value (false, 0, "").
func (p *LeadPatch) Apply(lead *LeadModel) {
	copier.CopyWithOption(lead, p, copier.Option{IgnoreEmpty: true})
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
