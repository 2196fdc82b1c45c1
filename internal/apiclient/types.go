package apiclient

import (
	"time"

	"acservice/internal/model"
)

// Wire shapes as the client sees them. Ids stay opaque strings.

type User struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt,omitzero"`
	UpdatedAt time.Time  `json:"updatedAt,omitzero"`
}

type Complaint struct {
	ID              string                `json:"_id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Status          model.ComplaintStatus `json:"status"`
	Priority        model.Priority        `json:"priority"`
	ServiceType     model.ServiceType     `json:"serviceType"`
	CustomerName    string                `json:"customerName"`
	CustomerPhone   string                `json:"customerPhone"`
	CustomerAddress string                `json:"customerAddress"`
	ACType          string                `json:"acType"`
	ACBrand         string                `json:"acBrand"`
	ACModel         string                `json:"acModel"`
	ACSerialNumber  string                `json:"acSerialNumber"`
	AssignedTo      *User                 `json:"assignedTo"`
	CreatedBy       *User                 `json:"createdBy"`
	UpdatedBy       *User                 `json:"updatedBy"`
	Payment         model.Payment         `json:"payment"`
	TechnicianNotes string                `json:"technicianNotes"`
	PartsReplaced   []string              `json:"partsReplaced"`
	WarrantyInfo    model.WarrantyInfo    `json:"warrantyInfo"`
	CreatedAt       time.Time             `json:"createdAt,omitzero"`
	UpdatedAt       time.Time             `json:"updatedAt,omitzero"`
}

// AssigneeName is the technician's name, or "" when unassigned
func (c Complaint) AssigneeName() string {
	if c.AssignedTo == nil {
		return ""
	}
	return c.AssignedTo.Name
}

type LoginResult struct {
	Token string
	User  User
	Flow  model.Flow
}

type AuditLog struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditPage struct {
	Logs  []AuditLog `json:"logs"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}
