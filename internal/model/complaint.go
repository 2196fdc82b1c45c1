package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Amounts travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Complaint is a service ticket for an AC repair, maintenance or installation job
type Complaint struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Status      ComplaintStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Priority    Priority        `gorm:"type:varchar(10);not null;default:'medium';index" json:"priority"`
	ServiceType ServiceType     `gorm:"type:varchar(20);not null;default:'repair'" json:"serviceType"`

	CustomerName    string `gorm:"type:varchar(255);not null" json:"customerName"`
	CustomerPhone   string `gorm:"type:varchar(20);not null" json:"customerPhone"`
	CustomerAddress string `gorm:"type:text" json:"customerAddress"`

	ACType         string `gorm:"column:ac_type;type:varchar(100)" json:"acType"`
	ACBrand        string `gorm:"column:ac_brand;type:varchar(100)" json:"acBrand"`
	ACModel        string `gorm:"column:ac_model;type:varchar(100)" json:"acModel"`
	ACSerialNumber string `gorm:"column:ac_serial_number;type:varchar(100)" json:"acSerialNumber"`

	AssignedToID *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL;" json:"assignedTo"`
	CreatedByID  *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	CreatedBy    *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL;" json:"createdBy"`
	UpdatedByID  *uuid.UUID `gorm:"type:uuid" json:"-"`
	UpdatedBy    *User      `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL;" json:"updatedBy"`

	Payment         Payment      `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	TechnicianNotes string       `gorm:"type:text" json:"technicianNotes"`
	PartsReplaced   []string     `gorm:"serializer:json;type:text" json:"partsReplaced"`
	WarrantyInfo    WarrantyInfo `gorm:"embedded;embeddedPrefix:warranty_" json:"warrantyInfo"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Payment is the billing sub-record of a complaint.
// BalanceAmount and Status are derived from Amount and AdvanceAmount, see Settle.
type Payment struct {
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	AdvanceAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"advanceAmount"`
	BalanceAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balanceAmount"`
	Status        PaymentStatus   `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	Method        PaymentMethod   `gorm:"type:varchar(20)" json:"method"`
	Notes         string          `gorm:"type:text" json:"notes"`
	PaidAt        *time.Time      `json:"paidAt"`
}

// WarrantyInfo describes the warranty covering the serviced unit
type WarrantyInfo struct {
	Valid      bool       `gorm:"default:false" json:"valid"`
	ExpiryDate *time.Time `json:"expiryDate"`
	Terms      string     `gorm:"type:text" json:"terms"`
}

// BeforeCreate fills ids and enum defaults for records created outside the API
func (c *Complaint) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = StatusOpen
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	if c.ServiceType == "" {
		c.ServiceType = ServiceRepair
	}
	if c.Payment.Status == "" {
		c.Payment.Status = PaymentPending
	}
	return nil
}

// Collected is the money received so far
func (p Payment) Collected() decimal.Decimal {
	return p.Amount.Sub(p.BalanceAmount)
}
