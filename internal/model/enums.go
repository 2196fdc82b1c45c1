package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Display holds the presentation metadata every enum value carries.
// Each enum has exactly one table of these; a value missing from its table
// is caught by the package tests.
type Display struct {
	Label string
	Color string
}

var unknownDisplay = Display{Label: "Unknown", Color: "#757575"}

// --- Role ---

// Role is the closed set of account roles
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleClient Role = "client"
)

var roleDisplay = map[Role]Display{
	RoleAdmin:  {Label: "Admin", Color: "#FFA000"},
	RoleUser:   {Label: "User", Color: "#4CAF50"},
	RoleClient: {Label: "Client", Color: "#757575"},
}

func AllRoles() []Role { return []Role{RoleAdmin, RoleUser, RoleClient} }

func (r Role) Valid() bool {
	_, ok := roleDisplay[r]
	return ok
}

func (r Role) Display() Display { return lookup(roleDisplay, r) }

// Flow returns the navigation flow a session with this role is routed into
func (r Role) Flow() Flow {
	if r == RoleAdmin {
		return FlowAdmin
	}
	return FlowUser
}

// Assignable reports whether complaints can be assigned to this role
func (r Role) Assignable() bool { return r.Valid() && r != RoleAdmin }

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q: must be one of %s", s, joinValues(AllRoles()))
	}
	return r, nil
}

func (r *Role) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, r, ParseRole)
}

// Flow is the post-login destination for a session
type Flow string

const (
	FlowAdmin Flow = "AdminFlow"
	FlowUser  Flow = "UserFlow"
)

// --- ComplaintStatus ---

// ComplaintStatus is the lifecycle state of a complaint
type ComplaintStatus string

const (
	StatusOpen       ComplaintStatus = "open"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusDone       ComplaintStatus = "done"
	StatusClosed     ComplaintStatus = "closed"

	// legacyStatusPending was the default of older records; it means open.
	legacyStatusPending = "pending"
)

var statusDisplay = map[ComplaintStatus]Display{
	StatusOpen:       {Label: "Open", Color: "#2196F3"},
	StatusInProgress: {Label: "In Progress", Color: "#FFA000"},
	StatusDone:       {Label: "Done", Color: "#8BC34A"},
	StatusClosed:     {Label: "Closed", Color: "#4CAF50"},
}

func AllComplaintStatuses() []ComplaintStatus {
	return []ComplaintStatus{StatusOpen, StatusInProgress, StatusDone, StatusClosed}
}

func (s ComplaintStatus) Valid() bool {
	_, ok := statusDisplay[s]
	return ok
}

func (s ComplaintStatus) Display() Display { return lookup(statusDisplay, s) }

// Active reports whether the complaint still needs work
func (s ComplaintStatus) Active() bool { return s == StatusOpen || s == StatusInProgress }

func ParseComplaintStatus(v string) (ComplaintStatus, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == legacyStatusPending {
		return StatusOpen, nil
	}
	s := ComplaintStatus(strings.ReplaceAll(v, " ", "_"))
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q: must be one of %s", v, joinValues(AllComplaintStatuses()))
	}
	return s, nil
}

func (s *ComplaintStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, ParseComplaintStatus)
}

// --- Priority ---

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorityDisplay = map[Priority]Display{
	PriorityLow:    {Label: "Low", Color: "#4CAF50"},
	PriorityMedium: {Label: "Medium", Color: "#FFA000"},
	PriorityHigh:   {Label: "High", Color: "#F44336"},
}

func AllPriorities() []Priority { return []Priority{PriorityLow, PriorityMedium, PriorityHigh} }

func (p Priority) Valid() bool {
	_, ok := priorityDisplay[p]
	return ok
}

func (p Priority) Display() Display { return lookup(priorityDisplay, p) }

func ParsePriority(v string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(v)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q: must be one of %s", v, joinValues(AllPriorities()))
	}
	return p, nil
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, p, ParsePriority)
}

// --- ServiceType ---

type ServiceType string

const (
	ServiceRepair       ServiceType = "repair"
	ServiceMaintenance  ServiceType = "maintenance"
	ServiceInstallation ServiceType = "installation"
)

var serviceTypeDisplay = map[ServiceType]Display{
	ServiceRepair:       {Label: "Repair", Color: "#F44336"},
	ServiceMaintenance:  {Label: "Maintenance", Color: "#2196F3"},
	ServiceInstallation: {Label: "Installation", Color: "#4CAF50"},
}

func AllServiceTypes() []ServiceType {
	return []ServiceType{ServiceRepair, ServiceMaintenance, ServiceInstallation}
}

func (t ServiceType) Valid() bool {
	_, ok := serviceTypeDisplay[t]
	return ok
}

func (t ServiceType) Display() Display { return lookup(serviceTypeDisplay, t) }

func ParseServiceType(v string) (ServiceType, error) {
	t := ServiceType(strings.ToLower(strings.TrimSpace(v)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid service type %q: must be one of %s", v, joinValues(AllServiceTypes()))
	}
	return t, nil
}

func (t *ServiceType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, t, ParseServiceType)
}

// --- PaymentStatus ---

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"

	legacyPaymentUnpaid = "unpaid"
)

var paymentStatusDisplay = map[PaymentStatus]Display{
	PaymentPending: {Label: "Pending", Color: "#F44336"},
	PaymentPartial: {Label: "Partial", Color: "#FFA000"},
	PaymentPaid:    {Label: "Paid", Color: "#4CAF50"},
}

func AllPaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPending, PaymentPartial, PaymentPaid}
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentStatusDisplay[s]
	return ok
}

func (s PaymentStatus) Display() Display { return lookup(paymentStatusDisplay, s) }

func ParsePaymentStatus(v string) (PaymentStatus, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == legacyPaymentUnpaid {
		return PaymentPending, nil
	}
	s := PaymentStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("invalid payment status %q: must be one of %s", v, joinValues(AllPaymentStatuses()))
	}
	return s, nil
}

func (s *PaymentStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, ParsePaymentStatus)
}

// --- PaymentMethod ---

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodUPI          PaymentMethod = "upi"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCard         PaymentMethod = "card"
	MethodOnline       PaymentMethod = "online"
)

var paymentMethodDisplay = map[PaymentMethod]Display{
	MethodCash:         {Label: "Cash", Color: "#4CAF50"},
	MethodUPI:          {Label: "UPI", Color: "#673AB7"},
	MethodBankTransfer: {Label: "Bank Transfer", Color: "#2196F3"},
	MethodCard:         {Label: "Card", Color: "#FF5722"},
	MethodOnline:       {Label: "Online", Color: "#009688"},
}

func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{MethodCash, MethodUPI, MethodBankTransfer, MethodCard, MethodOnline}
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodDisplay[m]
	return ok
}

func (m PaymentMethod) Display() Display { return lookup(paymentMethodDisplay, m) }

func ParsePaymentMethod(v string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(v)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid payment method %q: must be one of %s", v, joinValues(AllPaymentMethods()))
	}
	return m, nil
}

func (m *PaymentMethod) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, m, ParsePaymentMethod)
}

// --- helpers ---

func lookup[T comparable](table map[T]Display, v T) Display {
	if d, ok := table[v]; ok {
		return d
	}
	return unknownDisplay
}

// unmarshalEnum decodes a JSON string into an enum. An empty string or null
// leaves the zero value so optional fields can be omitted.
func unmarshalEnum[T ~string](b []byte, dst *T, parse func(string) (T, error)) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		*dst = ""
		return nil
	}
	v, err := parse(*raw)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func joinValues[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
