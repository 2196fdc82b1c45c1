package model

// Complaint event types pushed to websocket subscribers
const (
	EventComplaintCreated  = "complaint.created"
	EventComplaintUpdated  = "complaint.updated"
	EventComplaintAssigned = "complaint.assigned"
	EventPaymentUpdated    = "complaint.payment_updated"
)

// ComplaintEvent announces a change to a complaint
type ComplaintEvent struct {
	Type      string     `json:"type"`
	Complaint *Complaint `json:"complaint"`
}
