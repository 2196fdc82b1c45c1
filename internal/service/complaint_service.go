package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"acservice/internal/model"
	"acservice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Actor is the authenticated caller of a service operation
type Actor struct {
	ID   string
	Role model.Role
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// --- DTOs ---

type CreateComplaintRequest struct {
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description" binding:"required"`
	Priority        model.Priority      `json:"priority"`
	ServiceType     model.ServiceType   `json:"serviceType"`
	CustomerName    string              `json:"customerName" binding:"required"`
	CustomerPhone   string              `json:"customerPhone" binding:"required"`
	CustomerAddress string              `json:"customerAddress"`
	ACType          string              `json:"acType"`
	ACBrand         string              `json:"acBrand"`
	ACModel         string              `json:"acModel"`
	ACSerialNumber  string              `json:"acSerialNumber"`
	Amount          *decimal.Decimal    `json:"amount"`
	TechnicianNotes string              `json:"technicianNotes"`
	PartsReplaced   []string            `json:"partsReplaced"`
	WarrantyInfo    *model.WarrantyInfo `json:"warrantyInfo"`
}

// UpdateComplaintRequest replaces the fields that are present; nil fields are kept.
// Applying the same request twice yields the same stored complaint.
type UpdateComplaintRequest struct {
	Title           *string               `json:"title"`
	Description     *string               `json:"description"`
	Status          model.ComplaintStatus `json:"status"`
	Priority        model.Priority        `json:"priority"`
	ServiceType     model.ServiceType     `json:"serviceType"`
	CustomerName    *string               `json:"customerName"`
	CustomerPhone   *string               `json:"customerPhone"`
	CustomerAddress *string               `json:"customerAddress"`
	ACType          *string               `json:"acType"`
	ACBrand         *string               `json:"acBrand"`
	ACModel         *string               `json:"acModel"`
	ACSerialNumber  *string               `json:"acSerialNumber"`
	Amount          *decimal.Decimal      `json:"amount"`
	TechnicianNotes *string               `json:"technicianNotes"`
	PartsReplaced   []string              `json:"partsReplaced"`
	WarrantyInfo    *model.WarrantyInfo   `json:"warrantyInfo"`
}

type AssignComplaintRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// UpdatePaymentRequest carries the billed amount and the advance collected.
// Balance and status are always derived server-side.
type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal    `json:"amount"`
	AdvanceAmount *decimal.Decimal    `json:"advanceAmount"`
	Method        model.PaymentMethod `json:"method"`
	Notes         *string             `json:"notes"`
}

// EventPublisher fans complaint changes out to live subscribers
type EventPublisher interface {
	Publish(event model.ComplaintEvent)
}

// --- Interface ---

type ComplaintService interface {
	CreateComplaint(ctx context.Context, actor Actor, req CreateComplaintRequest) (*model.Complaint, error)
	ListComplaints(ctx context.Context, filter repository.ComplaintFilter) ([]model.Complaint, error)
	MyComplaints(ctx context.Context, actor Actor) ([]model.Complaint, error)
	GetComplaint(ctx context.Context, actor Actor, id string) (*model.Complaint, error)
	UpdateComplaint(ctx context.Context, actor Actor, id string, req UpdateComplaintRequest) (*model.Complaint, error)
	AssignComplaint(ctx context.Context, actor Actor, id string, req AssignComplaintRequest) (*model.Complaint, error)
	UpdatePayment(ctx context.Context, actor Actor, id string, req UpdatePaymentRequest) (*model.Complaint, error)
}

type complaintService struct {
	repo      repository.ComplaintRepository
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	events    EventPublisher
	now       func() time.Time
}

func NewComplaintService(
	repo repository.ComplaintRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	events EventPublisher,
) ComplaintService {
	return &complaintService{
		repo:      repo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		events:    events,
		now:       time.Now,
	}
}

// --- Implementation ---

func (s *complaintService) CreateComplaint(ctx context.Context, actor Actor, req CreateComplaintRequest) (*model.Complaint, error) {
	complaint := &model.Complaint{
		Title:           req.Title,
		Description:     req.Description,
		Status:          model.StatusOpen,
		Priority:        req.Priority,
		ServiceType:     req.ServiceType,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		ACType:          req.ACType,
		ACBrand:         req.ACBrand,
		ACModel:         req.ACModel,
		ACSerialNumber:  req.ACSerialNumber,
		TechnicianNotes: req.TechnicianNotes,
		PartsReplaced:   req.PartsReplaced,
		CreatedByID:     actorUUID(actor.ID),
		UpdatedByID:     actorUUID(actor.ID),
	}
	if complaint.Priority == "" {
		complaint.Priority = model.PriorityMedium
	}
	if complaint.ServiceType == "" {
		complaint.ServiceType = model.ServiceRepair
	}
	if complaint.PartsReplaced == nil {
		complaint.PartsReplaced = []string{}
	}
	if req.WarrantyInfo != nil {
		complaint.WarrantyInfo = *req.WarrantyInfo
	}
	if req.Amount != nil {
		complaint.Payment.Amount = *req.Amount
	}
	if err := complaint.Payment.Settle(s.now()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, complaint); err != nil {
			return fmt.Errorf("failed to create complaint: %w", err)
		}
		return s.audit(txCtx, actor, model.ActionCreateComplaint, complaint, req)
	})
	if err != nil {
		return nil, err
	}
	return s.reloadAndPublish(ctx, complaint.ID.String(), model.EventComplaintCreated)
}

func (s *complaintService) ListComplaints(ctx context.Context, filter repository.ComplaintFilter) ([]model.Complaint, error) {
	complaints, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if complaints == nil {
		complaints = []model.Complaint{}
	}
	return complaints, nil
}

func (s *complaintService) MyComplaints(ctx context.Context, actor Actor) ([]model.Complaint, error) {
	if actorUUID(actor.ID) == nil {
		return nil, fmt.Errorf("%w: invalid session user", ErrForbidden)
	}
	return s.ListComplaints(ctx, repository.ComplaintFilter{Participant: actor.ID})
}

func (s *complaintService) GetComplaint(ctx context.Context, actor Actor, id string) (*model.Complaint, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: complaint not found", ErrNotFound)
	}
	complaint, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: complaint not found", ErrNotFound)
		}
		return nil, err
	}
	if !canAccess(actor, complaint) {
		return nil, fmt.Errorf("%w: complaint is not assigned to you", ErrForbidden)
	}
	return complaint, nil
}

func (s *complaintService) UpdateComplaint(ctx context.Context, actor Actor, id string, req UpdateComplaintRequest) (*model.Complaint, error) {
	complaint, err := s.GetComplaint(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	setString(&complaint.Title, req.Title)
	setString(&complaint.Description, req.Description)
	setString(&complaint.CustomerName, req.CustomerName)
	setString(&complaint.CustomerPhone, req.CustomerPhone)
	setString(&complaint.CustomerAddress, req.CustomerAddress)
	setString(&complaint.ACType, req.ACType)
	setString(&complaint.ACBrand, req.ACBrand)
	setString(&complaint.ACModel, req.ACModel)
	setString(&complaint.ACSerialNumber, req.ACSerialNumber)
	setString(&complaint.TechnicianNotes, req.TechnicianNotes)
	if complaint.Title == "" || complaint.Description == "" || complaint.CustomerName == "" || complaint.CustomerPhone == "" {
		return nil, fmt.Errorf("%w: title, description, customer name and phone are required", ErrInvalidInput)
	}
	if req.Status != "" {
		complaint.Status = req.Status
	}
	if req.Priority != "" {
		complaint.Priority = req.Priority
	}
	if req.ServiceType != "" {
		complaint.ServiceType = req.ServiceType
	}
	if req.PartsReplaced != nil {
		complaint.PartsReplaced = req.PartsReplaced
	}
	if req.WarrantyInfo != nil {
		complaint.WarrantyInfo = *req.WarrantyInfo
	}
	if req.Amount != nil {
		complaint.Payment.Amount = *req.Amount
		if err := complaint.Payment.Settle(s.now()); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
	}
	touch(complaint, actor)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, complaint); err != nil {
			return fmt.Errorf("failed to update complaint: %w", err)
		}
		return s.audit(txCtx, actor, model.ActionUpdateComplaint, complaint, req)
	})
	if err != nil {
		return nil, err
	}
	return s.reloadAndPublish(ctx, id, model.EventComplaintUpdated)
}

func (s *complaintService) AssignComplaint(ctx context.Context, actor Actor, id string, req AssignComplaintRequest) (*model.Complaint, error) {
	complaint, err := s.GetComplaint(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	techID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	tech, err := s.userRepo.GetByID(ctx, techID.String())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}
	if !tech.Role.Assignable() {
		return nil, fmt.Errorf("%w: complaints cannot be assigned to %s accounts", ErrConflict, tech.Role)
	}

	complaint.AssignedToID = &techID
	complaint.AssignedTo = tech
	touch(complaint, actor)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, complaint); err != nil {
			return fmt.Errorf("failed to assign complaint: %w", err)
		}
		return s.audit(txCtx, actor, model.ActionAssignComplaint, complaint, map[string]any{
			"assigned_to": tech.ID.String(), "assignee_name": tech.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.reloadAndPublish(ctx, id, model.EventComplaintAssigned)
}

func (s *complaintService) UpdatePayment(ctx context.Context, actor Actor, id string, req UpdatePaymentRequest) (*model.Complaint, error) {
	if req.Amount == nil || req.AdvanceAmount == nil {
		return nil, fmt.Errorf("%w: amount and advanceAmount are required", ErrInvalidInput)
	}

	complaint, err := s.GetComplaint(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	payment := complaint.Payment
	payment.Amount = *req.Amount
	payment.AdvanceAmount = *req.AdvanceAmount
	if req.Method != "" {
		payment.Method = req.Method
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}
	if err := payment.Settle(s.now()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	complaint.Payment = payment
	touch(complaint, actor)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, complaint); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		return s.audit(txCtx, actor, model.ActionUpdatePayment, complaint, payment)
	})
	if err != nil {
		return nil, err
	}
	return s.reloadAndPublish(ctx, id, model.EventPaymentUpdated)
}

// reloadAndPublish re-reads the complaint so referenced users are populated
func (s *complaintService) reloadAndPublish(ctx context.Context, id, eventType string) (*model.Complaint, error) {
	complaint, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload complaint: %w", err)
	}
	if s.events != nil {
		s.events.Publish(model.ComplaintEvent{Type: eventType, Complaint: complaint})
	}
	return complaint, nil
}

func (s *complaintService) audit(ctx context.Context, actor Actor, action string, complaint *model.Complaint, details any) error {
	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserID:     actorUUID(actor.ID),
		Action:     action,
		EntityID:   complaint.ID.String(),
		EntityName: complaint.Title,
		Details:    string(payload),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// canAccess lets admins see everything and other roles only their own tickets
func canAccess(actor Actor, c *model.Complaint) bool {
	if actor.IsAdmin() {
		return true
	}
	id := actorUUID(actor.ID)
	if id == nil {
		return false
	}
	return (c.AssignedToID != nil && *c.AssignedToID == *id) ||
		(c.CreatedByID != nil && *c.CreatedByID == *id)
}

// touch records the actor as last editor. The loaded UpdatedBy is dropped so
// it cannot disagree with the new id.
func touch(c *model.Complaint, actor Actor) {
	c.UpdatedByID = actorUUID(actor.ID)
	c.UpdatedBy = nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
