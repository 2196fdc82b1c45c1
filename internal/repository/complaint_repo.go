package repository

import (
	"context"

	"acservice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ComplaintFilter narrows complaint listings. Zero values mean no filter.
type ComplaintFilter struct {
	Status   model.ComplaintStatus
	Priority model.Priority
	// Participant restricts to complaints assigned to or created by this user
	Participant string
}

// ComplaintRepository defines data access for Complaint tickets
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	GetByID(ctx context.Context, id string) (*model.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, error)
	Update(ctx context.Context, complaint *model.Complaint) error
}

type complaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) withUsers(db *gorm.DB) *gorm.DB {
	return db.Preload("AssignedTo").Preload("CreatedBy").Preload("UpdatedBy")
}

func (r *complaintRepository) Create(ctx context.Context, complaint *model.Complaint) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Create(complaint).Error
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*model.Complaint, error) {
	var complaint model.Complaint
	if err := r.withUsers(GetDB(ctx, r.db)).First(&complaint, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &complaint, nil
}

func (r *complaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, error) {
	q := r.withUsers(GetDB(ctx, r.db)).Model(&model.Complaint{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.Participant != "" {
		q = q.Where("assigned_to_id = ? OR created_by_id = ?", filter.Participant, filter.Participant)
	}

	var complaints []model.Complaint
	if err := q.Order("created_at desc").Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// Update writes every column of the complaint; referenced users are never touched.
func (r *complaintRepository) Update(ctx context.Context, complaint *model.Complaint) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(complaint).Error
}
