package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crm/internal/model"
	"crm/internal/repository"

	"github.com/google/uuid"
)

// --- Activity DTOs ---

type AttachmentPayload struct {
	URL         string `json:"url" binding:"required"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size" binding:"gte=0"`
}

type CreateActivityRequest struct {
	Type        string              `json:"type" binding:"required,activity_type"`
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Attachments []AttachmentPayload `json:"attachments" binding:"dive"`
	CreatedBy   string              `json:"createdBy"`
}

type ActivityResponse struct {
	ID          uuid.UUID          `json:"id"`
	CustomerID  uuid.UUID          `json:"customerId"`
	Type        model.ActivityType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	CreatedBy   string             `json:"createdBy"`
	Attachments []model.Attachment `json:"attachments"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// --- Interface ---

type ActivityService interface {
	ListActivities(ctx context.Context, customerID string) ([]ActivityResponse, error)
	CreateActivity(ctx context.Context, customerID string, req CreateActivityRequest) (ActivityResponse, error)
}

// --- Implementation ---

type activityService struct {
	activityRepo repository.ActivityRepository
	customerRepo repository.CustomerRepository
	txManager    repository.TransactionManager
	events       EventPublisher
	now          func() time.Time
}

func NewActivityService(
	activityRepo repository.ActivityRepository,
	customerRepo repository.CustomerRepository,
	txManager repository.TransactionManager,
	events EventPublisher,
) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		events:       publisherOrNoop(events),
		now:          utcNow,
	}
}

// ListActivities returns the customer's timeline, newest first. An unknown customer has an empty timeline.
func (s *activityService) ListActivities(ctx context.Context, customerID string) ([]ActivityResponse, error) {
	uid, err := uuid.Parse(customerID)
	if err != nil {
		return []ActivityResponse{}, nil
	}

	activities, err := s.activityRepo.ListByCustomer(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}

	res := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		res = append(res, toActivityResponse(a))
	}
	return res, nil
}

func (s *activityService) CreateActivity(ctx context.Context, customerID string, req CreateActivityRequest) (ActivityResponse, error) {
	activityType, ok := model.ParseActivityType(req.Type)
	if !ok {
		if req.Type == "" {
			return ActivityResponse{}, newValidationError("type and title are required")
		}
		return ActivityResponse{}, newValidationError("type %q is not one of the supported activity types", req.Type)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return ActivityResponse{}, newValidationError("type and title are required")
	}

	attachments := make([]model.Attachment, 0, len(req.Attachments))
	for i, a := range req.Attachments {
		if strings.TrimSpace(a.URL) == "" {
			return ActivityResponse{}, newValidationError("attachments[%d]: url is required", i)
		}
		if a.Size < 0 {
			return ActivityResponse{}, newValidationError("attachments[%d]: size cannot be negative", i)
		}
		attachments = append(attachments, model.Attachment{
			URL:         a.URL,
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}

	createdBy := strings.TrimSpace(req.CreatedBy)
	if createdBy == "" {
		createdBy = model.DefaultActivityCreator
	}

	uid, err := uuid.Parse(customerID)
	if err != nil {
		return ActivityResponse{}, notFound("customer")
	}

	activity := &model.Activity{
		CustomerID:  uid,
		Type:        activityType,
		Title:       title,
		Description: req.Description,
		CreatedBy:   createdBy,
		Attachments: attachments,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.customerRepo.FindByID(txCtx, uid); err != nil {
			return translateLookupErr("customer", err)
		}

		activity.CreatedAt = s.now()
		if err := s.activityRepo.Create(txCtx, activity); err != nil {
			return fmt.Errorf("failed to create activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return ActivityResponse{}, err
	}

	res := toActivityResponse(*activity)
	s.events.Publish(EventActivityCreated, res)
	return res, nil
}

// --- Response mappers ---

func toActivityResponse(a model.Activity) ActivityResponse {
	attachments := a.Attachments
	if attachments == nil {
		attachments = []model.Attachment{}
	}
	return ActivityResponse{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		CreatedBy:   a.CreatedBy,
		Attachments: attachments,
		CreatedAt:   a.CreatedAt,
	}
}
