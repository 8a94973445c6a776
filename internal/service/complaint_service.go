package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/repository"
)

var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrAssigneeNotAdmin  = errors.New("assignee must be an administrator")
	ErrImageNotFound     = errors.New("image not found on complaint")
	ErrTooManyImages     = errors.New("too many images")
)

const (
	maxComplaintImages = 5
	statsCacheKey      = "complaints:stats"
	statsCacheTTL      = 5 * time.Minute
)

// ImageUpload carries one multipart file from the handler down to storage.
type ImageUpload struct {
	FileName string
	MimeType string
	Size     int64
	Reader   io.Reader
}

type ComplaintService interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreateComplaintInput, images []ImageUpload) (*domain.Complaint, error)
	GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Complaint, error)
	GetByPublicID(ctx context.Context, actor *domain.User, publicID string) (*domain.Complaint, error)
	List(ctx context.Context, actor *domain.User, filter domain.ComplaintFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error)
	ListMine(ctx context.Context, actor *domain.User, filter domain.ComplaintFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error)
	MarkRead(ctx context.Context, id uuid.UUID) (*domain.Complaint, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateComplaintInput) (*domain.Complaint, error)
	UpdateStatus(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateStatusInput) (*domain.Complaint, error)
	Assign(ctx context.Context, actor *domain.User, id uuid.UUID, adminID uuid.UUID) (*domain.Complaint, error)
	UploadImages(ctx context.Context, actor *domain.User, id uuid.UUID, images []ImageUpload) (*domain.Complaint, error)
	DeleteImage(ctx context.Context, actor *domain.User, id uuid.UUID, imageURL string) (*domain.Complaint, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
	Statistics(ctx context.Context, actor *domain.User) (*domain.ComplaintStatistics, error)
}

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	categoryRepo  repository.CategoryRepository
	userRepo      repository.UserRepository
	storage       StorageService
	dispatcher    *Dispatcher
	redis         *redis.Client
}

func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	storage StorageService,
	dispatcher *Dispatcher,
	redis *redis.Client,
) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		categoryRepo:  categoryRepo,
		userRepo:      userRepo,
		storage:       storage,
		dispatcher:    dispatcher,
		redis:         redis,
	}
}

func (s *complaintService) Create(ctx context.Context, actor *domain.User, input domain.CreateComplaintInput, images []ImageUpload) (*domain.Complaint, error) {
	if len(images) > maxComplaintImages {
		return nil, ErrTooManyImages
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	seq, err := s.complaintRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	publicID := fmt.Sprintf("CMP-%s-%06d", time.Now().Format("20060102"), seq)

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	var stored []string
	for _, img := range images {
		fileURL, err := s.storage.Upload(ctx, "complaints", img.FileName, img.MimeType, img.Size, img.Reader)
		if err != nil {
			return nil, err
		}
		stored = append(stored, fileURL)
	}

	complaint := &domain.Complaint{
		ID:          uuid.New(),
		PublicID:    publicID,
		UserID:      actor.ID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Status:      domain.StatusPending,
		Priority:    priority,
		Images:      stored,
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		for _, fileURL := range stored {
			_ = s.storage.Remove(ctx, fileURL)
		}
		return nil, err
	}

	s.invalidateStats(ctx)
	s.dispatcher.Dispatch(ctx, ComplaintEvent{
		Type:      EventComplaintCreated,
		Complaint: complaint,
		ActorID:   actor.ID,
		NewStatus: complaint.Status,
	})

	s.resolveImages(complaint)
	return complaint, nil
}

func (s *complaintService) GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.afterRead(ctx, actor, complaint)
}

func (s *complaintService) GetByPublicID(ctx context.Context, actor *domain.User, publicID string) (*domain.Complaint, error) {
	complaint, err := s.complaintRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return s.afterRead(ctx, actor, complaint)
}

func (s *complaintService) afterRead(ctx context.Context, actor *domain.User, complaint *domain.Complaint) (*domain.Complaint, error) {
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}
	if !canAccess(actor, complaint.UserID) {
		return nil, ErrAccessDenied
	}

	// An admin opening a complaint marks it read; failure here never blocks
	// the read.
	if actor.IsAdmin() && !complaint.IsRead {
		if err := s.complaintRepo.MarkRead(ctx, complaint.ID); err != nil {
			fmt.Printf("Failed to mark complaint %s read: %v\n", complaint.ID, err)
		} else {
			complaint.IsRead = true
			s.invalidateStats(ctx)
		}
	}

	s.resolveImages(complaint)
	return complaint, nil
}

func (s *complaintService) List(ctx context.Context, actor *domain.User, filter domain.ComplaintFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error) {
	params.Validate()
	scopeToOwner(actor, &filter)

	complaints, total, err := s.complaintRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Complaint]{}, err
	}

	for i := range complaints {
		s.resolveImages(&complaints[i])
	}
	return domain.NewPaginatedResponse(complaints, params.Page, params.Limit, total), nil
}

// ListMine pins the owner filter to the actor for everyone, admins included.
func (s *complaintService) ListMine(ctx context.Context, actor *domain.User, filter domain.ComplaintFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error) {
	filter.UserID = &actor.ID
	return s.List(ctx, actor, filter, params)
}

// MarkRead is the explicit admin flag flip; reads by admins also set the flag
// as a side effect (afterRead).
func (s *complaintService) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}

	if !complaint.IsRead {
		if err := s.complaintRepo.MarkRead(ctx, complaint.ID); err != nil {
			return nil, err
		}
		complaint.IsRead = true
		s.invalidateStats(ctx)
	}

	s.resolveImages(complaint)
	return complaint, nil
}

func (s *complaintService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateComplaintInput) (*domain.Complaint, error) {
	complaint, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		complaint.CategoryID = input.CategoryID
	}
	if input.Title != nil {
		complaint.Title = *input.Title
	}
	if input.Description != nil {
		complaint.Description = *input.Description
	}
	if input.Location != nil {
		complaint.Location = input.Location
	}
	if input.Priority != nil {
		complaint.Priority = *input.Priority
	}

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.resolveImages(complaint)
	return complaint, nil
}

func (s *complaintService) UpdateStatus(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateStatusInput) (*domain.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}

	oldStatus := complaint.Status
	s.applyStatus(complaint, input.Status)

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	// Fan-out runs on every status write, a no-op transition included, so the
	// audit trail records each admin action.
	s.dispatcher.Dispatch(ctx, ComplaintEvent{
		Type:      EventStatusChanged,
		Complaint: complaint,
		ActorID:   actor.ID,
		OldStatus: oldStatus,
		NewStatus: complaint.Status,
		Note:      input.Note,
	})

	s.resolveImages(complaint)
	return complaint, nil
}

func (s *complaintService) Assign(ctx context.Context, actor *domain.User, id uuid.UUID, adminID uuid.UUID) (*domain.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}

	assignee, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, ErrUserNotFound
	}
	if !assignee.IsAdmin() {
		return nil, ErrAssigneeNotAdmin
	}

	oldStatus := complaint.Status
	complaint.AssignedTo = &adminID
	// Assignment pulls a fresh complaint into the working state.
	if complaint.Status == domain.StatusPending {
		s.applyStatus(complaint, domain.StatusInProgress)
	}

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.dispatcher.Dispatch(ctx, ComplaintEvent{
		Type:      EventAssigned,
		Complaint: complaint,
		ActorID:   actor.ID,
		OldStatus: oldStatus,
		NewStatus: complaint.Status,
	})

	s.resolveImages(complaint)
	return complaint, nil
}

func (s *complaintService) UploadImages(ctx context.Context, actor *domain.User, id uuid.UUID, images []ImageUpload) (*domain.Complaint, error) {
	complaint, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if len(images) == 0 {
		return nil, ErrImageNotFound
	}
	if len(complaint.Images)+len(images) > maxComplaintImages {
		return nil, ErrTooManyImages
	}

	var uploaded []string
	for _, img := range images {
		fileURL, err := s.storage.Upload(ctx, "complaints", img.FileName, img.MimeType, img.Size, img.Reader)
		if err != nil {
			for _, u := range uploaded {
				_ = s.storage.Remove(ctx, u)
			}
			return nil, err
		}
		uploaded = append(uploaded, fileURL)
	}

	complaint.Images = append(complaint.Images, uploaded...)
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, ComplaintEvent{
		Type:       EventImagesUploaded,
		Complaint:  complaint,
		ActorID:    actor.ID,
		ImageCount: len(uploaded),
	})

	s.resolveImages(complaint)
	return complaint, nil
}

func (s *complaintService) DeleteImage(ctx context.Context, actor *domain.User, id uuid.UUID, imageURL string) (*domain.Complaint, error) {
	complaint, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	found := -1
	for i, stored := range complaint.Images {
		if stored == imageURL || s.storage.PublicURL(stored) == imageURL {
			found = i
			break
		}
	}
	if found < 0 {
		return nil, ErrImageNotFound
	}

	removed := complaint.Images[found]
	complaint.Images = append(complaint.Images[:found], complaint.Images[found+1:]...)

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	if err := s.storage.Remove(ctx, s.storage.PublicURL(removed)); err != nil {
		fmt.Printf("Failed to remove image object for complaint %s: %v\n", complaint.ID, err)
	}

	s.resolveImages(complaint)
	return complaint, nil
}

func (s *complaintService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	complaint, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.complaintRepo.Delete(ctx, id); err != nil {
		return err
	}

	for _, stored := range complaint.Images {
		if err := s.storage.Remove(ctx, s.storage.PublicURL(stored)); err != nil {
			fmt.Printf("Failed to remove image object for complaint %s: %v\n", complaint.ID, err)
		}
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *complaintService) Statistics(ctx context.Context, actor *domain.User) (*domain.ComplaintStatistics, error) {
	if !actor.IsAdmin() {
		return s.complaintRepo.Statistics(ctx, &actor.ID)
	}

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats domain.ComplaintStatistics
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.complaintRepo.Statistics(ctx, nil)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, statsCacheKey, statsJSON, statsCacheTTL).Err()
		}
	}
	return stats, nil
}

func (s *complaintService) getOwned(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}
	if !canAccess(actor, complaint.UserID) {
		return nil, ErrAccessDenied
	}
	return complaint, nil
}

// applyStatus transitions the status and stamps resolved_at/closed_at on the
// first entry into their terminal states. The stamps are never overwritten by
// later transitions.
func (s *complaintService) applyStatus(complaint *domain.Complaint, status domain.ComplaintStatus) {
	complaint.Status = status

	now := time.Now()
	if status == domain.StatusResolved && complaint.ResolvedAt == nil {
		complaint.ResolvedAt = &now
	}
	if status == domain.StatusClosed && complaint.ClosedAt == nil {
		complaint.ClosedAt = &now
	}
}

func (s *complaintService) resolveImages(complaint *domain.Complaint) {
	complaint.ImageList = make([]domain.ComplaintImage, 0, len(complaint.Images))
	for _, stored := range complaint.Images {
		fileURL := s.storage.PublicURL(stored)
		complaint.ImageList = append(complaint.ImageList, domain.ComplaintImage{
			FileName: fileNameFromURL(fileURL),
			FileURL:  fileURL,
		})
	}
}

func (s *complaintService) invalidateStats(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, statsCacheKey).Err()
	}
}

func fileNameFromURL(fileURL string) string {
	if parsed, err := url.Parse(fileURL); err == nil && parsed.Path != "" {
		return path.Base(parsed.Path)
	}
	return path.Base(fileURL)
}
