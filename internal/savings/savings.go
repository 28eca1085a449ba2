package savings

import (
	"log/slog"
	"time"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/category"
	"github.com/adityarahman/celengan/internal/core/id"
)

const (
	BucketIDPrefix       = "sav"
	ContributionIDPrefix = "sct"
)

// SavingsBucket is a named goal tied to a category, with an optional
// target. The saved total is always derived from contributions.
type SavingsBucket struct {
	ID           string `json:"id" gorm:"primaryKey;column:id"`
	CategoryID   string `json:"category_id" gorm:"column:category_id"`
	Name         string `json:"name" gorm:"column:name"`
	TargetAmount *int64 `json:"target_amount,omitempty" gorm:"column:target_amount"`
	CreatedAt    int64  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    int64  `json:"updated_at" gorm:"column:updated_at"`
}

func (SavingsBucket) TableName() string {
	return "savings_buckets"
}

type SavingsContribution struct {
	ID        string `json:"id" gorm:"primaryKey;column:id"`
	BucketID  string `json:"bucket_id" gorm:"column:bucket_id"`
	Amount    int64  `json:"amount" gorm:"column:amount"`
	Date      int64  `json:"date" gorm:"column:date"`
	CreatedAt int64  `json:"created_at" gorm:"column:created_at"`
}

func (SavingsContribution) TableName() string {
	return "savings_contributions"
}

// BucketProgress pairs a bucket with its derived saved total.
type BucketProgress struct {
	Bucket     *SavingsBucket `json:"bucket"`
	SavedTotal int64          `json:"saved_total"`
}

type Repository interface {
	CreateBucket(b *SavingsBucket) error
	GetBucketByID(bucketID string) (*SavingsBucket, error)
	ListBuckets() ([]*SavingsBucket, error)
	UpdateBucketFields(bucketID string, fields map[string]interface{}) error
	// DeleteBucket removes the bucket and all its contributions in one
	// transaction.
	DeleteBucket(bucketID string) error

	CreateContribution(c *SavingsContribution) error
	ListContributions(bucketID string) ([]*SavingsContribution, error)
	DeleteContribution(contributionID string) error
	SavedTotal(bucketID string) (int64, error)
}

type CategoryGetter interface {
	GetByID(categoryID string) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryGetter
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryGetter, logger *slog.Logger) *Service {
	return &Service{repo: repo, categories: categories, logger: logger}
}

type CreateBucketDTO struct {
	CategoryID   string
	Name         string
	TargetAmount *int64
}

func (s *Service) CreateBucket(dto CreateBucketDTO) (*SavingsBucket, error) {
	if dto.Name == "" {
		return nil, internal.NewValidationError("bucket name is required", internal.ErrCodeValidationFailed)
	}
	if dto.TargetAmount != nil && *dto.TargetAmount <= 0 {
		return nil, internal.NewValidationError("target amount must be positive", internal.ErrCodeInvalidAmount)
	}

	cat, err := s.categories.GetByID(dto.CategoryID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return nil, internal.NewReferentialError("category does not exist", internal.ErrCodeMissingRef)
		}
		return nil, err
	}
	if cat.Archived() {
		return nil, internal.NewReferentialError("category is archived", internal.ErrCodeMissingRef)
	}

	now := time.Now().UnixMilli()
	b := &SavingsBucket{
		ID:           id.New(BucketIDPrefix),
		CategoryID:   dto.CategoryID,
		Name:         dto.Name,
		TargetAmount: dto.TargetAmount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateBucket(b); err != nil {
		s.logger.Error("failed to create savings bucket", "error", err)
		return nil, err
	}
	return b, nil
}

func (s *Service) GetBucket(bucketID string) (*SavingsBucket, error) {
	return s.repo.GetBucketByID(bucketID)
}

func (s *Service) ListBuckets() ([]*SavingsBucket, error) {
	return s.repo.ListBuckets()
}

// Progress reports a bucket and the sum of its contributions.
func (s *Service) Progress(bucketID string) (*BucketProgress, error) {
	bucket, err := s.repo.GetBucketByID(bucketID)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.SavedTotal(bucketID)
	if err != nil {
		return nil, err
	}
	return &BucketProgress{Bucket: bucket, SavedTotal: total}, nil
}

func (s *Service) RenameBucket(bucketID, name string) error {
	if name == "" {
		return internal.NewValidationError("bucket name is required", internal.ErrCodeValidationFailed)
	}
	return s.repo.UpdateBucketFields(bucketID, map[string]interface{}{
		"name":       name,
		"updated_at": time.Now().UnixMilli(),
	})
}

func (s *Service) SetTarget(bucketID string, target *int64) error {
	if target != nil && *target <= 0 {
		return internal.NewValidationError("target amount must be positive", internal.ErrCodeInvalidAmount)
	}
	return s.repo.UpdateBucketFields(bucketID, map[string]interface{}{
		"target_amount": target,
		"updated_at":    time.Now().UnixMilli(),
	})
}

// DeleteBucket cascades to the bucket's contributions.
func (s *Service) DeleteBucket(bucketID string) error {
	if err := s.repo.DeleteBucket(bucketID); err != nil {
		return err
	}
	s.logger.Info("savings bucket deleted with contributions", "bucket_id", bucketID)
	return nil
}

func (s *Service) Contribute(bucketID string, amount, date int64) (*SavingsContribution, error) {
	if amount <= 0 {
		return nil, internal.NewValidationError("contribution must be positive", internal.ErrCodeInvalidAmount)
	}
	if _, err := s.repo.GetBucketByID(bucketID); err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return nil, internal.NewReferentialError("savings bucket does not exist", internal.ErrCodeMissingRef)
		}
		return nil, err
	}

	c := &SavingsContribution{
		ID:        id.New(ContributionIDPrefix),
		BucketID:  bucketID,
		Amount:    amount,
		Date:      date,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.repo.CreateContribution(c); err != nil {
		s.logger.Error("failed to record contribution", "error", err, "bucket_id", bucketID)
		return nil, err
	}
	return c, nil
}

func (s *Service) ListContributions(bucketID string) ([]*SavingsContribution, error) {
	return s.repo.ListContributions(bucketID)
}

func (s *Service) DeleteContribution(contributionID string) error {
	return s.repo.DeleteContribution(contributionID)
}
