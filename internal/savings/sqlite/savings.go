package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/savings"
)

type SavingsRepository struct {
	db *gorm.DB
}

func NewSavingsRepository(db *gorm.DB) savings.Repository {
	return &SavingsRepository{db: db}
}

func (r *SavingsRepository) CreateBucket(b *savings.SavingsBucket) error {
	if err := r.db.Create(b).Error; err != nil {
		return internal.NewStorageError("create savings bucket", err)
	}
	return nil
}

func (r *SavingsRepository) GetBucketByID(bucketID string) (*savings.SavingsBucket, error) {
	var b savings.SavingsBucket
	err := r.db.Where("id = ?", bucketID).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrBucketNotFound
		}
		return nil, internal.NewStorageError("get savings bucket", err)
	}
	return &b, nil
}

func (r *SavingsRepository) ListBuckets() ([]*savings.SavingsBucket, error) {
	var buckets []*savings.SavingsBucket
	if err := r.db.Order("created_at ASC").Find(&buckets).Error; err != nil {
		return nil, internal.NewStorageError("list savings buckets", err)
	}
	return buckets, nil
}

func (r *SavingsRepository) UpdateBucketFields(bucketID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&savings.SavingsBucket{}).Where("id = ?", bucketID).Updates(fields)
	if res.Error != nil {
		return internal.NewStorageError("update savings bucket", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrBucketNotFound
	}
	return nil
}

// DeleteBucket removes contributions and the bucket together; either
// both go or neither does.
func (r *SavingsRepository) DeleteBucket(bucketID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bucket_id = ?", bucketID).
			Delete(&savings.SavingsContribution{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", bucketID).Delete(&savings.SavingsBucket{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrBucketNotFound
		}
		return nil
	})
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		return internal.NewStorageError("delete savings bucket", err)
	}
	return nil
}

func (r *SavingsRepository) CreateContribution(c *savings.SavingsContribution) error {
	if err := r.db.Create(c).Error; err != nil {
		return internal.NewStorageError("create contribution", err)
	}
	return nil
}

func (r *SavingsRepository) ListContributions(bucketID string) ([]*savings.SavingsContribution, error) {
	var contributions []*savings.SavingsContribution
	err := r.db.Where("bucket_id = ?", bucketID).
		Order("date DESC, created_at DESC").
		Find(&contributions).Error
	if err != nil {
		return nil, internal.NewStorageError("list contributions", err)
	}
	return contributions, nil
}

func (r *SavingsRepository) DeleteContribution(contributionID string) error {
	res := r.db.Where("id = ?", contributionID).Delete(&savings.SavingsContribution{})
	if res.Error != nil {
		return internal.NewStorageError("delete contribution", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.NewNotFoundError("contribution not found", internal.ErrCodeBucketNotFound)
	}
	return nil
}

func (r *SavingsRepository) SavedTotal(bucketID string) (int64, error) {
	var total *int64
	err := r.db.Model(&savings.SavingsContribution{}).
		Select("SUM(amount)").
		Where("bucket_id = ?", bucketID).
		Scan(&total).Error
	if err != nil {
		return 0, internal.NewStorageError("sum contributions", err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
