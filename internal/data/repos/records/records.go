package records

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type ActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, activities []*types.Activity) ([]*types.Activity, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.Activity, error)
	GetByOwnerIDs(ctx context.Context, tx *gorm.DB, ownerIDs []uuid.UUID) ([]*types.Activity, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) error
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return &activityRepo{db: db, log: baseLog.With("repo", "ActivityRepo")}
}

func (r *activityRepo) Create(ctx context.Context, tx *gorm.DB, activities []*types.Activity) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(activities) == 0 {
		return []*types.Activity{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Activity
	if len(activityIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Images").
		Where("id IN ?", activityIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *activityRepo) GetByOwnerIDs(ctx context.Context, tx *gorm.DB, ownerIDs []uuid.UUID) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Activity
	if len(ownerIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Images").
		Where("owner_id IN ?", ownerIDs).
		Order("activity_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *activityRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(activityIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Where("id IN ?", activityIDs).Delete(&types.Activity{}).Error
}

type WorkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, works []*types.Work) ([]*types.Work, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, workIDs []uuid.UUID) ([]*types.Work, error)
	GetByOwnerIDs(ctx context.Context, tx *gorm.DB, ownerIDs []uuid.UUID) ([]*types.Work, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, workIDs []uuid.UUID) error
}

type workRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkRepo(db *gorm.DB, baseLog *logger.Logger) WorkRepo {
	return &workRepo{db: db, log: baseLog.With("repo", "WorkRepo")}
}

func (r *workRepo) Create(ctx context.Context, tx *gorm.DB, works []*types.Work) ([]*types.Work, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(works) == 0 {
		return []*types.Work{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&works).Error; err != nil {
		return nil, err
	}
	return works, nil
}

func (r *workRepo) GetByIDs(ctx context.Context, tx *gorm.DB, workIDs []uuid.UUID) ([]*types.Work, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Work
	if len(workIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Images").
		Preload("Links").
		Where("id IN ?", workIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *workRepo) GetByOwnerIDs(ctx context.Context, tx *gorm.DB, ownerIDs []uuid.UUID) ([]*types.Work, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Work
	if len(ownerIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Images").
		Preload("Links").
		Where("owner_id IN ?", ownerIDs).
		Order("working_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *workRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, workIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(workIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Where("id IN ?", workIDs).Delete(&types.Work{}).Error
}
