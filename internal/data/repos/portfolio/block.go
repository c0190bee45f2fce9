package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type BlockRepo interface {
	Create(ctx context.Context, tx *gorm.DB, blocks []*types.Block) ([]*types.Block, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, blockIDs []uuid.UUID) ([]*types.Block, error)
	GetBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.Block, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, blockID uuid.UUID, fields map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, blockIDs []uuid.UUID) error
	SoftDeleteBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, blockIDs []uuid.UUID) error
}

type blockRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBlockRepo(db *gorm.DB, baseLog *logger.Logger) BlockRepo {
	repoLog := baseLog.With("repo", "BlockRepo")
	return &blockRepo{db: db, log: repoLog}
}

func (r *blockRepo) Create(ctx context.Context, tx *gorm.DB, blocks []*types.Block) ([]*types.Block, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(blocks) == 0 {
		return []*types.Block{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *blockRepo) GetByIDs(ctx context.Context, tx *gorm.DB, blockIDs []uuid.UUID) ([]*types.Block, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Block
	if len(blockIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", blockIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *blockRepo) GetBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.Block, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Block
	if len(sectionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("section_id IN ?", sectionIDs).
		Order("section_id, order_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *blockRepo) UpdateFields(ctx context.Context, tx *gorm.DB, blockID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.Block{}).
		Where("id = ?", blockID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("block %s: %w", blockID, perrors.ErrNotFound)
	}
	return nil
}

func (r *blockRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, blockIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(blockIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", blockIDs).
		Delete(&types.Block{}).Error
}

func (r *blockRepo) SoftDeleteBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(sectionIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("section_id IN ?", sectionIDs).
		Delete(&types.Block{}).Error
}

func (r *blockRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, blockIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(blockIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", blockIDs).
		Delete(&types.Block{}).Error
}
