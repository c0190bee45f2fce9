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

type PortfolioRepo interface {
	Create(ctx context.Context, tx *gorm.DB, portfolios []*types.Portfolio) ([]*types.Portfolio, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, portfolioIDs []uuid.UUID) ([]*types.Portfolio, error)
	GetByOwnerIDs(ctx context.Context, tx *gorm.DB, ownerIDs []uuid.UUID) ([]*types.Portfolio, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, page, limit int) ([]*types.Portfolio, int64, error)
	GetByOwnerAndTemplate(ctx context.Context, tx *gorm.DB, ownerID, templateID uuid.UUID) (*types.Portfolio, error)
	GetTree(ctx context.Context, tx *gorm.DB, portfolioID uuid.UUID) (*types.Portfolio, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, portfolioID uuid.UUID, fields map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, portfolioIDs []uuid.UUID) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, portfolioIDs []uuid.UUID) error
}

type portfolioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPortfolioRepo(db *gorm.DB, baseLog *logger.Logger) PortfolioRepo {
	repoLog := baseLog.With("repo", "PortfolioRepo")
	return &portfolioRepo{db: db, log: repoLog}
}

func (r *portfolioRepo) Create(ctx context.Context, tx *gorm.DB, portfolios []*types.Portfolio) ([]*types.Portfolio, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(portfolios) == 0 {
		return []*types.Portfolio{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&portfolios).Error; err != nil {
		return nil, err
	}
	return portfolios, nil
}

func (r *portfolioRepo) GetByIDs(ctx context.Context, tx *gorm.DB, portfolioIDs []uuid.UUID) ([]*types.Portfolio, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Portfolio
	if len(portfolioIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", portfolioIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *portfolioRepo) GetByOwnerIDs(ctx context.Context, tx *gorm.DB, ownerIDs []uuid.UUID) ([]*types.Portfolio, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Portfolio
	if len(ownerIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("owner_id IN ?", ownerIDs).
		Order("updated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *portfolioRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, page, limit int) ([]*types.Portfolio, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var total int64
	q := transaction.WithContext(ctx).Model(&types.Portfolio{}).Where("owner_id = ?", ownerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.Portfolio
	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// GetByOwnerAndTemplate returns nil, nil when the owner has not forked the
// template yet.
func (r *portfolioRepo) GetByOwnerAndTemplate(ctx context.Context, tx *gorm.DB, ownerID, templateID uuid.UUID) (*types.Portfolio, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Portfolio
	if err := transaction.WithContext(ctx).
		Where("owner_id = ? AND template_id = ?", ownerID, templateID).
		Order("created_at ASC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// GetTree loads a portfolio with its sections and blocks, both ordered by
// order_index.
func (r *portfolioRepo) GetTree(ctx context.Context, tx *gorm.DB, portfolioID uuid.UUID) (*types.Portfolio, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Portfolio
	if err := transaction.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Sections.Blocks", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Where("id = ?", portfolioID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, perrors.ErrNotFound)
	}
	return results[0], nil
}

func (r *portfolioRepo) UpdateFields(ctx context.Context, tx *gorm.DB, portfolioID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.Portfolio{}).
		Where("id = ?", portfolioID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("portfolio %s: %w", portfolioID, perrors.ErrNotFound)
	}
	return nil
}

func (r *portfolioRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, portfolioIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(portfolioIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", portfolioIDs).
		Delete(&types.Portfolio{}).Error
}

func (r *portfolioRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, portfolioIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(portfolioIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", portfolioIDs).
		Delete(&types.Portfolio{}).Error
}
