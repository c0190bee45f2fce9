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

type SectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sections []*types.Section) ([]*types.Section, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.Section, error)
	GetByPortfolioIDs(ctx context.Context, tx *gorm.DB, portfolioIDs []uuid.UUID) ([]*types.Section, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, fields map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) error
	SoftDeleteByPortfolioIDs(ctx context.Context, tx *gorm.DB, portfolioIDs []uuid.UUID) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) error
}

type sectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	repoLog := baseLog.With("repo", "SectionRepo")
	return &sectionRepo{db: db, log: repoLog}
}

func (r *sectionRepo) Create(ctx context.Context, tx *gorm.DB, sections []*types.Section) ([]*types.Section, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(sections) == 0 {
		return []*types.Section{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *sectionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.Section, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Section
	if len(sectionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", sectionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sectionRepo) GetByPortfolioIDs(ctx context.Context, tx *gorm.DB, portfolioIDs []uuid.UUID) ([]*types.Section, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Section
	if len(portfolioIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("portfolio_id IN ?", portfolioIDs).
		Order("portfolio_id, order_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sectionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.Section{}).
		Where("id = ?", sectionID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("section %s: %w", sectionID, perrors.ErrNotFound)
	}
	return nil
}

func (r *sectionRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(sectionIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", sectionIDs).
		Delete(&types.Section{}).Error
}

func (r *sectionRepo) SoftDeleteByPortfolioIDs(ctx context.Context, tx *gorm.DB, portfolioIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(portfolioIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("portfolio_id IN ?", portfolioIDs).
		Delete(&types.Section{}).Error
}

func (r *sectionRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(sectionIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", sectionIDs).
		Delete(&types.Section{}).Error
}
