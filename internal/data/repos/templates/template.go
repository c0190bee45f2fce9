package templates

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type TemplateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, templates []*types.Template) ([]*types.Template, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.Template, error)
	GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Template, error)
	GetTree(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (*types.Template, error)
	List(ctx context.Context, tx *gorm.DB, page, limit int) ([]*types.Template, int64, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, fields map[string]interface{}) error
	ReplaceLinks(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, links []*types.TemplateSectionLink) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error
}

type templateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	repoLog := baseLog.With("repo", "TemplateRepo")
	return &templateRepo{db: db, log: repoLog}
}

// Create persists templates together with their links, sections and blocks.
func (r *templateRepo) Create(ctx context.Context, tx *gorm.DB, templates []*types.Template) ([]*types.Template, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(templates) == 0 {
		return []*types.Template{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.Template, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Template
	if len(templateIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", templateIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *templateRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Template, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Template
	if len(names) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("name IN ?", names).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func preloadTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Links", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Links.Section").
		Preload("Links.Section.Blocks", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") })
}

func (r *templateRepo) GetTree(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (*types.Template, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Template
	if err := preloadTree(transaction.WithContext(ctx)).
		Where("id = ?", templateID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("template %s: %w", templateID, perrors.ErrNotFound)
	}
	return results[0], nil
}

func (r *templateRepo) List(ctx context.Context, tx *gorm.DB, page, limit int) ([]*types.Template, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := transaction.WithContext(ctx).Model(&types.Template{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.Template
	if err := preloadTree(transaction.WithContext(ctx)).
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *templateRepo) UpdateFields(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.Template{}).
		Where("id = ?", templateID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("template %s: %w", templateID, perrors.ErrNotFound)
	}
	return nil
}

// ReplaceLinks drops the template's current links, sections and blocks and
// writes the given ones. Portfolios forked earlier hold copies and are not
// touched.
func (r *templateRepo) ReplaceLinks(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, links []*types.TemplateSectionLink) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := r.deleteChildren(ctx, transaction, []uuid.UUID{templateID}); err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	for _, l := range links {
		l.TemplateID = templateID
	}
	return transaction.WithContext(ctx).Create(&links).Error
}

func (r *templateRepo) deleteChildren(ctx context.Context, transaction *gorm.DB, templateIDs []uuid.UUID) error {
	var sectionIDs []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.TemplateSectionLink{}).
		Where("template_id IN ?", templateIDs).
		Pluck("template_section_id", &sectionIDs).Error; err != nil {
		return err
	}
	if len(sectionIDs) > 0 {
		if err := transaction.WithContext(ctx).
			Where("template_section_id IN ?", sectionIDs).
			Delete(&types.TemplateBlock{}).Error; err != nil {
			return err
		}
		if err := transaction.WithContext(ctx).
			Where("id IN ?", sectionIDs).
			Delete(&types.TemplateSection{}).Error; err != nil {
			return err
		}
	}
	return transaction.WithContext(ctx).
		Where("template_id IN ?", templateIDs).
		Delete(&types.TemplateSectionLink{}).Error
}

func (r *templateRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(templateIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", templateIDs).
		Delete(&types.Template{}).Error
}

func (r *templateRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(templateIDs) == 0 {
		return nil
	}

	if err := r.deleteChildren(ctx, transaction, templateIDs); err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", templateIDs).
		Delete(&types.Template{}).Error
}
