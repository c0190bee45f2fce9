package design

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type ColorThemeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, themes []*types.ColorTheme) ([]*types.ColorTheme, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, themeIDs []uuid.UUID) ([]*types.ColorTheme, error)
	GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.ColorTheme, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.ColorTheme, error)
}

type colorThemeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewColorThemeRepo(db *gorm.DB, baseLog *logger.Logger) ColorThemeRepo {
	return &colorThemeRepo{db: db, log: baseLog.With("repo", "ColorThemeRepo")}
}

func (r *colorThemeRepo) Create(ctx context.Context, tx *gorm.DB, themes []*types.ColorTheme) ([]*types.ColorTheme, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(themes) == 0 {
		return []*types.ColorTheme{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&themes).Error; err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *colorThemeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, themeIDs []uuid.UUID) ([]*types.ColorTheme, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ColorTheme
	if len(themeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).Where("id IN ?", themeIDs).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *colorThemeRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.ColorTheme, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ColorTheme
	if len(names) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).Where("name IN ?", names).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// List returns themes in creation order; the first row is the fallback used
// when a portfolio is forked without an explicit theme.
func (r *colorThemeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.ColorTheme, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ColorTheme
	if err := transaction.WithContext(ctx).Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type FontThemeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, themes []*types.FontTheme) ([]*types.FontTheme, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, themeIDs []uuid.UUID) ([]*types.FontTheme, error)
	GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.FontTheme, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.FontTheme, error)
}

type fontThemeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFontThemeRepo(db *gorm.DB, baseLog *logger.Logger) FontThemeRepo {
	return &fontThemeRepo{db: db, log: baseLog.With("repo", "FontThemeRepo")}
}

func (r *fontThemeRepo) Create(ctx context.Context, tx *gorm.DB, themes []*types.FontTheme) ([]*types.FontTheme, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(themes) == 0 {
		return []*types.FontTheme{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&themes).Error; err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *fontThemeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, themeIDs []uuid.UUID) ([]*types.FontTheme, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FontTheme
	if len(themeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).Where("id IN ?", themeIDs).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fontThemeRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.FontTheme, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FontTheme
	if len(names) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).Where("name IN ?", names).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fontThemeRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.FontTheme, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FontTheme
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
