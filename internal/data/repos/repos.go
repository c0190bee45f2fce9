package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos/design"
	"github.com/yungbote/portfolio-backend/internal/data/repos/portfolio"
	"github.com/yungbote/portfolio-backend/internal/data/repos/records"
	"github.com/yungbote/portfolio-backend/internal/data/repos/templates"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type PortfolioRepo = portfolio.PortfolioRepo
type SectionRepo = portfolio.SectionRepo
type BlockRepo = portfolio.BlockRepo

type TemplateRepo = templates.TemplateRepo

type ColorThemeRepo = design.ColorThemeRepo
type FontThemeRepo = design.FontThemeRepo

type ActivityRepo = records.ActivityRepo
type WorkRepo = records.WorkRepo

func NewPortfolioRepo(db *gorm.DB, log *logger.Logger) PortfolioRepo {
	return portfolio.NewPortfolioRepo(db, log)
}
func NewSectionRepo(db *gorm.DB, log *logger.Logger) SectionRepo {
	return portfolio.NewSectionRepo(db, log)
}
func NewBlockRepo(db *gorm.DB, log *logger.Logger) BlockRepo {
	return portfolio.NewBlockRepo(db, log)
}
func NewTemplateRepo(db *gorm.DB, log *logger.Logger) TemplateRepo {
	return templates.NewTemplateRepo(db, log)
}
func NewColorThemeRepo(db *gorm.DB, log *logger.Logger) ColorThemeRepo {
	return design.NewColorThemeRepo(db, log)
}
func NewFontThemeRepo(db *gorm.DB, log *logger.Logger) FontThemeRepo {
	return design.NewFontThemeRepo(db, log)
}
func NewActivityRepo(db *gorm.DB, log *logger.Logger) ActivityRepo {
	return records.NewActivityRepo(db, log)
}
func NewWorkRepo(db *gorm.DB, log *logger.Logger) WorkRepo {
	return records.NewWorkRepo(db, log)
}
