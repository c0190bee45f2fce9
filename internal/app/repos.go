package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type Repos struct {
	Portfolio  repos.PortfolioRepo
	Section    repos.SectionRepo
	Block      repos.BlockRepo
	Template   repos.TemplateRepo
	ColorTheme repos.ColorThemeRepo
	FontTheme  repos.FontThemeRepo
	Activity   repos.ActivityRepo
	Work       repos.WorkRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Portfolio:  repos.NewPortfolioRepo(db, log),
		Section:    repos.NewSectionRepo(db, log),
		Block:      repos.NewBlockRepo(db, log),
		Template:   repos.NewTemplateRepo(db, log),
		ColorTheme: repos.NewColorThemeRepo(db, log),
		FontTheme:  repos.NewFontThemeRepo(db, log),
		Activity:   repos.NewActivityRepo(db, log),
		Work:       repos.NewWorkRepo(db, log),
	}
}
