package domain

import (
	"github.com/yungbote/portfolio-backend/internal/domain/design"
	"github.com/yungbote/portfolio-backend/internal/domain/portfolio"
	"github.com/yungbote/portfolio-backend/internal/domain/records"
	"github.com/yungbote/portfolio-backend/internal/domain/templates"
)

const (
	BlockTypeImage = portfolio.BlockTypeImage
	BlockTypeText  = portfolio.BlockTypeText

	PortfolioStatusDraft     = portfolio.StatusDraft
	PortfolioStatusPublished = portfolio.StatusPublished
)

type (
	Portfolio = portfolio.Portfolio
	Section   = portfolio.Section
	Block     = portfolio.Block

	Template            = templates.Template
	TemplateSectionLink = templates.TemplateSectionLink
	TemplateSection     = templates.TemplateSection
	TemplateBlock       = templates.TemplateBlock

	ColorTheme = design.ColorTheme
	FontTheme  = design.FontTheme

	Activity      = records.Activity
	ActivityImage = records.ActivityImage
	Work          = records.Work
	WorkImage     = records.WorkImage
	WorkLink      = records.WorkLink
)

// AllModels lists every persisted entity in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&ColorTheme{},
		&FontTheme{},

		&Template{},
		&TemplateSection{},
		&TemplateSectionLink{},
		&TemplateBlock{},

		&Portfolio{},
		&Section{},
		&Block{},

		&Activity{},
		&ActivityImage{},
		&Work{},
		&WorkImage{},
		&WorkLink{},
	}
}
