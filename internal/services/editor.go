package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/content"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/session"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/platform/validate"
)

type SectionInput struct {
	Title      string          `json:"title" validate:"required,notblank,max=100"`
	LayoutType string          `json:"layout_type"`
	Style      json.RawMessage `json:"style"`
}

type SectionPatch struct {
	Title      *string         `json:"title" validate:"omitempty,notblank,max=100"`
	LayoutType *string         `json:"layout_type"`
	Style      json.RawMessage `json:"style"`
	IsEnabled  *bool           `json:"is_enabled"`
}

type BlockInput struct {
	BlockType string          `json:"block_type"`
	Content   json.RawMessage `json:"content"`
	Style     json.RawMessage `json:"style"`
}

type BlockPatch struct {
	Content json.RawMessage `json:"content"`
	Style   json.RawMessage `json:"style"`
}

// EditorService applies structural edits through an editor session so that
// sibling indexes stay dense. Local state is reloaded per call.
type EditorService interface {
	AddSection(ctx context.Context, portfolioID uuid.UUID, in SectionInput) (*types.Section, error)
	UpdateSection(ctx context.Context, sectionID uuid.UUID, in SectionPatch) (*types.Section, error)
	DeleteSection(ctx context.Context, sectionID uuid.UUID) error
	MoveSection(ctx context.Context, sectionID uuid.UUID, direction string) (*types.Portfolio, error)

	AddBlock(ctx context.Context, sectionID uuid.UUID, in BlockInput) (*types.Block, error)
	UpdateBlock(ctx context.Context, blockID uuid.UUID, in BlockPatch) (*types.Block, error)
	DeleteBlock(ctx context.Context, blockID uuid.UUID) error
	MoveBlock(ctx context.Context, blockID uuid.UUID, direction string) (*types.Section, error)
}

type editorService struct {
	db            *gorm.DB
	log           *logger.Logger
	portfolioRepo repos.PortfolioRepo
	sectionRepo   repos.SectionRepo
	blockRepo     repos.BlockRepo
	refs          ReferenceStore
	store         session.Persistence
	locks         *portfolioLocks
}

func NewEditorService(db *gorm.DB, baseLog *logger.Logger, portfolioRepo repos.PortfolioRepo, sectionRepo repos.SectionRepo, blockRepo repos.BlockRepo, refs ReferenceStore) EditorService {
	return &editorService{
		db:            db,
		log:           baseLog.With("service", "EditorService"),
		portfolioRepo: portfolioRepo,
		sectionRepo:   sectionRepo,
		blockRepo:     blockRepo,
		refs:          refs,
		store:         NewPersistence(db, portfolioRepo, sectionRepo, blockRepo),
		locks:         newPortfolioLocks(),
	}
}

// open checks ownership, locks the portfolio and opens a session on its
// current tree. The returned func releases the lock.
func (s *editorService) open(ctx context.Context, portfolioID uuid.UUID) (*session.Session, func(), error) {
	if _, err := ownedPortfolio(ctx, nil, s.portfolioRepo, portfolioID, false); err != nil {
		return nil, nil, err
	}
	unlock := s.locks.lock(portfolioID)
	p, err := s.portfolioRepo.GetTree(ctx, nil, portfolioID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	sess, err := session.Open(ctx, p, s.store, s.log)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return sess, unlock, nil
}

func (s *editorService) portfolioOfSection(ctx context.Context, sectionID uuid.UUID) (uuid.UUID, error) {
	rows, err := s.sectionRepo.GetByIDs(ctx, nil, []uuid.UUID{sectionID})
	if err != nil {
		return uuid.Nil, err
	}
	if len(rows) == 0 {
		return uuid.Nil, fmt.Errorf("section %s: %w", sectionID, perrors.ErrNotFound)
	}
	return rows[0].PortfolioID, nil
}

func (s *editorService) portfolioOfBlock(ctx context.Context, blockID uuid.UUID) (uuid.UUID, error) {
	rows, err := s.blockRepo.GetByIDs(ctx, nil, []uuid.UUID{blockID})
	if err != nil {
		return uuid.Nil, err
	}
	if len(rows) == 0 {
		return uuid.Nil, fmt.Errorf("block %s: %w", blockID, perrors.ErrNotFound)
	}
	return s.portfolioOfSection(ctx, rows[0].SectionID)
}

func (s *editorService) AddSection(ctx context.Context, portfolioID uuid.UUID, in SectionInput) (*types.Section, error) {
	if err := validate.Default().Check(in); err != nil {
		return nil, err
	}
	sess, unlock, err := s.open(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return sess.AddSection(ctx, in.Title, in.LayoutType, jsonOrNil(in.Style))
}

func (s *editorService) UpdateSection(ctx context.Context, sectionID uuid.UUID, in SectionPatch) (*types.Section, error) {
	if err := validate.Default().Check(in); err != nil {
		return nil, err
	}
	portfolioID, err := s.portfolioOfSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	sess, unlock, err := s.open(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if in.IsEnabled != nil {
		if err := sess.SetSectionEnabled(ctx, sectionID, *in.IsEnabled); err != nil {
			return nil, err
		}
	}
	return sess.UpdateSection(ctx, sectionID, in.Title, in.LayoutType, jsonOrNil(in.Style))
}

func (s *editorService) DeleteSection(ctx context.Context, sectionID uuid.UUID) error {
	portfolioID, err := s.portfolioOfSection(ctx, sectionID)
	if err != nil {
		return err
	}
	sess, unlock, err := s.open(ctx, portfolioID)
	if err != nil {
		return err
	}
	defer unlock()
	return sess.RemoveSection(ctx, sectionID)
}

func (s *editorService) MoveSection(ctx context.Context, sectionID uuid.UUID, direction string) (*types.Portfolio, error) {
	dir, err := session.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	portfolioID, err := s.portfolioOfSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	sess, unlock, err := s.open(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	if err := sess.MoveSection(ctx, sectionID, dir); err != nil {
		return nil, err
	}
	return sess.Tree(), nil
}

func (s *editorService) AddBlock(ctx context.Context, sectionID uuid.UUID, in BlockInput) (*types.Block, error) {
	payload, err := parseContent(in.Content)
	if err != nil {
		return nil, err
	}
	s.freeze(ctx, payload)
	portfolioID, err := s.portfolioOfSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	sess, unlock, err := s.open(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return sess.AddBlock(ctx, sectionID, in.BlockType, payload, jsonOrNil(in.Style))
}

func (s *editorService) UpdateBlock(ctx context.Context, blockID uuid.UUID, in BlockPatch) (*types.Block, error) {
	payload, err := parseContent(in.Content)
	if err != nil {
		return nil, err
	}
	s.freeze(ctx, payload)
	portfolioID, err := s.portfolioOfBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}
	sess, unlock, err := s.open(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return sess.UpdateBlockContent(ctx, blockID, payload, jsonOrNil(in.Style))
}

func (s *editorService) DeleteBlock(ctx context.Context, blockID uuid.UUID) error {
	portfolioID, err := s.portfolioOfBlock(ctx, blockID)
	if err != nil {
		return err
	}
	sess, unlock, err := s.open(ctx, portfolioID)
	if err != nil {
		return err
	}
	defer unlock()
	return sess.RemoveBlock(ctx, blockID)
}

func (s *editorService) MoveBlock(ctx context.Context, blockID uuid.UUID, direction string) (*types.Section, error) {
	dir, err := session.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	portfolioID, err := s.portfolioOfBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}
	sess, unlock, err := s.open(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	if err := sess.MoveBlock(ctx, blockID, dir); err != nil {
		return nil, err
	}
	b, _ := sess.Block(blockID)
	for _, sec := range sess.Tree().Sections {
		if sec.ID == b.SectionID {
			return sec, nil
		}
	}
	return nil, fmt.Errorf("section of block %s: %w", blockID, perrors.ErrNotFound)
}

// parseContent accepts an absent body as "no change".
// freeze captures the referenced record into the payload's snapshot at save
// time. When the record is not found or cannot be loaded, the client's
// snapshot is kept.
func (s *editorService) freeze(ctx context.Context, p *content.Payload) {
	if p == nil || p.DataID == "" || s.refs == nil {
		return
	}
	owner, err := callerID(ctx)
	if err != nil {
		return
	}
	live, err := s.refs.LoadLive(ctx, owner)
	if err != nil {
		s.log.Warn("freeze: reference load failed", "data_id", p.DataID, "error", err)
		return
	}
	if !live.Freeze(p) {
		s.log.Debug("freeze: no live record", "type", p.Type, "data_id", p.DataID)
	}
}

func parseContent(raw json.RawMessage) (*content.Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return content.ParsePayload(raw)
}

func jsonOrNil(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}
