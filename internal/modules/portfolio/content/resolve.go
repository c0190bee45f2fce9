package content

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

type Source string

const (
	SourceLive     Source = "live"
	SourceSnapshot Source = "snapshot"
	SourceProfile  Source = "profile"
)

type Image struct {
	URL         string `json:"url"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// RenderableItem is the typed view of one block, ready for layout.
type RenderableItem struct {
	BlockID uuid.UUID `json:"block_id"`
	Kind    Kind      `json:"kind"`
	Source  Source    `json:"source"`
	Title   string    `json:"title,omitempty"`
	DataID  string    `json:"data_id,omitempty"`

	Name        string   `json:"name,omitempty"`
	Date        string   `json:"date,omitempty"`
	Institution string   `json:"institution,omitempty"`
	Category    string   `json:"category,omitempty"`
	Level       string   `json:"level,omitempty"`
	Reward      string   `json:"reward,omitempty"`
	Status      string   `json:"status,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []Image  `json:"images,omitempty"`
	Links       []string `json:"links,omitempty"`
}

// Cover is the first image, or the placeholder when there is none.
func (r *RenderableItem) Cover() Image {
	if r == nil || len(r.Images) == 0 {
		return Image{URL: PlaceholderImage, Placeholder: true}
	}
	return r.Images[0]
}

// Live indexes the current reference records by id. A nil *Live behaves as
// an empty collection, which sends every lookup to the snapshot.
type Live struct {
	activities map[string]*types.Activity
	works      map[string]*types.Work
}

func NewLive(activities []*types.Activity, works []*types.Work) *Live {
	l := &Live{
		activities: make(map[string]*types.Activity, len(activities)),
		works:      make(map[string]*types.Work, len(works)),
	}
	for _, a := range activities {
		if a != nil {
			l.activities[a.ID.String()] = a
		}
	}
	for _, w := range works {
		if w != nil {
			l.works[w.ID.String()] = w
		}
	}
	return l
}

func (l *Live) activity(id string) *types.Activity {
	if l == nil || id == "" {
		return nil
	}
	return l.activities[strings.ToLower(id)]
}

func (l *Live) work(id string) *types.Work {
	if l == nil || id == "" {
		return nil
	}
	return l.works[strings.ToLower(id)]
}

// Resolve turns a stored block into a RenderableItem. Live records win over
// the embedded snapshot; a block with neither resolves to nil with
// ErrDanglingReference, and an unparsable payload to nil with
// ErrMalformedContent.
func Resolve(block *types.Block, live *Live) (*RenderableItem, error) {
	if block == nil {
		return nil, fmt.Errorf("resolve nil block: %w", perrors.ErrMalformedContent)
	}
	p, err := ParsePayload(block.Content)
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", block.ID, err)
	}
	return ResolvePayload(block.ID, p, live)
}

func ResolvePayload(blockID uuid.UUID, p *Payload, live *Live) (*RenderableItem, error) {
	item := &RenderableItem{BlockID: blockID, Kind: p.Type, Title: p.Title, DataID: p.DataID}
	switch p.Type {
	case KindProfile:
		item.Source = SourceProfile
		return item, nil
	case KindActivity:
		if a := live.activity(p.DataID); a != nil {
			fillFromActivity(item, a)
			return item, nil
		}
	case KindWorking:
		if w := live.work(p.DataID); w != nil {
			fillFromWork(item, w)
			return item, nil
		}
	}
	if len(p.Data) == 0 {
		return nil, fmt.Errorf("block %s: %s %q has no live record or snapshot: %w", blockID, p.Type, p.DataID, perrors.ErrDanglingReference)
	}
	fillFromSnapshot(item, p.Data)
	return item, nil
}

// ResolveAll returns one slot per block. Unresolvable blocks get a nil slot
// so counts stay accurate, and their errors are combined without stopping
// the siblings.
func ResolveAll(blocks []*types.Block, live *Live) ([]*RenderableItem, error) {
	out := make([]*RenderableItem, len(blocks))
	var errs error
	for i, b := range blocks {
		item, err := Resolve(b, live)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out[i] = item
	}
	return out, errs
}

// Visible counts the non-nil slots.
func Visible(items []*RenderableItem) int {
	n := 0
	for _, it := range items {
		if it != nil {
			n++
		}
	}
	return n
}

func fillFromActivity(item *RenderableItem, a *types.Activity) {
	item.Source = SourceLive
	item.Name = a.ActivityName
	if !a.ActivityAt.IsZero() {
		item.Date = a.ActivityAt.Format("2006-01-02")
	}
	item.Institution = a.Institution
	item.Category = a.TypeName
	item.Level = a.LevelName
	item.Reward = a.RewardLevel
	item.Description = a.Description
	for _, img := range a.Images {
		if img == nil {
			continue
		}
		item.Images = append(item.Images, newImage(img.ImageURL))
	}
}

func fillFromWork(item *RenderableItem, w *types.Work) {
	item.Source = SourceLive
	item.Name = w.WorkingName
	if !w.WorkingAt.IsZero() {
		item.Date = w.WorkingAt.Format("2006-01-02")
	}
	item.Category = w.TypeName
	item.Status = w.Status
	item.Description = w.Description
	for _, img := range w.Images {
		if img == nil {
			continue
		}
		item.Images = append(item.Images, newImage(img.WorkingImageURL))
	}
	for _, l := range w.Links {
		if l != nil && strings.TrimSpace(l.WorkingLink) != "" {
			item.Links = append(item.Links, l.WorkingLink)
		}
	}
}

func fillFromSnapshot(item *RenderableItem, data map[string]any) {
	item.Source = SourceSnapshot
	maps := []map[string]any{data}
	for _, k := range []string{"activity_detail", "ActivityDetail", "working_detail", "WorkingDetail"} {
		if d := obj(data[k]); d != nil {
			maps = append(maps, d)
		}
	}

	item.Name = first(maps, "activity_name", "ActivityName", "working_name", "WorkingName", "name")
	item.Date = formatDate(first(maps, "activity_at", "ActivityAt", "working_at", "WorkingAt", "activity_date", "working_date", "date"))
	item.Institution = first(maps, "institution", "Institution", "location")
	item.Category = first(maps,
		"type_activity.type_name", "TypeActivity.TypeName",
		"type_working.type_name", "TypeWorking.TypeName",
		"type_name", "TypeName", "category")
	item.Level = first(maps, "level_activity.level_name", "LevelActivity.LevelName", "level_name", "LevelName", "level")
	item.Reward = first(maps, "reward.level_name", "Reward.LevelName", "reward_level", "RewardLevel", "award", "award_name")
	item.Status = first(maps, "status", "Status")
	item.Description = first(maps, "description", "Description")

	for _, rec := range list(maps, "images", "Images") {
		item.Images = append(item.Images, newImage(ImageURL(rec)))
	}
	for _, rec := range list(maps, "links", "Links") {
		switch v := rec.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				item.Links = append(item.Links, s)
			}
		case map[string]any:
			if s := first([]map[string]any{v}, "working_link", "WorkingLink", "url"); s != "" {
				item.Links = append(item.Links, s)
			}
		}
	}
}

func newImage(url string) Image {
	url = strings.TrimSpace(url)
	if url == "" || url == PlaceholderImage {
		return Image{URL: PlaceholderImage, Placeholder: true}
	}
	return Image{URL: url}
}
