package content

import (
	"time"

	types "github.com/yungbote/portfolio-backend/internal/domain"
)

// Freeze stores a snapshot of the live record p references in p.Data. It
// reports false, leaving p untouched, for profile payloads and for ids with
// no live record.
func (l *Live) Freeze(p *Payload) bool {
	if p == nil {
		return false
	}
	var data map[string]any
	switch p.Type {
	case KindActivity:
		data = SnapshotActivity(l.activity(p.DataID))
	case KindWorking:
		data = SnapshotWork(l.work(p.DataID))
	}
	if data == nil {
		return false
	}
	p.Data = data
	return true
}

// SnapshotActivity freezes the display fields of a live activity into the
// map stored as a block's data. It uses the same keys the resolver reads.
func SnapshotActivity(a *types.Activity) map[string]any {
	if a == nil {
		return nil
	}
	images := make([]any, 0, len(a.Images))
	for _, img := range a.Images {
		if img != nil {
			images = append(images, map[string]any{"image_url": img.ImageURL})
		}
	}
	return map[string]any{
		"activity_name": a.ActivityName,
		"activity_detail": map[string]any{
			"activity_at":    dateOf(a.ActivityAt),
			"institution":    a.Institution,
			"description":    a.Description,
			"type_activity":  map[string]any{"type_name": a.TypeName},
			"level_activity": map[string]any{"level_name": a.LevelName},
			"images":         images,
		},
		"reward": map[string]any{"level_name": a.RewardLevel},
	}
}

func SnapshotWork(w *types.Work) map[string]any {
	if w == nil {
		return nil
	}
	images := make([]any, 0, len(w.Images))
	for _, img := range w.Images {
		if img != nil {
			images = append(images, map[string]any{"working_image_url": img.WorkingImageURL})
		}
	}
	links := make([]any, 0, len(w.Links))
	for _, l := range w.Links {
		if l != nil {
			links = append(links, map[string]any{"working_link": l.WorkingLink})
		}
	}
	return map[string]any{
		"working_name": w.WorkingName,
		"status":       w.Status,
		"working_detail": map[string]any{
			"working_at":   dateOf(w.WorkingAt),
			"description":  w.Description,
			"type_working": map[string]any{"type_name": w.TypeName},
			"images":       images,
			"links":        links,
		},
	}
}

func dateOf(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
