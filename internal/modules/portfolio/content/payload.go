package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

type Kind string

const (
	KindActivity Kind = "activity"
	KindWorking  Kind = "working"
	KindProfile  Kind = "profile"
)

func (k Kind) Valid() bool {
	switch k {
	case KindActivity, KindWorking, KindProfile:
		return true
	}
	return false
}

// Payload is the parsed form of a block's stored content. Data is the
// record snapshot frozen when the block was saved; it is never refreshed.
type Payload struct {
	Type   Kind           `json:"type"`
	Title  string         `json:"title,omitempty"`
	DataID string         `json:"data_id,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

type rawPayload struct {
	Type   string          `json:"type"`
	Title  string          `json:"title"`
	DataID json.RawMessage `json:"data_id"`
	Data   json.RawMessage `json:"data"`
}

// ParsePayload accepts the payload object or a JSON string wrapping it.
func ParsePayload(raw []byte) (*Payload, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("empty payload: %w", perrors.ErrMalformedContent)
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("decode wrapped payload: %v: %w", err, perrors.ErrMalformedContent)
		}
		return ParsePayload([]byte(inner))
	}

	var rp rawPayload
	if err := json.Unmarshal(raw, &rp); err != nil {
		return nil, fmt.Errorf("decode payload: %v: %w", err, perrors.ErrMalformedContent)
	}
	p := &Payload{
		Type:  Kind(strings.ToLower(strings.TrimSpace(rp.Type))),
		Title: rp.Title,
	}
	if !p.Type.Valid() {
		return nil, fmt.Errorf("unknown payload type %q: %w", rp.Type, perrors.ErrMalformedContent)
	}
	id, err := decodeDataID(rp.DataID)
	if err != nil {
		return nil, err
	}
	p.DataID = id
	data, err := decodeData(rp.Data)
	if err != nil {
		return nil, err
	}
	p.Data = data
	return p, nil
}

// data_id has been written both as a string and as a bare number.
func decodeDataID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode data_id: %v: %w", err, perrors.ErrMalformedContent)
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decode data_id: %v: %w", err, perrors.ErrMalformedContent)
	}
	return n.String(), nil
}

func decodeData(raw json.RawMessage) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("decode data: %v: %w", err, perrors.ErrMalformedContent)
		}
		return decodeData(json.RawMessage(inner))
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode data: %v: %w", err, perrors.ErrMalformedContent)
	}
	return m, nil
}

// Encode renders the payload in its canonical object form.
func (p *Payload) Encode() (datatypes.JSON, error) {
	if p == nil || !p.Type.Valid() {
		return nil, fmt.Errorf("encode payload: %w", perrors.ErrMalformedContent)
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
