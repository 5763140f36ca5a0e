package pricing

import (
	"encoding/json"
	"strings"
)

// Notes is either PlainText or StructuredNotes.
type Notes interface {
	// UserText is the free text shown to the client.
	UserText() string
	isNotes()
}

type PlainText string

func (p PlainText) UserText() string { return string(p) }
func (PlainText) isNotes()           {}

// StructuredNotes records the extras selected on a quote line next to the
// user's own notes.
type StructuredNotes struct {
	SelectedAdditional  []uint `json:"selectedAdditional"`
	SelectedAccessories []uint `json:"selectedAccessories"`
	UserNotes           string `json:"userNotes"`
}

func (s StructuredNotes) UserText() string { return s.UserNotes }
func (StructuredNotes) isNotes()           {}

// structuredMarker is the key every serialized StructuredNotes starts with.
const structuredMarker = "selectedAdditional"

// BuildNotes returns StructuredNotes when any extra is selected, plain text otherwise.
func BuildNotes(additional, accessories []uint, userNotes string) Notes {
	if len(additional) == 0 && len(accessories) == 0 {
		return PlainText(userNotes)
	}
	return StructuredNotes{
		SelectedAdditional:  nonNilIDs(additional),
		SelectedAccessories: nonNilIDs(accessories),
		UserNotes:           userNotes,
	}
}

// ParseNotes decodes a stored notes value. A JSON object carrying the
// selectedAdditional key is structured; anything else is plain text.
func ParseNotes(raw string) Notes {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return PlainText(raw)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return PlainText(raw)
	}
	if _, ok := probe[structuredMarker]; !ok {
		return PlainText(raw)
	}

	var s StructuredNotes
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return PlainText(raw)
	}
	return s
}

// EncodeNotes serializes n for storage.
func EncodeNotes(n Notes) string {
	switch v := n.(type) {
	case StructuredNotes:
		v.SelectedAdditional = nonNilIDs(v.SelectedAdditional)
		v.SelectedAccessories = nonNilIDs(v.SelectedAccessories)
		b, err := json.Marshal(v)
		if err != nil {
			return v.UserNotes
		}
		return string(b)
	case PlainText:
		return string(v)
	default:
		return ""
	}
}

func nonNilIDs(ids []uint) []uint {
	if ids == nil {
		return []uint{}
	}
	return ids
}
