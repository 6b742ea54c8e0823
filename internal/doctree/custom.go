package doctree

import (
	"encoding/json"
	"fmt"
	"slices"
)

// SlotKind discriminates the four content shapes a slot can hold.
type SlotKind string

const (
	SlotBlock   SlotKind = "block"
	SlotInline  SlotKind = "inline"
	SlotBlocks  SlotKind = "blocks"
	SlotInlines SlotKind = "inlines"
)

// Slot is one named child position on a custom node. Exactly one of the
// content fields is populated, selected by Kind.
type Slot struct {
	Kind    SlotKind
	Block   Block
	Inline  Inline
	Blocks  BlockList
	Inlines InlineList
}

// slotJSON is the wire form of a Slot.
type slotJSON struct {
	Kind    SlotKind        `json:"kind"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON implements json.Marshaler for Slot.
func (s Slot) MarshalJSON() ([]byte, error) {
	var content any
	switch s.Kind {
	case SlotBlock:
		content = s.Block
	case SlotInline:
		content = s.Inline
	case SlotBlocks:
		content = s.Blocks
	case SlotInlines:
		content = s.Inlines
	default:
		return nil, fmt.Errorf("slot: unknown kind %q", s.Kind)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(slotJSON{Kind: s.Kind, Content: raw})
}

// UnmarshalJSON implements json.Unmarshaler for Slot.
func (s *Slot) UnmarshalJSON(data []byte) error {
	var wire slotJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	out := Slot{Kind: wire.Kind}
	switch wire.Kind {
	case SlotBlock:
		b, err := UnmarshalBlock(wire.Content)
		if err != nil {
			return fmt.Errorf("slot block: %w", err)
		}
		out.Block = b
	case SlotInline:
		in, err := UnmarshalInline(wire.Content)
		if err != nil {
			return fmt.Errorf("slot inline: %w", err)
		}
		out.Inline = in
	case SlotBlocks:
		if err := json.Unmarshal(wire.Content, &out.Blocks); err != nil {
			return fmt.Errorf("slot blocks: %w", err)
		}
	case SlotInlines:
		if err := json.Unmarshal(wire.Content, &out.Inlines); err != nil {
			return fmt.Errorf("slot inlines: %w", err)
		}
	default:
		return fmt.Errorf("slot: unknown kind %q", wire.Kind)
	}
	*s = out
	return nil
}

// CustomBlock is the block-level extensibility variant: a named node with
// named slots and an untyped payload for annotation data that is not itself
// part of the tree.
type CustomBlock struct {
	Src     SourceInfo      `json:"src,omitempty"`
	Name    string          `json:"name"`
	Slots   map[string]Slot `json:"slots,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (*CustomBlock) isBlock()             {}
func (*CustomBlock) NodeKind() Kind       { return KindCustomBlock }
func (c *CustomBlock) Source() SourceInfo { return c.Src }

// CustomInline is the inline-level extensibility variant, mirror of
// CustomBlock.
type CustomInline struct {
	Src     SourceInfo      `json:"src,omitempty"`
	Name    string          `json:"name"`
	Slots   map[string]Slot `json:"slots,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (*CustomInline) isInline()            {}
func (*CustomInline) NodeKind() Kind       { return KindCustomInline }
func (c *CustomInline) Source() SourceInfo { return c.Src }

// SortedSlotNames returns the slot names of a custom node in lexical order,
// for deterministic iteration.
func SortedSlotNames(slots map[string]Slot) []string {
	names := make([]string, 0, len(slots))
	for name := range slots {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
