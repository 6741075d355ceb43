// Package printer defines the print-item intermediate representation
// emitted by the formatter's tree traversal and the engine that resolves
// it into text.
package printer

// ItemKind tags a single entry in the print-item sequence.
type ItemKind uint8

const (
	// KindText is a literal string.
	KindText ItemKind = iota
	// KindSpace is a single mandatory space.
	KindSpace
	// KindNewline is a hard line break.
	KindNewline
	// KindSoftNewline breaks only when its enclosing group breaks;
	// otherwise it emits nothing.
	KindSoftNewline
	// KindSoftSpace breaks when its enclosing group breaks; otherwise it
	// emits a single space.
	KindSoftSpace
	// KindStartIndent pushes one indent level.
	KindStartIndent
	// KindFinishIndent pops one indent level.
	KindFinishIndent
	// KindStartGroup opens a conditional-break scope.
	KindStartGroup
	// KindFinishGroup closes the matching scope.
	KindFinishGroup
	// KindIfGroupBroke emits its text only when the referenced group broke.
	KindIfGroupBroke
)

// Item is one entry of the flat IR sequence. Nesting is encoded purely
// through Start/Finish pairs; the engine resolves the sequence streaming.
type Item struct {
	Kind  ItemKind
	Text  string
	Group GroupID
}

// GroupID identifies a conditional-break group.
type GroupID uint32

// Items accumulates a print-item sequence. Handlers build fragments and
// splice them together with Extend.
type Items struct {
	items     []Item
	nextGroup GroupID
}

// Slice exposes the accumulated sequence for the engine.
func (p *Items) Slice() []Item { return p.items }

// Empty reports whether nothing has been pushed.
func (p *Items) Empty() bool { return len(p.items) == 0 }

// PushStr appends a literal text item.
func (p *Items) PushStr(s string) {
	p.items = append(p.items, Item{Kind: KindText, Text: s})
}

// Space appends a single mandatory space.
func (p *Items) Space() {
	p.items = append(p.items, Item{Kind: KindSpace})
}

// Newline appends a hard line break.
func (p *Items) Newline() {
	p.items = append(p.items, Item{Kind: KindNewline})
}

// SoftNewline appends a break point that disappears when its group fits.
func (p *Items) SoftNewline() {
	p.items = append(p.items, Item{Kind: KindSoftNewline})
}

// SoftSpace appends a break point that collapses to a space when its
// group fits.
func (p *Items) SoftSpace() {
	p.items = append(p.items, Item{Kind: KindSoftSpace})
}

// StartIndent pushes one indent level for subsequent lines.
func (p *Items) StartIndent() {
	p.items = append(p.items, Item{Kind: KindStartIndent})
}

// FinishIndent pops the most recent indent level.
func (p *Items) FinishIndent() {
	p.items = append(p.items, Item{Kind: KindFinishIndent})
}

// StartGroup opens a conditional-break group and returns its id.
func (p *Items) StartGroup() GroupID {
	p.nextGroup++
	id := p.nextGroup
	p.items = append(p.items, Item{Kind: KindStartGroup, Group: id})
	return id
}

// FinishGroup closes the group with the given id.
func (p *Items) FinishGroup(id GroupID) {
	p.items = append(p.items, Item{Kind: KindFinishGroup, Group: id})
}

// IfGroupBroke emits text only if the referenced group ended up breaking.
func (p *Items) IfGroupBroke(id GroupID, text string) {
	p.items = append(p.items, Item{Kind: KindIfGroupBroke, Group: id, Text: text})
}

// Extend splices another fragment onto this one. Group ids from the
// fragment are renumbered so they stay unique within the receiver.
func (p *Items) Extend(other Items) {
	if other.nextGroup == 0 {
		p.items = append(p.items, other.items...)
		return
	}
	base := p.nextGroup
	for _, it := range other.items {
		if it.Group != 0 {
			it.Group += base
		}
		p.items = append(p.items, it)
	}
	p.nextGroup += other.nextGroup
}
