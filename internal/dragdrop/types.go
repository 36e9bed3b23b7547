// Package dragdrop turns pointer and touch input on registered items into
// selection, drag and drop gestures.
//
// A Manager owns an item registry, a drop-zone registry, the selection set
// and at most one in-flight gesture. It never creates or disposes of the
// caller's visual handles; it only reads their bounds and toggles a fixed set
// of presentation flags on them. A Manager is driven from a single event loop
// and is not safe for concurrent use.
package dragdrop

// ItemID identifies a registered item.
type ItemID string

// ZoneID identifies a registered drop zone.
type ZoneID string

// NoZone is the zone membership of a free item.
const NoZone ZoneID = ""

// Default movement thresholds, in viewport units, before a press becomes a drag.
const (
	DefaultPointerThreshold float32 = 5
	DefaultTouchThreshold   float32 = 10
)

// Flag is a presentation state the manager toggles on visual handles.
type Flag int

const (
	FlagSelected   Flag = iota // item is in the selection set
	FlagDragging               // item is part of an in-flight drag
	FlagInZone                 // item sits in a drop zone
	FlagZoneActive             // zone is the current drop target
	FlagZoneReject             // zone is under the pointer but refuses the drag
)

func (f Flag) String() string {
	switch f {
	case FlagSelected:
		return "dd-selected"
	case FlagDragging:
		return "dd-dragging-item"
	case FlagInZone:
		return "dd-in-zone"
	case FlagZoneActive:
		return "dd-zone-active"
	case FlagZoneReject:
		return "dd-zone-reject"
	}
	return "dd-unknown"
}

// Bounder reports the current bounds of something on screen.
type Bounder interface {
	Bounds() Rect
}

// Flagger receives presentation flag changes.
type Flagger interface {
	SetFlag(f Flag, on bool)
}

// Handle is a caller-owned visual representation of an item.
type Handle interface {
	Bounder
	Flagger
}

// RegionFunc adapts a plain function to a Bounder. It is called on every
// hit-test, so zones may move or resize between events.
type RegionFunc func() Rect

// Bounds calls f.
func (f RegionFunc) Bounds() Rect {
	return f()
}

// ZoneMode controls what happens to items after they land in a zone.
type ZoneMode int

const (
	// ModeSink keeps items until they are explicitly removed.
	ModeSink ZoneMode = iota
	// ModeHybrid lets items be picked up and dragged out again directly.
	ModeHybrid
)

func (m ZoneMode) String() string {
	if m == ModeHybrid {
		return "hybrid"
	}
	return "sink"
}

// Modality is the kind of input device driving a gesture.
type Modality int

const (
	ModalityPointer Modality = iota
	ModalityTouch
)

func (m Modality) String() string {
	if m == ModalityTouch {
		return "touch"
	}
	return "pointer"
}

// Button is the pointer button of a press. Touches are always ButtonPrimary.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// ItemInfo is a read-only view of a registered item.
type ItemInfo struct {
	ID       ItemID
	Payload  any
	Selected bool
	Zone     ZoneID
}

// AcceptFunc decides whether a zone takes the whole candidate set of a drag.
// There is no partial acceptance.
type AcceptFunc func(candidates []ItemInfo) bool

// ZoneOptions configures a drop zone. The zero value is a sink zone that
// accepts everything and has no observers.
type ZoneOptions struct {
	Accepts AcceptFunc
	Mode    ZoneMode
	OnEnter func(count int)
	OnLeave func()
	OnDrop  func(ids []ItemID)
}

// Input attaches and detaches the global move/release listeners of one
// modality. The manager attaches them when a press begins and detaches them
// unconditionally when the gesture ends.
type Input interface {
	Attach(m Modality)
	Detach(m Modality)
}

// Preview draws the transient drag indicator.
type Preview interface {
	ShowPreview(count int, at Point)
	MovePreview(at Point)
	HidePreview()
}

// Options configures a Manager. Zero thresholds use the defaults; nil
// observers are skipped.
type Options struct {
	OnSelectionChange func(ids []ItemID)
	OnDrop            func(ids []ItemID, zone ZoneID)
	OnDoubleClick     func(ids []ItemID, zone ZoneID)
	OnItemMove        func(id ItemID, zone ZoneID)

	// DefaultDropZone receives double-activated items. Double activation is
	// ignored unless both DefaultDropZone and OnDoubleClick are set.
	DefaultDropZone ZoneID

	PointerThreshold float32
	TouchThreshold   float32

	Input   Input
	Preview Preview
}
