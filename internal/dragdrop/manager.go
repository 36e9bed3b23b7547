package dragdrop

import (
	"github.com/ratforge/ratforge/internal/debug"
)

type item struct {
	id       ItemID
	handle   Handle
	payload  any
	selected bool
	zone     ZoneID
}

func (it *item) info() ItemInfo {
	return ItemInfo{ID: it.id, Payload: it.payload, Selected: it.selected, Zone: it.zone}
}

func (it *item) setFlag(f Flag, on bool) {
	if it.handle != nil {
		it.handle.SetFlag(f, on)
	}
}

type dropZone struct {
	id     ZoneID
	region Bounder
	flags  Flagger // region, if it also takes flags
	opts   ZoneOptions
}

func (z *dropZone) setFlag(f Flag, on bool) {
	if z.flags != nil {
		z.flags.SetFlag(f, on)
	}
}

// Manager tracks items, drop zones, the selection set and the current
// gesture. Methods referencing unknown ids are silent no-ops.
type Manager struct {
	opts Options

	items     map[ItemID]*item
	itemOrder []ItemID
	zones     map[ZoneID]*dropZone
	zoneOrder []ZoneID
	sel       *selection

	g gesture

	attached  bool
	attachedM Modality
	destroyed bool
}

// New creates a Manager with its own registries.
func New(opts Options) *Manager {
	if opts.PointerThreshold <= 0 {
		opts.PointerThreshold = DefaultPointerThreshold
	}
	if opts.TouchThreshold <= 0 {
		opts.TouchThreshold = DefaultTouchThreshold
	}
	return &Manager{
		opts:  opts,
		items: make(map[ItemID]*item),
		zones: make(map[ZoneID]*dropZone),
		sel:   newSelection(),
	}
}

// RegisterItem adds a free item. Registering a known id rebinds its handle and
// payload but keeps its selection and zone membership, so a caller may
// recreate the visual after a state change.
func (m *Manager) RegisterItem(id ItemID, h Handle, payload any) {
	if m.destroyed {
		return
	}
	if it, ok := m.items[id]; ok {
		it.handle = h
		it.payload = payload
		it.setFlag(FlagSelected, it.selected)
		it.setFlag(FlagInZone, it.zone != NoZone)
		it.setFlag(FlagDragging, m.g.phase == PhaseDragging && contains(m.g.candidates, id))
		return
	}
	m.items[id] = &item{id: id, handle: h, payload: payload}
	m.itemOrder = append(m.itemOrder, id)
}

// UnregisterItem forgets an item and clears its presentation flags. A gesture
// that depended on it is cancelled.
func (m *Manager) UnregisterItem(id ItemID) {
	it, ok := m.items[id]
	if !ok || m.destroyed {
		return
	}
	wasSelected := m.sel.remove(id)
	delete(m.items, id)
	m.itemOrder = removeID(m.itemOrder, id)
	for _, f := range []Flag{FlagSelected, FlagDragging, FlagInZone} {
		it.setFlag(f, false)
	}

	switch m.g.phase {
	case PhasePressed:
		if m.g.pressed == id {
			m.cancel()
		}
	case PhaseDragging:
		m.g.candidates = removeID(m.g.candidates, id)
		if len(m.g.candidates) == 0 {
			m.cancel()
		}
	}
	if wasSelected {
		m.notifySelection()
	}
}

// RegisterDropZone adds a drop zone, or replaces the region and options of a
// known one while keeping its place in hit-test order. If region also
// implements Flagger it receives the active and reject flags.
func (m *Manager) RegisterDropZone(id ZoneID, region Bounder, opts ZoneOptions) {
	if m.destroyed || region == nil {
		return
	}
	z := &dropZone{id: id, region: region, opts: opts}
	if f, ok := region.(Flagger); ok {
		z.flags = f
	}
	if _, ok := m.zones[id]; !ok {
		m.zoneOrder = append(m.zoneOrder, id)
	}
	m.zones[id] = z
}

// UnregisterDropZone forgets a zone. Items inside it become free again.
func (m *Manager) UnregisterDropZone(id ZoneID) {
	z, ok := m.zones[id]
	if !ok || m.destroyed {
		return
	}
	if m.g.hovered == id {
		m.g.hovered = NoZone
		m.zoneLeave(z)
	}
	if m.g.rejected == id {
		m.g.rejected = NoZone
		z.setFlag(FlagZoneReject, false)
	}
	for _, itemID := range m.ItemsInZone(id) {
		m.RemoveItemFromDropZone(itemID)
	}
	delete(m.zones, id)
	m.zoneOrder = removeID(m.zoneOrder, id)
}

// SelectItem adds id to the selection, first clearing it unless additive.
// Items in a sink zone cannot be selected. Selecting an item in a hybrid zone
// takes it out of the zone first.
func (m *Manager) SelectItem(id ItemID, additive bool) {
	it, ok := m.items[id]
	if !ok || m.destroyed {
		return
	}
	if it.zone != NoZone {
		if z := m.zones[it.zone]; z == nil || z.opts.Mode != ModeHybrid {
			return
		}
		m.RemoveItemFromDropZone(id)
	}

	changed := false
	if !additive {
		for _, other := range m.sel.list() {
			if other != id {
				m.unmarkSelected(other)
				changed = true
			}
		}
	}
	if m.sel.add(id) {
		it.selected = true
		it.setFlag(FlagSelected, true)
		changed = true
	}
	if changed {
		debug.Log(debug.SELECT, "select %s additive=%v -> %v", id, additive, m.sel.ids)
		m.notifySelection()
	}
}

// DeselectItem removes id from the selection. It notifies for any known id.
func (m *Manager) DeselectItem(id ItemID) {
	if _, ok := m.items[id]; !ok || m.destroyed {
		return
	}
	m.unmarkSelected(id)
	m.notifySelection()
}

// ToggleSelection flips id in or out of the selection, adding additively.
func (m *Manager) ToggleSelection(id ItemID) {
	it, ok := m.items[id]
	if !ok || m.destroyed {
		return
	}
	if it.selected {
		m.DeselectItem(id)
		return
	}
	m.SelectItem(id, true)
}

// ClearSelection empties the selection. It always notifies, even when the
// selection was already empty, so observers see a deterministic sequence.
func (m *Manager) ClearSelection() {
	if m.destroyed {
		return
	}
	for _, id := range m.sel.clear() {
		if it, ok := m.items[id]; ok {
			it.selected = false
			it.setFlag(FlagSelected, false)
		}
	}
	m.notifySelection()
}

// Selection returns the selected ids in the order they were selected.
func (m *Manager) Selection() []ItemID {
	return m.sel.list()
}

// MoveItemToDropZone places an item into a zone. The zone's acceptance policy
// is not consulted: programmatic moves are trusted.
func (m *Manager) MoveItemToDropZone(id ItemID, zone ZoneID) {
	it, ok := m.items[id]
	if !ok || m.destroyed {
		return
	}
	if _, ok := m.zones[zone]; !ok {
		return
	}
	wasSelected := m.place(it, zone)
	if wasSelected {
		m.notifySelection()
	}
	m.notifyMove(id, zone)
}

// RemoveItemFromDropZone returns an item in a zone to the free pool.
func (m *Manager) RemoveItemFromDropZone(id ItemID) {
	it, ok := m.items[id]
	if !ok || it.zone == NoZone || m.destroyed {
		return
	}
	it.zone = NoZone
	it.setFlag(FlagInZone, false)
	debug.Log(debug.ZONE, "item %s left its zone", id)
	m.notifyMove(id, NoZone)
}

// ItemsInZone lists the items in zone, in registration order.
func (m *Manager) ItemsInZone(zone ZoneID) []ItemID {
	var out []ItemID
	for _, id := range m.itemOrder {
		if zone != NoZone && m.items[id].zone == zone {
			out = append(out, id)
		}
	}
	return out
}

// Item returns a snapshot of a registered item.
func (m *Manager) Item(id ItemID) (ItemInfo, bool) {
	it, ok := m.items[id]
	if !ok {
		return ItemInfo{}, false
	}
	return it.info(), true
}

// Phase reports the state of the current gesture.
func (m *Manager) Phase() Phase {
	return m.g.phase
}

// Dragging reports whether a drag session is in progress.
func (m *Manager) Dragging() bool {
	return m.g.phase == PhaseDragging
}

// HoveredZone is the zone a release would drop into, or NoZone.
func (m *Manager) HoveredZone() ZoneID {
	return m.g.hovered
}

// Candidates returns the items that move together if the current drag
// commits. It is empty outside a drag.
func (m *Manager) Candidates() []ItemID {
	out := make([]ItemID, len(m.g.candidates))
	copy(out, m.g.candidates)
	return out
}

// HandleEvent feeds one input event through the gesture state machine.
func (m *Manager) HandleEvent(ev Event) {
	if m.destroyed {
		return
	}
	debug.Log(debug.UI_EVENT, "%s %s item=%s at %.0f,%.0f phase=%s",
		ev.Modality, ev.Kind, ev.Item, ev.Pos.X, ev.Pos.Y, m.g.phase)
	next, effects := step(m.g, ev, m)
	m.g = next
	m.apply(effects)
}

// Destroy detaches every listener, drops the drag preview and clears drag
// flags. Afterwards no observer fires again. It is safe to call repeatedly.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	if m.g.phase == PhaseDragging {
		m.dragEnd(m.g.candidates, m.g.hovered, m.g.rejected)
	}
	m.g = gesture{}
	m.detach()
	debug.Log(debug.DRAG, "manager destroyed")
}

func (m *Manager) apply(effects []effect) {
	for _, e := range effects {
		// An observer may have destroyed the manager mid-sequence.
		if m.destroyed {
			return
		}
		switch e.kind {
		case effAttach:
			m.attach(e.modality)
		case effDetach:
			m.detach()
		case effExitZone:
			m.RemoveItemFromDropZone(e.item)
		case effSelect:
			m.SelectItem(e.item, e.additive)
		case effToggle:
			m.ToggleSelection(e.item)
		case effDragStart:
			debug.Log(debug.DRAG, "drag start with %d item(s): %v", len(e.items), e.items)
			for _, id := range e.items {
				if it, ok := m.items[id]; ok {
					it.setFlag(FlagDragging, true)
				}
			}
			if m.opts.Preview != nil {
				m.opts.Preview.ShowPreview(len(e.items), e.pos)
			}
		case effDragMove:
			if m.opts.Preview != nil {
				m.opts.Preview.MovePreview(e.pos)
			}
		case effHover:
			if z, ok := m.zones[e.prev]; ok {
				m.zoneLeave(z)
			}
			if z, ok := m.zones[e.zone]; ok {
				debug.Log(debug.ZONE, "entered %s with %d item(s)", z.id, len(e.items))
				z.setFlag(FlagZoneActive, true)
				if z.opts.OnEnter != nil {
					z.opts.OnEnter(len(e.items))
				}
			}
		case effReject:
			if z, ok := m.zones[e.prev]; ok {
				z.setFlag(FlagZoneReject, false)
			}
			if z, ok := m.zones[e.zone]; ok {
				debug.Log(debug.ZONE, "%s rejects the drag", z.id)
				z.setFlag(FlagZoneReject, true)
			}
		case effDragEnd:
			m.dragEnd(e.items, e.zone, e.prev)
		case effCommit:
			m.commit(e.items, e.zone, e.source)
		case effRestore:
			m.restoreSelection(e.items)
		}
	}
}

func (m *Manager) zoneLeave(z *dropZone) {
	z.setFlag(FlagZoneActive, false)
	if z.opts.OnLeave != nil {
		z.opts.OnLeave()
	}
}

func (m *Manager) dragEnd(items []ItemID, hovered, rejected ZoneID) {
	if m.opts.Preview != nil {
		m.opts.Preview.HidePreview()
	}
	for _, id := range items {
		if it, ok := m.items[id]; ok {
			it.setFlag(FlagDragging, false)
		}
	}
	if z, ok := m.zones[hovered]; ok {
		z.setFlag(FlagZoneActive, false)
	}
	if z, ok := m.zones[rejected]; ok {
		z.setFlag(FlagZoneReject, false)
	}
}

// commit moves every still-registered candidate into zone, fires the zone and
// manager observers once with the moved ids, then clears the selection.
func (m *Manager) commit(ids []ItemID, zone ZoneID, src commitSource) {
	z, ok := m.zones[zone]
	if !ok {
		return
	}
	moved := make([]ItemID, 0, len(ids))
	for _, id := range ids {
		it, ok := m.items[id]
		if !ok {
			continue
		}
		m.place(it, zone)
		m.notifyMove(id, zone)
		moved = append(moved, id)
	}
	if len(moved) == 0 || m.destroyed {
		return
	}
	debug.Log(debug.DRAG, "committed %v into %s", moved, zone)

	if z.opts.OnDrop != nil {
		z.opts.OnDrop(moved)
	}
	switch src {
	case sourceDrop:
		if m.opts.OnDrop != nil {
			m.opts.OnDrop(moved, zone)
		}
	case sourceDoubleClick:
		if m.opts.OnDoubleClick != nil {
			m.opts.OnDoubleClick(moved, zone)
		}
	}
	m.ClearSelection()
}

// place sets the zone membership of it and drops it from the selection
// without notifying. It reports whether it was selected.
func (m *Manager) place(it *item, zone ZoneID) bool {
	wasSelected := m.unmarkSelected(it.id)
	it.zone = zone
	it.setFlag(FlagInZone, true)
	return wasSelected
}

func (m *Manager) unmarkSelected(id ItemID) bool {
	if !m.sel.remove(id) {
		return false
	}
	if it, ok := m.items[id]; ok {
		it.selected = false
		it.setFlag(FlagSelected, false)
	}
	return true
}

// restoreSelection resets the selection to ids after a drag that did not
// drop. Ids that were unregistered or placed since are skipped.
func (m *Manager) restoreSelection(ids []ItemID) {
	keep := make(map[ItemID]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	changed := false
	for _, id := range m.sel.list() {
		if !keep[id] && m.unmarkSelected(id) {
			changed = true
		}
	}
	for _, id := range ids {
		it, ok := m.items[id]
		if !ok || it.zone != NoZone || !m.sel.add(id) {
			continue
		}
		it.selected = true
		it.setFlag(FlagSelected, true)
		changed = true
	}
	if changed {
		debug.Log(debug.SELECT, "drag cancelled, selection back to %v", m.sel.ids)
		m.notifySelection()
	}
}

// cancel abandons the current gesture outside of HandleEvent.
func (m *Manager) cancel() {
	next, effects := teardown(m.g, nil)
	m.g = next
	m.apply(effects)
}

func (m *Manager) attach(mod Modality) {
	if m.attached && m.attachedM == mod {
		return
	}
	m.detach()
	m.attached, m.attachedM = true, mod
	if m.opts.Input != nil {
		m.opts.Input.Attach(mod)
	}
}

func (m *Manager) detach() {
	if !m.attached {
		return
	}
	m.attached = false
	if m.opts.Input != nil {
		m.opts.Input.Detach(m.attachedM)
	}
}

func (m *Manager) notifySelection() {
	if m.destroyed || m.opts.OnSelectionChange == nil {
		return
	}
	m.opts.OnSelectionChange(m.sel.list())
}

func (m *Manager) notifyMove(id ItemID, zone ZoneID) {
	if m.destroyed || m.opts.OnItemMove == nil {
		return
	}
	m.opts.OnItemMove(id, zone)
}

// view implementation for step.

func (m *Manager) itemState(id ItemID) (itemState, bool) {
	it, ok := m.items[id]
	if !ok {
		return itemState{}, false
	}
	st := itemState{selected: it.selected, zone: it.zone}
	if z, ok := m.zones[it.zone]; ok {
		st.mode = z.opts.Mode
	}
	return st, true
}

func (m *Manager) selected() []ItemID {
	return m.sel.list()
}

func (m *Manager) threshold(mod Modality) float32 {
	if mod == ModalityTouch {
		return m.opts.TouchThreshold
	}
	return m.opts.PointerThreshold
}

func (m *Manager) doubleClickZone() (ZoneID, bool) {
	if m.opts.DefaultDropZone == NoZone || m.opts.OnDoubleClick == nil {
		return NoZone, false
	}
	if _, ok := m.zones[m.opts.DefaultDropZone]; !ok {
		return NoZone, false
	}
	return m.opts.DefaultDropZone, true
}

func contains[T comparable](s []T, v T) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func removeID[T comparable](s []T, v T) []T {
	for i, x := range s {
		if x == v {
			return append(s[:i:i], s[i+1:]...)
		}
	}
	return s
}
