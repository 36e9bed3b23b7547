package dragdrop

// hitTest walks zones in registration order. The first zone containing p that
// accepts every candidate is the hover target. When none accepts, the first
// containing zone that refused is reported as the reject target.
func (m *Manager) hitTest(p Point, candidates []ItemID) (hover, reject ZoneID) {
	infos := m.infos(candidates)
	for _, id := range m.zoneOrder {
		z := m.zones[id]
		b := z.region.Bounds()
		if b.Empty() || !b.Contains(p) {
			continue
		}
		if z.accepts(infos) {
			return id, NoZone
		}
		if reject == NoZone {
			reject = id
		}
	}
	return NoZone, reject
}

func (m *Manager) accepts(zone ZoneID, candidates []ItemID) bool {
	z, ok := m.zones[zone]
	if !ok {
		return false
	}
	return z.accepts(m.infos(candidates))
}

func (z *dropZone) accepts(infos []ItemInfo) bool {
	if z.opts.Accepts == nil {
		return true
	}
	return z.opts.Accepts(infos)
}

// infos resolves ids to ItemInfo, skipping ids that are no longer registered.
func (m *Manager) infos(ids []ItemID) []ItemInfo {
	out := make([]ItemInfo, 0, len(ids))
	for _, id := range ids {
		if it, ok := m.items[id]; ok {
			out = append(out, it.info())
		}
	}
	return out
}
