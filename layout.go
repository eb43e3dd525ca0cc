package ciggurat

// layoutEntry records one packed slot: the type occupying it, its
// recorded size (the type's size plus any absorbed trailing pad) and
// its byte offset within the row.
type layoutEntry struct {
	id     uint8
	size   uintptr
	offset uintptr
}

// layout is the packed byte layout for one component family. Offsets
// are valid only for IDs present in the storage's mask.
type layout struct {
	entries    []layoutEntry
	offsets    [MaxComponentTypes]uintptr
	familySize uintptr // row stride; a multiple of alignment
	alignment  uintptr // max component alignment in the family
}

// computeLayout packs the types in mask into a row. The widest type is
// placed first, then each tail pad is greedily filled with the largest
// remaining type that fits and whose alignment the current row position
// already satisfies (ties to the lowest ID). When nothing fits
// the pad, the previous slot absorbs it and the lowest remaining ID is
// placed next, so offsets always accumulate as offset[i+1] =
// offset[i] + size[i]. The last slot absorbs the trailing pad, making
// familySize a multiple of the family alignment.
func computeLayout(reg *typeRegistry, mask bitmask256) layout {
	l := layout{alignment: 1}
	n := mask.count()
	if n == 0 {
		return l
	}

	remaining := make([]uint8, 0, n)
	for id, ok := mask.first(); ok; id, ok = mask.next(int(id) + 1) {
		remaining = append(remaining, id)
		if a := reg.typeAt(id).Alignment; a > l.alignment {
			l.alignment = a
		}
	}

	// Slot 0 is the widest type, ties to the lowest ID. remaining is
	// ascending, so the first strict maximum wins the tie.
	widest := 0
	for i, id := range remaining {
		if reg.typeAt(id).Size > reg.typeAt(remaining[widest]).Size {
			widest = i
		}
	}
	l.entries = make([]layoutEntry, 0, n)
	first := remaining[widest]
	l.entries = append(l.entries, layoutEntry{id: first, size: reg.typeAt(first).Size})
	remaining = append(remaining[:widest], remaining[widest+1:]...)

	// pad is the free window between the end of the row so far and the
	// next alignment boundary; a row ending on a boundary yields a full
	// window of `alignment` bytes. A candidate is only taken when pos
	// is a multiple of its alignment; otherwise the pad is absorbed and
	// the next slot starts on a family-alignment boundary, so every
	// offset is aligned for its type.
	pos := reg.typeAt(first).Size
	pad := l.alignment - pos%l.alignment

	for len(remaining) > 0 {
		best := -1
		for i, id := range remaining {
			sz := reg.typeAt(id).Size
			if sz <= pad && pos%reg.typeAt(id).Alignment == 0 &&
				(best == -1 || sz > reg.typeAt(remaining[best]).Size) {
				best = i
			}
		}
		if best == -1 {
			// Nothing fits: the previous slot absorbs the pad and the
			// lowest remaining ID goes next.
			l.entries[len(l.entries)-1].size += pad
			pos += pad
			best = 0
		}
		id := remaining[best]
		l.entries = append(l.entries, layoutEntry{id: id, size: reg.typeAt(id).Size})
		remaining = append(remaining[:best], remaining[best+1:]...)
		pos += reg.typeAt(id).Size
		pad = l.alignment - pos%l.alignment
	}

	var off uintptr
	for i := range l.entries {
		l.entries[i].offset = off
		off += l.entries[i].size
	}
	if rem := off % l.alignment; rem != 0 {
		l.entries[len(l.entries)-1].size += l.alignment - rem
		off += l.alignment - rem
	}
	l.familySize = off
	for _, e := range l.entries {
		l.offsets[e.id] = e.offset
	}
	return l
}
