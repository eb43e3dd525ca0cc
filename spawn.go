package ciggurat

import (
	"log/slog"
	"unsafe"
)

// Spawn creates count entities whose composition is the comma-separated
// list of type identifiers in composition (positive tokens only).
// Component bytes of new rows are zero. The returned slice is owned by
// the world and is valid until the next call to Spawn.
//
// Parameters:
//   - count: The number of entities to create.
//   - composition: The component set, e.g. "position, velocity".
//
// Returns:
//   - The new entity IDs, or ErrNotFound / ErrBadRequirement when the
//     composition does not parse against the registry.
func (w *World) Spawn(count int, composition string) ([]Entity, error) {
	mask, err := w.compositionMask(composition)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		w.lastSpawned = w.lastSpawned[:0]
		return w.lastSpawned, nil
	}
	st := w.storageFor(mask)
	req := st.request(count)
	ids := w.allocEntities(count)
	w.assignRegions(ids, st, req.regions)
	req.commit()
	w.lastSpawned = ids
	slog.Debug("ciggurat: spawned", "count", count, "composition", composition)
	return ids, nil
}

// allocEntities produces count entity IDs, drawing from the recycled
// stack (LIFO) before extending the entity table. The result reuses the
// lastSpawned backing array when it is large enough.
func (w *World) allocEntities(count int) []Entity {
	ids := w.lastSpawned[:0]
	if cap(ids) < count {
		ids = make([]Entity, 0, count)
	}
	for len(ids) < count && len(w.recycled) > 0 {
		last := len(w.recycled) - 1
		ids = append(ids, w.recycled[last])
		w.recycled = w.recycled[:last]
	}
	for len(ids) < count {
		ids = append(ids, w.nextEntity)
		w.entities = append(w.entities, entityMeta{})
		w.nextEntity++
	}
	return ids
}

// assignRegions binds each entity to a reserved row. Rows drawn from
// the recycled stack are zeroed first so fresh entities always read as
// zero bytes. When an entity already owns a row elsewhere, the
// components shared by both masks are carried over: each is copied from
// oldRow+oldOffset to newRow+newOffset.
func (w *World) assignRegions(ids []Entity, st *storage, regions []region) {
	fam := st.layout.familySize
	i := 0
	for _, reg := range regions {
		for r := 0; r < reg.rows; r++ {
			var row unsafe.Pointer
			if reg.base != nil {
				row = unsafe.Add(reg.base, uintptr(r)*fam)
			}
			if reg.recycled && row != nil {
				clear(unsafe.Slice((*byte)(row), fam))
			}
			meta := &w.entities[ids[i]]
			if meta.storage != nil && meta.row != nil && row != nil {
				w.migrateRow(meta, st, row)
			}
			meta.storage = st
			meta.row = row
			i++
		}
	}
}

// migrateRow copies the components present in both the old and new
// masks into the new row.
func (w *World) migrateRow(meta *entityMeta, st *storage, row unsafe.Pointer) {
	shared := meta.storage.mask.intersect(st.mask)
	for id, ok := shared.first(); ok; id, ok = shared.next(int(id) + 1) {
		src := unsafe.Add(meta.row, meta.storage.layout.offsets[id])
		dst := unsafe.Add(row, st.layout.offsets[id])
		memCopy(dst, src, w.registry.typeAt(id).Size)
	}
}

// memCopy copies size bytes from src to dst.
func memCopy(dst, src unsafe.Pointer, size uintptr) {
	if size == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), size), unsafe.Slice((*byte)(src), size))
}
