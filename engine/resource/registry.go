package resource

import (
	"cmp"
	"slices"
)

type entry struct {
	locator  string
	label    Label
	useCount int
}

// Registry tracks which label each resource was created under and maps
// shared locators to ids with a use count.
type Registry struct {
	entries  map[Id]*entry
	locators map[string]Id
	labels   []Label
	next     Label
}

func NewRegistry() *Registry {
	return &Registry{
		entries:  make(map[Id]*entry),
		locators: make(map[string]Id),
	}
}

// PushLabel generates a new label and makes it current.
func (r *Registry) PushLabel() Label {
	l := r.next
	r.next++
	if r.next == DefaultLabel {
		r.next = 0
	}
	r.labels = append(r.labels, l)
	return l
}

// PushExistingLabel makes l current again.
func (r *Registry) PushExistingLabel(l Label) { r.labels = append(r.labels, l) }

// PopLabel removes and returns the current label.
func (r *Registry) PopLabel() (Label, error) {
	n := len(r.labels)
	if n == 0 {
		return InvalidLabel, ErrLabelStack
	}
	l := r.labels[n-1]
	r.labels = r.labels[:n-1]
	return l, nil
}

// PeekLabel returns the current label.
func (r *Registry) PeekLabel() Label {
	if n := len(r.labels); n > 0 {
		return r.labels[n-1]
	}
	return DefaultLabel
}

// Add registers id under the current label. A non-empty locator makes the
// resource shareable through Lookup.
func (r *Registry) Add(locator string, id Id) {
	r.entries[id] = &entry{locator: locator, label: r.PeekLabel(), useCount: 1}
	if locator != "" {
		r.locators[locator] = id
	}
}

// Lookup returns the id registered for locator and bumps its use count.
func (r *Registry) Lookup(locator string) Id {
	if locator == "" {
		return InvalidId
	}
	id, ok := r.locators[locator]
	if !ok {
		return InvalidId
	}
	r.entries[id].useCount++
	return id
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id Id) bool {
	_, ok := r.entries[id]
	return ok
}

// UseCount returns the number of outstanding users of id.
func (r *Registry) UseCount(id Id) int {
	if e, ok := r.entries[id]; ok {
		return e.useCount
	}
	return 0
}

// LabelOf returns the label id was created under.
func (r *Registry) LabelOf(id Id) Label {
	if e, ok := r.entries[id]; ok {
		return e.label
	}
	return InvalidLabel
}

// Locator returns the locator id was registered with.
func (r *Registry) Locator(id Id) string {
	if e, ok := r.entries[id]; ok {
		return e.locator
	}
	return ""
}

// Release drops one user of id. It returns true when the last user is gone
// and the entry has been removed.
func (r *Registry) Release(id Id) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	e.useCount--
	if e.useCount > 0 {
		return false
	}
	r.remove(id, e)
	return true
}

// Remove unregisters every resource created under label and returns their
// ids, regardless of use counts. Ids are ordered by slot within each type,
// with later types first, so passes go before the textures they attach.
func (r *Registry) Remove(label Label) []Id {
	var ids []Id
	for id, e := range r.entries {
		if e.label == label {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		r.remove(id, r.entries[id])
	}
	sortIds(ids)
	return ids
}

// IdsByLabel returns the ids registered under label without removing them.
func (r *Registry) IdsByLabel(label Label) []Id {
	var ids []Id
	for id, e := range r.entries {
		if e.label == label {
			ids = append(ids, id)
		}
	}
	sortIds(ids)
	return ids
}

// Len returns the number of registered resources.
func (r *Registry) Len() int { return len(r.entries) }

func (r *Registry) remove(id Id, e *entry) {
	delete(r.entries, id)
	if e.locator != "" && r.locators[e.locator] == id {
		delete(r.locators, e.locator)
	}
}

func sortIds(ids []Id) {
	slices.SortFunc(ids, func(a, b Id) int {
		if a.Type != b.Type {
			return cmp.Compare(b.Type, a.Type)
		}
		return cmp.Compare(a.Slot, b.Slot)
	})
}
