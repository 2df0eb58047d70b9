package prediction

// Registry holds the models loaded at startup. It is built once and never
// written afterwards, so concurrent readers need no locking. A slot whose
// artifact could not be loaded is simply absent.
type Registry struct {
	models map[Slot]Model
}

// NewRegistry copies models into a new registry. Nil entries are treated as absent.
func NewRegistry(models map[Slot]Model) *Registry {
	m := make(map[Slot]Model, len(models))
	for slot, model := range models {
		if model != nil {
			m[slot] = model
		}
	}
	return &Registry{models: m}
}

// Get returns the model in slot and whether it is loaded.
func (r *Registry) Get(slot Slot) (Model, bool) {
	if r == nil {
		return nil, false
	}
	m, ok := r.models[slot]
	return m, ok
}

// Available reports the load state of every known slot.
func (r *Registry) Available() map[Slot]bool {
	out := make(map[Slot]bool, len(Slots))
	for _, s := range Slots {
		_, out[s] = r.Get(s)
	}
	return out
}
