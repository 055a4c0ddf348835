package reactions

import (
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/slapp/internal/domain"
)

type entityKey struct {
	kind domain.EntityKind
	id   uuid.UUID
}

// Index maps the symbols of one outgoing message to the entities they expand.
// It is built by a single request and needs no locking until it is stored in
// a Cache, which then owns it.
type Index struct {
	order    []Symbol
	entities map[Symbol]domain.Entity
	assigned map[entityKey]Symbol
}

func NewIndex() *Index {
	return &Index{
		entities: make(map[Symbol]domain.Entity),
		assigned: make(map[entityKey]Symbol),
	}
}

// Assign returns the symbol for e, handing out the next free one on first
// use. It returns false once every symbol is taken.
func (i *Index) Assign(e domain.Entity) (Symbol, bool) {
	key := entityKey{kind: e.Kind(), id: e.EntityID()}
	if s, ok := i.assigned[key]; ok {
		return s, true
	}
	if len(i.assigned) >= MaxSymbols {
		return "", false
	}

	s := Symbols[len(i.assigned)]
	i.assigned[key] = s
	i.entities[s] = e
	i.order = append(i.order, s)
	return s, true
}

// Lookup returns the entity behind s without consuming it.
func (i *Index) Lookup(s Symbol) (domain.Entity, bool) {
	e, ok := i.entities[s]
	return e, ok
}

// Symbols lists the symbols still available, in assignment order.
func (i *Index) Symbols() []Symbol {
	out := make([]Symbol, 0, len(i.entities))
	for _, s := range i.order {
		if _, ok := i.entities[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Len is the number of symbols still available.
func (i *Index) Len() int { return len(i.entities) }

func (i *Index) take(s Symbol) (domain.Entity, bool) {
	e, ok := i.entities[s]
	if ok {
		delete(i.entities, s)
	}
	return e, ok
}
