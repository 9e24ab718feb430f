package ir

// SymbolTable maps signal names to declarations and remembers declaration
// order so that emission is deterministic.
type SymbolTable struct {
	order  []*Signal
	byName map[string]*Signal
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Signal)}
}

// Insert adds s. A name already present is never replaced; the existing
// declaration is returned with ok == false.
func (t *SymbolTable) Insert(s *Signal) (prev *Signal, ok bool) {
	if prev, found := t.byName[s.Name]; found {
		return prev, false
	}
	t.byName[s.Name] = s
	t.order = append(t.order, s)
	return nil, true
}

func (t *SymbolTable) Lookup(name string) (*Signal, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// Signals returns every declaration in insertion order.
func (t *SymbolTable) Signals() []*Signal {
	return append([]*Signal(nil), t.order...)
}

func (t *SymbolTable) Len() int {
	return len(t.order)
}
