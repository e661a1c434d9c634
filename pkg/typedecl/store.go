package typedecl

import (
	"sync"

	"github.com/simonhull/firebird-suite/wren/pkg/syntax"
)

// Store is the caller-owned name -> TypedefInfo mapping shared by
// extraction and emission. It only grows: loading several files into one
// Store accumulates their declarations. Use separate stores for isolation.
//
// Reads may run concurrently with each other. Extraction must complete
// before emission requests read the store.
type Store struct {
	mu    sync.RWMutex
	order []string
	infos map[string]*TypedefInfo
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		infos: make(map[string]*TypedefInfo),
	}
}

// Extract extracts root's declarations and adds them. The file is staged:
// if any declaration fails, nothing from this file is added and the
// records already in the store are left untouched.
func (s *Store) Extract(root syntax.Node) (int, error) {
	infos, err := Extract(root)
	if err != nil {
		return 0, err
	}
	s.Add(infos...)
	return len(infos), nil
}

// Add records infos. A name seen before keeps its original position and
// its record is replaced, except that a bare forward declaration never
// replaces a full definition.
func (s *Store) Add(infos ...*TypedefInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, info := range infos {
		existing, ok := s.infos[info.Name]
		if !ok {
			s.order = append(s.order, info.Name)
		} else if info.Forward && !existing.Forward {
			continue
		}
		s.infos[info.Name] = info
	}
}

// Get looks up a type by name.
func (s *Store) Get(name string) (*TypedefInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.infos[name]
	return info, ok
}

// Len returns the number of recorded types.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// Names returns every recorded name in first-seen order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// All returns every record in first-seen order.
func (s *Store) All() []*TypedefInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]*TypedefInfo, 0, len(s.order))
	for _, name := range s.order {
		infos = append(infos, s.infos[name])
	}
	return infos
}
