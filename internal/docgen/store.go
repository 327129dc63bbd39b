package docgen

import "sync"

// Store holds the documentation configurations registered per project for
// the lifetime of one build session.
type Store struct {
	mu      sync.RWMutex
	configs map[ProjectID][]*Configuration
	order   []ProjectID
}

// NewStore creates an empty configuration store.
func NewStore() *Store {
	return &Store{configs: make(map[ProjectID][]*Configuration)}
}

// Add appends cfg to the sequence registered for project. Duplicates are kept.
func (s *Store) Add(project ProjectID, cfg *Configuration) {
	if cfg == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.configs[project]; !ok {
		s.order = append(s.order, project)
	}
	s.configs[project] = append(s.configs[project], cfg)
}

// ConfigurationsFor returns copies of the configurations registered for
// project in registration order. The result is empty when none exist.
func (s *Store) ConfigurationsFor(project ProjectID) []Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	registered := s.configs[project]
	out := make([]Configuration, 0, len(registered))
	for _, c := range registered {
		out = append(out, c.Clone())
	}
	return out
}

// Projects lists projects with at least one configuration, in first-registration order.
func (s *Store) Projects() []ProjectID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ProjectID(nil), s.order...)
}

// Reset drops all registrations, starting a new session.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs = make(map[ProjectID][]*Configuration)
	s.order = nil
}
