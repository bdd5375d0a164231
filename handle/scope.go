package handle

type releaser interface {
	release()
}

// Scope holds the live children bound to one owning handle.
type Scope struct {
	owner    *cell
	children []releaser
	closing  bool
}

// Alive reports whether children may still be created in the scope.
func (s *Scope) Alive() bool {
	return s != nil && !s.closing && s.owner.alive()
}

// Len returns the number of live children.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.children)
}

func (s *Scope) adopt(r releaser) {
	s.children = append(s.children, r)
}

func (s *Scope) forget(r releaser) {
	if s.closing {
		return
	}
	for i, c := range s.children {
		if c == r {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// close releases children newest first. A closed scope stays closed.
func (s *Scope) close() {
	if s.closing {
		return
	}
	s.closing = true
	for i := len(s.children) - 1; i >= 0; i-- {
		s.children[i].release()
	}
	s.children = nil
}
