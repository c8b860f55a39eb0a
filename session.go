package symgeo

import (
	"sort"

	"go.uber.org/zap"

	"github.com/njchilds90/symgeo/algebra"
)

// Session is a scoped registry of named entities plus the assumption scope
// used by constructions that run inside it. A Session is not safe for
// concurrent use.
type Session struct {
	name     string
	entities map[string]Entity
	scope    *algebra.Assumptions
	logger   *zap.Logger
}

// SessionOption configures NewSession.
type SessionOption func(*Session)

func WithSessionName(name string) SessionOption {
	return func(s *Session) { s.name = name }
}

func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScope makes the session's assumptions a child of parent.
func WithScope(parent *algebra.Assumptions) SessionOption {
	return func(s *Session) { s.scope = parent.Fork() }
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		entities: map[string]Entity{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.name == "" {
		s.name = generateName("Session")
	}
	if s.scope == nil {
		s.scope = algebra.NewAssumptions()
	}
	return s
}

var defaultSession = NewSession(WithSessionName("default"))

// DefaultSession holds the assumption scope for entities never assigned to a
// session of their own.
func DefaultSession() *Session { return defaultSession }

func (s *Session) Name() string                      { return s.name }
func (s *Session) Len() int                          { return len(s.entities) }
func (s *Session) Logger() *zap.Logger               { return s.logger }
func (s *Session) Assumptions() *algebra.Assumptions { return s.scope }

// Assume declares facts about a symbol for every construction in this
// session until release is called.
func (s *Session) Assume(symbol string, facts ...algebra.Fact) (release func()) {
	s.logger.Debug("assumption acquired", zap.String("session", s.name), zap.String("symbol", symbol))
	undo := s.scope.Assume(symbol, facts...)
	return func() {
		undo()
		s.logger.Debug("assumption released", zap.String("session", s.name), zap.String("symbol", symbol))
	}
}

// Assign registers e under name and points e's session back-reference here.
// An entity belongs to one session at a time; assigning it elsewhere removes
// it from its previous session.
func (s *Session) Assign(name string, e Entity) error {
	const op = "Session.Assign"
	if name == "" {
		return opErr(op, ErrName, "name must not be empty")
	}
	if e == nil {
		return opErr(op, ErrType, "entity must not be nil")
	}
	m := e.entity()
	if prev := m.session; prev != nil && prev != s {
		prev.forget(e)
	}
	replaced, had := s.entities[name]
	m.session = s
	s.entities[name] = e
	if had {
		s.release(replaced)
	}
	s.logger.Debug("entity assigned",
		zap.String("session", s.name),
		zap.String("name", name),
		zap.String("kind", m.kind))
	return nil
}

// Get returns the entity registered under name.
func (s *Session) Get(name string) (Entity, error) {
	e, ok := s.entities[name]
	if !ok {
		return nil, opErr("Session.Get", ErrNotFound, "no entity named %q in session %s", name, s.name)
	}
	return e, nil
}

// Delete removes name. The entity's back-reference is cleared once it is no
// longer registered under any name here.
func (s *Session) Delete(name string) error {
	e, ok := s.entities[name]
	if !ok {
		return opErr("Session.Delete", ErrNotFound, "no entity named %q in session %s", name, s.name)
	}
	delete(s.entities, name)
	s.release(e)
	s.logger.Debug("entity deleted", zap.String("session", s.name), zap.String("name", name))
	return nil
}

// Names returns the registered names in sorted order.
func (s *Session) Names() []string {
	out := make([]string, 0, len(s.entities))
	for name := range s.entities {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *Session) holds(e Entity) bool {
	for _, other := range s.entities {
		if other.entity() == e.entity() {
			return true
		}
	}
	return false
}

// release clears e's back-reference once no name here holds it.
func (s *Session) release(e Entity) {
	if !s.holds(e) && e.entity().session == s {
		e.entity().session = nil
	}
}

func (s *Session) forget(e Entity) {
	for name, other := range s.entities {
		if other.entity() == e.entity() {
			delete(s.entities, name)
		}
	}
}

// Lookup returns the entity registered under name as a T.
func Lookup[T Entity](s *Session, name string) (T, error) {
	var zero T
	e, err := s.Get(name)
	if err != nil {
		return zero, err
	}
	t, ok := e.(T)
	if !ok {
		return zero, opErr("Lookup", ErrType, "entity %q is %T", name, e)
	}
	return t, nil
}
