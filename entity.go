package symgeo

import (
	"strings"

	"github.com/google/uuid"

	"github.com/njchilds90/symgeo/algebra"
)

// Entity is any named object that can live in a Session: variables, points,
// linear entities and conics.
type Entity interface {
	Name() string
	SetName(name string) error
	// Dependencies returns the entities this one was constructed from.
	Dependencies() []Entity
	// Session returns the owning session, or DefaultSession if the entity
	// was never assigned to one.
	Session() *Session
	String() string
	entity() *meta
}

// meta is the naming and provenance record shared by every entity.
type meta struct {
	kind    string
	name    string
	nameFn  func() string
	deps    []Entity
	session *Session
}

func (m *meta) entity() *meta { return m }

func (m *meta) Name() string {
	if m.name == "" && m.nameFn != nil {
		m.name = m.nameFn()
		m.nameFn = nil
	}
	return m.name
}

func (m *meta) SetName(name string) error {
	if name == "" {
		return opErr("SetName", ErrName, "name must not be empty")
	}
	m.name = name
	m.nameFn = nil
	return nil
}

func (m *meta) Dependencies() []Entity {
	return append([]Entity(nil), m.deps...)
}

func (m *meta) Session() *Session {
	if m.session == nil {
		return DefaultSession()
	}
	return m.session
}

// String renders the provenance form
// "<session>:symgeo.<Kind> <name> <- (<Kind> <name>, ...)" or "... (FREE)".
func (m *meta) String() string {
	var sb strings.Builder
	if m.session != nil {
		sb.WriteString(m.session.Name())
		sb.WriteString(":")
	}
	sb.WriteString("symgeo.")
	sb.WriteString(m.kind)
	sb.WriteString(" ")
	sb.WriteString(m.Name())
	if len(m.deps) == 0 {
		sb.WriteString(" (FREE)")
		return sb.String()
	}
	sb.WriteString(" <- (")
	for i, d := range m.deps {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.entity().kind)
		sb.WriteString(" ")
		sb.WriteString(d.Name())
	}
	sb.WriteString(")")
	return sb.String()
}

// init assigns the name and dependency set. Fields that are already set are
// left alone so re-entrant construction paths cannot overwrite them.
func (m *meta) init(op, kind string, o options, deps ...Entity) error {
	if m.kind == "" {
		m.kind = kind
	}
	if m.name == "" && m.nameFn == nil {
		switch {
		case o.nameSet:
			if o.name == "" {
				return opErr(op, ErrName, "name must not be empty")
			}
			m.name = o.name
		case o.nameFn != nil:
			m.nameFn = o.nameFn
		default:
			m.name = generateName(kind)
		}
	}
	if m.deps == nil {
		m.deps = uniqueEntities(deps)
	}
	return nil
}

func uniqueEntities(in []Entity) []Entity {
	out := make([]Entity, 0, len(in))
	seen := make(map[*meta]struct{}, len(in))
	for _, e := range in {
		if e == nil {
			continue
		}
		key := e.entity()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

func generateName(kind string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToLower(kind) + "_" + id[:12]
}

// ============================================================
// Options
// ============================================================

// Option configures an entity constructor or an entity-returning method.
type Option func(*options)

type options struct {
	name          string
	nameSet       bool
	nameFn        func() string
	session       *Session
	scope         *algebra.Assumptions
	directionSign any
}

// WithName sets the entity name. An empty name is rejected with ErrName.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
		o.nameSet = true
	}
}

// WithNameFunc supplies a name factory, invoked the first time the name is read.
func WithNameFunc(fn func() string) Option {
	return func(o *options) { o.nameFn = fn }
}

// InSession registers the new entity in s under its name.
func InSession(s *Session) Option {
	return func(o *options) { o.session = s }
}

// WithAssumptions overrides the assumption scope used for the construction's
// precondition checks and kind decisions.
func WithAssumptions(scope *algebra.Assumptions) Option {
	return func(o *options) { o.scope = scope }
}

// WithDirectionSign sets a conic's parameterization direction (+1 or -1).
func WithDirectionSign(sign any) Option {
	return func(o *options) { o.directionSign = sign }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o options) scopeFor(es ...Entity) *algebra.Assumptions {
	if o.scope != nil {
		return o.scope
	}
	if o.session != nil {
		return o.session.Assumptions()
	}
	for _, e := range es {
		if e != nil && e.entity().session != nil {
			return e.entity().session.Assumptions()
		}
	}
	return DefaultSession().Assumptions()
}

func register(e Entity, o options) error {
	if o.session == nil {
		return nil
	}
	return o.session.Assign(e.Name(), e)
}

// childName names a derived attribute after its parent, resolved lazily so a
// later rename of the parent is reflected.
func childName(parent Entity, label string) Option {
	return WithNameFunc(func() string { return parent.Name() + "." + label })
}
