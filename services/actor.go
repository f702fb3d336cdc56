package services

// Actor roles beyond the marketplace user roles in models.
const (
	RoleOperator = "operator"
	RoleSystem   = "system"
)

// Actor identifies who is invoking an operation. It is resolved once at the
// request boundary (JWT middleware, operator session, or the scheduler
// identity) and passed explicitly into every state-machine operation; the
// core never reads caller identity from ambient state.
type Actor struct {
	ID   uint
	Role string
}

// SystemActor is the identity used by external schedulers driving deadline
// expiry. It bypasses ownership checks but never status guards.
var SystemActor = Actor{Role: RoleSystem}

// Authenticated reports whether the actor carries a resolved identity.
func (a Actor) Authenticated() bool {
	return a.ID != 0 || a.Role == RoleSystem
}

// IsSystem reports whether the actor is the scheduler identity.
func (a Actor) IsSystem() bool {
	return a.Role == RoleSystem
}
