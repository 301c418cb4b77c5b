package domain

// Role is the single access level assigned to a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Roles lists every recognised role, most privileged first.
var Roles = []Role{RoleAdmin, RoleEditor, RoleViewer}

// ParseRole reports whether s names a recognised role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return r, true
	}
	return "", false
}

// NormalizeRole maps anything that is not a recognised role to RoleViewer.
func NormalizeRole(s string) Role {
	if r, ok := ParseRole(s); ok {
		return r
	}
	return RoleViewer
}

// Hierarchy resolves a role to the permission labels it satisfies.
// The zero value satisfies nothing; build one with NewHierarchy.
type Hierarchy struct {
	grants map[Role]map[Role]struct{}
}

// NewHierarchy returns the fixed admin ⊇ editor ⊇ viewer hierarchy.
func NewHierarchy() Hierarchy {
	return Hierarchy{grants: map[Role]map[Role]struct{}{
		RoleAdmin:  labelSet(RoleAdmin, RoleEditor, RoleViewer),
		RoleEditor: labelSet(RoleEditor, RoleViewer),
		RoleViewer: labelSet(RoleViewer),
	}}
}

func labelSet(labels ...Role) map[Role]struct{} {
	set := make(map[Role]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

// Labels returns the labels satisfied by r in hierarchy order.
// An unrecognised role satisfies no label.
func (h Hierarchy) Labels(r Role) []Role {
	granted := h.grants[r]
	out := make([]Role, 0, len(granted))
	for _, l := range Roles {
		if _, ok := granted[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Satisfies reports whether r satisfies at least one of the required labels.
func (h Hierarchy) Satisfies(r Role, required ...Role) bool {
	granted := h.grants[r]
	for _, want := range required {
		if _, ok := granted[want]; ok {
			return true
		}
	}
	return false
}
