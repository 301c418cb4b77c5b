package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestHierarchy_Satisfies(t *testing.T) {
	h := NewHierarchy()

	cases := []struct {
		role     Role
		required []Role
		want     bool
	}{
		{RoleAdmin, []Role{RoleAdmin}, true},
		{RoleAdmin, []Role{RoleEditor}, true},
		{RoleAdmin, []Role{RoleViewer}, true},
		{RoleEditor, []Role{RoleAdmin}, false},
		{RoleEditor, []Role{RoleEditor}, true},
		{RoleEditor, []Role{RoleViewer}, true},
		{RoleViewer, []Role{RoleAdmin}, false},
		{RoleViewer, []Role{RoleEditor}, false},
		{RoleViewer, []Role{RoleViewer}, true},

		// any-of requirement sets
		{RoleViewer, []Role{RoleAdmin, RoleViewer}, true},
		{RoleViewer, []Role{RoleAdmin, RoleEditor}, false},
		{RoleEditor, []Role{RoleAdmin, RoleEditor}, true},
		{RoleAdmin, []Role{RoleAdmin, RoleEditor, RoleViewer}, true},

		// unrecognised or missing roles authorize nothing
		{Role("superuser"), []Role{RoleViewer}, false},
		{Role("superuser"), []Role{RoleAdmin, RoleEditor, RoleViewer}, false},
		{Role(""), []Role{RoleViewer}, false},
		{Role("ADMIN"), []Role{RoleAdmin}, false},

		// an empty requirement set is never satisfied
		{RoleAdmin, nil, false},
	}

	for _, tc := range cases {
		if got := h.Satisfies(tc.role, tc.required...); got != tc.want {
			t.Errorf("Satisfies(%q, %v) = %v, want %v", tc.role, tc.required, got, tc.want)
		}
	}
}

func TestHierarchy_Labels(t *testing.T) {
	h := NewHierarchy()

	cases := map[Role][]Role{
		RoleAdmin:         {RoleAdmin, RoleEditor, RoleViewer},
		RoleEditor:        {RoleEditor, RoleViewer},
		RoleViewer:        {RoleViewer},
		Role("superuser"): {},
	}
	for role, want := range cases {
		if got := h.Labels(role); !reflect.DeepEqual(got, want) {
			t.Errorf("Labels(%q) = %v, want %v", role, got, want)
		}
	}
}

func TestHierarchy_ZeroValueSatisfiesNothing(t *testing.T) {
	var h Hierarchy
	if h.Satisfies(RoleAdmin, RoleAdmin) {
		t.Fatalf("zero hierarchy must not authorize")
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := map[string]Role{
		"admin":     RoleAdmin,
		"editor":    RoleEditor,
		"viewer":    RoleViewer,
		"superuser": RoleViewer,
		"":          RoleViewer,
		"Admin":     RoleViewer,
	}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAccessDeniedError_MatchesForbidden(t *testing.T) {
	var err error = &AccessDeniedError{Required: []Role{RoleAdmin}}
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected AccessDeniedError to match ErrForbidden")
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("AccessDeniedError must not match ErrUnauthenticated")
	}
}
