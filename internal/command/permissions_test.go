package command

import "testing"

func TestCheckOwner(t *testing.T) {
	open := &stubCommand{name: "ping"}
	gated := &stubCommand{name: "admin", ownerOnly: true}

	if !CheckOwner(open, "anyone", "owner") {
		t.Error("open command rejected a non-owner")
	}
	if !CheckOwner(gated, "owner", "owner") {
		t.Error("owner rejected on owner-only command")
	}
	if CheckOwner(gated, "someone", "owner") {
		t.Error("non-owner passed owner-only command")
	}
	if CheckOwner(gated, "", "") {
		t.Error("empty caller passed against empty owner")
	}
}

func TestCheckRolesIntersection(t *testing.T) {
	c := &stubCommand{name: "mod", roles: []string{"r1", "r2"}}

	if !CheckRoles(c, []string{"r0", "r2"}) {
		t.Error("caller holding an allowed role was rejected")
	}
	if CheckRoles(c, []string{"r3"}) {
		t.Error("caller with no allowed role passed")
	}
	if CheckRoles(c, []string{}) {
		t.Error("caller with no roles passed a role-gated command")
	}
}

func TestCheckRolesNoRequirement(t *testing.T) {
	c := &stubCommand{name: "ping"}

	if !CheckRoles(c, []string{}) {
		t.Error("empty resolved roles rejected with no requirement")
	}
	if !CheckRoles(c, []string{"r1"}) {
		t.Error("caller with roles rejected with no requirement")
	}
}

func TestCheckRolesNilAlwaysFails(t *testing.T) {
	// Unresolved roles deny even when the command requires none.
	if CheckRoles(&stubCommand{name: "ping"}, nil) {
		t.Error("nil roles passed a command with no requirement")
	}
	if CheckRoles(&stubCommand{name: "mod", roles: []string{"r1"}}, nil) {
		t.Error("nil roles passed a role-gated command")
	}
}
