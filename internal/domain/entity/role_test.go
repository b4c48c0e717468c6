package entity

import "testing"

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleSupervisor, RoleASHA, RoleAdmin} {
		if !role.Valid() {
			t.Errorf("%s.Valid() = false", role)
		}
	}
	for _, role := range []Role{"", "supervisor", "asha", "Doctor"} {
		if role.Valid() {
			t.Errorf("%q.Valid() = true", role)
		}
	}
}

// A gate allows exactly the roles it names. In particular Admin passes
// no gate that does not name Admin.
func TestRoleOneOfHasNoHierarchy(t *testing.T) {
	tests := []struct {
		role    Role
		allowed []Role
		want    bool
	}{
		{RoleSupervisor, []Role{RoleSupervisor}, true},
		{RoleASHA, []Role{RoleASHA}, true},
		{RoleAdmin, []Role{RoleAdmin}, true},
		{RoleAdmin, []Role{RoleSupervisor}, false},
		{RoleAdmin, []Role{RoleASHA}, false},
		{RoleSupervisor, []Role{RoleASHA}, false},
		{RoleSupervisor, []Role{RoleAdmin}, false},
		{RoleASHA, []Role{RoleSupervisor, RoleAdmin}, false},
		{RoleAdmin, []Role{RoleSupervisor, RoleAdmin}, true},
		{RoleSupervisor, nil, false},
	}

	for _, tt := range tests {
		if got := tt.role.OneOf(tt.allowed...); got != tt.want {
			t.Errorf("%s.OneOf(%v) = %v, want %v", tt.role, tt.allowed, got, tt.want)
		}
	}
}

func TestPrincipalCanAccess(t *testing.T) {
	worker := &Principal{Phone: "+911234567890", UID: "uid-1", Role: RoleASHA, DocID: "123456"}

	if !worker.CanAccess("123456", RoleSupervisor, RoleAdmin) {
		t.Error("worker denied access to own document")
	}
	if worker.CanAccess("654321", RoleSupervisor, RoleAdmin) {
		t.Error("worker granted access to another worker's document")
	}

	supervisor := &Principal{Phone: "+919999999999", UID: "uid-2", Role: RoleSupervisor, DocID: "+919999999999"}
	if !supervisor.CanAccess("123456", RoleSupervisor, RoleAdmin) {
		t.Error("supervisor denied access to worker document")
	}

	admin := &Principal{UID: "uid-3", Role: RoleAdmin, DocID: "+918888888888"}
	if !admin.CanAccess("123456", RoleSupervisor, RoleAdmin) {
		t.Error("admin denied access to worker document")
	}
	if admin.CanAccess("123456", RoleSupervisor) {
		t.Error("admin passed a gate that does not name Admin")
	}
}
