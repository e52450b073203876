package enums

import "testing"

func TestParseRole(t *testing.T) {
	role, err := ParseRole("CASHIER")
	if err != nil || role != RoleCashier {
		t.Fatalf("unexpected parse: %v %v", role, err)
	}
	if _, err := ParseRole("cashier"); err == nil {
		t.Fatal("roles are case sensitive")
	}
	if _, err := ParseRole("WIZARD"); err == nil {
		t.Fatal("unknown role must fail")
	}
}

func TestRoleSatisfies(t *testing.T) {
	cases := []struct {
		name     string
		user     Role
		required []Role
		want     bool
	}{
		{"empty requirement admits anyone", RoleCashier, nil, true},
		{"admin passes every check", RoleAdmin, []Role{RoleAnalyst}, true},
		{"exact match", RoleCashier, []Role{RoleCashier}, true},
		{"any of several", RoleStockMonitor, []Role{RoleStockKeeper, RoleStockMonitor}, true},
		{"no match", RoleCashier, []Role{RoleAnalyst, RoleManager}, false},
		{"manager is not admin", RoleManager, []Role{RoleAdmin}, false},
	}
	for _, tc := range cases {
		if got := RoleSatisfies(tc.user, tc.required); got != tc.want {
			t.Errorf("%s: RoleSatisfies(%s, %v) = %v, want %v", tc.name, tc.user, tc.required, got, tc.want)
		}
	}
}

func TestRoleIsValid(t *testing.T) {
	if !RoleAnalyst.IsValid() {
		t.Fatal("known role reported invalid")
	}
	if Role("").IsValid() || Role("WIZARD").IsValid() {
		t.Fatal("unknown role reported valid")
	}
}
