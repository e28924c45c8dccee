package directory

import "testing"

func testDirectory() *Directory {
	return New(
		[]User{
			{ID: 3, Name: "Charlie", Role: RolePropertyManager},
			{ID: 5, Name: "Eve", Role: RoleTechnician},
			{ID: 7, Name: "Grace", Role: RoleVendor},
			{ID: 1, Name: "Alice", Role: RoleMasterAdmin},
		},
		[]Property{
			{ID: 102, Name: "Riverbend Lofts", Address: "456 Oak Ave"},
			{ID: 101, Name: "Gateway Apartments", Address: "123 Main St"},
		},
	)
}

func TestLookups(t *testing.T) {
	d := testDirectory()
	u, ok := d.UserByID(5)
	if !ok || u.Name != "Eve" || u.Role != RoleTechnician {
		t.Fatalf("UserByID(5) = %+v, %v", u, ok)
	}
	if _, ok := d.UserByID(99); ok {
		t.Fatalf("expected miss for unknown user")
	}
	p, ok := d.PropertyByID(101)
	if !ok || p.Name != "Gateway Apartments" {
		t.Fatalf("PropertyByID(101) = %+v, %v", p, ok)
	}
	if role, ok := d.RoleOf(7); !ok || role != RoleVendor {
		t.Fatalf("RoleOf(7) = %s, %v", role, ok)
	}
}

func TestOrderedListings(t *testing.T) {
	d := testDirectory()
	users := d.Users()
	if len(users) != 4 || users[0].ID != 1 || users[3].ID != 7 {
		t.Fatalf("Users() not ordered by id: %+v", users)
	}
	props := d.Properties()
	if len(props) != 2 || props[0].ID != 101 {
		t.Fatalf("Properties() not ordered by id: %+v", props)
	}
}

func TestAssignable(t *testing.T) {
	got := testDirectory().Assignable()
	if len(got) != 2 || got[0].ID != 5 || got[1].ID != 7 {
		t.Fatalf("Assignable() = %+v, want Eve then Grace", got)
	}
}

func TestUserNameFallback(t *testing.T) {
	d := testDirectory()
	if name := d.UserName(3); name != "Charlie" {
		t.Fatalf("UserName(3) = %q", name)
	}
	if name := d.UserName(42); name != "Unknown" {
		t.Fatalf("UserName(42) = %q, want Unknown", name)
	}
}
