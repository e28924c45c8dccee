// Package directory holds the immutable reference data: who works here and
// which properties they look after. Lookups only; nothing in this package
// ever changes after construction.
package directory

import "sort"

// Role is a user's job function. Roles gate which workflow operations a
// user may trigger; the rules live in internal/ops.
type Role string

const (
	RoleMasterAdmin     Role = "Master Admin"
	RoleAdmin           Role = "Admin"
	RolePropertyManager Role = "Property Manager"
	RoleSupervisor      Role = "Supervisor"
	RoleTechnician      Role = "Technician"
	RoleOwner           Role = "Owner"
	RoleVendor          Role = "Vendor"
)

// User is a member of the maintenance organization.
type User struct {
	ID        int    `yaml:"id"`
	Name      string `yaml:"name"`
	Role      Role   `yaml:"role"`
	AvatarURL string `yaml:"avatar_url,omitempty"`
}

// Property is a managed building or complex.
type Property struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// Directory answers user and property lookups by id.
type Directory struct {
	users      map[int]User
	properties map[int]Property
}

// New indexes the given reference data.
func New(users []User, properties []Property) *Directory {
	d := &Directory{
		users:      make(map[int]User, len(users)),
		properties: make(map[int]Property, len(properties)),
	}
	for _, u := range users {
		d.users[u.ID] = u
	}
	for _, p := range properties {
		d.properties[p.ID] = p
	}
	return d
}

// UserByID looks up a user.
func (d *Directory) UserByID(id int) (User, bool) {
	u, ok := d.users[id]
	return u, ok
}

// PropertyByID looks up a property.
func (d *Directory) PropertyByID(id int) (Property, bool) {
	p, ok := d.properties[id]
	return p, ok
}

// RoleOf reports the role of the given user.
func (d *Directory) RoleOf(id int) (Role, bool) {
	u, ok := d.users[id]
	return u.Role, ok
}

// Users returns every user, ordered by id.
func (d *Directory) Users() []User {
	out := make([]User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Properties returns every property, ordered by id.
func (d *Directory) Properties() []Property {
	out := make([]Property, 0, len(d.properties))
	for _, p := range d.properties {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Assignable returns users a work order can be handed to: technicians and
// vendors, ordered by id.
func (d *Directory) Assignable() []User {
	var out []User
	for _, u := range d.Users() {
		if u.Role == RoleTechnician || u.Role == RoleVendor {
			out = append(out, u)
		}
	}
	return out
}

// UserName resolves a display name, falling back to "Unknown" so callers
// rendering activity feeds never have to branch on missing users.
func (d *Directory) UserName(id int) string {
	if u, ok := d.users[id]; ok {
		return u.Name
	}
	return "Unknown"
}
