package mapper

import "objmap/utils"

// Role restricts a pass to a subset of fields, either by naming the
// fields it allows or the fields it excludes.
type Role struct {
	names     []string
	blacklist bool
}

// Whitelist builds a role accepting only the named fields.
func Whitelist(names ...string) Role {
	return Role{names: names}
}

// Blacklist builds a role accepting every field except the named ones.
func Blacklist(names ...string) Role {
	return Role{names: names, blacklist: true}
}

// Accepts reports whether the role lets the named field through.
func (r Role) Accepts(name string) bool {
	if r.blacklist {
		return !utils.Contains(r.names, name)
	}

	return utils.Contains(r.names, name)
}
