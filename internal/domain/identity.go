package domain

// Role separates back-office users from storefront customers.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Identity is the authenticated user record. At most one identity is current
// at a time; the session store keeps it under a single fixed slot.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// IdentityPatch carries profile-edit fields. Nil pointers leave the current
// value untouched; the merge is a shallow field overwrite.
type IdentityPatch struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	Zip     *string `json:"zip,omitempty"`
}

// Apply merges the patch into a copy of the identity.
func (p IdentityPatch) Apply(id Identity) Identity {
	if p.Name != nil {
		id.Name = *p.Name
	}
	if p.Phone != nil {
		id.Phone = *p.Phone
	}
	if p.Address != nil {
		id.Address = *p.Address
	}
	if p.City != nil {
		id.City = *p.City
	}
	if p.State != nil {
		id.State = *p.State
	}
	if p.Zip != nil {
		id.Zip = *p.Zip
	}
	return id
}
