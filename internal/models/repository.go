package models

// AccountKind identifies the kind of repository-owning entity.
type AccountKind string

const (
	KindUser         AccountKind = "User"
	KindOrganization AccountKind = "Organization"
)

// Account represents a candidate source of repositories (a user or an
// organization the user belongs to).
type Account struct {
	Login string      `json:"login"`
	Kind  AccountKind `json:"kind"`
}

// Repository is the minimal projection of a host-side repository that the
// pipeline needs: its full name and who owns it.
type Repository struct {
	FullName  string      `json:"full_name"`
	OwnerKind AccountKind `json:"owner_kind"`
}

// Owner returns the owner half of the repository's full name.
func (r Repository) Owner() string {
	for i := 0; i < len(r.FullName); i++ {
		if r.FullName[i] == '/' {
			return r.FullName[:i]
		}
	}
	return r.FullName
}

// Name returns the repository half of the full name.
func (r Repository) Name() string {
	for i := 0; i < len(r.FullName); i++ {
		if r.FullName[i] == '/' {
			return r.FullName[i+1:]
		}
	}
	return ""
}
