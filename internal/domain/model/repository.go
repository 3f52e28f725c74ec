package model

import "strings"

// OwnerKind distinguishes organization-owned repositories from personal ones.
type OwnerKind string

const (
	OwnerUser         OwnerKind = "User"
	OwnerOrganization OwnerKind = "Organization"
)

// ParseOwnerKind maps the owner "type" field of a GitHub payload to an OwnerKind.
// Anything that is not an organization is treated as a personal account.
func ParseOwnerKind(s string) OwnerKind {
	if strings.EqualFold(s, string(OwnerOrganization)) {
		return OwnerOrganization
	}
	return OwnerUser
}

// Repository is the target repository of the pull request under evaluation.
type Repository struct {
	Owner     string
	OwnerKind OwnerKind
	Name      string
}

// FullName returns the "owner/name" form used in logs and error messages.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// IsOrganization reports whether the repository is owned by an organization.
func (r Repository) IsOrganization() bool {
	return r.OwnerKind == OwnerOrganization
}
