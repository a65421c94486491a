package auth

import "rtw_backend/internal/models"

// Principal is the verified identity behind a request, resolved once by the
// auth middleware. Exactly one of User, Candidate, Employer is non-nil,
// matching Kind.
type Principal struct {
	Kind  models.AccountKind
	ID    string
	Email string

	User      *models.User
	Candidate *models.Candidate
	Employer  *models.Employer
}

// NewUserPrincipal builds the principal for a back-office session.
func NewUserPrincipal(u *models.User) *Principal {
	return &Principal{Kind: models.AccountKindUser, ID: u.ID, Email: u.Email, User: u}
}

// NewCandidatePrincipal builds the principal for a candidate session.
func NewCandidatePrincipal(c *models.Candidate) *Principal {
	return &Principal{Kind: models.AccountKindCandidate, ID: c.ID, Email: c.Email, Candidate: c}
}

// NewEmployerPrincipal builds the principal for an employer session.
func NewEmployerPrincipal(e *models.Employer) *Principal {
	return &Principal{Kind: models.AccountKindEmployer, ID: e.ID, Email: e.Email, Employer: e}
}

// IsAdmin reports whether the principal is an administrative user.
func (p *Principal) IsAdmin() bool {
	return p.Kind == models.AccountKindUser && p.User != nil && p.User.Role == models.UserRoleAdmin
}
