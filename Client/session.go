package Client

// UserInfo is the identity payload the server returns on login and /auth/me/.
type UserInfo struct {
	ID             uint    `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Role           string  `json:"role"`
	ProfessionalID *string `json:"professional_id"`
	IsActive       bool    `json:"is_active"`
}

func (u *UserInfo) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

// Session is the authenticated state of a client. A nil Session means logged
// out.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *UserInfo
}

func (s *Session) IsAdmin() bool {
	return s.User != nil && s.User.Role == "admin"
}

// CanManageUsers reports whether the session may reach the user management
// endpoints. The server enforces this too; the client mirror exists so the
// UI can hide what would only fail.
func (s *Session) CanManageUsers() bool {
	return s.IsAdmin()
}

func (s *Session) CanApproveSettlements() bool {
	return s.IsAdmin()
}

// OwnProfessionalID returns the roster entry tied to this session, or empty
// when the user is not a professional.
func (s *Session) OwnProfessionalID() string {
	if s.User == nil || s.User.ProfessionalID == nil {
		return ""
	}
	return *s.User.ProfessionalID
}
