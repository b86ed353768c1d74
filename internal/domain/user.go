package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the sanitized record handed to the UI. It never carries a password.
type User struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	JoinedDate string `json:"joinedDate,omitempty"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Credential is a registered-user entry as stored in the users list.
// Password holds a bcrypt hash.
type Credential struct {
	User
	Password string `json:"password"`
}
