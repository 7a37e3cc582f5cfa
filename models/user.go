package models

type Role string

const (
	RoleAdmin   Role = "Admin"
	RolePatient Role = "Patient"
)

type User struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Name      string `json:"name"`
	PatientID string `json:"patientId,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt Time   `json:"createdAt"`
}

// Sanitized returns a copy safe to send to clients.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
