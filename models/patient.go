package models

type Patient struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DOB              Time   `json:"dob"`
	Contact          string `json:"contact"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
	HealthInfo       string `json:"healthInfo"`
	BloodGroup       string `json:"bloodGroup"`
	UserID           string `json:"userId,omitempty"`
	CreatedAt        Time   `json:"createdAt"`
}
