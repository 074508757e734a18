package model

// User is a patient or caregiver document from the users collection. The
// analytics layer only reads the caregiver links and display name.
type User struct {
	ID           string   `json:"id" bson:"_id,omitempty"`
	Username     string   `json:"username,omitempty" bson:"username,omitempty"`
	Name         string   `json:"name" bson:"name"`
	Role         string   `json:"role,omitempty" bson:"role,omitempty"`
	CaregiverIDs []string `json:"caregiverIds" bson:"caregiverIds"`
}
