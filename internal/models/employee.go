package models

// Employee represents a row of the employee table. Records are immutable once stored.
type Employee struct {
	ID           string `json:"emp_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PrimarySkill string `json:"primary_skill"`
	Location     string `json:"location"`
}

// FullName returns the first and last name separated by a space.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
