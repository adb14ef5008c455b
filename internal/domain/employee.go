package domain

// Employee is a person with an employee role. Read-only from this
// service's perspective; provisioning happens elsewhere.
type Employee struct {
	Person
	JobTitle string
}
