package domain

// Team groups employees for collaboration. Membership is a many-to-many
// join against employee-role persons; member order follows storage
// iteration order.
type Team struct {
	ID          int64
	Name        string
	Description string
	Members     []Employee
}
