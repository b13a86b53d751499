package querybuilder

// Condition is one AND-joined WHERE clause with its arguments
type Condition struct {
	clause string
	args   []interface{}
}
