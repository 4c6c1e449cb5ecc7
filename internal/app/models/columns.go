package models

// setColumn copies v into cols under column when v is set.
func setColumn[T any](cols map[string]interface{}, column string, v *T) {
	if v != nil {
		cols[column] = *v
	}
}
