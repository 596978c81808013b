package model

// All returns every table in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Session{},
		&Rating{},
		&Notification{},
		&XPTransaction{},
		&Question{},
	}
}
