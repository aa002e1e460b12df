package models

// All lists every table owned by the board, in migration order.
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&Treatment{},
		&Capster{},
		&Appointment{},
		&NotificationLog{},
	}
}
