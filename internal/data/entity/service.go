package entity

// Service is a bookable catalog item. Quantity is the on-hand stock and is
// decremented when a service is booked into an event.
type Service struct {
	BaseNoDelete
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Quantity    int     `db:"quantity"`
	Price       float64 `db:"price"`
}
