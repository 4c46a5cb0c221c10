package customer

import "customer-service/internal/domain/address"

// Customer is the aggregate root. It owns a snapshot of its addresses; the
// address rows themselves live and die with the customer (cascade delete at
// the storage layer), though single addresses can also be removed on their
// own.
type Customer struct {
	ID        int64             `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Password  string            `json:"password"`
	Active    bool              `json:"active"`
	Addresses []address.Address `json:"addresses"`
}

func NewCustomer(firstName, lastName, email, password string) *Customer {
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
		Active:    true,
		Addresses: []address.Address{},
	}
}

func (c *Customer) Activate() {
	c.Active = true
}

func (c *Customer) Deactivate() {
	c.Active = false
}

// AddAddress stages an address on the in-memory snapshot. Persistence of the
// new row is a separate explicit repository call.
func (c *Customer) AddAddress(addr address.Address) {
	addr.CustomerID = c.ID
	c.Addresses = append(c.Addresses, addr)
}
