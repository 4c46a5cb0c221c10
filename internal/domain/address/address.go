package address

// Address is a postal address owned by exactly one customer. AddressID is a
// surrogate key assigned by the persistence layer and never reassigned.
type Address struct {
	AddressID  int64  `json:"address_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PinCode    string `json:"pin_code"`
	CustomerID int64  `json:"customer_id"`
}

func NewAddress(street, city, state, country, pinCode string, customerID int64) *Address {
	return &Address{
		Street:     street,
		City:       city,
		State:      state,
		Country:    country,
		PinCode:    pinCode,
		CustomerID: customerID,
	}
}

// BelongsTo reports whether the address is owned by the given customer.
func (a *Address) BelongsTo(customerID int64) bool {
	return a.CustomerID == customerID
}
