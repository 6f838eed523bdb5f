package entity

// Address is a value object embedded in a User. It has no identity of its own.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// User is the aggregate root for the users collection.
//
// Password is kept exactly as submitted; it is not hashed.
type User struct {
	ID       string   `json:"userId"`
	UserName string   `json:"userName"`
	Password string   `json:"password"`
	Email    string   `json:"email"`
	Address  *Address `json:"address"`
}

// NewUser returns a User with the defaults applied to create payloads: a
// payload that omits "address" gets an empty Address, while an explicit
// null leaves it nil once decoded on top of this value.
func NewUser() *User {
	return &User{Address: &Address{}}
}

// Clone returns a deep copy so callers never share the embedded Address.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Address != nil {
		a := *u.Address
		c.Address = &a
	}
	return &c
}
