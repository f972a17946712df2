package models

type principalKind uint8

const (
	kindUser principalKind = iota
	kindOwner
	kindCustomer
)

// Principal is an authenticated caller. It is either an owner, a customer
// with a linked profile, or a plain user with neither capability. Values are
// only built through the constructors below, so an owner never carries a
// customer profile.
type Principal struct {
	kind       principalKind
	userID     int
	customerID int
}

func NewOwner(userID int) Principal {
	return Principal{kind: kindOwner, userID: userID}
}

func NewCustomer(userID, customerID int) Principal {
	return Principal{kind: kindCustomer, userID: userID, customerID: customerID}
}

func NewUser(userID int) Principal {
	return Principal{kind: kindUser, userID: userID}
}

func (p Principal) UserID() int {
	return p.userID
}

func (p Principal) IsOwner() bool {
	return p.kind == kindOwner
}

// CustomerID returns the linked customer profile, if any.
func (p Principal) CustomerID() (int, bool) {
	if p.kind != kindCustomer {
		return 0, false
	}
	return p.customerID, true
}

func (p Principal) Role() Role {
	if p.kind == kindOwner {
		return RoleOwner
	}
	return RoleUser
}
