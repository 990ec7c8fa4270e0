package domain

import "time"

type UserType string

const (
	UserTypeDistributor UserType = "distributor"
	UserTypeSHG         UserType = "shg"
	UserTypePharmacist  UserType = "pharmacist"
)

// User is a participant in the supply chain. The type is fixed at
// registration and decides which ledger partition the user owns.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Type         UserType
	CreatedAt    time.Time
}

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeDistributor, UserTypeSHG, UserTypePharmacist:
		return true
	}
	return false
}

// CanOrder reports whether users of type t may request stock from a
// distributor.
func (t UserType) CanOrder() bool {
	return t == UserTypeSHG || t == UserTypePharmacist
}
