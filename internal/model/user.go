package model

type Role string

const (
	RoleProducer        Role = "producer"
	RoleSupplier        Role = "supplier"
	RoleServiceProvider Role = "service_provider"
	RoleAdmin           Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleProducer, RoleSupplier, RoleServiceProvider, RoleAdmin:
		return true
	default:
		return false
	}
}

type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusSuspended:
		return true
	default:
		return false
	}
}

type User struct {
	Meta
	Email        string     `firestore:"email" json:"email"`
	PasswordHash string     `firestore:"passwordHash" json:"-"`
	Name         string     `firestore:"name" json:"name"`
	CompanyName  string     `firestore:"companyName" json:"companyName"`
	Role         Role       `firestore:"role" json:"role"`
	Status       UserStatus `firestore:"status" json:"status"`
	Phone        string     `firestore:"phone,omitempty" json:"phone,omitempty"`
	Region       string     `firestore:"region,omitempty" json:"region,omitempty"`
	// Services lists the service types a service provider offers.
	Services []string `firestore:"services,omitempty" json:"services,omitempty"`
	// CustomerTiers maps a producer id to the pricing tier a supplier granted it.
	CustomerTiers map[string]Tier `firestore:"customerTiers,omitempty" json:"customerTiers,omitempty"`
}

// UserUpdate carries the profile fields a user may change; nil fields are left untouched.
type UserUpdate struct {
	Name        *string
	CompanyName *string
	Phone       *string
	Region      *string
	Services    []string
}
