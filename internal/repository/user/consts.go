package user

const (
	// collection name
	usersNode string = "users"

	// Fields' name and path
	IdFieldPath            string = "id"
	EmailFieldPath         string = "email"
	NameFieldPath          string = "name"
	CompanyNameFieldPath   string = "companyName"
	RoleFieldPath          string = "role"
	StatusFieldPath        string = "status"
	PhoneFieldPath         string = "phone"
	RegionFieldPath        string = "region"
	ServicesFieldPath      string = "services"
	CustomerTiersFieldPath string = "customerTiers"
	CreatedAtFieldPath     string = "createdAt"
	UpdatedAtFieldPath     string = "updatedAt"
)
