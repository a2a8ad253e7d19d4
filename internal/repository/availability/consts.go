package availability

const (
	// collection name
	availabilityNode string = "availability"

	// Fields' name and path
	IdFieldPath          string = "id"
	ProviderIdFieldPath  string = "providerId"
	DateFieldPath        string = "date"
	ServiceTypeFieldPath string = "serviceType"
	CapacityFieldPath    string = "capacity"
)
