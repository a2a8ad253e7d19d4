package booking

const (
	// collection name
	bookingsNode string = "bookings"

	// Fields' name and path
	IdFieldPath          string = "id"
	ReferenceFieldPath   string = "reference"
	ProviderIdFieldPath  string = "providerId"
	ProducerIdFieldPath  string = "producerId"
	DateFieldPath        string = "date"
	ServiceTypeFieldPath string = "serviceType"
	StatusFieldPath      string = "status"
	UpdatedAtFieldPath   string = "updatedAt"
)
