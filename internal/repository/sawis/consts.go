package sawis

const (
	// collection name
	sawisReturnsNode string = "sawisReturns"

	// Fields' name and path
	IdFieldPath          string = "id"
	ProducerIdFieldPath  string = "producerId"
	PeriodFieldPath      string = "period"
	StatusFieldPath      string = "status"
	SubmittedByFieldPath string = "submittedBy"
	UpdatedAtFieldPath   string = "updatedAt"
)
