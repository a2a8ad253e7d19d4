package offender

const (
	// collection name
	offendersNode string = "offenders"

	// Fields' name and path
	IdFieldPath         string = "id"
	ReportedByFieldPath string = "reportedBy"
	CreatedAtFieldPath  string = "createdAt"
)
