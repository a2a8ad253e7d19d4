package rfq

const (
	// collection name
	rfqsNode string = "rfqs"

	// Fields' name and path
	IdFieldPath             string = "id"
	ProducerIdFieldPath     string = "producerId"
	StatusFieldPath         string = "status"
	AwardedQuoteIdFieldPath string = "awardedQuoteId"
	UpdatedAtFieldPath      string = "updatedAt"
)
