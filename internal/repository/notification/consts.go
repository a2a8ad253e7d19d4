package notification

import "time"

const (
	// collection name
	notificationsNode string = "notifications"

	// Fields' name and path
	IdFieldPath        string = "id"
	KindFieldPath      string = "kind"
	SentFieldPath      string = "sent"
	ErrorFieldPath     string = "error"
	SentAtFieldPath    string = "sentAt"
	UpdatedAtFieldPath string = "updatedAt"

	// It must not exceed the write timeout of the database.firestore.notifyOnChanges
	channelWriteTimeout time.Duration = time.Second * 3
)
