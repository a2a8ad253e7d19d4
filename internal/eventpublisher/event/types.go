package event

type (
	// Event carries a decoded document or the error that ended the stream.
	Event struct {
		Message interface{}
		Err     error
	}

	EventChannel  chan Event
	EventWChannel chan<- Event
)
