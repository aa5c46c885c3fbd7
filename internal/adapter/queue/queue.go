package queue

// Subjects published by the services. Subscribers bind to these names on
// either broker.
const (
	SubjectParkingEntered = "parking.entered"
	SubjectParkingExited  = "parking.exited"
	SubjectLeaseCreated   = "lease.created"
	SubjectLeasePaused    = "lease.paused"
)

// MessageQueue defines the interface for a message queue adapter
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}
