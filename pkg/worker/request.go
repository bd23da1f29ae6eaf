package worker

import (
	"github.com/dialogs/dialog-push-fcm/pkg/api"
	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
)

// Request sends the same payload to every target
type Request struct {
	Targets       []fcm.Target
	CorrelationID string
	Payload       *api.PushBody
}

// NewDevicesRequest targets device tokens
func NewDevicesRequest(correlationID string, devices []string, payload *api.PushBody) *Request {

	targets := make([]fcm.Target, len(devices))
	for i := range devices {
		targets[i] = fcm.Token(devices[i])
	}

	return &Request{
		Targets:       targets,
		CorrelationID: correlationID,
		Payload:       payload,
	}
}
