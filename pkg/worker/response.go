package worker

import (
	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
)

type Response struct {
	ProjectID string
	Target    fcm.Target

	// gateway message name, empty in nop mode and on error
	MessageName string
	Error       error
}

// Invalidated reports a device token the gateway no longer accepts
func (r *Response) Invalidated() bool {

	if _, ok := r.Target.(fcm.Token); !ok {
		return false
	}

	return isInvalidToken(r.Error)
}
