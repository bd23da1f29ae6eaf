package converter

import (
	"errors"

	"github.com/dialogs/dialog-push-fcm/pkg/api"
	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
)

var (
	ErrEmptyBody             = errors.New("push without body")
	ErrNotSupportedAlertPush = errors.New("alerting pushes are not supported for the project")
)

// IRequestConverter builds the gateway message for one target
type IRequestConverter interface {
	Convert(body *api.PushBody, target fcm.Target) (*fcm.Message, error)
}
