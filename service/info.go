package service

import (
	"github.com/dialogs/dialog-push-fcm/pkg/info"
)

// Info of the service
func Info() *info.Info {
	return info.New("push-fcm")
}
