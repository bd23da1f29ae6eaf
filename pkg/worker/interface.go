package worker

import (
	"context"

	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
)

type IWorker interface {
	ProjectID() string
	NoOpMode() bool
	Send(context.Context, *Request) <-chan *Response
}

// Sender makes one gateway call, *fcm.Client implements it
type Sender interface {
	Send(ctx context.Context, message *fcm.Message) (*fcm.Response, error)
}
