package service

import (
	"github.com/dialogs/dialog-push-fcm/pkg/api"
	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
	"github.com/dialogs/dialog-push-fcm/pkg/worker"
)

type sendPushResult struct {
	ProjectID           string
	InvalidationDevices []string
	Results             []*api.Result
}

func newSendPushResult(projectID string) *sendPushResult {
	return &sendPushResult{
		ProjectID:           projectID,
		InvalidationDevices: make([]string, 0),
		Results:             make([]*api.Result, 0),
	}
}

func (r *sendPushResult) add(res *worker.Response) {

	if res.Invalidated() {
		r.InvalidationDevices = append(r.InvalidationDevices, res.Target.Value())
	}

	item := &api.Result{
		ProjectID: r.ProjectID,
		Target:    worker.TargetName(res.Target),
	}

	if res.Error != nil {
		item.Error = res.Error.Error()
		item.ErrorKind = fcm.KindOf(res.Error).String()
		item.Retryable = fcm.IsRetryable(res.Error)
	} else if res.MessageName != "" {
		item.MessageID = (&fcm.Response{Name: res.MessageName}).MessageID()
	}

	r.Results = append(r.Results, item)
}

// fail marks every target of an unserved project
func (r *sendPushResult) fail(targets []fcm.Target, err error) {

	if len(targets) == 0 {
		r.add(&worker.Response{ProjectID: r.ProjectID, Error: err})
		return
	}

	for _, target := range targets {
		r.add(&worker.Response{ProjectID: r.ProjectID, Target: target, Error: err})
	}
}
