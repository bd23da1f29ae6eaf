package service

import (
	"context"
	"net"
	"sort"
	"sync"

	"github.com/dialogs/dialog-push-fcm/pkg/api"
	"github.com/dialogs/dialog-push-fcm/pkg/converter"
	"github.com/dialogs/dialog-push-fcm/pkg/metric"
	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
	"github.com/dialogs/dialog-push-fcm/pkg/worker"
	fcmworker "github.com/dialogs/dialog-push-fcm/pkg/worker/fcm"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	errInvalidProjectID = errors.New("invalid project ID")
	errEmptyPush        = errors.New("push without destinations, topics or conditions")
)

type impl struct {
	metric  *metric.Service
	workers map[string]worker.IWorker
	logger  *zap.Logger
}

func newImpl(cfg *Config, logger *zap.Logger, svcMetric *metric.Service) (*impl, error) {

	workers, err := getWorkers(cfg, logger, svcMetric)
	if err != nil {
		return nil, err
	}

	return &impl{
		metric:  svcMetric,
		workers: workers,
		logger:  logger,
	}, nil
}

// SinglePush sends the push to every project it names and waits for all
// answers. Projects are reported in id order, targets in request order.
func (i *impl) SinglePush(ctx context.Context, push *api.Push, addr string) (*api.Response, error) {

	l := i.logger.With(
		zap.String("method", "single push"),
		zap.String("id", push.CorrelationID))

	chRes, err := i.sendPush(ctx, push, addr, l)
	if err != nil {
		return nil, err
	}

	byProject := make(map[string]*sendPushResult)
	for pushRes := range chRes {
		byProject[pushRes.ProjectID] = pushRes
	}

	projects := make([]string, 0, len(byProject))
	for projectID := range byProject {
		projects = append(projects, projectID)
	}
	sort.Strings(projects)

	res := &api.Response{
		CorrelationID:        push.CorrelationID,
		ProjectInvalidations: make(map[string][]string, len(projects)),
		Results:              make([]*api.Result, 0),
	}

	for _, projectID := range projects {
		pushRes := byProject[projectID]
		if len(pushRes.InvalidationDevices) > 0 {
			res.ProjectInvalidations[projectID] = pushRes.InvalidationDevices
		}
		res.Results = append(res.Results, pushRes.Results...)
	}

	return res, nil
}

func (i *impl) sendPush(ctx context.Context, push *api.Push, addr string, l *zap.Logger) (<-chan *sendPushResult, error) {

	if push.Body == nil {
		return nil, converter.ErrEmptyBody
	}

	targets := getTargets(push)
	if len(targets) == 0 {
		return nil, errEmptyPush
	}

	peerMetric, err := i.metric.GetPeerMetrics(addr)
	if err != nil {
		l.Error("get peer metric", zap.Error(err))
		return nil, err
	}

	peerMetric.Inc()

	chOut := make(chan *sendPushResult, len(targets))

	go func() {
		defer close(chOut)

		wg := sync.WaitGroup{}

		for projectID, projectTargets := range targets {
			projectLogger := l.With(zap.String("project id", projectID))

			w, err := i.getWorker(projectID)
			if err != nil {
				projectLogger.Error("get worker", zap.Error(err))

				pushRes := newSendPushResult(projectID)
				pushRes.fail(projectTargets, err)
				chOut <- pushRes
				continue
			}

			wg.Add(1)
			go func(projectWorker worker.IWorker, projectTargets []fcm.Target) {
				defer wg.Done()

				req := &worker.Request{
					Targets:       projectTargets,
					CorrelationID: push.CorrelationID,
					Payload:       push.Body,
				}

				pushRes := newSendPushResult(projectWorker.ProjectID())
				for res := range projectWorker.Send(ctx, req) {
					pushRes.add(res)
				}

				chOut <- pushRes

			}(w, projectTargets)
		}

		wg.Wait()
	}()

	return chOut, nil
}

func (i *impl) getWorker(projectID string) (worker.IWorker, error) {

	w, ok := i.workers[projectID]
	if !ok {
		return nil, errInvalidProjectID
	}

	return w, nil
}

// getTargets groups devices, topics and conditions by project
func getTargets(push *api.Push) map[string][]fcm.Target {

	retval := make(map[string][]fcm.Target)

	for projectID, devices := range push.Destinations {
		for _, device := range devices {
			retval[projectID] = append(retval[projectID], fcm.Token(device))
		}
	}

	for projectID, topic := range push.Topics {
		retval[projectID] = append(retval[projectID], fcm.Topic(topic))
	}

	for projectID, condition := range push.Conditions {
		retval[projectID] = append(retval[projectID], fcm.Condition(condition))
	}

	return retval
}

// getPeerAddr drops the port, metrics are labeled by host
func getPeerAddr(remoteAddr string) string {

	if remoteAddr == "" {
		return "unknown address"
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}

	return host
}

func getWorkers(cfg *Config, logger *zap.Logger, svcMetric *metric.Service) (map[string]worker.IWorker, error) {

	m := make(map[string]worker.IWorker, len(cfg.Fcm))

	for _, wConf := range cfg.Fcm {
		w, err := fcmworker.New(wConf, logger, svcMetric)
		if err != nil {
			return nil, errors.Wrap(err, "project ID: "+wConf.ProjectID)
		}

		projectID := w.ProjectID()
		if _, ok := m[projectID]; ok {
			return nil, errors.New("not unique project id of a worker:" + projectID)
		}

		m[projectID] = w
	}

	return m, nil
}
