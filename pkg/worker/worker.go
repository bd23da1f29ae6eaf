package worker

import (
	"context"
	"runtime"

	"github.com/dialogs/dialog-push-fcm/pkg/api"
	"github.com/dialogs/dialog-push-fcm/pkg/converter"
	"github.com/dialogs/dialog-push-fcm/pkg/metric"
	"github.com/dialogs/dialog-push-fcm/pkg/provider"
	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrEmptyTargets = errors.New("push without targets")

type Worker struct {
	projectID    string
	nopMode      bool
	threads      chan struct{}
	logger       *zap.Logger
	metric       *metric.Provider
	reqConverter converter.IRequestConverter
	sender       Sender
}

func New(
	cfg *Config,
	logger *zap.Logger,
	svcMetric *metric.Service,
	reqConverter converter.IRequestConverter,
	sender Sender,
) (*Worker, error) {

	countThreads := cfg.CountThreads
	if countThreads <= 0 {
		countThreads = runtime.NumCPU()
	}

	threads := make(chan struct{}, countThreads)
	for i := 0; i < countThreads; i++ {
		threads <- struct{}{}
	}

	providerMetric, err := svcMetric.GetProviderMetrics(cfg.ProjectID)
	if err != nil {
		return nil, err
	}

	return &Worker{
		projectID:    cfg.ProjectID,
		nopMode:      cfg.NopMode,
		threads:      threads,
		logger:       logger.With(zap.String("project id", cfg.ProjectID)),
		metric:       providerMetric,
		reqConverter: reqConverter,
		sender:       sender,
	}, nil
}

func (w *Worker) ProjectID() string {
	return w.projectID
}

func (w *Worker) NoOpMode() bool {
	return w.nopMode
}

// Send converts the payload for every target and sends it, one response
// per target. Targets left when ctx is canceled are answered with
// ctx.Err(). The channel is closed when every target is answered.
func (w *Worker) Send(ctx context.Context, req *Request) <-chan *Response {

	size := len(req.Targets)
	if size == 0 {
		size = 1
	}
	ch := make(chan *Response, size)

	var reserved struct{}
	select {
	case reserved = <-w.threads:
	case <-ctx.Done():
		if len(req.Targets) == 0 {
			ch <- &Response{ProjectID: w.projectID, Error: ctx.Err()}
		}
		for _, target := range req.Targets {
			ch <- &Response{ProjectID: w.projectID, Target: target, Error: ctx.Err()}
		}
		close(ch)
		return ch
	}

	go func() {
		defer func() { w.threads <- reserved }()
		defer close(ch)

		l := w.logger.With(zap.String("id", req.CorrelationID))

		if len(req.Targets) == 0 {
			l.Error(ErrEmptyTargets.Error())

			ch <- &Response{
				ProjectID: w.projectID,
				Error:     ErrEmptyTargets,
			}
			return
		}

		for _, target := range req.Targets {
			resp := &Response{
				ProjectID: w.projectID,
				Target:    target,
			}

			// hide device token to hash
			tl := l.With(zap.String("target", TargetName(target)))

			if err := ctx.Err(); err != nil {
				// every target gets an answer, the rest are not sent
				resp.Error = err
			} else {
				resp.MessageName, resp.Error = w.send(ctx, tl, req.Payload, target)
			}

			ch <- resp
		}
	}()

	return ch
}

func (w *Worker) send(ctx context.Context, l *zap.Logger, payload *api.PushBody, target fcm.Target) (string, error) {

	msg, err := w.reqConverter.Convert(payload, target)
	if err != nil {
		l.Error("convert incoming message", zap.Error(err))
		return "", err
	}

	if ce := l.Check(zap.DebugLevel, "message"); ce != nil {
		body, errEncode := provider.JSONWithoutSecrets(msg)
		if errEncode != nil {
			body = []byte(errEncode.Error())
		}
		ce.Write(zap.ByteString("body", body))
	}

	if w.nopMode {
		l.Info("nop mode")
		return "", nil
	}

	timerCancel := w.metric.NewIOTimer()
	answer, err := w.sender.Send(ctx, msg)
	timerCancel()

	if err != nil {
		w.metric.FailsInc(fcm.KindOf(err).String())
		l.Error("failed to send",
			zap.Error(err),
			zap.Bool("retryable", fcm.IsRetryable(err)),
			zap.Bool("invalid token", isInvalidToken(err)))
		return "", err
	}

	w.metric.SuccessInc()
	l.Info("success send", zap.String("message id", answer.MessageID()))

	return answer.Name, nil
}

func isInvalidToken(err error) bool {
	var sendErr *fcm.Error
	return errors.As(err, &sendErr) && sendErr.InvalidToken()
}
