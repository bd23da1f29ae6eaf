package fcm

import (
	"github.com/dialogs/dialog-push-fcm/pkg/converter/api2fcm"
	"github.com/dialogs/dialog-push-fcm/pkg/credential"
	"github.com/dialogs/dialog-push-fcm/pkg/metric"
	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
	"github.com/dialogs/dialog-push-fcm/pkg/transport"
	"github.com/dialogs/dialog-push-fcm/pkg/worker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Worker struct {
	*worker.Worker
	provider *fcm.Client
}

func New(cfg *Config, logger *zap.Logger, svcMetric *metric.Service) (*Worker, error) {

	serviceAccount, err := worker.ReadFile(cfg.ServiceAccount, maxServiceAccountSize)
	if err != nil {
		return nil, err
	}

	credentials, err := credential.NewServiceAccount(serviceAccount)
	if err != nil {
		return nil, err
	}

	opts := []fcm.Option{
		fcm.WithValidateOnly(cfg.ValidateOnly),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, fcm.WithEndpoint(cfg.Endpoint))
	}

	provider, err := fcm.New(cfg.ProjectID, transport.NewHTTP(cfg.SendTimeout), credentials, opts...)
	if err != nil {
		return nil, err
	}

	reqConverter, err := api2fcm.NewRequestConverter(cfg.APIConfig)
	if err != nil {
		return nil, errors.Wrap(err, "converter")
	}

	w := &Worker{
		provider: provider,
	}

	w.Worker, err = worker.New(
		cfg.Config,
		logger.With(zap.Bool("validate only", provider.ValidateOnly())),
		svcMetric,
		reqConverter,
		provider,
	)
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Worker) ValidateOnly() bool {
	return w.provider.ValidateOnly()
}
