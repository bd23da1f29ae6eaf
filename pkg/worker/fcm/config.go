package fcm

import (
	"encoding/json"
	"time"

	"github.com/dialogs/dialog-push-fcm/pkg/converter/api2fcm"
	"github.com/dialogs/dialog-push-fcm/pkg/worker"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const maxServiceAccountSize = 64 << 10

var ErrEmptyProjectID = errors.New("invalid `project-id`")

type Config struct {
	*worker.Config `mapstructure:"-"`
	APIConfig      *api2fcm.Config `mapstructure:"-"`

	// Path to service account:
	// https://console.firebase.google.com/project/_/settings/serviceaccounts/adminsdk
	ServiceAccount string `mapstructure:"service-account"`

	// gateway base URL, the public one if empty
	Endpoint     string        `mapstructure:"endpoint"`
	ValidateOnly bool          `mapstructure:"validate-only"`
	SendTimeout  time.Duration `mapstructure:"send-timeout"`
}

func NewConfig(src *viper.Viper) (*Config, error) {

	c := &Config{}
	err := src.Unmarshal(c)
	if err != nil {
		return nil, err
	}

	c.Config, err = worker.NewConfig(src)
	if err != nil {
		return nil, err
	}

	c.APIConfig, err = api2fcm.NewConfig(src)
	if err != nil {
		return nil, err
	}

	serviceAccount, err := worker.ReadFile(c.ServiceAccount, maxServiceAccountSize)
	if err != nil {
		return nil, errors.Wrap(err, "path to service-account")
	}

	if len(c.ProjectID) == 0 {
		account := &struct {
			ProjectID string `json:"project_id"`
		}{}

		if err := json.Unmarshal(serviceAccount, account); err != nil {
			return nil, errors.Wrap(err, "service-account")
		}

		c.ProjectID = account.ProjectID
	}

	if len(c.ProjectID) == 0 {
		return nil, ErrEmptyProjectID
	}

	return c, nil
}
