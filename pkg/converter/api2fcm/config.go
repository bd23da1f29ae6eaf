package api2fcm

import (
	"github.com/spf13/viper"
)

type Config struct {
	AllowAlerts bool `mapstructure:"allow-alerts"`

	// applied when the push has no android priority, e.g. "HIGH"
	AndroidPriority string `mapstructure:"android-priority"`
}

func NewConfig(src *viper.Viper) (*Config, error) {

	c := &Config{}
	if err := src.Unmarshal(c); err != nil {
		return nil, err
	}

	return c, nil
}
