package worker

import (
	"github.com/spf13/viper"
)

type Config struct {
	ProjectID    string `mapstructure:"project-id"`
	NopMode      bool   `mapstructure:"nop-mode"`
	CountThreads int    `mapstructure:"workers"`
}

func NewConfig(src *viper.Viper) (*Config, error) {

	c := &Config{}
	if err := src.Unmarshal(c); err != nil {
		return nil, err
	}

	return c, nil
}
