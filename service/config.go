package service

import (
	"fmt"
	"time"

	"github.com/dialogs/dialog-push-fcm/pkg/worker/fcm"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	keyFcm = "fcm"

	defaultHTTPPort        = "8011"
	defaultShutdownTimeout = 5 * time.Second
	defaultMaxBodySize     = 1 << 20
)

type Config struct {
	Fcm             []*fcm.Config `mapstructure:"-"`
	HTTPPort        string        `mapstructure:"http-port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	MaxBodySize     int64         `mapstructure:"max-body-size"`
}

func NewConfig(src *viper.Viper) (*Config, error) {

	c := &Config{}
	err := src.Unmarshal(c)
	if err != nil {
		return nil, err
	}

	if c.HTTPPort == "" {
		c.HTTPPort = defaultHTTPPort
	}

	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}

	if c.MaxBodySize <= 0 {
		c.MaxBodySize = defaultMaxBodySize
	}

	c.Fcm, err = getFcmConfig(src)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func getFcmConfig(src *viper.Viper) ([]*fcm.Config, error) {

	srcList, err := getConfigListByKey(src, keyFcm)
	if err != nil {
		return nil, err
	}

	retval := make([]*fcm.Config, 0, len(srcList))
	for i, item := range srcList {
		cfg, err := fcm.NewConfig(item)
		if err != nil {
			return nil, errors.Wrapf(err, "%s #%d", keyFcm, i)
		}

		retval = append(retval, cfg)
	}

	return retval, nil
}

func getConfigListByKey(src *viper.Viper, key string) ([]*viper.Viper, error) {

	sub := src.Get(key)
	if sub == nil {
		return make([]*viper.Viper, 0), nil
	}

	arr, ok := sub.([]interface{})
	if !ok {
		return nil, errors.New("is not array:" + key)
	}

	retval := make([]*viper.Viper, 0, len(arr))
	for i, item := range arr {
		dest := viper.New()

		switch m := item.(type) {
		case map[string]interface{}:
			for k, v := range m {
				dest.Set(k, v)
			}

		case map[interface{}]interface{}:
			for k, v := range m {
				kStr, ok := k.(string)
				if !ok {
					return nil, fmt.Errorf("invalid key '%s.%v'", key, k)
				}

				dest.Set(kStr, v)
			}

		default:
			return nil, fmt.Errorf("invalid array item #%d: '%s'", i, key)
		}

		retval = append(retval, dest)
	}

	return retval, nil
}
