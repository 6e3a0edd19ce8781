package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Env struct {
	AppPort       int           `envconfig:"APP_PORT"       default:"8080"`
	DBPath        string        `envconfig:"DB_PATH"        default:"links.db"`
	BaseURL       string        `envconfig:"BASE_URL"       default:"http://localhost:8080"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`
	Debug         bool          `envconfig:"DEBUG"          default:"false"`
}

func Process() (env Env, err error) {
	err = envconfig.Process("", &env)
	return
}
