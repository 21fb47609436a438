package config

import "github.com/ilyakaznacheev/cleanenv"

// Reader loads a Config from some source. The only implementation
// reads process env vars; a .env file is loaded beforehand by the
// app package via godotenv.
type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
