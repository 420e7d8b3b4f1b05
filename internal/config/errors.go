package config

import "errors"

// Sentinel errors for configuration loading.
var (
	ErrLoadFile      = errors.New("loading config file failed")
	ErrLoadEnv       = errors.New("loading environment failed")
	ErrUnmarshal     = errors.New("unmarshalling config failed")
	ErrInvalidConfig = errors.New("invalid config")
)
