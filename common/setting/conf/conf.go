package conf

import (
	"encoding/json"
	"os"
)

type config struct {
	Log struct {
		Level string `json:"level,omitempty"`
	} `json:"log,omitempty"`
	Timeout  int64 `json:"timeout,omitempty"`
	Inbounds []struct {
		Tag      string `json:"tag,omitempty"`
		Listen   string `json:"listen,omitempty"`
		Mode     string `json:"mode,omitempty"`
		Forward  string `json:"forward,omitempty"`
		Sniffing bool   `json:"sniffing,omitempty"`
	} `json:"inbounds,omitempty"`
}

func unmarshal(path string) (config, error) {
	var conf config

	data, err := os.ReadFile(path)
	if err != nil {
		return conf, newError("failed to read config %s", path).WithError(err)
	}

	if err := json.Unmarshal(data, &conf); err != nil {
		return conf, newError("failed to parse config %s", path).WithError(err)
	}

	return conf, nil
}
