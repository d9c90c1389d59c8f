// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"

	"github.com/staranto/utilsgo/internal/nested"
)

type Type struct {
	Source    string
	Namespace string
	Data      nested.Map

	// loaded is set once a lazy Load has been attempted.
	loaded bool
}

var Config Type

// Load reads the config file and makes it the global Config. An explicit
// path wins over UTILS_CFG and the standard locations.
func Load(cfgFilePath ...string) (Type, error) {
	var path string
	if len(cfgFilePath) > 0 && cfgFilePath[0] != "" {
		path = cfgFilePath[0]
	} else {
		var err error
		if path, err = getConfigPath(); err != nil {
			return Type{}, err
		}
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data nested.Map
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data,
		loaded:    true}

	return Config, nil
}

// get resolves a dotted key, trying <Namespace>.<kspec> before kspec.
func (cfg *Type) get(kspec string) (any, error) {
	data := cfg.Data
	if len(data) == 0 && !cfg.loaded {
		cfg.loaded = true
		if loaded, err := Load(cfg.Source); err == nil {
			data = loaded.Data
		}
	}

	var candidateKeys []string
	if cfg.Namespace != "" {
		candidateKeys = append(candidateKeys, cfg.Namespace+"."+kspec)
	}
	candidateKeys = append(candidateKeys, kspec)

	var lastErr error
	for _, key := range candidateKeys {
		val, err := nested.Lookup(data, key)
		if err == nil {
			return val, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("no valid path found among %v: %w", candidateKeys, lastErr)
}

func GetString(key string, defaultValue ...string) (string, error) {
	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return s, nil
}

func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

func GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, errors.New("value is not a bool")
	}

	return b, nil
}

// GetStringSlice returns a YAML sequence of strings. A scalar string is
// treated as a one-element slice.
func GetStringSlice(key string) ([]string, error) {
	val, err := Config.get(key)
	if err != nil {
		return nil, err
	}

	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("value at %s contains a non-string: %v", key, e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.New("value is not a list of strings")
	}
}

func getConfigPath() (string, error) {
	if p, ok := os.LookupEnv("UTILS_CFG"); ok && p != "" {
		fileInfo, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", p)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("UTILS_CFG points to a directory: %s", p)
		}
		log.Debugf("using config file: %s", p)
		return p, nil
	}

	var candidates []string = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, "utils.yaml")
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", fmt.Errorf("no config file found in standard locations")
}
