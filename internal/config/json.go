// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		Env                   string   `json:"env"`
		TokenSignKey          string   `json:"token_sign_key"`
		TokenIssuer           string   `json:"token_issuer"`
		TokenDuration         Duration `json:"token_duration"`
		RememberTokenDuration Duration `json:"remember_token_duration"`
		BcryptCost            int      `json:"bcrypt_cost"`
		Version               string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN             string   `json:"dsn"`
			MaxOpenConns    int      `json:"max_open_conns"`
			MaxIdleConns    int      `json:"max_idle_conns"`
			ConnMaxLifetime Duration `json:"conn_max_lifetime"`
			AutoMigrate     bool     `json:"auto_migrate"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`

		Blob struct {
			Endpoint      string `json:"endpoint"`
			AccessKey     string `json:"access_key"`
			SecretKey     string `json:"secret_key"`
			UseSSL        bool   `json:"use_ssl"`
			PublicBucket  string `json:"public_bucket"`
			PrivateBucket string `json:"private_bucket"`
			PublicURL     string `json:"public_url"`
			LocalDir      string `json:"local_dir"`
		} `json:"blob,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		CORSOrigins     []string `json:"cors_origins"`
		LoginRate       float64  `json:"login_rate"`
		LoginBurst      int      `json:"login_burst"`
		MaxUploadSize   int64    `json:"max_upload_size"`
	} `json:"server,omitempty"`

	Workers struct {
		LimiterCleanupInterval Duration `json:"limiter_cleanup_interval"`
		LimiterIdleTTL         Duration `json:"limiter_idle_ttl"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Env:                   jsonCfg.App.Env,
			TokenSignKey:          jsonCfg.App.TokenSignKey,
			TokenIssuer:           jsonCfg.App.TokenIssuer,
			TokenDuration:         time.Duration(jsonCfg.App.TokenDuration),
			RememberTokenDuration: time.Duration(jsonCfg.App.RememberTokenDuration),
			BcryptCost:            jsonCfg.App.BcryptCost,
			Version:               jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN:             jsonCfg.Storage.DB.DSN,
				MaxOpenConns:    jsonCfg.Storage.DB.MaxOpenConns,
				MaxIdleConns:    jsonCfg.Storage.DB.MaxIdleConns,
				ConnMaxLifetime: time.Duration(jsonCfg.Storage.DB.ConnMaxLifetime),
				AutoMigrate:     jsonCfg.Storage.DB.AutoMigrate,
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
			Blob: Blob{
				Endpoint:      jsonCfg.Storage.Blob.Endpoint,
				AccessKey:     jsonCfg.Storage.Blob.AccessKey,
				SecretKey:     jsonCfg.Storage.Blob.SecretKey,
				UseSSL:        jsonCfg.Storage.Blob.UseSSL,
				PublicBucket:  jsonCfg.Storage.Blob.PublicBucket,
				PrivateBucket: jsonCfg.Storage.Blob.PrivateBucket,
				PublicURL:     jsonCfg.Storage.Blob.PublicURL,
				LocalDir:      jsonCfg.Storage.Blob.LocalDir,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			CORSOrigins:     jsonCfg.Server.CORSOrigins,
			LoginRate:       jsonCfg.Server.LoginRate,
			LoginBurst:      jsonCfg.Server.LoginBurst,
			MaxUploadSize:   jsonCfg.Server.MaxUploadSize,
		},
		Workers: Workers{
			LimiterCleanupInterval: time.Duration(jsonCfg.Workers.LimiterCleanupInterval),
			LimiterIdleTTL:         time.Duration(jsonCfg.Workers.LimiterIdleTTL),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
