// Package env loads and validates process configuration from the
// environment. Everything the process needs is resolved once at boot;
// nothing else reads os.Getenv.
package env

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
)

// Params is the resolved process configuration.
type Params struct {
	MasterDBURL string // required; go-sql-driver DSN for the write pool
	SlaveDBURL  string // read pool DSN; defaults to MasterDBURL
	RedisURL    string // required; redis:// URL for the index store

	Port           string // required; HTTP listen port
	GRPCServerPort string // master: config replication listen port
	GRPCServerURL  string // replica: master's replication endpoint

	MasterNode bool   // SERVICE_NODE == "master" (the default)
	AdminToken string // master: bearer token gating config mutations

	LogLevel zapcore.Level
	IsDev    bool // ENV == "dev" relaxes the HTTP hardening for local work
}

// Load reads the environment and applies defaults. It fails fast on a
// missing required variable so a misconfigured node never half-starts.
func Load() (*Params, error) {
	p := &Params{
		MasterDBURL:    os.Getenv("MASTER_DB_URL"),
		SlaveDBURL:     os.Getenv("SLAVE_DB_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		Port:           os.Getenv("PORT"),
		GRPCServerPort: os.Getenv("GRPC_SERVER_PORT"),
		GRPCServerURL:  os.Getenv("GRPC_SERVER_URL"),
		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		IsDev:          os.Getenv("ENV") == "dev",
	}

	if p.MasterDBURL == "" {
		return nil, fmt.Errorf("env var `MASTER_DB_URL` is not set")
	}
	if p.RedisURL == "" {
		return nil, fmt.Errorf("env var `REDIS_URL` is not set")
	}
	if p.Port == "" {
		return nil, fmt.Errorf("env var `PORT` is not set")
	}
	if p.SlaveDBURL == "" {
		p.SlaveDBURL = p.MasterDBURL
	}

	node := os.Getenv("SERVICE_NODE")
	if node == "" {
		node = "master"
	}
	p.MasterNode = node == "master"

	if p.MasterNode {
		if p.GRPCServerPort == "" {
			return nil, fmt.Errorf("env var `GRPC_SERVER_PORT` is not set (required on the master node)")
		}
		if p.AdminToken == "" {
			return nil, fmt.Errorf("env var `ADMIN_TOKEN` is not set (required on the master node)")
		}
	} else if p.GRPCServerURL == "" {
		return nil, fmt.Errorf("env var `GRPC_SERVER_URL` is not set (required on replica nodes)")
	}

	level := zapcore.DebugLevel
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		parsed, err := zapcore.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("parse `LOG_LEVEL`: %w", err)
		}
		level = parsed
	}
	p.LogLevel = level

	return p, nil
}
