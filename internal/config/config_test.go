package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{Type: "firestore"},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidatePortRange(t *testing.T) {
	c := validConfig()
	c.Server.Port = 0
	assert.Error(t, c.Validate())

	c.Server.Port = 70000
	assert.Error(t, c.Validate())
}

func TestValidateStorageType(t *testing.T) {
	c := validConfig()
	c.Storage.Type = "memory"
	assert.NoError(t, c.Validate())

	c.Storage.Type = "dynamo"
	assert.Error(t, c.Validate())
}

func TestValidateDatabaseFields(t *testing.T) {
	c := validConfig()
	c.Database.Host = "localhost"
	assert.Error(t, c.Validate(), "DB_HOST without user/name must be rejected")

	c.Database.User = "nearchat"
	c.Database.DBName = "nearchat"
	assert.NoError(t, c.Validate())
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "nearchat", Password: "secret",
		DBName: "nearchat", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=nearchat password=secret dbname=nearchat sslmode=disable",
		c.GetDSN(),
	)
}

func TestGetAddr(t *testing.T) {
	c := RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", c.GetAddr())
}
