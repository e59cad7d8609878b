package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	require.NotNil(t, cfg.Auth)
	require.NotNil(t, cfg.Storage)
	require.NotNil(t, cfg.Metrics)
	require.NotNil(t, cfg.Migration)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, defaultAccessTokenTTL, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, defaultIssuer, cfg.Auth.Issuer)
	assert.False(t, cfg.Auth.ProtectProducts)
	assert.Equal(t, defaultBucketURL, cfg.Storage.BucketURL)
	assert.Equal(t, defaultStoragePrefix, cfg.Storage.Prefix)
	assert.Equal(t, defaultPublicPath, cfg.Storage.PublicPath)
	assert.Equal(t, int64(defaultMaxImageBytes), cfg.Storage.MaxImageBytes)
	assert.False(t, cfg.Storage.RetainImageOnDelete)
	assert.Equal(t, defaultMetricsPath, cfg.Metrics.Path)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Auth: &AuthConfig{
			BcryptCost:     4,
			AccessTokenTTL: 5 * time.Minute,
			Issuer:         "test",
		},
		Storage: &StorageConfig{
			BucketURL:     "mem://",
			Prefix:        "uploads/",
			PublicPath:    "media/",
			MaxImageBytes: 1024,
		},
	}

	applyDefaults(cfg)

	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "test", cfg.Auth.Issuer)
	assert.Equal(t, "mem://", cfg.Storage.BucketURL)
	assert.Equal(t, "uploads/", cfg.Storage.Prefix)
	assert.Equal(t, "/media", cfg.Storage.PublicPath, "public path is normalized to a leading slash without trailing slash")
	assert.Equal(t, int64(1024), cfg.Storage.MaxImageBytes)
}
