package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/DRSN-tech/product-catalog/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "catalog")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "catalog")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("JWT_SECRET", "jwt-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	c, err := Load(logger.NewNopLogger())
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Http.Port)
	assert.Equal(t, 5*time.Second, c.Http.ReadTimeout)
	assert.Equal(t, "http://localhost:8080/swagger/doc.json", c.Http.SwaggerURL)
	assert.Equal(t, "8091", c.Grpc.Port)
	assert.Equal(t, "localhost", c.Db.Host)
	assert.Equal(t, int32(10), c.Db.MaxConns)
	assert.Equal(t, "db/migrations", c.Db.MigrationsPath)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "catalog.products", c.Kafka.Topic)
	assert.Equal(t, 3*time.Second, c.Redis.Timeout)
	assert.Equal(t, 10*time.Minute, c.Redis.ProductTTL)
	assert.Equal(t, "product-images", c.Minio.BucketName)
	assert.Equal(t, int64(15<<20), c.Minio.MaxImageSize)
	assert.Equal(t, "jwt-secret", c.Auth.JWTSecret)
	assert.Equal(t, 10, c.Outbox.BatchSize)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("REDIS_TIMEOUT", "7s")
	t.Setenv("OUTBOX_BATCH_SIZE", "50")
	t.Setenv("POSTGRES_MAX_CONNS", "4")

	c, err := Load(logger.NewNopLogger())
	require.NoError(t, err)

	assert.Equal(t, "9000", c.Http.Port)
	assert.Equal(t, 7*time.Second, c.Redis.Timeout)
	assert.Equal(t, 50, c.Outbox.BatchSize)
	assert.Equal(t, int32(4), c.Db.MaxConns)
}

func TestLoadRequiredVariables(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{name: "postgres user", unset: "POSTGRES_USER"},
		{name: "kafka brokers", unset: "KAFKA_BROKERS"},
		{name: "jwt secret", unset: "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load(logger.NewNopLogger())
			assert.Error(t, err)
		})
	}
}

func TestLoadInvalidValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OUTBOX_BATCH_SIZE", "0")

	_, err := Load(logger.NewNopLogger())
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)

	t.Setenv("OUTBOX_BATCH_SIZE", "10")
	t.Setenv("HTTP_READ_TIMEOUT", "soon")
	_, err = Load(logger.NewNopLogger())
	assert.Error(t, err)
}

func TestLoadRejectsZeroPollInterval(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OUTBOX_POLL_INTERVAL", "0s")

	_, err := Load(logger.NewNopLogger())
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
}

func TestRequireEnvListsMissing(t *testing.T) {
	t.Setenv("CATALOG_A", "a")
	t.Setenv("CATALOG_B", "")
	t.Setenv("CATALOG_C", "")

	_, err := requireEnv("CATALOG_A", "CATALOG_B", "CATALOG_C")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_B, CATALOG_C")

	values, err := requireEnv("CATALOG_A")
	require.NoError(t, err)
	assert.Equal(t, "a", values["CATALOG_A"])
}
