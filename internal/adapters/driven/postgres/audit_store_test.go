package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

func TestCountsRoundTrip(t *testing.T) {
	counts := domain.CategoryCounts{
		domain.CategoryEmail:  2,
		domain.CategoryPerson: 1,
	}

	data, err := encodeCounts(counts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"EMAIL":2,"PER":1}`, string(data))

	decoded, err := decodeCounts(data)
	require.NoError(t, err)
	assert.Equal(t, counts, decoded)
}

func TestEncodeCounts_Nil(t *testing.T) {
	data, err := encodeCounts(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestDecodeCounts_Empty(t *testing.T) {
	decoded, err := decodeCounts(nil)
	require.NoError(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)

	_, err = decodeCounts([]byte("not json"))
	assert.Error(t, err)
}

func TestNullString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, NullString(""))
	assert.Equal(t, sql.NullString{String: "text/plain", Valid: true}, NullString("text/plain"))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("postgres://localhost/scrub")
	assert.Equal(t, "postgres://localhost/scrub", cfg.URL)
	assert.Positive(t, cfg.MaxOpenConns)
	assert.Positive(t, cfg.ConnMaxLifetime)
	assert.Positive(t, cfg.ConnectAttempts)
}

func TestConnect_GivesUpAfterAttempts(t *testing.T) {
	cfg := DefaultConfig("postgres://scrub@127.0.0.1:1/scrub?sslmode=disable&connect_timeout=1")
	cfg.ConnectAttempts = 2
	cfg.RetryDelay = time.Millisecond

	db, err := Connect(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestConnect_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig("postgres://scrub@127.0.0.1:1/scrub?sslmode=disable")
	cfg.RetryDelay = time.Hour

	_, err := Connect(ctx, cfg)
	require.Error(t, err)
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS redaction_events")
}
