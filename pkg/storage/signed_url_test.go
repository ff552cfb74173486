package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndParse(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	signer := NewSignedURLSigner("secret", time.Hour).WithClock(func() time.Time { return now })

	token, expiresAt, err := signer.Generate("job-1", "exports/job-1.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, now.Add(time.Hour), expiresAt)

	jobID, path, parsedExpiry, err := signer.Parse(token, false)
	require.NoError(t, err)
	require.Equal(t, "job-1", jobID)
	require.Equal(t, "exports/job-1.csv", path)
	require.True(t, expiresAt.Equal(parsedExpiry))
}

func TestSignedURLSignerExpired(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	signer := NewSignedURLSigner("secret", time.Minute).WithClock(func() time.Time { return now })
	token, _, err := signer.Generate("job-1", "exports/job-1.csv")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)

	_, _, _, err = signer.Parse(token, false)
	require.EqualError(t, err, "token expired")

	jobID, path, _, err := signer.Parse(token, true)
	require.NoError(t, err)
	require.Equal(t, "job-1", jobID)
	require.Equal(t, "exports/job-1.csv", path)
}

func TestSignedURLSignerRejectsForeignSecret(t *testing.T) {
	token, _, err := NewSignedURLSigner("secret", time.Hour).Generate("job-1", "exports/job-1.csv")
	require.NoError(t, err)

	_, _, _, err = NewSignedURLSigner("other", time.Hour).Parse(token, false)
	require.Error(t, err)

	_, _, _, err = NewSignedURLSigner("secret", time.Hour).Parse("not.a.token", false)
	require.Error(t, err)
}

func TestSignedURLSignerRequiresInputs(t *testing.T) {
	_, _, err := NewSignedURLSigner("secret", time.Hour).Generate("", "exports/x.csv")
	require.Error(t, err)

	_, _, err = NewSignedURLSigner("", time.Hour).Generate("job-1", "exports/x.csv")
	require.Error(t, err)
}
