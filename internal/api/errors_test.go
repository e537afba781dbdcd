package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorForStatus(t *testing.T) {
	cases := []struct {
		name string
		code int
		body string
		want error
	}{
		{"unauthorized", 401, "missing api key", ErrAccessDenied},
		{"forbidden", 403, "invalid api key", ErrAccessDenied},
		{"range not satisfiable", 416, "offset too large", ErrOffset},
		{"too many requests", 429, "daily quota exceeded", ErrQuotaExceeded},
		{"service unavailable", 503, "too many concurrent queries", ErrConcurrencyExceeded},
		{"not found", 404, "no such endpoint", ErrQuery},
		{"server error", 500, "", ErrQuery},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := errorForStatus(tc.code, tc.body)
			require.ErrorIs(t, err, tc.want)
			if tc.body != "" {
				assert.Contains(t, err.Error(), tc.body)
			}
		})
	}
}

func TestErrorForStatusSuccess(t *testing.T) {
	assert.NoError(t, errorForStatus(200, ""))
	assert.NoError(t, errorForStatus(204, ""))
}

func TestErrorForStatusEmptyBody(t *testing.T) {
	err := errorForStatus(403, "")
	assert.Equal(t, ErrAccessDenied, err, "no message means the bare sentinel")
}

func TestWrapMsg(t *testing.T) {
	assert.Equal(t, ErrQueryLimited, wrapMsg(ErrQueryLimited, ""))

	err := wrapMsg(ErrQueryFailed, "backend gone")
	require.ErrorIs(t, err, ErrQueryFailed)
	assert.Equal(t, "dnsdb: query failed: backend gone", err.Error())
}
