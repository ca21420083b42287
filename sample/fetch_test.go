package sample

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/tmr232/resumable/await"
)

func TestFetchSubject(t *testing.T) {
	tests := []struct {
		name    string
		good    bool
		want    string
		wantLog string
	}{
		{"good response", true, "generators", "subject=generators"},
		{"bad response", false, "", "could not fetch data from the server"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))

			subject, err := await.Run(context.Background(), FetchSubject(FakeFetch(tt.good, 0), log))
			require.NoError(t, err)
			assert.Equal(t, tt.want, subject)
			assert.Contains(t, buf.String(), tt.wantLog)
		})
	}
}
