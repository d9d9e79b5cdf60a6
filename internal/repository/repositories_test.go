package repository

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestQueryTimer_Observe(t *testing.T) {
	tests := []struct {
		name      string
		threshold time.Duration
		elapsed   time.Duration
		wantLog   bool
	}{
		{name: "disabled threshold", threshold: 0, elapsed: time.Second, wantLog: false},
		{name: "fast call", threshold: time.Hour, elapsed: 0, wantLog: false},
		{name: "slow call", threshold: time.Millisecond, elapsed: time.Second, wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			timer := queryTimer{logger: &logger, collection: "alunos", threshold: tt.threshold}
			timer.observe("find_all", time.Now().Add(-tt.elapsed))

			logged := strings.Contains(buf.String(), "slow query")
			if logged != tt.wantLog {
				t.Fatalf("logged = %v, want %v (output %q)", logged, tt.wantLog, buf.String())
			}
			if logged && !strings.Contains(buf.String(), `"collection":"alunos"`) {
				t.Fatalf("missing collection field: %s", buf.String())
			}
		})
	}
}
