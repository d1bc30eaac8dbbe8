package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caraban-app/caraban-api/internal/logger"
	adapter "github.com/caraban-app/caraban-api/internal/logger/adapter/fiber"
)

// accessLogLine implements the loggers default json format.
type accessLogLine struct {
	Status int       `json:"status"`
	URI    string    `json:"URI"`
	Method string    `json:"method"`
	Time   time.Time `json:"time"`
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	stdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = stdout

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	return buf.String()
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		cfg        adapter.Config
		targetPath string
		wantOutput bool
	}{
		{
			name:       "no writers configured no output",
			cfg:        adapter.Config{},
			targetPath: "/",
			wantOutput: false,
		},
		{
			name: "console access log enabled json line",
			cfg: adapter.Config{
				Config: logger.Log{
					Console:                  logger.Console{Enabled: true},
					EnableAccessLogToConsole: true,
				},
			},
			targetPath: "/campsites",
			wantOutput: true,
		},
		{
			name: "health check calls not logged",
			cfg: adapter.Config{
				Config: logger.Log{
					Console:                  logger.Console{Enabled: true},
					EnableAccessLogToConsole: true,
					DisableCheckAlive:        true,
				},
				HealthURI: "/api/health",
			},
			targetPath: "/api/health",
			wantOutput: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := captureStdout(t, func() {
				app := fiber.New()
				app.Use(adapter.New(tc.cfg))
				app.Get(tc.targetPath, func(c *fiber.Ctx) error {
					return c.SendStatus(fiber.StatusOK)
				})

				resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.targetPath, nil))
				require.NoError(t, err)
				assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			})

			if !tc.wantOutput {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			var line accessLogLine
			require.NoError(t, json.Unmarshal([]byte(out), &line))
			assert.Equal(t, fiber.StatusOK, line.Status)
			assert.Equal(t, tc.targetPath, line.URI)
			assert.Equal(t, fiber.MethodGet, line.Method)
		})
	}
}
