package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/at-ishikawa/wikiquiz/internal/testutil"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// quizServer is a fake quiz service that knows the quiz with id 7.
type quizServer struct {
	*httptest.Server
	requests atomic.Int32
}

func newQuizServer(t *testing.T) *quizServer {
	t.Helper()
	server := &quizServer{}

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate_quiz", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
			return
		}
		if strings.HasSuffix(body.URL, "Rate_limit") {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"detail": "quota exceeded"})
			return
		}
		writeJSON(w, http.StatusOK, testutil.NewQuiz(7))
	})
	mux.HandleFunc("GET /history", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7,"title":"Alan Turing","url":"https://en.wikipedia.org/wiki/Alan_Turing","date_generated":"2024-05-01T10:00:00"}]`))
	})
	mux.HandleFunc("GET /quiz/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		if id != 7 {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Quiz not found"})
			return
		}
		writeJSON(w, http.StatusOK, testutil.NewQuiz(7))
	})

	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

// executeCommand runs the root command with args against a config pointing at server.
func executeCommand(t *testing.T, server *quizServer, stdin string, args ...string) (string, error) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = noColor
	})

	cfgPath := testutil.SetupTestConfig(t, t.TempDir(), server.URL)
	return executeWithConfig(t, cfgPath, stdin, args...)
}

func executeWithConfig(t *testing.T, cfgPath string, stdin string, args ...string) (string, error) {
	t.Helper()
	oldConfigFile := configFile
	t.Cleanup(func() { configFile = oldConfigFile })

	var out bytes.Buffer
	rootCommand := newRootCommand()
	rootCommand.SetArgs(append(args, "--config", cfgPath))
	rootCommand.SetIn(strings.NewReader(stdin))
	rootCommand.SetOut(&out)
	rootCommand.SetErr(&out)
	err := rootCommand.Execute()
	return out.String(), err
}
