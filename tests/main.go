// Command mock-jira serves canned Jira REST v3 responses from JSON fixture
// files, for exercising jiraterm against a local endpoint.
//
// Fixtures live in the data directory:
//
//	search_<PROJECT>.json   search result for "project = <PROJECT> ..."
//	search_default.json     search result for any other JQL
//	issue_<KEY>.json        single issue payload
//	comments_<KEY>.json     comment page payload
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/containeroo/tinyflags"
	"gopkg.in/yaml.v3"
)

// Config is the mock server configuration root.
type Config struct {
	Port        int    `yaml:"port"`
	DataDir     string `yaml:"dataDir"`
	RandomDelay bool   `yaml:"randomDelay"`
	RequireAuth bool   `yaml:"requireAuth"` // reject requests without an Authorization header
}

// projectRe extracts the project key from a "project = KEY" JQL clause.
var projectRe = regexp.MustCompile(`(?i)project\s*=\s*"?([A-Za-z][A-Za-z0-9_]*)"?`)

func main() {
	var flagConfigPath string

	tf := tinyflags.NewFlagSet("mock-jira", tinyflags.ExitOnError)
	tf.StringVar(&flagConfigPath, "config", "", "Path to mock-jira config.yaml (required)").Value()

	if err := tf.Parse(os.Args[1:]); err != nil {
		log.Fatal("flag parse error:", err)
	}

	if strings.TrimSpace(flagConfigPath) == "" {
		log.Fatal("missing required --config=<path to yaml>")
	}

	cfg, err := loadConfig(flagConfigPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// absolute stays absolute
	if !filepath.IsAbs(cfg.DataDir) {
		base := filepath.Dir(flagConfigPath)
		cfg.DataDir, _ = filepath.Abs(filepath.Join(base, cfg.DataDir))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/search", withCommon(cfg, handleSearch(cfg)))
	mux.HandleFunc("/rest/api/3/issue/", withCommon(cfg, handleIssue(cfg)))

	addr := ":" + strconv.Itoa(cfg.Port)
	log.Printf("mock Jira listening on %s (data-dir: %s)", addr, cfg.DataDir)
	log.Fatal(http.ListenAndServe(addr, mux))
}

// loadConfig reads and validates the YAML configuration file.
func loadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(string(raw)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		cfg.Port = 8081
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./data"
	}
	return cfg, nil
}

// withCommon applies request logging, optional delay and the auth gate.
func withCommon(cfg Config, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.RandomDelay {
			applyRandomDelay(200, 1000)
		}
		logRequest(r)

		if cfg.RequireAuth && r.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, []byte(`{"errorMessages":["AUTHENTICATED_FAILED"]}`))
			return
		}
		next(w, r)
	}
}

// handleSearch serves /rest/api/3/search from search_<PROJECT>.json, sliced
// to the requested maxResults.
func handleSearch(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jql := r.URL.Query().Get("jql")

		token := "default"
		if m := projectRe.FindStringSubmatch(jql); len(m) == 2 {
			token = strings.ToUpper(m[1])
		}

		raw, err := os.ReadFile(filepath.Join(cfg.DataDir, fmt.Sprintf("search_%s.json", token)))
		if err != nil {
			raw, err = os.ReadFile(filepath.Join(cfg.DataDir, "search_default.json"))
			if err != nil {
				http.Error(w, "mock data not found for jql: "+jql, http.StatusNotFound)
				return
			}
		}

		limit := 50
		if v := r.URL.Query().Get("maxResults"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		page, err := slicedSearchPage(raw, limit)
		if err != nil {
			http.Error(w, "invalid mock JSON: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// handleIssue serves /rest/api/3/issue/{KEY} and /rest/api/3/issue/{KEY}/comment.
func handleIssue(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/rest/api/3/issue/")
		key, sub, _ := strings.Cut(rest, "/")
		if key == "" {
			http.Error(w, "missing issue key", http.StatusBadRequest)
			return
		}

		prefix := "issue"
		if sub == "comment" {
			prefix = "comments"
		}

		filePath := filepath.Join(cfg.DataDir, fmt.Sprintf("%s_%s.json", prefix, strings.ToUpper(key)))
		raw, err := os.ReadFile(filePath)
		if err != nil {
			writeJSON(w, http.StatusNotFound, []byte(`{"errorMessages":["Issue does not exist or you do not have permission to see it."]}`))
			return
		}
		writeJSON(w, http.StatusOK, raw)
	}
}

// slicedSearchPage truncates the issues array of a search fixture to limit
// and injects the paging counters Jira returns.
func slicedSearchPage(raw []byte, limit int) ([]byte, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	issues, _ := payload["issues"].([]any)
	total := len(issues)
	if limit < total {
		issues = issues[:limit]
	}

	payload["issues"] = issues
	payload["startAt"] = 0
	payload["maxResults"] = limit
	payload["total"] = total
	return json.Marshal(payload)
}

// writeJSON writes a JSON response with status and bytes.
func writeJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

// applyRandomDelay sleeps for a random duration between minMs and maxMs.
func applyRandomDelay(minMs, maxMs int) {
	if maxMs <= minMs {
		maxMs = minMs + 1
	}
	delta := rand.Intn(maxMs-minMs) + minMs
	time.Sleep(time.Duration(delta) * time.Millisecond)
}

// logRequest logs method, path and query with credentials redacted.
func logRequest(r *http.Request) {
	auth := "none"
	if r.Header.Get("Authorization") != "" {
		auth = "<redacted>"
	}
	log.Printf("REQ %s %s?%s auth=%s", r.Method, r.URL.Path, r.URL.RawQuery, auth)
}
