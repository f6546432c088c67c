package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// dataDir is the repository folder holding one JSON file per month:
// fitness_data/2026/10.json.
const dataDir = "fitness_data"

var errNoToken = errors.New("github token not configured")

// monthSource reads and writes the records of one calendar month.
// A month with no file loads as an empty slice.
type monthSource interface {
	LoadMonth(ctx context.Context, year int, month time.Month) ([]DailyRecord, error)
	SaveMonth(ctx context.Context, year int, month time.Month, records []DailyRecord) error
	ListMonths(ctx context.Context, year int) ([]time.Month, error)
}

// recordStore serves daily records from a monthSource. Writes are
// read-modify-write on the month file and are serialised.
type recordStore struct {
	mu  sync.Mutex
	src monthSource
}

func newRecordStore(src monthSource) *recordStore {
	return &recordStore{src: src}
}

// newStoreFromConfig picks DATA_DIR when set, then GITHUB_REPO, and falls
// back to the working directory.
func newStoreFromConfig(cfg config) *recordStore {
	if cfg.DataDir != "" {
		return newRecordStore(dirSource{root: cfg.DataDir})
	}
	if cfg.Repo == "" {
		return newRecordStore(dirSource{root: "."})
	}
	return newRecordStore(&githubSource{
		client: &http.Client{Timeout: 15 * time.Second},
		token:  cfg.Token,
		repo:   cfg.Repo,
		branch: cfg.Branch,
		apiURL: strings.TrimRight(cfg.GitHubAPIURL, "/"),
		rawURL: strings.TrimRight(cfg.GitHubRawURL, "/"),
	})
}

func (s *recordStore) Get(ctx context.Context, date string) (DailyRecord, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return DailyRecord{}, fmt.Errorf("%w: date %q", errInvalidRecord, date)
	}
	records, err := s.src.LoadMonth(ctx, t.Year(), t.Month())
	if err != nil {
		return DailyRecord{}, err
	}
	for _, r := range records {
		if r.Date == date {
			return r, nil
		}
	}
	return DailyRecord{}, fmt.Errorf("%s: %w", date, errRecordNotFound)
}

func (s *recordStore) Month(ctx context.Context, year int, month time.Month) ([]DailyRecord, error) {
	return s.src.LoadMonth(ctx, year, month)
}

func (s *recordStore) Year(ctx context.Context, year int) ([]DailyRecord, error) {
	months, err := s.src.ListMonths(ctx, year)
	if err != nil {
		return nil, err
	}
	var records []DailyRecord
	for _, m := range months {
		monthRecords, err := s.src.LoadMonth(ctx, year, m)
		if err != nil {
			return nil, err
		}
		records = append(records, monthRecords...)
	}
	return records, nil
}

// Put replaces the record with the same date or adds it.
func (s *recordStore) Put(ctx context.Context, rec DailyRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	t, _ := time.Parse(dateLayout, rec.Date)

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.src.LoadMonth(ctx, t.Year(), t.Month())
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].Date == rec.Date {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })

	return s.src.SaveMonth(ctx, t.Year(), t.Month(), records)
}

func monthPath(year int, month time.Month) string {
	return fmt.Sprintf("%s/%d/%02d.json", dataDir, year, month)
}

func parseMonthFile(name string) (time.Month, bool) {
	if !strings.HasSuffix(name, ".json") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return time.Month(n), true
}

// dirSource keeps month files under a local directory.
type dirSource struct {
	root string
}

func (d dirSource) path(year int, month time.Month) string {
	return filepath.Join(d.root, filepath.FromSlash(monthPath(year, month)))
}

func (d dirSource) LoadMonth(_ context.Context, year int, month time.Month) ([]DailyRecord, error) {
	data, err := os.ReadFile(d.path(year, month))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading month file: %w", err)
	}
	var records []DailyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", d.path(year, month), err)
	}
	return records, nil
}

func (d dirSource) SaveMonth(_ context.Context, year int, month time.Month, records []DailyRecord) error {
	path := d.path(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating month directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing month file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing month file: %w", err)
	}
	log.Printf("Saved %d records to %s", len(records), path)
	return nil
}

func (d dirSource) ListMonths(_ context.Context, year int) ([]time.Month, error) {
	entries, err := os.ReadDir(filepath.Join(d.root, dataDir, strconv.Itoa(year)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing year directory: %w", err)
	}
	var months []time.Month
	for _, e := range entries {
		if m, ok := parseMonthFile(e.Name()); ok && !e.IsDir() {
			months = append(months, m)
		}
	}
	return months, nil
}

// githubSource keeps month files in a GitHub repository: reads go through
// raw.githubusercontent.com, writes and listings through the contents API.
type githubSource struct {
	client *http.Client
	token  string
	repo   string
	branch string
	apiURL string
	rawURL string
}

func (g *githubSource) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if g.token != "" {
		req.Header.Set("Authorization", "token "+g.token)
	}
	return req, nil
}

func (g *githubSource) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/contents/%s", g.apiURL, g.repo, path)
}

func (g *githubSource) LoadMonth(ctx context.Context, year int, month time.Month) ([]DailyRecord, error) {
	start := time.Now()
	path := monthPath(year, month)
	url := fmt.Sprintf("%s/%s/%s/%s", g.rawURL, g.repo, g.branch, path)

	req, err := g.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loading %s from GitHub: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("loading %s from GitHub: status %d", path, resp.StatusCode)
	}

	var records []DailyRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	log.Printf("Loaded %d records from GitHub: %s (took %v)", len(records), path, time.Since(start))
	return records, nil
}

func (g *githubSource) SaveMonth(ctx context.Context, year int, month time.Month, records []DailyRecord) error {
	if g.token == "" {
		return errNoToken
	}
	path := monthPath(year, month)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	sha, err := g.fileSHA(ctx, path)
	if err != nil {
		return err
	}

	payload := map[string]string{
		"message": fmt.Sprintf("Update %s", path),
		"content": base64.StdEncoding.EncodeToString(data),
		"branch":  g.branch,
	}
	if sha != "" {
		payload["sha"] = sha
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := g.newRequest(ctx, http.MethodPut, g.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("GitHub API Request: %s %s", req.Method, req.URL)
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("updating %s on GitHub: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("updating %s on GitHub: status %d", path, resp.StatusCode)
	}
	log.Printf("Updated GitHub: %s", path)
	return nil
}

// fileSHA returns the blob sha of path, or "" when the file does not exist yet.
func (g *githubSource) fileSHA(ctx context.Context, path string) (string, error) {
	req, err := g.newRequest(ctx, http.MethodGet, g.contentsURL(path)+"?ref="+g.branch, nil)
	if err != nil {
		return "", err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("looking up %s on GitHub: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("looking up %s on GitHub: status %d", path, resp.StatusCode)
	}

	var result struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding %s metadata: %w", path, err)
	}
	return result.SHA, nil
}

func (g *githubSource) ListMonths(ctx context.Context, year int) ([]time.Month, error) {
	start := time.Now()
	path := fmt.Sprintf("%s/%d", dataDir, year)

	req, err := g.newRequest(ctx, http.MethodGet, g.contentsURL(path)+"?ref="+g.branch, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing %s on GitHub: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing %s on GitHub: status %d", path, resp.StatusCode)
	}

	var contents []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&contents); err != nil {
		return nil, fmt.Errorf("decoding %s listing: %w", path, err)
	}

	var months []time.Month
	for _, item := range contents {
		if m, ok := parseMonthFile(item.Name); ok && item.Type == "file" {
			months = append(months, m)
		}
	}
	log.Printf("Found %d months in %s (took %v)", len(months), path, time.Since(start))
	return months, nil
}
