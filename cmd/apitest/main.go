// Command apitest runs smoke checks against a live panchanga API.
//
//	go run ./cmd/apitest --url http://localhost:8080 --key $API_KEY
//
// Without --key the location write checks are skipped.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type named struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// PanchangaResponse holds the fields the checks look at.
type PanchangaResponse struct {
	Date   string `json:"date"`
	Tithi  named  `json:"tithi"`
	Vaara  named  `json:"vaara"`
	Masa   named  `json:"masa"`
	Samvat struct {
		Shaka  int `json:"shaka"`
		Vikram int `json:"vikram"`
	} `json:"samvat"`
	Nakshatra named `json:"nakshatra"`
	Sun       struct {
		Sunrise *time.Time `json:"sunrise"`
		Polar   string     `json:"polar"`
	} `json:"sun"`
}

type WindowResponse struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Masa       string    `json:"masa"`
	InProgress bool      `json:"in_progress"`
}

type LocationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Panchanga API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testKnownDays()
	tr.testSunAndMuhurta()
	tr.testKalashtami()
	tr.testEdgeCases()
	tr.testMonthSweep()
	tr.testLocations()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testKnownDays() {
	tr.printSection("Known Days")

	testCases := []struct {
		query       string
		tithi       string
		vaara       string
		description string
	}{
		{"date=1993-07-12&time=12:26&tz=Asia/Kolkata&lat=22.57&lon=88.36", "", "Somavaara", "Kolkata reference moment"},
		{"date=2024-01-25&time=12:00&tz=UTC&lat=0&lon=0", "Purnima", "Guruvaara", "Six hours before the January full moon"},
		{"date=2024-04-08&time=12:00&tz=UTC&lat=0&lon=0", "Amavasya", "Somavaara", "Day of the April eclipse new moon"},
		{"date=2024-08-26&time=06:00&tz=UTC&lat=0&lon=0", "Ashtami", "Somavaara", "Janmashtami 2024"},
	}

	for _, tc := range testCases {
		var p PanchangaResponse
		if err := tr.getData("/api/v1/panchanga?"+tc.query, &p); err != nil {
			tr.recordError(tc.description, err.Error())
			continue
		}

		switch {
		case tc.tithi != "" && p.Tithi.Name != tc.tithi:
			tr.recordError(tc.description, fmt.Sprintf("Expected tithi '%s', got '%s'", tc.tithi, p.Tithi.Name))
		case p.Vaara.Name != tc.vaara:
			tr.recordError(tc.description, fmt.Sprintf("Expected vaara '%s', got '%s'", tc.vaara, p.Vaara.Name))
		default:
			tr.recordSuccess(fmt.Sprintf("%s: %s %s, %s (%s)",
				p.Date, p.Tithi.Name, p.Nakshatra.Name, p.Masa.Name, tc.description))
		}
	}
}

func (tr *TestRunner) testSunAndMuhurta() {
	tr.printSection("Sun and Muhurta")

	var sun struct {
		Polar string `json:"polar"`
	}
	if err := tr.getData("/api/v1/sun?date=2024-12-21&tz=Europe/Oslo&lat=78.22&lon=15.65", &sun); err != nil {
		tr.recordError("Polar night", err.Error())
	} else if sun.Polar != "polar_night" {
		tr.recordError("Polar night", fmt.Sprintf("Expected polar_night, got %q", sun.Polar))
	} else {
		tr.recordSuccess("Svalbard in December reports polar night")
	}

	var m struct {
		Muhurta struct {
			Day   []json.RawMessage `json:"day_choghadiya"`
			Night []json.RawMessage `json:"night_choghadiya"`
		} `json:"muhurta"`
	}
	if err := tr.getData("/api/v1/muhurta?date=2024-03-03&tz=Asia/Kolkata&lat=22.57&lon=88.36", &m); err != nil {
		tr.recordError("Muhurta", err.Error())
	} else if len(m.Muhurta.Day) != 8 || len(m.Muhurta.Night) != 8 {
		tr.recordError("Muhurta", fmt.Sprintf("Expected 8+8 choghadiya, got %d+%d", len(m.Muhurta.Day), len(m.Muhurta.Night)))
	} else {
		tr.recordSuccess("Muhurta has 8 day and 8 night choghadiya")
	}

	resp, _ := tr.getRaw("/api/v1/muhurta?date=2024-06-21&tz=Europe/Oslo&lat=78.22&lon=15.65")
	if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
		tr.recordSuccess("Muhurta refused for polar day")
	} else {
		tr.recordError("Polar muhurta", "Should return 422")
	}
	closeBody(resp)
}

func (tr *TestRunner) testKalashtami() {
	tr.printSection("Kalashtami")

	var w WindowResponse
	if err := tr.getData("/api/v1/kalashtami?date=2024-08-20&tz=Asia/Kolkata&lat=22.57&lon=88.36", &w); err != nil {
		tr.recordError("Kalashtami", err.Error())
		return
	}
	want := time.Date(2024, 8, 25, 22, 9, 0, 0, time.UTC)
	if d := w.Start.Sub(want); d < -15*time.Minute || d > 15*time.Minute {
		tr.recordError("Kalashtami", fmt.Sprintf("Start %s, expected about %s", w.Start.UTC(), want))
	} else {
		tr.recordSuccess(fmt.Sprintf("Janmashtami window %s to %s (%s)",
			w.Start.Format("Jan 2 15:04"), w.End.Format("Jan 2 15:04"), w.Masa))
	}

	resp, _ := tr.getRaw("/api/v1/kalashtami?date=2024-08-27&tz=UTC&lat=0&lon=0&horizon=5")
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		tr.recordSuccess("Short horizon reports not found")
	} else {
		tr.recordError("Horizon", "Should return 404 for a 5 day horizon")
	}
	closeBody(resp)
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	cases := []struct {
		query       string
		description string
	}{
		{"lon=88.36", "Missing latitude"},
		{"lat=91&lon=0", "Latitude out of range"},
		{"lat=0&lon=0&tz=Mars/Olympus", "Unknown timezone"},
		{"lat=0&lon=0&date=2023-02-29", "Invalid calendar date"},
		{"lat=0&lon=0&ayanamsa=krishnamurti", "Unknown ayanamsa"},
	}
	for _, c := range cases {
		resp, _ := tr.getRaw("/api/v1/panchanga?" + c.query)
		if resp != nil && resp.StatusCode == http.StatusBadRequest {
			tr.recordSuccess(c.description + " rejected")
		} else {
			tr.recordError(c.description, "Should return 400")
		}
		closeBody(resp)
	}

	// Leap day and a date far from J2000
	for _, q := range []string{"date=2024-02-29", "date=2099-12-31", "date=1900-03-01"} {
		var p PanchangaResponse
		if err := tr.getData("/api/v1/panchanga?lat=23.18&lon=75.78&"+q, &p); err != nil {
			tr.recordError(q, err.Error())
		} else {
			tr.recordSuccess(fmt.Sprintf("%s handled: %s", p.Date, p.Tithi.Name))
		}
	}
}

// testMonthSweep walks a month at noon in Ujjain. The tithi advances by
// 0, 1 or 2 between consecutive days.
func (tr *TestRunner) testMonthSweep() {
	tr.printSection("Month Sweep (Ujjain, October 2025)")

	prev := 0
	for day := 1; day <= 31; day++ {
		date := fmt.Sprintf("2025-10-%02d", day)
		var p PanchangaResponse
		if err := tr.getData("/api/v1/panchanga?tz=Asia/Kolkata&lat=23.18&lon=75.78&date="+date, &p); err != nil {
			tr.recordError(date, err.Error())
			continue
		}

		if prev != 0 {
			step := (p.Tithi.Index - prev + 30) % 30
			if step > 2 {
				tr.recordError(date, fmt.Sprintf("Tithi jumped from %d to %d", prev, p.Tithi.Index))
			}
		}
		prev = p.Tithi.Index

		if tr.verbose {
			tr.recordSuccess(fmt.Sprintf("%s: %-10s %-12s %-16s %s",
				date, p.Vaara.Name, p.Tithi.Name, p.Nakshatra.Name, p.Masa.Name))
		} else {
			tr.successCount++
		}
	}
	if !tr.verbose {
		fmt.Println("  (use -v to list each day)")
	}
}

func (tr *TestRunner) testLocations() {
	tr.printSection("Saved Locations")

	var list struct {
		Count int `json:"count"`
	}
	if err := tr.getData("/api/v1/locations", &list); err != nil {
		tr.recordError("List locations", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("%d saved locations", list.Count))

	if tr.apiKey == "" {
		fmt.Println("  (no --key, skipping write checks)")
		return
	}

	name := fmt.Sprintf("apitest-%d", time.Now().Unix())
	var loc LocationResponse
	body := map[string]interface{}{
		"name":      name,
		"latitude":  23.18,
		"longitude": 75.78,
		"time_zone": "Asia/Kolkata",
	}
	if err := tr.send("POST", "/api/v1/locations", body, &loc); err != nil {
		tr.recordError("Create location", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Created location %d (%s)", loc.ID, loc.Name))

	var obs struct {
		Source      string           `json:"source"`
		Observances []WindowResponse `json:"observances"`
	}
	path := fmt.Sprintf("/api/v1/locations/%d/observances?year=2025", loc.ID)
	if err := tr.getData(path, &obs); err != nil {
		tr.recordError("Observances", err.Error())
	} else if n := len(obs.Observances); n < 12 || n > 13 {
		tr.recordError("Observances", fmt.Sprintf("Expected 12 or 13 windows in 2025, got %d", n))
	} else {
		tr.recordSuccess(fmt.Sprintf("%d Kalashtami windows in 2025 (%s)", len(obs.Observances), obs.Source))
	}

	if err := tr.send("DELETE", fmt.Sprintf("/api/v1/locations/%d", loc.ID), nil, nil); err != nil {
		tr.recordError("Delete location", err.Error())
	} else {
		tr.recordSuccess("Deleted test location")
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) getData(path string, target interface{}) error {
	return tr.send("GET", path, nil, target)
}

func (tr *TestRunner) send(method, path string, body, target interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}

	resp, err := tr.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, errMsg)
	}

	if target == nil {
		return nil
	}
	return json.Unmarshal(apiResp.Data, target)
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	return tr.client.Get(tr.baseURL + path)
}

func closeBody(resp *http.Response) {
	if resp != nil {
		resp.Body.Close()
	}
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for location write checks")
	verbose := flag.BoolP("verbose", "v", false, "Verbose output (list each day of the sweep)")
	flag.Parse()

	if _, err := url.Parse(*baseURL); err != nil {
		fmt.Printf("Error: invalid URL %q\n", *baseURL)
		os.Exit(1)
	}

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
