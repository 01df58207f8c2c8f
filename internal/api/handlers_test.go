package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/zapponejosh/panchanga-api/internal/config"
	"github.com/zapponejosh/panchanga-api/internal/database"
	"github.com/zapponejosh/panchanga-api/internal/logger"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

// testEnv sets up a complete test environment with database, config, and handlers
type testEnv struct {
	db       *database.DB
	cfg      *config.Config
	handlers *Handlers
	router   http.Handler
	apiKey   string
	cleanup  func()
}

// setupTest creates a fresh test environment. The handlers' clock is
// pinned to 2024-03-01 20:30 UTC.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	// Create in-memory database
	dbCfg := database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Quiet during tests
	}))

	db, err := database.Open(dbCfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// Run migrations
	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	apiKey := "test-key-32-characters-minimum-length"
	cfg := &config.Config{
		Port:              8080,
		Env:               config.EnvDevelopment,
		DatabasePath:      ":memory:",
		APIKey:            apiKey,
		LogLevel:          "error",
		LogFormat:         "text",
		DefaultAyanamsa:   "lahiri",
		DefaultTimeZone:   "Asia/Kolkata",
		SearchHorizonDays: 60,
		MaxHorizonDays:    366,
	}

	handlers := NewHandlers(db, cfg, logger)
	handlers.now = func() time.Time {
		return time.Date(2024, 3, 1, 20, 30, 0, 0, time.UTC)
	}

	return &testEnv{
		db:       db,
		cfg:      cfg,
		handlers: handlers,
		router:   SetupRoutes(handlers, cfg, logger),
		apiKey:   apiKey,
		cleanup: func() {
			db.Close()
		},
	}
}

// do sends a request through the full router.
func (env *testEnv) do(method, path string, body interface{}, apiKey string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, makeRequest(method, path, body, apiKey))
	return rr
}

// createTestLocation saves a location directly in the store.
func (env *testEnv) createTestLocation(t *testing.T, name string) *database.Location {
	t.Helper()
	loc := &database.Location{
		Name:      name,
		Latitude:  22.57,
		Longitude: 88.36,
		TimeZone:  "Asia/Kolkata",
		Ayanamsa:  "lahiri",
	}
	if err := env.db.CreateLocation(context.Background(), loc); err != nil {
		t.Fatalf("create test location: %v", err)
	}
	return loc
}

// makeRequest is a helper to make HTTP requests with optional API key
func makeRequest(method, path string, body interface{}, apiKey string) *http.Request {
	var bodyReader io.Reader
	if body != nil {
		jsonData, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonData)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	return req
}

// envelope mirrors Response with the payload left undecoded.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorInfo      `json:"error"`
}

// parseResponse parses JSON response
func parseResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v, body: %s", err, rr.Body.String())
	}
}

// parseData checks the status, then decodes the envelope's data into v.
func parseData(t *testing.T, rr *httptest.ResponseRecorder, status int, v interface{}) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, status, rr.Body.String())
	}
	var env envelope
	parseResponse(t, rr, &env)
	if !env.Success {
		t.Fatalf("Success = false, error: %+v", env.Error)
	}
	if v != nil {
		if err := json.Unmarshal(env.Data, v); err != nil {
			t.Fatalf("decode data: %v, data: %s", err, env.Data)
		}
	}
}

// expectError checks status and error code.
func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, status, rr.Body.String())
	}
	var env envelope
	parseResponse(t, rr, &env)
	if env.Success || env.Error == nil {
		t.Fatalf("expected error envelope, got %+v", env)
	}
	if env.Error.Code != code {
		t.Errorf("Error.Code = %q, want %q (%s)", env.Error.Code, code, env.Error.Message)
	}
}

func within(t *testing.T, got, want time.Time, tol time.Duration) {
	t.Helper()
	if d := got.Sub(want); d > tol || d < -tol {
		t.Errorf("time = %s, want %s +/- %s", got.UTC(), want.UTC(), tol)
	}
}

// =============================================================================
// MIDDLEWARE TESTS
// =============================================================================

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	handler := AuthMiddleware(env.cfg, slog.Default())(okHandler())

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{"valid key", env.apiKey, http.StatusOK},
		{"missing key", "", http.StatusUnauthorized},
		{"invalid key", "key_invalid123456789", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, makeRequest("POST", "/test", nil, tt.key))
			if rr.Code != tt.status {
				t.Errorf("Status = %d, want %d", rr.Code, tt.status)
			}
		})
	}
}

func TestAuthMiddleware_DevelopmentWithoutKey(t *testing.T) {
	cfg := &config.Config{Env: config.EnvDevelopment}
	handler := AuthMiddleware(cfg, slog.Default())(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, makeRequest("POST", "/test", nil, ""))
	if rr.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusOK)
	}

	// Production never runs open.
	cfg.Env = config.EnvProduction
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, makeRequest("POST", "/test", nil, "anything"))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, makeRequest("GET", "/", nil, ""))
	if seen == "" || rr.Header().Get("X-Request-ID") != seen {
		t.Errorf("request id: context %q, header %q", seen, rr.Header().Get("X-Request-ID"))
	}

	req := makeRequest("GET", "/", nil, "")
	req.Header.Set("X-Request-ID", "client-7")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if seen != "client-7" {
		t.Errorf("request id = %q, want client-7", seen)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, makeRequest("GET", "/", nil, ""))
	expectError(t, rr, http.StatusInternalServerError, "INTERNAL_ERROR")
}

func TestCORSPreflight(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do("OPTIONS", "/api/v1/locations", nil, "")
	if rr.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

// =============================================================================
// ROUTER TESTS
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	var data map[string]string
	parseData(t, env.do("GET", "/health", nil, ""), http.StatusOK, &data)
	if data["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", data["status"])
	}
}

func TestUnknownRoute(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	expectError(t, env.do("GET", "/api/v1/nope", nil, ""), http.StatusNotFound, "NOT_FOUND")
	expectError(t, env.do("PUT", "/api/v1/locations", nil, env.apiKey), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
}

// =============================================================================
// ENGINE ENDPOINT TESTS
// =============================================================================

func TestGetPanchanga(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do("GET", "/api/v1/panchanga?date=1993-07-12&time=12:26&tz=Asia/Kolkata&lat=22.57&lon=88.36", nil, "")

	var p panchangaView
	parseData(t, rr, http.StatusOK, &p)

	if math.Abs(p.JulianDay-2449180.789) > 0.001 {
		t.Errorf("JulianDay = %v, want 2449180.789", p.JulianDay)
	}
	if p.UTCOffset != 5.5 {
		t.Errorf("UTCOffset = %v, want 5.5", p.UTCOffset)
	}
	if p.Vaara.Name != "Somavaara" {
		t.Errorf("Vaara = %q, want Somavaara", p.Vaara.Name)
	}
	if p.Samvat.Shaka != 1915 || p.Samvat.Vikram != 2050 {
		t.Errorf("Samvat = %+v", p.Samvat)
	}
	if p.Ayanamsa.String() != "lahiri" {
		t.Errorf("Ayanamsa = %q, want lahiri", p.Ayanamsa)
	}
	if p.Tithi.Index < 1 || p.Tithi.Index > 30 || p.Tithi.Name == "" {
		t.Errorf("Tithi = %+v", p.Tithi)
	}
	if p.Nakshatra.Pada < 1 || p.Nakshatra.Pada > 4 {
		t.Errorf("Pada = %d", p.Nakshatra.Pada)
	}
	if p.Masa.Name == "" || p.Masa.FullMoon == nil {
		t.Errorf("Masa = %+v", p.Masa)
	}
	if p.Sun.Sunrise == nil || p.Muhurta == nil || len(p.Muhurta.Day) != 8 {
		t.Fatalf("sun or muhurta missing: %+v", p.Sun)
	}
	if p.Choghadiya == nil || p.Choghadiya.Night {
		t.Errorf("current choghadiya at 12:26 = %+v, want a day period", p.Choghadiya)
	}
}

func TestGetPanchanga_DefaultsToNow(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	// 20:30 UTC on the 1st is 02:00 on the 2nd in Kolkata.
	var p panchangaView
	parseData(t, env.do("GET", "/api/v1/panchanga?lat=22.57&lon=88.36", nil, ""), http.StatusOK, &p)

	if p.Date != "2024-03-02" || p.Time != "02:00:00" {
		t.Errorf("moment = %s %s, want 2024-03-02 02:00:00", p.Date, p.Time)
	}
	if p.TimeZone != "Asia/Kolkata" {
		t.Errorf("TimeZone = %q", p.TimeZone)
	}
	if p.Vaara.Name != "Shanivaara" {
		t.Errorf("Vaara = %q, want Shanivaara", p.Vaara.Name)
	}
}

func TestGetPanchanga_BadInput(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	tests := []struct {
		name  string
		query string
	}{
		{"missing lat", "lon=88.36"},
		{"missing lon", "lat=22.57"},
		{"lat not a number", "lat=north&lon=88.36"},
		{"lat out of range", "lat=91&lon=88.36"},
		{"lon out of range", "lat=22&lon=181"},
		{"bad date", "lat=22&lon=88&date=12/07/1993"},
		{"impossible date", "lat=22&lon=88&date=2023-02-29"},
		{"bad time", "lat=22&lon=88&date=2024-01-01&time=25:00"},
		{"unknown zone", "lat=22&lon=88&tz=Mars/Olympus"},
		{"local zone", "lat=22&lon=88&tz=Local"},
		{"unknown ayanamsa", "lat=22&lon=88&ayanamsa=krishnamurti"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, env.do("GET", "/api/v1/panchanga?"+tt.query, nil, ""), http.StatusBadRequest, "BAD_REQUEST")
		})
	}
}

func TestGetPanchanga_Ayanamsa(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	base := "/api/v1/panchanga?date=2024-01-15&tz=UTC&lat=0&lon=0"
	var lahiri, fagan panchangaView
	parseData(t, env.do("GET", base, nil, ""), http.StatusOK, &lahiri)
	parseData(t, env.do("GET", base+"&ayanamsa=fagan_bradley", nil, ""), http.StatusOK, &fagan)

	if lahiri.Longitudes.SunTropical != fagan.Longitudes.SunTropical {
		t.Error("tropical longitude depends on ayanamsa")
	}
	if lahiri.Longitudes.Sun == fagan.Longitudes.Sun {
		t.Error("sidereal longitude ignores ayanamsa")
	}
	if lahiri.Tithi.Index != fagan.Tithi.Index {
		t.Errorf("tithi %d vs %d, elongation should not depend on ayanamsa", lahiri.Tithi.Index, fagan.Tithi.Index)
	}
}

func TestGetSun(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	var s sunView
	parseData(t, env.do("GET", "/api/v1/sun?date=2024-03-20&tz=UTC&lat=0&lon=0", nil, ""), http.StatusOK, &s)

	if s.Sunrise == nil || s.Sunset == nil {
		t.Fatalf("sun times missing: %+v", s)
	}
	// Equinox on the equator: about 12 hours of daylight, noon near 12:07.
	if math.Abs(s.DayLengthHours-12.1) > 0.2 {
		t.Errorf("DayLengthHours = %v", s.DayLengthHours)
	}
	within(t, s.SolarNoon, time.Date(2024, 3, 20, 12, 7, 0, 0, time.UTC), 3*time.Minute)
	if s.Date != "2024-03-20" {
		t.Errorf("Date = %q", s.Date)
	}
}

func TestGetSun_PolarNight(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	var s sunView
	parseData(t, env.do("GET", "/api/v1/sun?date=2024-12-21&tz=Europe/Oslo&lat=78.22&lon=15.65", nil, ""), http.StatusOK, &s)

	if s.Polar != "polar_night" {
		t.Errorf("Polar = %q, want polar_night", s.Polar)
	}
	if s.Sunrise != nil || s.Sunset != nil {
		t.Errorf("polar night has sun times: %+v", s)
	}
}

func TestGetMuhurta(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	var data struct {
		Date    string `json:"date"`
		Muhurta struct {
			RahuKaala struct {
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			} `json:"rahu_kaala"`
			Day   []json.RawMessage `json:"day_choghadiya"`
			Night []json.RawMessage `json:"night_choghadiya"`
		} `json:"muhurta"`
	}
	parseData(t, env.do("GET", "/api/v1/muhurta?date=2024-03-03&lat=22.57&lon=88.36", nil, ""), http.StatusOK, &data)

	if data.Date != "2024-03-03" {
		t.Errorf("Date = %q", data.Date)
	}
	if len(data.Muhurta.Day) != 8 || len(data.Muhurta.Night) != 8 {
		t.Errorf("choghadiya counts = %d/%d, want 8/8", len(data.Muhurta.Day), len(data.Muhurta.Night))
	}
	// Sunday: Rahu Kaala is the last eighth of daylight, late afternoon.
	if h := data.Muhurta.RahuKaala.Start.Hour(); h < 15 || h > 17 {
		t.Errorf("Sunday Rahu Kaala starts at %s", data.Muhurta.RahuKaala.Start)
	}
	if _, off := data.Muhurta.RahuKaala.Start.Zone(); off != 19800 {
		t.Errorf("times not in local zone, offset %d", off)
	}
}

func TestGetMuhurta_Polar(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do("GET", "/api/v1/muhurta?date=2024-06-21&tz=Europe/Oslo&lat=78.22&lon=15.65", nil, "")
	expectError(t, rr, http.StatusUnprocessableEntity, "SUN_UNAVAILABLE")
}

func TestGetKalashtami(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	var k kalashtamiView
	parseData(t, env.do("GET", "/api/v1/kalashtami?date=2024-08-20&tz=UTC&lat=22.57&lon=88.36", nil, ""), http.StatusOK, &k)

	within(t, k.Start, time.Date(2024, 8, 25, 22, 9, 0, 0, time.UTC), 15*time.Minute)
	within(t, k.End, time.Date(2024, 8, 26, 20, 49, 0, 0, time.UTC), 15*time.Minute)
	if k.InProgress {
		t.Error("InProgress = true five days ahead")
	}
	if k.Kind != "kalashtami" || k.HorizonDays != 60 || k.Masa == "" {
		t.Errorf("window = %+v", k)
	}
	if math.Abs(k.DurationMinutes-k.End.Sub(k.Start).Minutes()) > 0.01 {
		t.Errorf("DurationMinutes = %v", k.DurationMinutes)
	}
}

func TestGetKalashtami_InProgress(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	var k kalashtamiView
	parseData(t, env.do("GET", "/api/v1/kalashtami?date=2024-08-26&time=06:00&tz=UTC&lat=0&lon=0", nil, ""), http.StatusOK, &k)

	if !k.InProgress {
		t.Errorf("InProgress = false for %s..%s", k.Start, k.End)
	}
	within(t, k.Start, time.Date(2024, 8, 25, 22, 9, 0, 0, time.UTC), 15*time.Minute)
}

func TestGetKalashtami_Horizon(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	// The August window has ended and the next is four weeks out.
	rr := env.do("GET", "/api/v1/kalashtami?date=2024-08-27&tz=UTC&lat=0&lon=0&horizon=5", nil, "")
	body := rr.Body.String() // expectError drains rr.Body
	expectError(t, rr, http.StatusNotFound, "NOT_FOUND")
	if !strings.Contains(body, "within 5 days") {
		t.Errorf("404 does not name the horizon: %s", body)
	}

	for _, h := range []string{"0", "367", "soon"} {
		rr := env.do("GET", "/api/v1/kalashtami?lat=0&lon=0&horizon="+h, nil, "")
		expectError(t, rr, http.StatusBadRequest, "BAD_REQUEST")
	}
}

// =============================================================================
// LOCATION ENDPOINT TESTS
// =============================================================================

func TestCreateLocation(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	body := map[string]interface{}{
		"name":      "Varanasi",
		"latitude":  25.32,
		"longitude": 82.97,
		"time_zone": "Asia/Kolkata",
	}

	var loc database.Location
	parseData(t, env.do("POST", "/api/v1/locations", body, env.apiKey), http.StatusCreated, &loc)

	if loc.ID == 0 || loc.Name != "Varanasi" {
		t.Errorf("location = %+v", loc)
	}
	if loc.Ayanamsa != "lahiri" {
		t.Errorf("Ayanamsa = %q, want configured default", loc.Ayanamsa)
	}

	expectError(t, env.do("POST", "/api/v1/locations", body, env.apiKey), http.StatusConflict, "CONFLICT")
}

func TestCreateLocation_Unauthorized(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	body := map[string]interface{}{"name": "Puri", "latitude": 19.8, "longitude": 85.8, "time_zone": "Asia/Kolkata"}
	expectError(t, env.do("POST", "/api/v1/locations", body, ""), http.StatusUnauthorized, "UNAUTHORIZED")
	expectError(t, env.do("POST", "/api/v1/locations", body, "wrong"), http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestCreateLocation_Invalid(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	tests := []struct {
		name string
		body interface{}
		want string
	}{
		{"no name", map[string]interface{}{"latitude": 1, "longitude": 1, "time_zone": "UTC"}, "name is required"},
		{"bad latitude", map[string]interface{}{"name": "x", "latitude": 100, "longitude": 1, "time_zone": "UTC"}, "latitude"},
		{"bad zone", map[string]interface{}{"name": "x", "latitude": 1, "longitude": 1, "time_zone": "Nowhere/Town"}, "timezone"},
		{"bad ayanamsa", map[string]interface{}{"name": "x", "latitude": 1, "longitude": 1, "time_zone": "UTC", "ayanamsa": "kp"}, "ayanamsa"},
		{"unknown field", map[string]interface{}{"name": "x", "elevation": 10}, "unknown field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do("POST", "/api/v1/locations", tt.body, env.apiKey)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Status = %d, want 400, body: %s", rr.Code, rr.Body.String())
			}
			if !strings.Contains(rr.Body.String(), tt.want) {
				t.Errorf("body %s does not mention %q", rr.Body.String(), tt.want)
			}
		})
	}
}

func TestGetLocation(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	saved := env.createTestLocation(t, "Kolkata")

	var loc database.Location
	parseData(t, env.do("GET", "/api/v1/locations/"+itoa(saved.ID), nil, ""), http.StatusOK, &loc)
	if loc.Name != "Kolkata" {
		t.Errorf("Name = %q", loc.Name)
	}

	expectError(t, env.do("GET", "/api/v1/locations/999", nil, ""), http.StatusNotFound, "NOT_FOUND")
	expectError(t, env.do("GET", "/api/v1/locations/abc", nil, ""), http.StatusBadRequest, "BAD_REQUEST")
}

func TestListLocations(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	var data struct {
		Locations []database.Location `json:"locations"`
		Count     int                 `json:"count"`
	}
	parseData(t, env.do("GET", "/api/v1/locations", nil, ""), http.StatusOK, &data)
	if data.Count != 0 || data.Locations == nil {
		t.Errorf("empty list = %+v", data)
	}

	env.createTestLocation(t, "Ujjain")
	env.createTestLocation(t, "Kolkata")
	parseData(t, env.do("GET", "/api/v1/locations", nil, ""), http.StatusOK, &data)
	if data.Count != 2 {
		t.Errorf("Count = %d, want 2", data.Count)
	}
}

func TestDeleteLocation(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	saved := env.createTestLocation(t, "Kolkata")
	path := "/api/v1/locations/" + itoa(saved.ID)

	expectError(t, env.do("DELETE", path, nil, ""), http.StatusUnauthorized, "UNAUTHORIZED")
	parseData(t, env.do("DELETE", path, nil, env.apiKey), http.StatusOK, nil)
	expectError(t, env.do("GET", path, nil, ""), http.StatusNotFound, "NOT_FOUND")
	expectError(t, env.do("DELETE", path, nil, env.apiKey), http.StatusNotFound, "NOT_FOUND")
}

func TestGetLocationPanchanga(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	saved := env.createTestLocation(t, "Kolkata")

	var p panchangaView
	path := "/api/v1/locations/" + itoa(saved.ID) + "/panchanga?date=1993-07-12&time=12:26"
	parseData(t, env.do("GET", path, nil, ""), http.StatusOK, &p)

	if p.TimeZone != "Asia/Kolkata" || p.Location.Latitude != 22.57 {
		t.Errorf("location not applied: %s %+v", p.TimeZone, p.Location)
	}
	if math.Abs(p.JulianDay-2449180.789) > 0.001 {
		t.Errorf("JulianDay = %v", p.JulianDay)
	}
}

func TestGetLocationObservances(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	saved := env.createTestLocation(t, "Kolkata")
	path := "/api/v1/locations/" + itoa(saved.ID) + "/observances?year=2024"

	var computed observancesView
	parseData(t, env.do("GET", path, nil, ""), http.StatusOK, &computed)
	if computed.Source != "computed" || computed.Year != 2024 {
		t.Errorf("Source = %q, Year = %d", computed.Source, computed.Year)
	}
	if n := len(computed.Observances); n < 12 || n > 13 {
		t.Errorf("got %d windows in 2024, want 12 or 13", n)
	}
	for _, o := range computed.Observances {
		if o.Start.Year() != 2024 || o.Masa == "" {
			t.Errorf("window %+v", o)
		}
	}

	// Computing does not write.
	if n, _ := env.db.CountObservances(context.Background(), saved.ID); n != 0 {
		t.Errorf("stored %d observances on GET", n)
	}

	first := computed.Observances[0]
	obs := &database.Observance{
		LocationID: saved.ID,
		Kind:       database.KindKalashtami,
		Start:      first.Start,
		End:        first.End,
		Masa:       first.Masa,
	}
	if err := env.db.UpsertObservance(context.Background(), obs); err != nil {
		t.Fatalf("UpsertObservance() error = %v", err)
	}

	var stored observancesView
	parseData(t, env.do("GET", path, nil, ""), http.StatusOK, &stored)
	if stored.Source != "stored" || len(stored.Observances) != 1 {
		t.Errorf("Source = %q with %d windows", stored.Source, len(stored.Observances))
	}

	expectError(t, env.do("GET", "/api/v1/locations/"+itoa(saved.ID)+"/observances?year=x", nil, ""), http.StatusBadRequest, "BAD_REQUEST")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
