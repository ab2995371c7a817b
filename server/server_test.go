package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/campusmate/disputes"
	fakedisputerepo "github.com/jrsteele09/campusmate/disputes/repofake"
	"github.com/jrsteele09/campusmate/internal/config"
	fakementorrepo "github.com/jrsteele09/campusmate/mentors/repofake"
	"github.com/jrsteele09/campusmate/sessions"
	faketaskrepo "github.com/jrsteele09/campusmate/tasks/repofake"
	"github.com/jrsteele09/campusmate/users"
	fakeuserrepo "github.com/jrsteele09/campusmate/users/repofake"
	"github.com/jrsteele09/campusmate/verification"
)

type testEnv struct {
	srv      *httptest.Server
	client   *http.Client
	users    *fakeuserrepo.FakeUserRepo
	disputes *fakedisputerepo.FakeDisputeRepo
}

func newTestEnv(t *testing.T, env map[string]string) *testEnv {
	t.Helper()
	t.Setenv("ENV", "TEST")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("TASK_CREATE_LATENCY", "0s")
	t.Setenv("ADMIN_USERNAMES", "boss")
	t.Setenv("RATE_LIMITING", "false")
	for k, v := range env {
		t.Setenv(k, v)
	}

	userRepo := fakeuserrepo.NewSeededUserRepo()
	disputeRepo := fakedisputerepo.NewSeededDisputeRepo()
	s, err := New(config.New(), verification.NewStubVerifier(verification.WithLatency(0)), Repos{
		Users:    userRepo,
		Tasks:    faketaskrepo.NewSeededTaskRepo(),
		Mentors:  fakementorrepo.NewSeededMentorRepo(),
		Disputes: disputeRepo,
	}, prometheus.NewRegistry())
	require.NoError(t, err)

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, client: newClient(t), users: userRepo, disputes: disputeRepo}
}

// newClient keeps cookies but never follows redirects, so tests can assert on them
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) get(t *testing.T, path string, headers ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.srv.URL+path, nil)
	require.NoError(t, err)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return e.do(t, req)
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (e *testEnv) signup(t *testing.T, username string, role users.Role) *http.Response {
	t.Helper()
	resp, _ := e.post(t, RouteAuth, url.Values{"username": {username}, "role": {role.String()}})
	return resp
}

func requireRedirect(t *testing.T, resp *http.Response, path string) *url.URL {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, path, loc.Path)
	return loc
}

func TestLandingPage(t *testing.T) {
	e := newTestEnv(t, nil)
	resp, body := e.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Become a mentor")

	resp, _ = e.get(t, "/no/such/page")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSignupRedirectsToRoleDashboard(t *testing.T) {
	cases := map[users.Role]string{
		users.RoleStudent: RouteStudent,
		users.RoleMentor:  RouteMentor,
	}
	for role, path := range cases {
		t.Run(role.String(), func(t *testing.T) {
			e := newTestEnv(t, nil)
			loc := requireRedirect(t, e.signup(t, "@alice ", role), path)
			require.Equal(t, "Welcome to CampusMate as a "+role.String(), loc.Query().Get("notice"))

			resp, body := e.get(t, path)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.Contains(t, body, "Welcome back, Student")
		})
	}
}

func TestSignupBlankUsername(t *testing.T) {
	e := newTestEnv(t, nil)
	loc := requireRedirect(t, e.signup(t, "   ", users.RoleMentor), RouteAuth)
	require.Equal(t, "mentor", loc.Query().Get("role"))
	require.Equal(t, "Please enter your GitHub username", loc.Query().Get("error"))

	resp, _ := e.get(t, RouteAPISession)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignupUnknownRole(t *testing.T) {
	e := newTestEnv(t, nil)
	resp, _ := e.post(t, RouteAuth, url.Values{"username": {"alice"}, "role": {"wizard"}})
	loc := requireRedirect(t, resp, RouteAuth)
	require.NotEmpty(t, loc.Query().Get("error"))
}

func TestSignupBlankAdminUsername(t *testing.T) {
	e := newTestEnv(t, nil)
	loc := requireRedirect(t, e.signup(t, " @ ", users.RoleAdmin), RouteAuth)
	require.Equal(t, "Please enter your GitHub username", loc.Query().Get("error"))

	_, body := e.get(t, RouteMetrics)
	require.Contains(t, body, `campusmate_verifications_total{outcome="invalid"} 1`)
	require.NotContains(t, body, `outcome="denied"`)
}

func TestLandingRedirectsSignedInViewer(t *testing.T) {
	e := newTestEnv(t, nil)
	e.signup(t, "alice", users.RoleMentor)

	resp, _ := e.get(t, RouteHome)
	requireRedirect(t, resp, RouteMentor)

	resp, _ = e.get(t, RouteHome, "HX-Request", "true")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, RouteMentor, resp.Header.Get("HX-Redirect"))
}

func TestGuardBouncesSilently(t *testing.T) {
	e := newTestEnv(t, nil)
	for _, path := range []string{RouteStudent, RouteMentor, RouteAdmin} {
		resp, _ := e.get(t, path)
		loc := requireRedirect(t, resp, RouteAuth)
		require.Empty(t, loc.RawQuery, path)
	}

	// HTMX callers get an HX-Redirect instead of a 303
	resp, _ := e.get(t, "/student/sections/tasks", "HX-Request", "true")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, RouteAuth, resp.Header.Get("HX-Redirect"))
}

func TestGuardRoleMismatch(t *testing.T) {
	e := newTestEnv(t, nil)
	e.signup(t, "alice", users.RoleMentor)

	resp, _ := e.get(t, RouteStudent)
	requireRedirect(t, resp, RouteAuth)
	resp, _ = e.get(t, RouteAdmin)
	requireRedirect(t, resp, RouteAuth)

	resp, _ = e.get(t, RouteMentor)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminPolicy(t *testing.T) {
	t.Run("role required", func(t *testing.T) {
		e := newTestEnv(t, nil)
		loc := requireRedirect(t, e.signup(t, "mallory", users.RoleAdmin), RouteAuth)
		require.Equal(t, "admin", loc.Query().Get("role"))

		requireRedirect(t, e.signup(t, "Boss", users.RoleAdmin), RouteAdmin)
		resp, body := e.get(t, RouteAdmin)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, "Unresolved Disputes")
	})

	t.Run("any session", func(t *testing.T) {
		e := newTestEnv(t, map[string]string{"ADMIN_REQUIRES_ROLE": "false"})
		e.signup(t, "alice", users.RoleStudent)
		resp, _ := e.get(t, RouteAdmin)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestSectionFragments(t *testing.T) {
	e := newTestEnv(t, nil)
	e.signup(t, "alice", users.RoleStudent)

	resp, body := e.get(t, "/student/sections/mentors?skill=react", "HX-Request", "true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Alex Kumar")
	require.NotContains(t, body, "<html")

	resp, body = e.get(t, "/student/sections/bogus", "HX-Request", "true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Active Tasks")

	// a section is never a navigable page of its own
	resp, _ = e.get(t, "/student/sections/mentors")
	requireRedirect(t, resp, RouteStudent)
}

func TestCreateTask(t *testing.T) {
	e := newTestEnv(t, nil)
	e.signup(t, "alice", users.RoleStudent)

	form := url.Values{
		"title":       {"Help with <b>Go</b> generics"},
		"description": {"Need a walkthrough of type parameters"},
		"budget":      {"900"},
		"deadline":    {time.Now().AddDate(0, 0, 7).Format("2006-01-02")},
		"category":    {"Programming"},
		"urgency":     {"high"},
	}
	resp, _ := e.post(t, RouteStudentTasks, form)
	loc := requireRedirect(t, resp, RouteStudent)
	require.Contains(t, loc.Query().Get("notice"), "Task Created!")

	_, body := e.get(t, RouteStudent)
	require.Contains(t, body, "Help with Go generics")
	require.Contains(t, body, "₹900")

	form.Set("budget", "0")
	resp, _ = e.post(t, RouteStudentTasks, form)
	loc = requireRedirect(t, resp, RouteStudent)
	require.Equal(t, "Budget must be greater than 0", loc.Query().Get("error"))
}

func TestMentorApply(t *testing.T) {
	e := newTestEnv(t, nil)
	e.signup(t, "alex", users.RoleMentor)

	form := url.Values{"task_id": {"3"}, "proposed_rate": {"600"}, "message": {"Happy to pair on this"}}
	resp, _ := e.post(t, RouteMentorApplications, form)
	loc := requireRedirect(t, resp, RouteMentor)
	require.NotEmpty(t, loc.Query().Get("notice"))

	resp, _ = e.post(t, RouteMentorApplications, form)
	loc = requireRedirect(t, resp, RouteMentor)
	require.NotEmpty(t, loc.Query().Get("error"))

	_, body := e.get(t, "/mentor/sections/applications", "HX-Request", "true")
	require.Contains(t, body, "Happy to pair on this")
}

func TestAdminModeration(t *testing.T) {
	e := newTestEnv(t, nil)
	e.signup(t, "boss", users.RoleAdmin)

	resp, _ := e.post(t, "/admin/users/2/status", url.Values{"status": {"active"}})
	loc := requireRedirect(t, resp, RouteAdmin)
	require.Equal(t, "User approved", loc.Query().Get("notice"))
	u, err := e.users.GetByID("2")
	require.NoError(t, err)
	require.Equal(t, users.StatusActive, u.Status)

	resp, _ = e.post(t, "/admin/users/99/status", url.Values{"status": {"suspended"}})
	loc = requireRedirect(t, resp, RouteAdmin)
	require.NotEmpty(t, loc.Query().Get("error"))

	for _, want := range []disputes.Status{disputes.StatusInvestigating, disputes.StatusResolved} {
		resp, _ = e.post(t, "/admin/disputes/1/advance", nil)
		requireRedirect(t, resp, RouteAdmin)
		list, err := e.disputes.List()
		require.NoError(t, err)
		for _, d := range list {
			if d.ID == "1" {
				require.Equal(t, want, d.Status)
			}
		}
	}
	resp, _ = e.post(t, "/admin/disputes/1/advance", nil)
	loc = requireRedirect(t, resp, RouteAdmin)
	require.NotEmpty(t, loc.Query().Get("error"))
}

func TestLogout(t *testing.T) {
	e := newTestEnv(t, nil)
	e.signup(t, "alice", users.RoleStudent)

	resp, _ := e.post(t, RouteAuthLogout, nil)
	requireRedirect(t, resp, RouteHome)
	resp, _ = e.get(t, RouteStudent)
	requireRedirect(t, resp, RouteAuth)

	// a second logout is harmless
	resp, _ = e.post(t, RouteAuthLogout, nil)
	requireRedirect(t, resp, RouteHome)
}

func TestSessionAPI(t *testing.T) {
	e := newTestEnv(t, nil)

	resp, body := e.get(t, RouteAPISession)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.JSONEq(t, `{"authenticated":false}`, body)

	e.signup(t, "alice", users.RoleMentor)
	resp, body = e.get(t, RouteAPISession)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Equal(t, true, got["authenticated"])
	require.Equal(t, "alice", got["username"])
	require.Equal(t, "mentor", got["user_type"])
	require.Equal(t, true, got["is_verified"])
	require.Equal(t, "Verified Mentor", got["badge"])
}

func TestCorruptCookieReadsAsSignedOut(t *testing.T) {
	e := newTestEnv(t, nil)
	u, err := url.Parse(e.srv.URL)
	require.NoError(t, err)
	e.client.Jar.SetCookies(u, []*http.Cookie{{Name: sessions.SlotKey, Value: "not-a-token", Path: "/"}})

	resp, _ := e.get(t, RouteStudent)
	requireRedirect(t, resp, RouteAuth)
	resp, _ = e.get(t, RouteAPISession)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, body := e.get(t, RouteMetrics)
	require.Contains(t, body, "campusmate_sessions_corrupt_total 2")
}

func TestSignupRateLimit(t *testing.T) {
	e := newTestEnv(t, map[string]string{"RATE_LIMITING": "true"})
	for i := 0; i < 5; i++ {
		requireRedirect(t, e.signup(t, "alice", users.RoleStudent), RouteStudent)
	}
	resp := e.signup(t, "alice", users.RoleStudent)
	loc := requireRedirect(t, resp, RouteAuth)
	require.Contains(t, loc.Query().Get("error"), "Too many")
	require.Equal(t, "60", resp.Header.Get("Retry-After"))

	_, body := e.get(t, RouteMetrics)
	require.Contains(t, body, `campusmate_verifications_total{outcome="rate_limited"} 1`)
	require.Contains(t, body, `campusmate_verifications_total{outcome="ok"} 5`)
}

func TestHealthAndStatic(t *testing.T) {
	e := newTestEnv(t, nil)
	resp, body := e.get(t, RouteHealth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, `"status":"ok"`)

	resp, _ = e.get(t, "/css/campusmate.css")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/css")

	resp, _ = e.get(t, "/css/missing.css")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRupees(t *testing.T) {
	cases := map[int]string{
		0:       "₹0",
		999:     "₹999",
		15200:   "₹15,200",
		125000:  "₹1,25,000",
		1234567: "₹12,34,567",
		-4500:   "-₹4,500",
	}
	for in, want := range cases {
		require.Equal(t, want, rupees(in), in)
	}
}

func TestPercentBoundsMeterWidth(t *testing.T) {
	percent := templateFuncs["percent"].(func(int) int)
	require.Equal(t, 85, percent(85))
	require.Equal(t, 100, percent(140))
	require.Equal(t, 0, percent(-3))
}

func TestClientLimiter(t *testing.T) {
	l := newClientLimiter(0, 2)
	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
}

func TestNewRejectsDevSecretOutsideDev(t *testing.T) {
	build := func() error {
		_, err := New(config.New(), verification.NewStubVerifier(verification.WithLatency(0)), Repos{
			Users:    fakeuserrepo.NewSeededUserRepo(),
			Tasks:    faketaskrepo.NewSeededTaskRepo(),
			Mentors:  fakementorrepo.NewSeededMentorRepo(),
			Disputes: fakedisputerepo.NewSeededDisputeRepo(),
		}, prometheus.NewRegistry())
		return err
	}

	t.Setenv("ENV", "PROD")
	t.Setenv("SESSION_SECRET", "")
	require.ErrorContains(t, build(), "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", config.DevSessionSecret)
	require.ErrorContains(t, build(), "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", "a-private-production-secret")
	require.NoError(t, build())

	t.Setenv("ENV", "DEV")
	t.Setenv("SESSION_SECRET", "")
	require.NoError(t, build())
}
