package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdudkov/projtrack/internal/config"
	"github.com/kdudkov/projtrack/internal/identity"
	"github.com/kdudkov/projtrack/internal/model"
)

const emailHeader = "X-Auth-Email"

type TestApp struct {
	*App
	srv *HttpServer
}

func NewTestApp(t *testing.T) *TestApp {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg := config.NewAppConfig()
	cfg.Set("db", ":memory:")
	cfg.Set("auth.jwt_secret", "111")
	cfg.Set("auth.trusted_header", emailHeader)
	cfg.Set("invite.base_url", "https://tracker.example.com/")

	app, err := NewApp(cfg)
	require.NoError(t, err)

	return &TestApp{App: app, srv: NewHttp(app)}
}

func (app *TestApp) Req(method, url, email string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	if email != "" {
		req.Header.Add(emailHeader, email)
	}

	return app.srv.f.Test(req, 3000)
}

func (app *TestApp) PostJSON(url, email string, obj any) (*http.Response, error) {
	d, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewReader(d))
	if err != nil {
		return nil, err
	}

	req.Header.Add(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Add(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	if email != "" {
		req.Header.Add(emailHeader, email)
	}

	return app.srv.f.Test(req, 3000)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	var res T

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))

	return res
}

func (app *TestApp) login(t *testing.T, email string) {
	resp, err := app.Req("GET", "/project/all", email, nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func (app *TestApp) createProject(t *testing.T, email, name string) uuid.UUID {
	resp, err := app.PostJSON("/project/createproject", email, map[string]any{"ProjectName": name})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	res := decode[map[string]uuid.UUID](t, resp)
	id := res["ProjectId"]
	require.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, fmt.Sprintf("/project/%s/overview", id), resp.Header.Get(fiber.HeaderLocation))

	return id
}

func TestUnauthenticated(t *testing.T) {
	app := NewTestApp(t)

	resp, err := app.Req("GET", "/project/all", "", nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest("GET", "/project/all", nil)
	req.Header.Add(fiber.HeaderAuthorization, "Bearer garbage")

	resp, err = app.srv.f.Test(req, 3000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestBearerToken(t *testing.T) {
	app := NewTestApp(t)

	token, err := identity.NewTokenManager("111", "").Create(identity.Claims{Email: "alice@x.com", Name: "Alice"}, time.Hour)
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/project/all", nil)
	req.Header.Add(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.srv.f.Test(req, 3000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]map[string]string](t, resp))

	u, err := app.dbm.UserQuery(context.Background()).Email("alice@x.com").One()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Alice", u.Name)
}

func TestCreateProjectUnknownUser(t *testing.T) {
	app := NewTestApp(t)

	resp, err := app.PostJSON("/project/createproject", "alice@x.com", map[string]any{"ProjectName": "Apollo"})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	res := decode[map[string]string](t, resp)
	assert.Equal(t, "Internal Server Error", res["error"])
}

func TestScenario(t *testing.T) {
	app := NewTestApp(t)

	app.login(t, "alice@x.com")
	app.login(t, "bob@x.com")

	id := app.createProject(t, "alice@x.com", "Apollo")
	overview := fmt.Sprintf("/project/%s/overview", id)

	resp, err := app.Req("GET", overview, "alice@x.com", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	rows := decode[[]map[string]any](t, resp)
	require.Len(t, rows, 1)
	assert.Equal(t, "Apollo", rows[0]["ProjectName"])
	assert.Nil(t, rows[0]["MilestoneId"])

	resp, err = app.Req("GET", overview, "bob@x.com", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]map[string]any](t, resp))

	resp, err = app.PostJSON(fmt.Sprintf("/project/%s/addmember", id), "alice@x.com", map[string]string{"inviteeEmail": "carol@x.com"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	inv := decode[map[string]string](t, resp)
	inviteID := inv["InvitesId"]
	require.NotEmpty(t, inviteID)
	assert.Equal(t, "https://tracker.example.com/project/invite/"+inviteID, inv["InviteLink"])

	// wrong person and unknown invite look the same
	resp, err = app.Req("GET", "/project/invite/"+inviteID, "mallory@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/project/all", resp.Header.Get(fiber.HeaderLocation))

	resp, err = app.Req("GET", "/project/invite/"+uuid.NewString(), "mallory@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/project/all", resp.Header.Get(fiber.HeaderLocation))

	resp, err = app.Req("GET", "/project/invite/"+inviteID, "carol@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, overview, resp.Header.Get(fiber.HeaderLocation))

	// replay
	resp, err = app.Req("GET", "/project/invite/"+inviteID, "carol@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, "/project/all", resp.Header.Get(fiber.HeaderLocation))

	resp, err = app.Req("GET", "/project/all", "carol@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{{"ProjectName": "Apollo"}}, decode[[]map[string]string](t, resp))

	carol, err := app.dbm.UserQuery(context.Background()).Email("carol@x.com").One()
	require.NoError(t, err)
	require.NotNil(t, carol)

	m, err := app.dbm.MemberQuery(context.Background()).User(carol.ID).Project(id).One()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, model.RoleGuest, m.Role)
}

func TestInviteByNonMember(t *testing.T) {
	app := NewTestApp(t)

	app.login(t, "alice@x.com")
	id := app.createProject(t, "alice@x.com", "Apollo")

	resp, err := app.PostJSON(fmt.Sprintf("/project/%s/addmember", id), "bob@x.com", map[string]string{"inviteeEmail": "carol@x.com"})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestIssuesAndActivity(t *testing.T) {
	app := NewTestApp(t)

	app.login(t, "alice@x.com")
	id := app.createProject(t, "alice@x.com", "Apollo")

	resp, err := app.PostJSON(fmt.Sprintf("/project/%s/milestones", id), "alice@x.com", map[string]any{"MilestoneName": "Launch"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	milestone := decode[map[string]any](t, resp)

	resp, err = app.PostJSON(fmt.Sprintf("/project/%s/links", id), "alice@x.com", map[string]any{"InfoLink": "https://example.com"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.PostJSON(fmt.Sprintf("/project/%s/issues", id), "alice@x.com",
		map[string]any{"IssueName": "engine", "IssueStatus": "open", "MilestoneId": milestone["MilestoneId"]})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	issueID := decode[map[string]any](t, resp)["IssueId"].(string)

	resp, err = app.PostJSON(fmt.Sprintf("/project/%s/issues", id), "bob@x.com", map[string]any{"IssueName": "intruder"})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.PostJSON(fmt.Sprintf("/project/%s/issues", id), "alice@x.com", map[string]any{"IssueName": ""})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Req("GET", fmt.Sprintf("/project/%s/issues", id), "alice@x.com", nil)
	require.NoError(t, err)
	issues := decode[[]map[string]any](t, resp)
	require.Len(t, issues, 1)
	assert.Equal(t, "Launch", issues[0]["MilestoneName"])

	detail := fmt.Sprintf("/project/%s/issue/%s", id, issueID)

	resp, err = app.Req("GET", detail, "alice@x.com", nil)
	require.NoError(t, err)
	assert.Empty(t, decode[[]map[string]any](t, resp))

	resp, err = app.PostJSON(detail+"/activity", "alice@x.com", map[string]any{"ActivityDesc": "broken"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Req("GET", detail, "alice@x.com", nil)
	require.NoError(t, err)
	rows := decode[[]map[string]any](t, resp)
	require.Len(t, rows, 1)
	assert.Equal(t, "broken", rows[0]["ActivityDesc"])
	assert.Equal(t, "alice", rows[0]["ActivityUserName"])

	resp, err = app.Req("GET", fmt.Sprintf("/project/%s/overview", id), "alice@x.com", nil)
	require.NoError(t, err)
	overview := decode[[]map[string]any](t, resp)
	require.Len(t, overview, 1)
	assert.Equal(t, "Launch", overview[0]["MilestoneName"])
	assert.Equal(t, "https://example.com", overview[0]["InfoLink"])
}

func TestBadIds(t *testing.T) {
	app := NewTestApp(t)

	app.login(t, "alice@x.com")

	resp, err := app.Req("GET", "/project/zzz/overview", "alice@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]map[string]any](t, resp))

	resp, err = app.Req("GET", "/project/invite/zzz", "alice@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	app := NewTestApp(t)

	resp, err := app.Req("GET", "/metrics", "", nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestZeroIds(t *testing.T) {
	app := NewTestApp(t)

	app.login(t, "alice@x.com")
	app.login(t, "carol@x.com")

	id := app.createProject(t, "alice@x.com", "Apollo")

	resp, err := app.PostJSON(fmt.Sprintf("/project/%s/addmember", id), "alice@x.com", map[string]string{"inviteeEmail": "carol@x.com"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	inviteID := decode[map[string]string](t, resp)["InvitesId"]

	resp, err = app.Req("GET", "/project/invite/"+uuid.Nil.String(), "carol@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/project/all", resp.Header.Get(fiber.HeaderLocation))

	resp, err = app.Req("GET", fmt.Sprintf("/project/%s/overview", uuid.Nil), "alice@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]map[string]any](t, resp))

	resp, err = app.PostJSON(fmt.Sprintf("/project/%s/issues", id), "alice@x.com",
		map[string]any{"IssueName": "engine", "MilestoneId": uuid.Nil.String()})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Req("GET", "/project/invite/"+inviteID, "carol@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/project/%s/overview", id), resp.Header.Get(fiber.HeaderLocation))
}
