package main

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kdudkov/projtrack/internal/membership"
	"github.com/kdudkov/projtrack/internal/tracker"
	"github.com/kdudkov/projtrack/pkg/log"
)

type HttpServer struct {
	f       *fiber.App
	tracker *tracker.Tracker
	baseURL string
}

func NewHttp(app *App) *HttpServer {
	srv := &HttpServer{
		tracker: app.tracker,
		baseURL: app.cfg.InviteBaseURL(),
	}

	srv.f = fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true})

	srv.f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "api", UserGetter: Email, DoMetrics: app.cfg.Metrics()}))

	if app.cfg.Metrics() {
		srv.f.Get("/metrics", getMetricsHandler())
	}

	withUser := resolveUser(app.users)

	p := srv.f.Group("/project", getAuth(app.tokens, app.cfg.TrustedHeader()))

	p.Get("/all", withUser, srv.getProjectsHandler())
	p.Post("/createproject", srv.createProjectHandler())
	p.Get("/invite/:inviteId", withUser, srv.consumeInviteHandler())

	p.Get("/:projectId/overview", srv.getOverviewHandler())
	p.Get("/:projectId/issues", srv.getIssuesHandler())
	p.Get("/:projectId/issue/:issueId", srv.getIssueDetailHandler())
	p.Post("/:projectId/addmember", srv.issueInviteHandler())

	p.Post("/:projectId/milestones", srv.addMilestoneHandler())
	p.Post("/:projectId/links", srv.addLinkHandler())
	p.Post("/:projectId/issues", srv.addIssueHandler())
	p.Post("/:projectId/issue/:issueId/activity", srv.postActivityHandler())

	return srv
}

func (h *HttpServer) Listen(addr string) error {
	return h.f.Listen(addr)
}

func (h *HttpServer) Shutdown() error {
	return h.f.Shutdown()
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{DisableCompression: true},
	))
}

// paramID parses a uuid path parameter. The zero uuid never names a row.
func paramID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))

	return id, err == nil && id != uuid.Nil
}

func internalError(c *fiber.Ctx, err error) error {
	slog.Error("request failed", slog.String("path", c.Path()), slog.String("user", Email(c)), slog.Any("error", err))

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}

// writeError maps errors of the scoped writes. Non members see the same 404
// as for a missing project.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, membership.ErrNotMember), errors.Is(err, tracker.ErrNotFound):
		return c.SendStatus(fiber.StatusNotFound)
	case errors.Is(err, tracker.ErrEmptyName), errors.Is(err, tracker.ErrEmptyEmail), errors.Is(err, tracker.ErrInvalidReference):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return internalError(c, err)
	}
}
