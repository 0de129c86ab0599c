package main

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kdudkov/projtrack/internal/model"
	"github.com/kdudkov/projtrack/internal/tracker"
)

func overviewLocation(id uuid.UUID) string {
	return fmt.Sprintf("/project/%s/overview", id)
}

func (h *HttpServer) getProjectsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := h.tracker.ListProjects(c.UserContext(), Email(c))
		if err != nil {
			return internalError(c, err)
		}

		return c.JSON(rows)
	}
}

func (h *HttpServer) createProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := new(model.Project)

		if err := c.BodyParser(p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		p.ID = uuid.Nil

		if err := h.tracker.CreateProject(c.UserContext(), Email(c), p); err != nil {
			if errors.Is(err, tracker.ErrEmptyName) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}

			return internalError(c, err)
		}

		c.Location(overviewLocation(p.ID))

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ProjectId": p.ID})
	}
}

func (h *HttpServer) getOverviewHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, ok := paramID(c, "projectId")
		if !ok {
			return c.JSON([]any{})
		}

		rows, err := h.tracker.Overview(c.UserContext(), Email(c), projectID)
		if err != nil {
			return internalError(c, err)
		}

		return c.JSON(rows)
	}
}

func (h *HttpServer) getIssuesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, ok := paramID(c, "projectId")
		if !ok {
			return c.JSON([]any{})
		}

		rows, err := h.tracker.Issues(c.UserContext(), Email(c), projectID)
		if err != nil {
			return internalError(c, err)
		}

		return c.JSON(rows)
	}
}

func (h *HttpServer) getIssueDetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, ok1 := paramID(c, "projectId")
		issueID, ok2 := paramID(c, "issueId")

		if !ok1 || !ok2 {
			return c.JSON([]any{})
		}

		rows, err := h.tracker.IssueDetail(c.UserContext(), Email(c), projectID, issueID)
		if err != nil {
			return internalError(c, err)
		}

		return c.JSON(rows)
	}
}

func (h *HttpServer) addMilestoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, ok := paramID(c, "projectId")
		if !ok {
			return c.SendStatus(fiber.StatusNotFound)
		}

		m := new(model.Milestone)
		if err := c.BodyParser(m); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		m.ID = uuid.Nil

		if err := h.tracker.AddMilestone(c.UserContext(), Email(c), projectID, m); err != nil {
			return writeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

func (h *HttpServer) addLinkHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, ok := paramID(c, "projectId")
		if !ok {
			return c.SendStatus(fiber.StatusNotFound)
		}

		l := new(model.Link)
		if err := c.BodyParser(l); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		l.ID = uuid.Nil

		if err := h.tracker.AddLink(c.UserContext(), Email(c), projectID, l); err != nil {
			return writeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(l)
	}
}

func (h *HttpServer) addIssueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, ok := paramID(c, "projectId")
		if !ok {
			return c.SendStatus(fiber.StatusNotFound)
		}

		i := new(model.Issue)
		if err := c.BodyParser(i); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		i.ID = uuid.Nil

		if err := h.tracker.AddIssue(c.UserContext(), Email(c), projectID, i); err != nil {
			return writeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(i)
	}
}

func (h *HttpServer) postActivityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, ok1 := paramID(c, "projectId")
		issueID, ok2 := paramID(c, "issueId")

		if !ok1 || !ok2 {
			return c.SendStatus(fiber.StatusNotFound)
		}

		a := new(model.Activity)
		if err := c.BodyParser(a); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		a.ID = uuid.Nil

		if err := h.tracker.PostActivity(c.UserContext(), Email(c), projectID, issueID, a); err != nil {
			return writeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(a)
	}
}
