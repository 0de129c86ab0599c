package main

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kdudkov/projtrack/internal/tracker"
)

const projectListLocation = "/project/all"

type inviteRequest struct {
	Email string `json:"inviteeEmail"`
	Role  string `json:"invitedForRole"`
}

func (h *HttpServer) inviteLink(id uuid.UUID) string {
	return h.baseURL + "/project/invite/" + id.String()
}

func (h *HttpServer) issueInviteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, ok := paramID(c, "projectId")
		if !ok {
			return internalError(c, errors.New("bad project id "+c.Params("projectId")))
		}

		req := new(inviteRequest)
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		inv, err := h.tracker.IssueInvite(c.UserContext(), Email(c), projectID, req.Email, req.Role)
		if err != nil {
			if errors.Is(err, tracker.ErrEmptyEmail) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}

			return internalError(c, err)
		}

		return c.JSON(fiber.Map{"InvitesId": inv.ID, "InviteLink": h.inviteLink(inv.ID)})
	}
}

// consumeInviteHandler redirects to the project on success and to the
// project list otherwise, whatever the reason.
func (h *HttpServer) consumeInviteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inviteID, ok := paramID(c, "inviteId")
		if !ok {
			return c.Redirect(projectListLocation, fiber.StatusSeeOther)
		}

		out, err := h.tracker.ConsumeInvite(c.UserContext(), inviteID, Email(c))
		if err != nil {
			return internalError(c, err)
		}

		if !out.Accepted {
			return c.Redirect(projectListLocation, fiber.StatusSeeOther)
		}

		return c.Redirect(overviewLocation(out.ProjectID), fiber.StatusSeeOther)
	}
}
