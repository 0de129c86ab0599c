// Package fixtures loads a yaml description of users and projects into the
// tracker through its regular operations.
package fixtures

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/kdudkov/projtrack/internal/identity"
	"github.com/kdudkov/projtrack/internal/model"
	"github.com/kdudkov/projtrack/internal/tracker"
)

type User struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

type Member struct {
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

type Milestone struct {
	Name string `yaml:"name"`
}

type Activity struct {
	Author string `yaml:"author"`
	Text   string `yaml:"text"`
}

type Issue struct {
	Name      string      `yaml:"name"`
	Status    string      `yaml:"status"`
	Label     string      `yaml:"label"`
	Assigned  string      `yaml:"assigned"`
	Milestone string      `yaml:"milestone"`
	Activity  []*Activity `yaml:"activity"`
}

type Project struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Status      string       `yaml:"status"`
	Owner       string       `yaml:"owner"`
	Members     []*Member    `yaml:"members"`
	Milestones  []*Milestone `yaml:"milestones"`
	Links       []string     `yaml:"links"`
	Issues      []*Issue     `yaml:"issues"`
}

type Fixture struct {
	Users    []*User    `yaml:"users"`
	Projects []*Project `yaml:"projects"`
}

func Read(fn string) (*Fixture, error) {
	dat, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}

	f := new(Fixture)
	if err := yaml.Unmarshal(dat, f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fn, err)
	}

	return f, nil
}

// emails lists every address the fixture refers to.
func (f *Fixture) emails() []string {
	res := lo.Map(f.Users, func(u *User, _ int) string { return u.Email })

	for _, p := range f.Projects {
		res = append(res, p.Owner)
		res = append(res, lo.Map(p.Members, func(m *Member, _ int) string { return m.Email })...)

		for _, i := range p.Issues {
			res = append(res, lo.Map(i.Activity, func(a *Activity, _ int) string { return a.Author })...)
		}
	}

	return lo.Uniq(lo.Compact(res))
}

// Apply creates users and projects. Members join through an invite issued by
// the project owner, the same way real users do.
func Apply(ctx context.Context, tr *tracker.Tracker, users *identity.Resolver, f *Fixture) error {
	names := lo.SliceToMap(f.Users, func(u *User) (string, string) { return u.Email, u.Name })

	for _, email := range f.emails() {
		if _, err := users.Resolve(ctx, email, names[email]); err != nil {
			return fmt.Errorf("user %s: %w", email, err)
		}
	}

	for _, p := range f.Projects {
		if err := applyProject(ctx, tr, p); err != nil {
			return fmt.Errorf("project %s: %w", p.Name, err)
		}
	}

	return nil
}

func applyProject(ctx context.Context, tr *tracker.Tracker, p *Project) error {
	project := &model.Project{Name: p.Name, Description: p.Description, Status: p.Status}

	if err := tr.CreateProject(ctx, p.Owner, project); err != nil {
		return err
	}

	for _, m := range p.Members {
		inv, err := tr.IssueInvite(ctx, p.Owner, project.ID, m.Email, m.Role)
		if err != nil {
			return err
		}

		if _, err := tr.ConsumeInvite(ctx, inv.ID, m.Email); err != nil {
			return err
		}
	}

	milestones := make(map[string]uuid.UUID, len(p.Milestones))

	for _, m := range p.Milestones {
		ms := &model.Milestone{Name: m.Name}
		if err := tr.AddMilestone(ctx, p.Owner, project.ID, ms); err != nil {
			return err
		}

		milestones[m.Name] = ms.ID
	}

	for _, l := range p.Links {
		if err := tr.AddLink(ctx, p.Owner, project.ID, &model.Link{InfoLink: l}); err != nil {
			return err
		}
	}

	for _, i := range p.Issues {
		issue := &model.Issue{Name: i.Name, Status: i.Status, Label: i.Label, Assigned: i.Assigned}

		if i.Milestone != "" {
			id, ok := milestones[i.Milestone]
			if !ok {
				return fmt.Errorf("issue %s: unknown milestone %s", i.Name, i.Milestone)
			}

			issue.MilestoneID = &id
		}

		if err := tr.AddIssue(ctx, p.Owner, project.ID, issue); err != nil {
			return err
		}

		for _, a := range i.Activity {
			author := lo.Ternary(a.Author != "", a.Author, p.Owner)

			if err := tr.PostActivity(ctx, author, project.ID, issue.ID, &model.Activity{Description: a.Text}); err != nil {
				return fmt.Errorf("activity by %s: %w", author, err)
			}
		}
	}

	return nil
}
