package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultAccepted = "accepted"
	resultMember   = "already_member"
	resultRejected = "rejected"
)

var (
	projectsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "projtrack",
		Name:      "projects_created_total",
		Help:      "Number of created projects.",
	})

	invitesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "projtrack",
		Name:      "invites_issued_total",
		Help:      "Number of issued invites.",
	})

	invitesConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "projtrack",
		Name:      "invites_consumed_total",
		Help:      "Invite consumption attempts by result.",
	}, []string{"result"})
)
