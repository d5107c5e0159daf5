package services

const defaultPerPage = 10

// Page bounds a list request. Out-of-range values fall back to page 1 with
// the default page size rather than erroring.
type Page struct {
	Number  int
	PerPage int
}

func (p Page) normalize() Page {
	if p.PerPage <= 0 {
		p.PerPage = defaultPerPage
	}
	if p.Number <= 0 {
		p.Number = 1
	}
	return p
}

func (p Page) offset() int {
	return (p.Number - 1) * p.PerPage
}

// EventPublisher receives entity change notifications. A nil publisher is
// tolerated by the services so tests can skip it.
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

const (
	EventTeamCreated   = "TEAM_CREATED"
	EventTeamUpdated   = "TEAM_UPDATED"
	EventTeamDeleted   = "TEAM_DELETED"
	EventPlayerCreated = "PLAYER_CREATED"
	EventPlayerUpdated = "PLAYER_UPDATED"
	EventPlayerDeleted = "PLAYER_DELETED"
)
