package handlers

// Client-facing messages, kept stable for API consumers.
const (
	msgNotFound = "Resource not found"

	msgPlayerCreated = "Player successfully created"
	msgPlayerUpdated = "Player successfully updated"
	msgPlayerDeleted = "Player successfully deleted"

	msgTeamCreated     = "Team successfully created"
	msgTeamUpdated     = "Team successfully updated"
	msgTeamDeleted     = "Team successfully deleted"
	msgTeamLogoUpdated = "Team logo successfully updated"

	msgLoggedOut = "Successfully logged out"
)
