package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dosada05/league-api/services"
	"github.com/Dosada05/league-api/validation"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// List handles GET /players with optional position/name/team_id filters and
// per_page/page bounds.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter services.ListPlayersFilter
	query := r.URL.Query()

	if position := query.Get("position"); position != "" {
		filter.Position = &position
	}
	if name := query.Get("name"); name != "" {
		filter.Name = &name
	}
	if teamIDStr := query.Get("team_id"); teamIDStr != "" {
		teamID, err := strconv.Atoi(teamIDStr)
		if err != nil {
			failedValidationResponse(w, r, validation.Errors{"team_id": "The team_id must be an integer"})
			return
		}
		filter.TeamID = &teamID
	}
	filter.Page = pageFromQuery(r)

	page, err := h.playerService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"success":      true,
		"data":         NewPlayerViews(page.Players),
		"total":        page.Total,
		"current_page": page.CurrentPage,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	player, err := h.playerService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"success": true,
		"data":    NewPlayerView(player),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput
	if err := decodeBody(w, r, &input); err != nil {
		return
	}

	player, err := h.playerService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"success": true,
		"data":    NewPlayerView(player),
		"message": msgPlayerCreated,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	var input services.UpdatePlayerInput
	if err := decodeBody(w, r, &input); err != nil {
		return
	}

	player, err := h.playerService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"success": true,
		"data":    NewPlayerView(player),
		"message": msgPlayerUpdated,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	if err := h.playerService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"success": true,
		"message": msgPlayerDeleted,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// pageFromQuery reads per_page and page, leaving zero values for the service
// defaults when a parameter is absent or not numeric.
func pageFromQuery(r *http.Request) services.Page {
	var page services.Page
	query := r.URL.Query()

	if perPageStr := query.Get("per_page"); perPageStr != "" {
		if perPage, err := strconv.Atoi(perPageStr); err == nil {
			page.PerPage = perPage
		}
	}
	if pageStr := query.Get("page"); pageStr != "" {
		if number, err := strconv.Atoi(pageStr); err == nil {
			page.Number = number
		}
	}
	return page
}
