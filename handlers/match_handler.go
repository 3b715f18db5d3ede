package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/friends-league/services"
)

// ListMatches godoc
// @Summary Расписание турнира
// @Tags matches
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{} "Матчи по возрастанию matchDay"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentID}/matches [get]
func (h *TournamentHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.tournamentService.GetMatches(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err) // Используем общий маппер ошибок
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitResult godoc
// @Summary Внести результат матча
// @Tags matches
// @Description Записывает счёт и продвигает турнир. Ничья в паре плей-офф возвращает replay_required.
// @Accept json
// @Produce json
// @Param matchID path string true "Match ID"
// @Param body body services.SubmitResultInput true "Счёт хозяев и гостей"
// @Success 200 {object} services.ProgressOutcome
// @Failure 403 {object} map[string]string "Не владелец турнира"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Failure 409 {object} map[string]string "Матч уже сыгран или турнир завершён"
// @Failure 422 {object} map[string]string "Некорректный счёт"
// @Failure 500 {object} map[string]interface{} "Сетка обновлена частично"
// @Security BearerAuth
// @Router /matches/{matchID}/result [put]
func (h *TournamentHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SubmitResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	outcome, err := h.progressionService.SubmitResult(r.Context(), owner, matchID, input)
	writeProgress(w, r, outcome, err)
}

func writeProgress(w http.ResponseWriter, r *http.Request, outcome *services.ProgressOutcome, err error) {
	var propErr *services.PropagationError
	switch {
	case errors.As(err, &propErr):
		propagationFailureResponse(w, r, propErr, outcome)
		return
	case err != nil:
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, outcome, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
