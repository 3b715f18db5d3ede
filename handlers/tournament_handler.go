package handlers

import (
	"net/http"

	"github.com/Dosada05/friends-league/services"
)

type TournamentHandler struct {
	tournamentService  services.TournamentService
	progressionService services.ProgressionService
}

func NewTournamentHandler(ts services.TournamentService, ps services.ProgressionService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts, progressionService: ps}
}

// CreateTournament godoc
// @Summary Создать турнир
// @Tags tournaments
// @Description Создает турнир и сразу генерирует полное расписание (лига или плей-офф на 8 команд).
// @Accept json
// @Produce json
// @Param body body services.CreateTournamentInput true "Название, команды, формат и число матчей в паре"
// @Success 201 {object} services.TournamentView "Турнир создан"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 409 {object} map[string]string "Название уже занято"
// @Failure 500 {object} map[string]string "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /tournaments [post]
func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.tournamentService.CreateTournament(r.Context(), owner, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", "/tournaments/"+view.Tournament.ID)
	if err := writeJSON(w, http.StatusCreated, view, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListTournaments godoc
// @Summary Мои турниры
// @Tags tournaments
// @Description Турниры текущего пользователя, новые первыми.
// @Produce json
// @Success 200 {object} map[string]interface{} "Список турниров"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Security BearerAuth
// @Router /tournaments [get]
func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	list, err := h.tournamentService.ListTournaments(r.Context(), owner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": list}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTournament godoc
// @Summary Публичная страница турнира
// @Tags tournaments
// @Description Турнир, расписание и таблица (лига) или сетка (плей-офф).
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} services.TournamentView
// @Failure 400 {object} map[string]string "Некорректный ID"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.tournamentService.GetTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStandings godoc
// @Summary Турнирная таблица лиги
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{} "Таблица"
// @Failure 400 {object} map[string]string "Турнир не является лигой"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentID}/standings [get]
func (h *TournamentHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.tournamentService.GetStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Resync godoc
// @Summary Пересчитать продвижение по сетке
// @Tags tournaments
// @Description Повторяет недостающие записи после частичного сбоя.
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} services.ProgressOutcome
// @Failure 403 {object} map[string]string "Не владелец турнира"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Failure 500 {object} map[string]interface{} "Часть записей снова не удалась"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/resync [post]
func (h *TournamentHandler) Resync(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	outcome, err := h.progressionService.Resync(r.Context(), owner, tournamentID)
	writeProgress(w, r, outcome, err)
}
