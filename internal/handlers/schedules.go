package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"recoleta-backend/internal/middleware"
	"recoleta-backend/internal/models"
	"recoleta-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Weekday ordering and indexing for the Portuguese day labels.
var dayOrder = map[string]int{
	"Segunda-feira": 1, "Terça-feira": 2, "Quarta-feira": 3, "Quinta-feira": 4,
	"Sexta-feira": 5, "Sábado": 6, "Domingo": 7,
}

var dayToWeekday = map[string]time.Weekday{
	"Domingo": time.Sunday, "Segunda-feira": time.Monday, "Terça-feira": time.Tuesday,
	"Quarta-feira": time.Wednesday, "Quinta-feira": time.Thursday,
	"Sexta-feira": time.Friday, "Sábado": time.Saturday,
}

// ListSchedules returns the caller's region schedules, Monday through
// Sunday.
func ListSchedules(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		schedules := []models.CollectionSchedule{}
		err := db.Select(&schedules,
			`SELECT * FROM collection_schedules WHERE region = $1`, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to list schedules: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		sort.SliceStable(schedules, func(i, j int) bool {
			oi, oj := dayOrder[schedules[i].DayOfWeek], dayOrder[schedules[j].DayOfWeek]
			if oi == 0 {
				oi = 8
			}
			if oj == 0 {
				oj = 8
			}
			if oi != oj {
				return oi < oj
			}
			return schedules[i].StartTime < schedules[j].StartTime
		})

		utils.Success(w, schedules)
	}
}

// NextCollection returns the next upcoming collection window for the
// caller's region, or null when the region has no schedules.
func NextCollection(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		schedules := []models.CollectionSchedule{}
		err := db.Select(&schedules,
			`SELECT * FROM collection_schedules WHERE region = $1`, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to list schedules: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		info := nextCollectionSlot(schedules, time.Now())
		utils.Success(w, info)
	}
}

// nextCollectionSlot finds the earliest upcoming window. A window today
// whose start time already passed counts for next week.
func nextCollectionSlot(schedules []models.CollectionSchedule, now time.Time) *models.NextCollectionInfo {
	var best *models.CollectionSchedule
	var bestAt time.Time

	for i := range schedules {
		s := schedules[i]
		weekday, ok := dayToWeekday[s.DayOfWeek]
		if !ok {
			continue
		}
		hour, minute, ok := parseClock(s.StartTime)
		if !ok {
			continue
		}

		daysUntil := (int(weekday) - int(now.Weekday()) + 7) % 7
		eventAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()).
			AddDate(0, 0, daysUntil)
		if !eventAt.After(now) {
			eventAt = eventAt.AddDate(0, 0, 7)
		}

		if best == nil || eventAt.Before(bestAt) {
			best = &schedules[i]
			bestAt = eventAt
		}
	}

	if best == nil {
		return nil
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	diffDays := int(bestAt.Sub(midnight).Hours() / 24)

	dayLabel := best.DayOfWeek
	if diffDays == 0 {
		dayLabel = "Hoje"
	} else if diffDays == 1 {
		dayLabel = "Amanhã"
	}

	return &models.NextCollectionInfo{
		DayLabel:  dayLabel,
		TimeRange: best.StartTime + " - " + best.EndTime,
		WasteType: best.WasteType,
		Sector:    best.Sector,
	}
}

func parseClock(value string) (hour, minute int, ok bool) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// CreateSchedule adds a weekly window to the admin's region.
func CreateSchedule(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req models.CreateScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if _, ok := dayToWeekday[req.DayOfWeek]; !ok {
			utils.Error(w, http.StatusBadRequest, "Dia da semana inválido.")
			return
		}
		if _, _, ok := parseClock(req.StartTime); !ok {
			utils.Error(w, http.StatusBadRequest, "Horário de início inválido.")
			return
		}
		if _, _, ok := parseClock(req.EndTime); !ok {
			utils.Error(w, http.StatusBadRequest, "Horário de término inválido.")
			return
		}

		schedule := models.CollectionSchedule{
			ID:        uuid.New().String(),
			DayOfWeek: req.DayOfWeek,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			WasteType: req.WasteType,
			Sector:    strings.TrimSpace(req.Sector),
			Region:    claims.Region,
		}

		_, err := db.NamedExec(`
			INSERT INTO collection_schedules (id, day_of_week, start_time, end_time, waste_type, sector, region)
			VALUES (:id, :day_of_week, :start_time, :end_time, :waste_type, :sector, :region)`, schedule)
		if err != nil {
			log.Printf("❌ Failed to insert schedule: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.JSON(w, http.StatusCreated, schedule)
	}
}

// UpdateSchedule edits a window. The region stamp never changes and the
// acting admin must own it.
func UpdateSchedule(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		scheduleID := chi.URLParam(r, "id")

		var req models.UpdateScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var schedule models.CollectionSchedule
		if err := db.Get(&schedule, `SELECT * FROM collection_schedules WHERE id = $1`, scheduleID); err != nil {
			utils.Error(w, http.StatusNotFound, "Horário não encontrado.")
			return
		}
		if schedule.Region != claims.Region {
			utils.Error(w, http.StatusForbidden, "Este horário pertence a outra região.")
			return
		}

		if req.DayOfWeek != nil {
			if _, ok := dayToWeekday[*req.DayOfWeek]; !ok {
				utils.Error(w, http.StatusBadRequest, "Dia da semana inválido.")
				return
			}
			schedule.DayOfWeek = *req.DayOfWeek
		}
		if req.StartTime != nil {
			if _, _, ok := parseClock(*req.StartTime); !ok {
				utils.Error(w, http.StatusBadRequest, "Horário de início inválido.")
				return
			}
			schedule.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			if _, _, ok := parseClock(*req.EndTime); !ok {
				utils.Error(w, http.StatusBadRequest, "Horário de término inválido.")
				return
			}
			schedule.EndTime = *req.EndTime
		}
		if req.WasteType != nil {
			schedule.WasteType = *req.WasteType
		}
		if req.Sector != nil {
			schedule.Sector = strings.TrimSpace(*req.Sector)
		}

		_, err := db.NamedExec(`
			UPDATE collection_schedules SET
				day_of_week = :day_of_week, start_time = :start_time, end_time = :end_time,
				waste_type = :waste_type, sector = :sector
			WHERE id = :id`, schedule)
		if err != nil {
			log.Printf("❌ Failed to update schedule: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, schedule)
	}
}

// DeleteSchedule removes a window from the admin's region.
func DeleteSchedule(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		scheduleID := chi.URLParam(r, "id")

		result, err := db.Exec(
			`DELETE FROM collection_schedules WHERE id = $1 AND region = $2`,
			scheduleID, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to delete schedule: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.Error(w, http.StatusNotFound, "Horário não encontrado.")
			return
		}

		utils.Success(w, map[string]bool{"ok": true})
	}
}
