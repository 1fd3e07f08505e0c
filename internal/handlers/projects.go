package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"recoleta-backend/internal/middleware"
	"recoleta-backend/internal/models"
	"recoleta-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func loadProjectExtras(db *sqlx.DB, projects []models.LocalProject) error {
	for i := range projects {
		participants := []string{}
		if err := db.Select(&participants,
			`SELECT user_name FROM project_participants WHERE project_id = $1 ORDER BY created_at ASC`,
			projects[i].ID); err != nil {
			return err
		}
		projects[i].Participants = participants

		comments := []models.Comment{}
		if err := db.Select(&comments,
			`SELECT id, author, content, created_at FROM project_comments
			 WHERE project_id = $1 ORDER BY created_at ASC`, projects[i].ID); err != nil {
			return err
		}
		projects[i].Comments = comments
	}
	return nil
}

// ListProjects returns the caller's region initiatives, newest first.
func ListProjects(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		projects := []models.LocalProject{}
		err := db.Select(&projects,
			`SELECT * FROM local_projects WHERE region = $1 ORDER BY created_at DESC`, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to list projects: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if err := loadProjectExtras(db, projects); err != nil {
			log.Printf("❌ Failed to load project extras: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, projects)
	}
}

// CreateProject starts a community initiative in the author's region.
func CreateProject(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req models.CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			utils.Error(w, http.StatusBadRequest, "Título é obrigatório.")
			return
		}

		project := models.LocalProject{
			ID:           uuid.New().String(),
			Title:        strings.TrimSpace(req.Title),
			Description:  strings.TrimSpace(req.Description),
			AuthorID:     claims.UserID,
			AuthorName:   claims.Name,
			Region:       claims.Region,
			Date:         strings.TrimSpace(req.Date),
			Location:     strings.TrimSpace(req.Location),
			CreatedAt:    time.Now().Unix(),
			Participants: []string{claims.Name},
			Comments:     []models.Comment{},
		}

		_, err := db.NamedExec(`
			INSERT INTO local_projects (id, title, description, author_id, author_name, region, date, location, created_at)
			VALUES (:id, :title, :description, :author_id, :author_name, :region, :date, :location, :created_at)`,
			project)
		if err != nil {
			log.Printf("❌ Failed to insert project: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		// The author participates in their own initiative.
		_, err = db.Exec(`
			INSERT INTO project_participants (project_id, user_id, user_name, created_at)
			VALUES ($1, $2, $3, $4)`,
			project.ID, claims.UserID, claims.Name, time.Now().Unix())
		if err != nil {
			log.Printf("⚠️  Failed to add author as participant: %v", err)
		}

		utils.JSON(w, http.StatusCreated, project)
	}
}

// ToggleJoinProject joins the initiative, or leaves it when the caller
// already participates.
func ToggleJoinProject(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		projectID := chi.URLParam(r, "id")

		var project models.LocalProject
		if err := db.Get(&project, `SELECT * FROM local_projects WHERE id = $1`, projectID); err != nil {
			utils.Error(w, http.StatusNotFound, "Projeto não encontrado.")
			return
		}
		if project.Region != claims.Region {
			utils.Error(w, http.StatusForbidden, "Este projeto pertence a outra região.")
			return
		}

		result, err := db.Exec(
			`DELETE FROM project_participants WHERE project_id = $1 AND user_id = $2`,
			projectID, claims.UserID)
		if err != nil {
			log.Printf("❌ Failed to toggle participation: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			_, err := db.Exec(`
				INSERT INTO project_participants (project_id, user_id, user_name, created_at)
				VALUES ($1, $2, $3, $4)`,
				projectID, claims.UserID, claims.Name, time.Now().Unix())
			if err != nil {
				log.Printf("❌ Failed to toggle participation: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}

		projects := []models.LocalProject{project}
		if err := loadProjectExtras(db, projects); err != nil {
			log.Printf("❌ Failed to load project extras: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Success(w, projects[0])
	}
}

// AddProjectComment appends a comment to an initiative in the caller's
// region.
func AddProjectComment(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		projectID := chi.URLParam(r, "id")

		var req models.AddCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			utils.Error(w, http.StatusBadRequest, "Comentário não pode ser vazio.")
			return
		}

		var project models.LocalProject
		if err := db.Get(&project, `SELECT * FROM local_projects WHERE id = $1`, projectID); err != nil {
			utils.Error(w, http.StatusNotFound, "Projeto não encontrado.")
			return
		}
		if project.Region != claims.Region {
			utils.Error(w, http.StatusForbidden, "Este projeto pertence a outra região.")
			return
		}

		comment := models.Comment{
			ID:        uuid.New().String(),
			Author:    claims.Name,
			Content:   strings.TrimSpace(req.Content),
			CreatedAt: time.Now().Unix(),
		}
		_, err := db.Exec(`
			INSERT INTO project_comments (id, project_id, author, content, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			comment.ID, projectID, comment.Author, comment.Content, comment.CreatedAt)
		if err != nil {
			log.Printf("❌ Failed to insert comment: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.JSON(w, http.StatusCreated, comment)
	}
}

// DeleteProject removes an initiative with its participants and
// comments. Author only.
func DeleteProject(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		projectID := chi.URLParam(r, "id")

		result, err := db.Exec(
			`DELETE FROM local_projects WHERE id = $1 AND author_id = $2`,
			projectID, claims.UserID)
		if err != nil {
			log.Printf("❌ Failed to delete project: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.Error(w, http.StatusForbidden, "Você só pode excluir seus próprios projetos.")
			return
		}

		// Cascade cleanup; FKs are not declared ON DELETE CASCADE.
		db.Exec(`DELETE FROM project_participants WHERE project_id = $1`, projectID)
		db.Exec(`DELETE FROM project_comments WHERE project_id = $1`, projectID)

		utils.Success(w, map[string]bool{"ok": true})
	}
}

// RemoveProjectParticipant lets the project author remove someone from
// the participant list.
func RemoveProjectParticipant(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		projectID := chi.URLParam(r, "id")
		targetID := chi.URLParam(r, "userId")

		var project models.LocalProject
		if err := db.Get(&project, `SELECT * FROM local_projects WHERE id = $1`, projectID); err != nil {
			utils.Error(w, http.StatusNotFound, "Projeto não encontrado.")
			return
		}
		if project.AuthorID != claims.UserID {
			utils.Error(w, http.StatusForbidden, "Apenas o autor pode remover participantes.")
			return
		}

		_, err := db.Exec(
			`DELETE FROM project_participants WHERE project_id = $1 AND user_id = $2`,
			projectID, targetID)
		if err != nil {
			log.Printf("❌ Failed to remove participant: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		projects := []models.LocalProject{project}
		if err := loadProjectExtras(db, projects); err != nil {
			log.Printf("❌ Failed to load project extras: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Success(w, projects[0])
	}
}
