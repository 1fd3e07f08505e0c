package handlers

import (
	"encoding/json"
	"fmt"
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

func validPostType(t string) bool {
	return t == models.PostAlert || t == models.PostProject || t == models.PostTip
}

// loadPostExtras fills LikedBy and Comments for each post in place.
func loadPostExtras(db *sqlx.DB, posts []models.CommunityPost) error {
	for i := range posts {
		likedBy := []string{}
		if err := db.Select(&likedBy,
			`SELECT user_id FROM post_likes WHERE post_id = $1`, posts[i].ID); err != nil {
			return err
		}
		posts[i].LikedBy = likedBy
		posts[i].Likes = len(likedBy)

		comments := []models.Comment{}
		if err := db.Select(&comments,
			`SELECT id, author, content, created_at FROM post_comments
			 WHERE post_id = $1 ORDER BY created_at ASC`, posts[i].ID); err != nil {
			return err
		}
		posts[i].Comments = comments
	}
	return nil
}

// ListPosts returns the community feed for the caller's region.
func ListPosts(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		posts := []models.CommunityPost{}
		err := db.Select(&posts,
			`SELECT * FROM community_posts WHERE region = $1 ORDER BY created_at DESC`, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to list posts: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if err := loadPostExtras(db, posts); err != nil {
			log.Printf("❌ Failed to load post extras: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, posts)
	}
}

// CreatePost publishes a feed entry in the author's region.
func CreatePost(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req models.CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Content) == "" {
			utils.Error(w, http.StatusBadRequest, "Conteúdo é obrigatório.")
			return
		}
		if !validPostType(req.Type) {
			utils.Error(w, http.StatusBadRequest, "Tipo de publicação inválido.")
			return
		}

		post := models.CommunityPost{
			ID:        uuid.New().String(),
			AuthorID:  claims.UserID,
			Author:    claims.Name,
			Content:   strings.TrimSpace(req.Content),
			Type:      req.Type,
			Region:    claims.Region,
			ImageURL:  req.ImageURL,
			CreatedAt: time.Now().Unix(),
			LikedBy:   []string{},
			Comments:  []models.Comment{},
		}

		_, err := db.NamedExec(`
			INSERT INTO community_posts (id, author_id, author, content, likes, type, region, image_url, created_at)
			VALUES (:id, :author_id, :author, :content, 0, :type, :region, :image_url, :created_at)`, post)
		if err != nil {
			log.Printf("❌ Failed to insert post: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.JSON(w, http.StatusCreated, post)
	}
}

// ToggleLikePost likes the post, or removes the like when the caller
// already liked it.
func ToggleLikePost(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		postID := chi.URLParam(r, "id")

		var post models.CommunityPost
		if err := db.Get(&post, `SELECT * FROM community_posts WHERE id = $1`, postID); err != nil {
			utils.Error(w, http.StatusNotFound, "Publicação não encontrada.")
			return
		}
		if post.Region != claims.Region {
			utils.Error(w, http.StatusForbidden, "Esta publicação pertence a outra região.")
			return
		}

		result, err := db.Exec(
			`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, claims.UserID)
		if err != nil {
			log.Printf("❌ Failed to toggle like: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			_, err := db.Exec(
				`INSERT INTO post_likes (post_id, user_id, created_at) VALUES ($1, $2, $3)`,
				postID, claims.UserID, time.Now().Unix())
			if err != nil {
				log.Printf("❌ Failed to toggle like: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}

		posts := []models.CommunityPost{post}
		if err := loadPostExtras(db, posts); err != nil {
			log.Printf("❌ Failed to load post extras: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Success(w, posts[0])
	}
}

// AddPostComment appends a comment to a post in the caller's region.
func AddPostComment(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		postID := chi.URLParam(r, "id")

		var req models.AddCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			utils.Error(w, http.StatusBadRequest, "Comentário não pode ser vazio.")
			return
		}

		var post models.CommunityPost
		if err := db.Get(&post, `SELECT * FROM community_posts WHERE id = $1`, postID); err != nil {
			utils.Error(w, http.StatusNotFound, "Publicação não encontrada.")
			return
		}
		if post.Region != claims.Region {
			utils.Error(w, http.StatusForbidden, "Esta publicação pertence a outra região.")
			return
		}

		comment := models.Comment{
			ID:        uuid.New().String(),
			Author:    claims.Name,
			Content:   strings.TrimSpace(req.Content),
			CreatedAt: time.Now().Unix(),
		}
		_, err := db.Exec(`
			INSERT INTO post_comments (id, post_id, author, content, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			comment.ID, postID, comment.Author, comment.Content, comment.CreatedAt)
		if err != nil {
			log.Printf("❌ Failed to insert comment: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.JSON(w, http.StatusCreated, comment)
	}
}

// DeletePost removes the caller's own post.
func DeletePost(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		postID := chi.URLParam(r, "id")

		result, err := db.Exec(
			`DELETE FROM community_posts WHERE id = $1 AND author_id = $2`, postID, claims.UserID)
		if err != nil {
			log.Printf("❌ Failed to delete post: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.Error(w, http.StatusForbidden, "Você só pode excluir suas próprias publicações.")
			return
		}

		utils.Success(w, map[string]bool{"ok": true})
	}
}

// ShareRequestAsPost publishes one of the caller's collection requests
// to the community feed, composed the way the product phrases it.
func ShareRequestAsPost(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		requestID := chi.URLParam(r, "id")

		var req models.CollectionRequest
		if err := db.Get(&req, `SELECT * FROM collection_requests WHERE id = $1`, requestID); err != nil {
			utils.Error(w, http.StatusNotFound, "Solicitação não encontrada.")
			return
		}
		if req.UserID != claims.UserID {
			utils.Error(w, http.StatusForbidden, "Você só pode compartilhar suas próprias solicitações.")
			return
		}

		emoji, actionText := "📦", "Disponível"
		switch req.ActionType {
		case models.ActionDonate:
			emoji, actionText = "🎁", "Estou doando"
		case models.ActionSell:
			emoji, actionText = "💰", "Estou vendendo"
		case models.ActionDiscard:
			emoji, actionText = "♻️", "Descarte disponível"
		}
		content := fmt.Sprintf("%s %s: %s\n\n%s\n\n📍 %s",
			emoji, actionText, req.Category, req.Description, claims.Region)

		post := models.CommunityPost{
			ID:        uuid.New().String(),
			AuthorID:  claims.UserID,
			Author:    claims.Name,
			Content:   content,
			Type:      models.PostTip,
			Region:    claims.Region,
			ImageURL:  req.PhotoURL,
			CreatedAt: time.Now().Unix(),
			LikedBy:   []string{},
			Comments:  []models.Comment{},
		}

		_, err := db.NamedExec(`
			INSERT INTO community_posts (id, author_id, author, content, likes, type, region, image_url, created_at)
			VALUES (:id, :author_id, :author, :content, 0, :type, :region, :image_url, :created_at)`, post)
		if err != nil {
			log.Printf("❌ Failed to share request as post: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.JSON(w, http.StatusCreated, post)
	}
}
