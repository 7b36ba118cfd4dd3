package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
)

type BlogRepository struct {
	DB *sql.DB
}

func NewBlogRepository(database *sql.DB) *BlogRepository {
	return &BlogRepository{DB: database}
}

func (r *BlogRepository) CreatePost(post *db.Post) error {
	query := `
		INSERT INTO posts (title, slug, body, author_id, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5, $5)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query, post.Title, post.Slug, post.Body, post.AuthorID, time.Now().UTC()).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *BlogRepository) GetPostBySlug(slug string) (*entities.PostResponse, error) {
	var p entities.PostResponse
	query := `
		SELECT p.id, p.title, p.slug, p.body, u.name, p.published_at
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.slug = $1`
	err := r.DB.QueryRow(query, slug).Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.AuthorName, &p.PublishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %q not found: %w", slug, err)
		}
		return nil, fmt.Errorf("error querying post: %w", err)
	}
	return &p, nil
}

func (r *BlogRepository) ListPosts(limit, offset int) ([]entities.PostResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT p.id, p.title, p.slug, u.name, p.published_at
		FROM posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY p.published_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	defer rows.Close()

	var posts []entities.PostResponse
	for rows.Next() {
		var p entities.PostResponse
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.AuthorName, &p.PublishedAt); err != nil {
			return nil, fmt.Errorf("error scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating post rows: %w", err)
	}
	return posts, nil
}

func (r *BlogRepository) UpdatePost(id int, title, slug, body string) error {
	_, err := r.DB.Exec(
		`UPDATE posts SET title = $2, slug = $3, body = $4, updated_at = NOW() WHERE id = $1`,
		id, title, slug, body)
	return err
}

func (r *BlogRepository) DeletePost(id int) error {
	_, err := r.DB.Exec(`DELETE FROM posts WHERE id = $1`, id)
	return err
}

func (r *BlogRepository) CreateEvent(ev *db.Event) error {
	query := `
		INSERT INTO events (title, description, location, starts_at, ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query, ev.Title, ev.Description, ev.Location, ev.StartsAt, ev.EndsAt, time.Now().UTC()).
		Scan(&ev.ID, &ev.CreatedAt, &ev.UpdatedAt)
}

func (r *BlogRepository) ListUpcomingEvents() ([]db.Event, error) {
	query := `
		SELECT id, title, description, location, starts_at, ends_at, created_at, updated_at
		FROM events WHERE ends_at > NOW() ORDER BY starts_at`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []db.Event
	for rows.Next() {
		var ev db.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Location, &ev.StartsAt, &ev.EndsAt, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating event rows: %w", err)
	}
	return events, nil
}

func (r *BlogRepository) DeleteEvent(id int) error {
	_, err := r.DB.Exec(`DELETE FROM events WHERE id = $1`, id)
	return err
}
