package service

import (
	"fmt"
	"time"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
	"pawhaven/internal/repository"

	"github.com/gosimple/slug"
)

type BlogService struct {
	Repo *repository.BlogRepository
}

func NewBlogService(repo *repository.BlogRepository) *BlogService {
	return &BlogService{Repo: repo}
}

func (s *BlogService) CreatePost(authorID int, req entities.PostRequest) (*db.Post, error) {
	post := &db.Post{
		Title:    req.Title,
		Slug:     slug.Make(req.Title),
		Body:     req.Body,
		AuthorID: authorID,
	}
	if err := s.Repo.CreatePost(post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return post, nil
}

func (s *BlogService) GetPost(postSlug string) (*entities.PostResponse, error) {
	return s.Repo.GetPostBySlug(postSlug)
}

func (s *BlogService) ListPosts(limit, offset int) ([]entities.PostResponse, error) {
	return s.Repo.ListPosts(limit, offset)
}

func (s *BlogService) UpdatePost(id int, req entities.PostRequest) error {
	return s.Repo.UpdatePost(id, req.Title, slug.Make(req.Title), req.Body)
}

func (s *BlogService) DeletePost(id int) error {
	return s.Repo.DeletePost(id)
}

func (s *BlogService) CreateEvent(req entities.EventRequest) (*db.Event, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid starts_at %q, expected RFC3339", req.StartsAt)
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid ends_at %q, expected RFC3339", req.EndsAt)
	}
	if !endsAt.After(startsAt) {
		return nil, fmt.Errorf("ends_at must be after starts_at")
	}

	ev := &db.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    startsAt.UTC(),
		EndsAt:      endsAt.UTC(),
	}
	if err := s.Repo.CreateEvent(ev); err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}
	return ev, nil
}

func (s *BlogService) ListUpcomingEvents() ([]entities.EventResponse, error) {
	events, err := s.Repo.ListUpcomingEvents()
	if err != nil {
		return nil, err
	}
	out := make([]entities.EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, entities.EventResponse{
			ID:          ev.ID,
			Title:       ev.Title,
			Description: ev.Description,
			Location:    ev.Location,
			StartsAt:    ev.StartsAt,
			EndsAt:      ev.EndsAt,
		})
	}
	return out, nil
}

func (s *BlogService) DeleteEvent(id int) error {
	return s.Repo.DeleteEvent(id)
}
