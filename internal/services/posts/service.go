// Package posts implements the social feed: posts, kudos, comments and
// attached photos.
package posts

import (
	"context"
	"errors"
	"time"

	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/repository"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"gorm.io/gorm"
)

type Service struct {
	posts *repository.Repository[models.Post]
}

func NewService(db *gorm.DB) *Service {
	return &Service{posts: repository.New[models.Post](db)}
}

// Create publishes a post by the acting user.
func (s *Service) Create(ctx context.Context, actor *auth.Principal, req *models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		Location:  req.Location,
		MediaURL:  req.MediaURL,
		Kudos:     []string{},
		Comments:  []models.Comment{},
		CreatorID: actor.UserID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns all posts, newest first.
func (s *Service) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.posts.DB().WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches one post.
func (s *Service) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// ToggleKudos adds the actor to the post's kudos list, or removes them if
// already present.
func (s *Service) ToggleKudos(ctx context.Context, actor *auth.Principal, id string) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Kudos = toggle(post.Kudos, actor.UserID)
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AddComment appends a comment by the acting user.
func (s *Service) AddComment(ctx context.Context, actor *auth.Principal, id string, req *models.AddCommentRequest) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Comments = append(post.Comments, models.Comment{
		UserID:    actor.UserID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	})
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AttachPhoto stores photo bytes on the post. Only the creator may attach.
func (s *Service) AttachPhoto(ctx context.Context, actor *auth.Principal, id string, data []byte, contentType string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.CreatorID != actor.UserID {
		return models.NewForbiddenError("")
	}
	if len(data) == 0 {
		return models.NewBadRequestError("", errors.New("empty photo payload"))
	}

	post.Media = data
	post.MediaType = contentType
	return s.posts.Save(ctx, post)
}

// Photo returns the stored photo bytes and their content type.
func (s *Service) Photo(ctx context.Context, id string) ([]byte, string, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if len(post.Media) == 0 {
		return nil, "", models.NewNotFoundError(errors.New("post has no photo"))
	}
	return post.Media, post.MediaType, nil
}

// toggle removes id from list when present, otherwise appends it.
func toggle(list []string, id string) []string {
	for i, existing := range list {
		if existing == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return append(list, id)
}
