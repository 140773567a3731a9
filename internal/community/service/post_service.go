package service

import (
	"context"
	"strings"

	"github.com/mediculture/mediculture-backend/internal/community/domain"
	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
	"github.com/mediculture/mediculture-backend/internal/platform/query"
)

type PostStore interface {
	List(ctx context.Context, q query.Query) ([]domain.Post, int64, error)
	GetApprovedByID(ctx context.Context, id string) (*domain.Post, error)
	Create(ctx context.Context, p *domain.Post) error
	Like(ctx context.Context, id, uid string) (*domain.Post, error)
	Unlike(ctx context.Context, id, uid string) (*domain.Post, error)
	AddComment(ctx context.Context, id string, c domain.Comment) (*domain.Post, error)
}

type PostService struct {
	store    PostStore
	maxLimit int64
}

func NewPostService(store PostStore, maxLimit int64) *PostService {
	return &PostService{store: store, maxLimit: maxLimit}
}

type ListResult struct {
	Posts      []domain.Post    `json:"posts"`
	Pagination query.Pagination `json:"pagination"`
}

// List returns approved posts, newest first by default.
func (s *PostService) List(ctx context.Context, p query.CommunityParams) (*ListResult, error) {
	q := query.CommunityPosts(p, s.maxLimit)

	posts, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Post, len(posts))
	for i, post := range posts {
		out[i] = post.Public()
	}
	return &ListResult{Posts: out, Pagination: q.Page.Pagination(total)}, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return public(s.store.GetApprovedByID(ctx, id))
}

// Create publishes a post. New posts are approved immediately.
func (s *PostService) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	p.UserID = strings.TrimSpace(p.UserID)
	p.UserDisplayName = strings.TrimSpace(p.UserDisplayName)
	if p.UserID == "" {
		return nil, apperr.BadRequest("userId is required")
	}
	if p.UserDisplayName == "" {
		return nil, apperr.BadRequest("userDisplayName is required")
	}
	if !domain.IsCategory(p.Category) {
		return nil, domain.ErrInvalidCategory
	}
	p.IsApproved = true
	p.Likes = []domain.Like{}
	p.Comments = []domain.Comment{}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	pub := p.Public()
	return &pub, nil
}

func (s *PostService) Like(ctx context.Context, id, uid string) (*domain.Post, error) {
	return public(s.store.Like(ctx, id, uid))
}

func (s *PostService) Unlike(ctx context.Context, id, uid string) (*domain.Post, error) {
	return public(s.store.Unlike(ctx, id, uid))
}

func (s *PostService) Comment(ctx context.Context, id string, c domain.Comment) (*domain.Post, error) {
	c.Content = strings.TrimSpace(c.Content)
	if c.Content == "" {
		return nil, apperr.BadRequest("content is required")
	}
	if strings.TrimSpace(c.UserDisplayName) == "" {
		c.UserDisplayName = domain.AnonymousName
	}
	return public(s.store.AddComment(ctx, id, c))
}

func public(p *domain.Post, err error) (*domain.Post, error) {
	if err != nil {
		return nil, err
	}
	pub := p.Public()
	return &pub, nil
}
