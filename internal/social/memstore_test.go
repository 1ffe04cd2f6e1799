package social_test

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/internal/social"
)

type memFeedStore struct {
	mu       sync.Mutex
	posts    map[string]*social.Post
	comments map[string]social.Comment
}

func newMemFeedStore() *memFeedStore {
	return &memFeedStore{
		posts:    map[string]*social.Post{},
		comments: map[string]social.Comment{},
	}
}

func (s *memFeedStore) Feed(_ context.Context, limit, offset int) (*social.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]social.Post, 0, len(s.posts))
	for _, p := range s.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	page := &social.Page{Posts: []social.Post{}}
	if offset >= len(all) {
		return page, nil
	}
	end := min(offset+limit, len(all))
	page.Posts = append(page.Posts, all[offset:end]...)
	page.HasMore = end < len(all)
	return page, nil
}

func (s *memFeedStore) CreatePost(_ context.Context, p *social.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *p
	stored.LikedBy = slices.Clone(p.LikedBy)
	s.posts[p.ID] = &stored
	return nil
}

func (s *memFeedStore) ToggleLike(_ context.Context, postID, userID string) (*social.LikeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return nil, social.ErrPostNotFound
	}
	if i := slices.Index(p.LikedBy, userID); i >= 0 {
		p.LikedBy = slices.Delete(p.LikedBy, i, i+1)
		p.Likes--
		return &social.LikeState{Liked: false, Likes: p.Likes}, nil
	}
	p.LikedBy = append(p.LikedBy, userID)
	p.Likes++
	return &social.LikeState{Liked: true, Likes: p.Likes}, nil
}

func (s *memFeedStore) CreateComment(_ context.Context, c *social.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[c.PostID]
	if !ok {
		return social.ErrPostNotFound
	}
	p.Comments++
	s.comments[c.ID] = *c
	return nil
}

func (s *memFeedStore) DeleteComment(_ context.Context, commentID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[commentID]
	if !ok {
		return social.ErrCommentNotFound
	}
	if c.UserID != userID {
		return social.ErrNotCommentOwner
	}
	delete(s.comments, commentID)
	if p, ok := s.posts[c.PostID]; ok {
		p.Comments--
	}
	return nil
}

func (s *memFeedStore) Comments(_ context.Context, postID string) ([]social.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return nil, social.ErrPostNotFound
	}
	out := []social.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memFeedStore) post(id string) social.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *s.posts[id]
	p.LikedBy = slices.Clone(p.LikedBy)
	return p
}

type memAuthors map[string]profile.Profile

func (a memAuthors) Get(_ context.Context, id string) (*profile.Profile, error) {
	p, ok := a[id]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return &p, nil
}
