// Package feedcache patches locally cached feed pages after a confirmed
// mutation so API clients can reflect the change without refetching.
// Every patch is a pure function of (old snapshot, mutation result):
// no network calls, copy-on-write page updates, and a graceful no-op
// whenever the relevant feed or page is not cached.
package feedcache

import (
	"boulderbuddy/internal/entity"
)

// FeedKey identifies a cached feed variant. AuthorID is set only for
// per-profile feeds.
type FeedKey struct {
	Kind     entity.FilterKind
	AuthorID string
}

func GlobalFeed() FeedKey {
	return FeedKey{Kind: entity.FilterAll}
}

func FollowingFeed() FeedKey {
	return FeedKey{Kind: entity.FilterFollowing}
}

func ProfileFeed(authorID string) FeedKey {
	return FeedKey{Kind: entity.FilterAuthor, AuthorID: authorID}
}

// Page is one fetched feed page. NextCursor mirrors what the server
// returned; reconciliation never recomputes it.
type Page struct {
	Posts      []entity.FeedPost
	NextCursor *entity.Cursor
}

// PageSet is the ordered sequence of pages fetched so far for one feed.
type PageSet struct {
	Pages []Page
}

// Store holds every cached feed variant plus cached profile summaries.
type Store struct {
	feeds    map[FeedKey]PageSet
	profiles map[string]entity.Profile
}

func NewStore() *Store {
	return &Store{
		feeds:    make(map[FeedKey]PageSet),
		profiles: make(map[string]entity.Profile),
	}
}

func (s *Store) PutFeed(key FeedKey, set PageSet) {
	s.feeds[key] = set
}

func (s *Store) Feed(key FeedKey) (PageSet, bool) {
	set, ok := s.feeds[key]
	return set, ok
}

func (s *Store) PutProfile(profile entity.Profile) {
	s.profiles[profile.ID] = profile
}

func (s *Store) Profile(userID string) (entity.Profile, bool) {
	profile, ok := s.profiles[userID]
	return profile, ok
}

// ApplyPostCreated prepends the new post to the first cached page of
// the global feed and the author's profile feed. The server returns no
// counts for a fresh post, so the cache assumes zero likes.
func (s *Store) ApplyPostCreated(post *entity.Post, author entity.UserSummary) {
	newest := entity.FeedPost{
		ID:        post.ID,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		LikeCount: 0,
		LikedByMe: false,
		User:      author,
	}

	for _, key := range []FeedKey{GlobalFeed(), ProfileFeed(post.UserID)} {
		set, ok := s.feeds[key]
		if !ok {
			continue
		}
		s.feeds[key] = prependToFirstPage(set, newest)
	}
}

// ApplyPostEdited replaces the post's content and updatedAt in place
// wherever the post appears; ordering and like state are untouched.
func (s *Store) ApplyPostEdited(post *entity.Post) {
	for key, set := range s.feeds {
		s.feeds[key] = mapPosts(set, func(p entity.FeedPost) entity.FeedPost {
			if p.ID == post.ID {
				p.Content = post.Content
				p.UpdatedAt = post.UpdatedAt
			}
			return p
		})
	}
}

// ApplyPostDeleted removes the post from whichever page contains it.
// The author id names the profile feed affected alongside the global
// and following feeds; all cached variants are swept. Later pages are
// not shifted to fill the gap; the next refetch restores exact page
// boundaries.
func (s *Store) ApplyPostDeleted(postID, authorID string) {
	for key, set := range s.feeds {
		s.feeds[key] = removePost(set, postID)
	}
}

// ApplyLikeToggled adjusts likeCount and likedByMe for the post in
// every cached feed variant at once; the variants denormalize the same
// count and must stay in sync.
func (s *Store) ApplyLikeToggled(postID string, addedLike bool) {
	countModifier := int64(-1)
	if addedLike {
		countModifier = 1
	}

	for key, set := range s.feeds {
		s.feeds[key] = mapPosts(set, func(p entity.FeedPost) entity.FeedPost {
			if p.ID == postID {
				p.LikeCount += countModifier
				p.LikedByMe = addedLike
			}
			return p
		})
	}
}

// ApplyFollowToggled patches the target's cached profile summary. It is
// not a feed patch: only the follower count and the is-following flag
// change.
func (s *Store) ApplyFollowToggled(targetUserID string, addedFollow bool) {
	profile, ok := s.profiles[targetUserID]
	if !ok {
		return
	}

	if addedFollow {
		profile.FollowersCount++
	} else {
		profile.FollowersCount--
	}
	profile.IsFollowing = addedFollow
	s.profiles[targetUserID] = profile
}

func prependToFirstPage(set PageSet, post entity.FeedPost) PageSet {
	if len(set.Pages) == 0 {
		return set
	}

	first := set.Pages[0]
	posts := make([]entity.FeedPost, 0, len(first.Posts)+1)
	posts = append(posts, post)
	posts = append(posts, first.Posts...)

	pages := make([]Page, len(set.Pages))
	copy(pages, set.Pages)
	pages[0] = Page{Posts: posts, NextCursor: first.NextCursor}

	return PageSet{Pages: pages}
}

func mapPosts(set PageSet, fn func(entity.FeedPost) entity.FeedPost) PageSet {
	pages := make([]Page, len(set.Pages))
	for i, page := range set.Pages {
		posts := make([]entity.FeedPost, len(page.Posts))
		for j, post := range page.Posts {
			posts[j] = fn(post)
		}
		pages[i] = Page{Posts: posts, NextCursor: page.NextCursor}
	}
	return PageSet{Pages: pages}
}

func removePost(set PageSet, postID string) PageSet {
	pages := make([]Page, len(set.Pages))
	for i, page := range set.Pages {
		posts := make([]entity.FeedPost, 0, len(page.Posts))
		for _, post := range page.Posts {
			if post.ID != postID {
				posts = append(posts, post)
			}
		}
		pages[i] = Page{Posts: posts, NextCursor: page.NextCursor}
	}
	return PageSet{Pages: pages}
}
