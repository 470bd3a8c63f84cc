package feedcache

import (
	"fmt"
	"testing"
	"time"

	"boulderbuddy/internal/entity"

	"github.com/stretchr/testify/assert"
)

func feedPost(id string, likeCount int64) entity.FeedPost {
	return entity.FeedPost{
		ID:        id,
		Content:   "content of " + id,
		CreatedAt: time.Now(),
		LikeCount: likeCount,
		User:      entity.UserSummary{ID: "author-1", Username: "alex"},
	}
}

func seededStore() *Store {
	store := NewStore()
	store.PutFeed(GlobalFeed(), PageSet{Pages: []Page{
		{Posts: []entity.FeedPost{feedPost("p1", 2), feedPost("p2", 0)}},
		{Posts: []entity.FeedPost{feedPost("p3", 5)}},
	}})
	store.PutFeed(FollowingFeed(), PageSet{Pages: []Page{
		{Posts: []entity.FeedPost{feedPost("p1", 2)}},
	}})
	store.PutFeed(ProfileFeed("author-1"), PageSet{Pages: []Page{
		{Posts: []entity.FeedPost{feedPost("p1", 2), feedPost("p3", 5)}},
	}})
	return store
}

func TestApplyPostCreated_PrependsToFirstPageOnly(t *testing.T) {
	store := seededStore()

	now := time.Now()
	newPost := &entity.Post{ID: "p-new", UserID: "author-1", Content: "hi", CreatedAt: now, UpdatedAt: now}
	store.ApplyPostCreated(newPost, entity.UserSummary{ID: "author-1", Username: "alex"})

	global, ok := store.Feed(GlobalFeed())
	assert.True(t, ok)
	assert.Equal(t, "p-new", global.Pages[0].Posts[0].ID)
	assert.Equal(t, int64(0), global.Pages[0].Posts[0].LikeCount)
	assert.False(t, global.Pages[0].Posts[0].LikedByMe)
	assert.Len(t, global.Pages[0].Posts, 3)

	// Other pages are untouched
	assert.Len(t, global.Pages[1].Posts, 1)
	assert.Equal(t, "p3", global.Pages[1].Posts[0].ID)

	// The author's profile feed is patched too
	profileFeed, _ := store.Feed(ProfileFeed("author-1"))
	assert.Equal(t, "p-new", profileFeed.Pages[0].Posts[0].ID)
}

func TestApplyPostCreated_NoCachedFeed_NoOp(t *testing.T) {
	store := NewStore()

	post := &entity.Post{ID: "p-new", UserID: "author-1", Content: "hi"}
	store.ApplyPostCreated(post, entity.UserSummary{ID: "author-1"})

	_, ok := store.Feed(GlobalFeed())
	assert.False(t, ok)
}

func TestApplyPostEdited_ReplacesContentInPlace(t *testing.T) {
	store := seededStore()

	edited := time.Now().Add(time.Minute)
	store.ApplyPostEdited(&entity.Post{ID: "p3", UserID: "author-1", Content: "updated", UpdatedAt: edited})

	// p3 lives on the second page of the global feed
	global, _ := store.Feed(GlobalFeed())
	assert.Equal(t, "updated", global.Pages[1].Posts[0].Content)
	assert.True(t, global.Pages[1].Posts[0].UpdatedAt.Equal(edited))

	// Like state and ordering are untouched
	assert.Equal(t, int64(5), global.Pages[1].Posts[0].LikeCount)
	assert.Equal(t, "p1", global.Pages[0].Posts[0].ID)

	// The profile feed sees the same edit
	profileFeed, _ := store.Feed(ProfileFeed("author-1"))
	assert.Equal(t, "updated", profileFeed.Pages[0].Posts[1].Content)
}

func TestApplyPostDeleted_RemovesWithoutShiftingPages(t *testing.T) {
	store := seededStore()

	store.ApplyPostDeleted("p1", "author-1")

	global, _ := store.Feed(GlobalFeed())
	assert.Len(t, global.Pages[0].Posts, 1)
	assert.Equal(t, "p2", global.Pages[0].Posts[0].ID)
	// The gap is tolerated: page two keeps its own contents
	assert.Len(t, global.Pages[1].Posts, 1)

	following, _ := store.Feed(FollowingFeed())
	assert.Empty(t, following.Pages[0].Posts)

	profileFeed, _ := store.Feed(ProfileFeed("author-1"))
	assert.Len(t, profileFeed.Pages[0].Posts, 1)
	assert.Equal(t, "p3", profileFeed.Pages[0].Posts[0].ID)
}

func TestApplyLikeToggled_PatchesEveryVariant(t *testing.T) {
	store := seededStore()

	store.ApplyLikeToggled("p1", true)

	for _, key := range []FeedKey{GlobalFeed(), FollowingFeed(), ProfileFeed("author-1")} {
		set, ok := store.Feed(key)
		assert.True(t, ok)
		post := set.Pages[0].Posts[0]
		assert.Equal(t, "p1", post.ID)
		assert.Equal(t, int64(3), post.LikeCount, "feed %v", key)
		assert.True(t, post.LikedByMe, "feed %v", key)
	}
}

func TestApplyLikeToggled_Removed(t *testing.T) {
	store := seededStore()

	store.ApplyLikeToggled("p1", true)
	store.ApplyLikeToggled("p1", false)

	// Double toggle returns to the original count
	global, _ := store.Feed(GlobalFeed())
	assert.Equal(t, int64(2), global.Pages[0].Posts[0].LikeCount)
	assert.False(t, global.Pages[0].Posts[0].LikedByMe)
}

func TestApplyLikeToggled_UnknownPost_NoOp(t *testing.T) {
	store := seededStore()

	store.ApplyLikeToggled("missing", true)

	global, _ := store.Feed(GlobalFeed())
	assert.Equal(t, int64(2), global.Pages[0].Posts[0].LikeCount)
}

func TestApplyFollowToggled_PatchesProfileSummary(t *testing.T) {
	store := NewStore()
	store.PutProfile(entity.Profile{ID: "user-2", Username: "sam", FollowersCount: 7, IsFollowing: false})

	store.ApplyFollowToggled("user-2", true)

	profile, ok := store.Profile("user-2")
	assert.True(t, ok)
	assert.Equal(t, int64(8), profile.FollowersCount)
	assert.True(t, profile.IsFollowing)

	store.ApplyFollowToggled("user-2", false)

	profile, _ = store.Profile("user-2")
	assert.Equal(t, int64(7), profile.FollowersCount)
	assert.False(t, profile.IsFollowing)
}

func TestApplyFollowToggled_UncachedProfile_NoOp(t *testing.T) {
	store := NewStore()

	// Must not panic or create an entry
	store.ApplyFollowToggled("missing", true)

	_, ok := store.Profile("missing")
	assert.False(t, ok)
}

func TestPatches_DoNotMutateOldSnapshot(t *testing.T) {
	store := seededStore()
	before, _ := store.Feed(GlobalFeed())
	beforeFirst := before.Pages[0].Posts

	store.ApplyLikeToggled("p1", true)

	// The slice captured before the patch still holds the old values
	assert.Equal(t, int64(2), beforeFirst[0].LikeCount)
	assert.False(t, beforeFirst[0].LikedByMe)
}

func TestReconcileAfterCreate_MatchesServerOrdering(t *testing.T) {
	store := NewStore()

	// Simulate three fetched pages of ten posts each
	var pages []Page
	id := 0
	for p := 0; p < 3; p++ {
		var posts []entity.FeedPost
		for i := 0; i < 10; i++ {
			id++
			posts = append(posts, feedPost(fmt.Sprintf("p%02d", id), 0))
		}
		pages = append(pages, Page{Posts: posts})
	}
	store.PutFeed(GlobalFeed(), PageSet{Pages: pages})

	post := &entity.Post{ID: "p-created", UserID: "author-1", Content: "hi"}
	store.ApplyPostCreated(post, entity.UserSummary{ID: "author-1"})

	global, _ := store.Feed(GlobalFeed())
	assert.Equal(t, "p-created", global.Pages[0].Posts[0].ID)
	assert.Len(t, global.Pages[0].Posts, 11)
	assert.Len(t, global.Pages[1].Posts, 10)
	assert.Len(t, global.Pages[2].Posts, 10)
}
