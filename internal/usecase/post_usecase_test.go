package usecase

import (
	"testing"
	"time"

	"boulderbuddy/internal/entity"
	"boulderbuddy/internal/repo/persistent"
	"boulderbuddy/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockPostRepository is a mock implementation of persistent.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *entity.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id string) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) Update(post *entity.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteWithLikes(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) CreateLike(userID, postID string) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteLike(userID, postID string) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockPostRepository) IsLiked(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) GetLikeCount(postID string) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

var _ persistent.PostRepository = (*MockPostRepository)(nil)

func newPostUseCase(repo persistent.PostRepository) PostUseCase {
	return NewPostUseCase(repo, nil, nil, logger.New())
}

func TestCreatePost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	mockRepo.On("Create", mock.MatchedBy(func(p *entity.Post) bool {
		return p.UserID == "user-1" && p.Content == "first ascent today"
	})).Return(nil)

	post, err := uc.CreatePost("user-1", "first ascent today")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", post.UserID)
	assert.Equal(t, "first ascent today", post.Content)
	mockRepo.AssertExpectations(t)
}

func TestCreatePost_EmptyContent(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	_, err := uc.CreatePost("user-1", "   ")

	assert.ErrorIs(t, err, entity.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestEditPost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	created := time.Now().Add(-time.Hour)
	existing := &entity.Post{ID: "post-1", UserID: "user-1", Content: "old", CreatedAt: created, UpdatedAt: created}

	mockRepo.On("GetByID", "post-1").Return(existing, nil)
	mockRepo.On("Update", mock.MatchedBy(func(p *entity.Post) bool {
		return p.ID == "post-1" && p.Content == "new content" && p.UpdatedAt.After(created)
	})).Return(nil)

	post, err := uc.EditPost("post-1", "user-1", "new content")

	assert.NoError(t, err)
	assert.Equal(t, "new content", post.Content)
	assert.True(t, post.Edited())
	mockRepo.AssertExpectations(t)
}

func TestEditPost_NotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	mockRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.EditPost("missing", "user-1", "content")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestEditPost_Forbidden(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	existing := &entity.Post{ID: "post-1", UserID: "owner", Content: "old"}
	mockRepo.On("GetByID", "post-1").Return(existing, nil)

	_, err := uc.EditPost("post-1", "intruder", "hijacked")

	assert.ErrorIs(t, err, entity.ErrForbidden)
	// Content is left unchanged
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestEditPost_EmptyContent(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	_, err := uc.EditPost("post-1", "user-1", "")

	assert.ErrorIs(t, err, entity.ErrValidation)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestDeletePost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	existing := &entity.Post{ID: "post-1", UserID: "user-1", Content: "bye"}
	mockRepo.On("GetByID", "post-1").Return(existing, nil)
	mockRepo.On("DeleteWithLikes", "post-1").Return(nil)

	result, err := uc.DeletePost("post-1", "user-1")

	assert.NoError(t, err)
	// The author id rides along for profile-feed reconciliation
	assert.Equal(t, "post-1", result.PostID)
	assert.Equal(t, "user-1", result.AuthorID)
	mockRepo.AssertExpectations(t)
}

func TestDeletePost_Forbidden(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	existing := &entity.Post{ID: "post-1", UserID: "owner"}
	mockRepo.On("GetByID", "post-1").Return(existing, nil)

	_, err := uc.DeletePost("post-1", "intruder")

	assert.ErrorIs(t, err, entity.ErrForbidden)
	mockRepo.AssertNotCalled(t, "DeleteWithLikes", mock.Anything)
}

func TestDeletePost_NotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	mockRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.DeletePost("missing", "user-1")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestToggleLike_Add(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	post := &entity.Post{ID: "post-1", UserID: "author-1"}
	mockRepo.On("GetByID", "post-1").Return(post, nil)
	mockRepo.On("IsLiked", "user-1", "post-1").Return(false, nil)
	mockRepo.On("CreateLike", "user-1", "post-1").Return(nil)

	added, err := uc.ToggleLike("user-1", "post-1")

	assert.NoError(t, err)
	assert.True(t, added)
	mockRepo.AssertExpectations(t)
}

func TestToggleLike_Remove(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	post := &entity.Post{ID: "post-1", UserID: "author-1"}
	mockRepo.On("GetByID", "post-1").Return(post, nil)
	mockRepo.On("IsLiked", "user-1", "post-1").Return(true, nil)
	mockRepo.On("DeleteLike", "user-1", "post-1").Return(nil)

	added, err := uc.ToggleLike("user-1", "post-1")

	assert.NoError(t, err)
	assert.False(t, added)
	mockRepo.AssertExpectations(t)
}

func TestToggleLike_DoubleToggleRestoresState(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	post := &entity.Post{ID: "post-1", UserID: "author-1"}
	mockRepo.On("GetByID", "post-1").Return(post, nil)
	mockRepo.On("IsLiked", "user-1", "post-1").Return(false, nil).Once()
	mockRepo.On("CreateLike", "user-1", "post-1").Return(nil).Once()
	mockRepo.On("IsLiked", "user-1", "post-1").Return(true, nil).Once()
	mockRepo.On("DeleteLike", "user-1", "post-1").Return(nil).Once()

	first, err := uc.ToggleLike("user-1", "post-1")
	assert.NoError(t, err)
	assert.True(t, first)

	second, err := uc.ToggleLike("user-1", "post-1")
	assert.NoError(t, err)
	assert.False(t, second)

	mockRepo.AssertExpectations(t)
}

func TestToggleLike_PostNotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	mockRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.ToggleLike("user-1", "missing")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestGetLikeCount_FallsBackToRepo(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newPostUseCase(mockRepo)

	mockRepo.On("GetLikeCount", "post-1").Return(int64(7), nil)

	count, err := uc.GetLikeCount("post-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
