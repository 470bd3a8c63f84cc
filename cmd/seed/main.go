package main

import (
	"fmt"
	"time"

	"boulderbuddy/internal/model"
	"boulderbuddy/pkg/config"
	"boulderbuddy/pkg/database"
	"boulderbuddy/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		email    string
		username string
		realName string
		password string
	}{
		{"alice@test.com", "alice_sends", "Alice Carter", "password123"},
		{"bob@test.com", "bob_crimps", "Bob Miller", "password123"},
		{"charlie@test.com", "charlie_slab", "Charlie Nguyen", "password123"},
		{"diana@test.com", "diana_dyno", "Diana Lopez", "password123"},
		{"eve@test.com", "eve_overhang", "Eve Novak", "password123"},
	}

	sampleContent := []string{
		"Finally sent my V5 project at the gym, third session on it",
		"New crash pad arrived, outdoor season here we come",
		"Flash pyramid day: four V2s, two V3s, one V4",
		"Slab technique workshop was humbling. Trust the feet.",
		"Rest day. Fingers thank me.",
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &model.UserModel{
			Email:    userData.email,
			Username: userData.username,
			RealName: userData.realName,
			Password: string(hashedPassword),
		}

		var existingUser model.UserModel
		result := db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Username)
			userIDs = append(userIDs, existingUser.ID)
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Username, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Username, user.Email)
		userIDs = append(userIDs, user.ID)

		postsCount := 3 + (len(userIDs) % 3)
		for i := 0; i < postsCount; i++ {
			post := &model.PostModel{
				UserID:  user.ID,
				Content: fmt.Sprintf("%s (#%d)", sampleContent[i%len(sampleContent)], i+1),
			}
			if err := db.Create(post).Error; err != nil {
				log.Error("Failed to create post for user %s: %v", user.Username, err)
				continue
			}
			// Spread created_at so feed pages have a stable ordering
			time.Sleep(50 * time.Millisecond)
		}
		log.Info("Created %d posts for user %s", postsCount, user.Username)
	}

	for i := 0; i < len(userIDs); i++ {
		for j := i + 1; j < len(userIDs); j++ {
			followerID := userIDs[i]
			followeeID := userIDs[j]

			var existing model.FollowModel
			result := db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).First(&existing)
			if result.Error == nil {
				continue
			}

			follow := &model.FollowModel{
				FollowerID: followerID,
				FolloweeID: followeeID,
			}
			if err := db.Create(follow).Error; err != nil {
				log.Error("Failed to create follow: %v", err)
				continue
			}
		}
	}
	log.Info("Created test follows")

	var posts []model.PostModel
	if err := db.Limit(10).Find(&posts).Error; err != nil {
		return fmt.Errorf("failed to load posts for likes: %w", err)
	}

	for i, post := range posts {
		for j, userID := range userIDs {
			if (i+j)%2 != 0 || userID == post.UserID {
				continue
			}

			var existing model.LikeModel
			result := db.Where("user_id = ? AND post_id = ?", userID, post.ID).First(&existing)
			if result.Error == nil {
				continue
			}

			like := &model.LikeModel{
				UserID: userID,
				PostID: post.ID,
			}
			if err := db.Create(like).Error; err != nil {
				log.Error("Failed to create like: %v", err)
			}
		}
	}
	log.Info("Created test likes")

	return nil
}
