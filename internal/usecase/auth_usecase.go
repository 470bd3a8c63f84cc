package usecase

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"boulderbuddy/internal/entity"
	"boulderbuddy/internal/repo/persistent"
	"boulderbuddy/pkg/jwt"
	"boulderbuddy/pkg/logger"
	"boulderbuddy/pkg/s3"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupInput struct {
	FirstName       string
	LastName        string
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

type AuthUseCase interface {
	Signup(input SignupInput) (*entity.User, error)
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UploadAvatar(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	s3Client   *s3.Client
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	s3Client *s3.Client,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		s3Client:   s3Client,
		logger:     logger,
	}
}

// Signup validates uniqueness of email and username, checks the
// password confirmation and stores the bcrypt hash. The hash is never
// returned to callers.
func (uc *authUseCase) Signup(input SignupInput) (*entity.User, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email, username and password are required", entity.ErrValidation)
	}

	if input.Password != input.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", entity.ErrConflict)
	}

	if _, err := uc.userRepo.GetByEmail(input.Email); err == nil {
		return nil, fmt.Errorf("%w: this email is already in use", entity.ErrConflict)
	}

	if _, err := uc.userRepo.GetByUsername(input.Username); err == nil {
		return nil, fmt.Errorf("%w: this username is already in use", entity.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process signup: %w", err)
	}

	user := &entity.User{
		Username: input.Username,
		RealName: strings.TrimSpace(input.FirstName + " " + input.LastName),
		Email:    input.Email,
		Password: string(hashedPassword),
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", entity.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", entity.ErrUnauthenticated)
	}

	token, err := uc.jwtService.GenerateToken(user.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", entity.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) UploadAvatar(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error) {
	avatarURL, err := uc.s3Client.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", entity.ErrNotFound, userID)
	}

	user.AvatarURL = avatarURL
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.Password = ""
	return user, nil
}
