package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"github.com/rcsmith8/starter-restaurant-reservation/repository"
	"github.com/rcsmith8/starter-restaurant-reservation/validation"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgUserName     = "Staff account must include a name."
	MsgUserEmail    = "Staff account must include a valid email."
	MsgUserPassword = "Password must be at least 8 characters long."
	MsgUserRole     = "Role must be admin or staff."
	MsgEmailTaken   = "An account with this email exists already."
)

// RegisterInput carries gin binding tags; Register checks the same tags again after
// trimming, so callers outside HTTP get identical rules.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff"`
}

// registerRules reads the binding tags the way gin's default validator does.
var registerRules = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

var registerMessages = map[string]validation.Problem{
	"Name":     {Field: "name", Message: MsgUserName},
	"Email":    {Field: "email", Message: MsgUserEmail},
	"Password": {Field: "password", Message: MsgUserPassword},
	"Role":     {Field: "role", Message: MsgUserRole},
}

// RegistrationError turns validator field errors on a RegisterInput into a
// *validation.Error with one message per field, in field order. Other errors are
// returned unchanged.
func RegistrationError(err error) error {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	var (
		problems []validation.Problem
		seen     = make(map[string]bool)
	)
	for _, fe := range fields {
		p, ok := registerMessages[fe.StructField()]
		if !ok || seen[p.Field] {
			continue
		}
		seen[p.Field] = true
		problems = append(problems, p)
	}
	if len(problems) == 0 {
		return err
	}
	return &validation.Error{Problems: problems}
}

type UserService interface {
	// Register creates a staff account. The first account may be created by anyone;
	// after that actorRole must be admin.
	Register(ctx context.Context, in RegisterInput, actorRole string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Profile(ctx context.Context, id uint) (*models.User, error)
}

type userService struct {
	users repository.UserRepository
	log   *logrus.Logger
}

func NewUserService(users repository.UserRepository, log *logrus.Logger) UserService {
	return &userService{users: users, log: log}
}

func (s *userService) Register(ctx context.Context, in RegisterInput, actorRole string) (*models.User, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 && actorRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = models.RoleStaff
	}
	if err := registerRules.Struct(in); err != nil {
		return nil, RegistrationError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Role:     in.Role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validation.New("email", MsgEmailTaken)
		}
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("Staff account registered")
	return &user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.WithField("user_id", user.ID).Warn("Failed login")
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) Profile(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Entity: "User", ID: strconv.FormatUint(uint64(id), 10)}
	}
	return user, err
}
