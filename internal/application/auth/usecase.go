// Package auth implementa autenticación y gestión de usuarios: login con
// bcrypt, emisión de JWT con rol y tiendas, y altas de usuario (solo admin).
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/domain"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
	"github.com/yacouba/Boutique-api/pkg/config"
	"github.com/yacouba/Boutique-api/pkg/jwt"
	"github.com/yacouba/Boutique-api/pkg/logger"
)

// UseCase casos de uso de autenticación y usuarios.
type UseCase struct {
	users  repository.UserRepository
	jwtCfg config.JWTConfig
	log    *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(users repository.UserRepository, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{users: users, jwtCfg: jwtCfg, log: log}
}

// Login valida credenciales y emite un JWT con rol y tiendas en los claims.
// Credenciales malas y cuentas desactivadas responden el mismo error para
// no revelar qué emails existen.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(
		uc.jwtCfg.Secret,
		user.ID,
		string(user.Role),
		user.StoreIDs,
		uc.jwtCfg.Issuer,
		uc.jwtCfg.Expiration,
	)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login exitoso")

	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Register crea un usuario. Solo un admin puede dar de alta cuentas;
// el rol solicitado debe ser uno de los tres conocidos.
func (uc *UseCase) Register(ctx context.Context, ac scope.AccessContext, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if !ac.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 8 || req.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	role := entity.Role(req.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		StoreIDs:     req.StoreIDs,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("usuario creado")

	resp := toUserResponse(user)
	return &resp, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *UseCase) Me(ctx context.Context, ac scope.AccessContext) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, ac.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers lista usuarios (solo admin).
func (uc *UseCase) ListUsers(ctx context.Context, ac scope.AccessContext, page dto.PageRequest) ([]dto.UserResponse, error) {
	if !ac.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	users, err := uc.users.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Deactivate desactiva la cuenta (los usuarios nunca se borran físicamente).
func (uc *UseCase) Deactivate(ctx context.Context, ac scope.AccessContext, id string) error {
	if !ac.IsAdmin() {
		return domain.ErrForbidden
	}
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.Active = false
	user.UpdatedAt = time.Now().UTC()
	return uc.users.Update(ctx, user)
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     string(u.Role),
		StoreIDs: u.StoreIDs,
		Active:   u.Active,
	}
}
