package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
	"github.com/jhoicas/magasin-api/pkg/jwt"
	"github.com/jhoicas/magasin-api/pkg/logger"
	"github.com/jhoicas/magasin-api/pkg/password"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AuthUseCase casos de uso de autenticación: verificación de credenciales, emisión de tokens
// y resolución de la identidad de cada request.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log.Component("auth")}
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// burnVerify iguala el tiempo de respuesta cuando el usuario no existe.
func burnVerify(plain string) {
	dummyOnce.Do(func() {
		dummyHash, _ = password.Hash("magasin-dummy-password")
	})
	_, _ = password.Verify(plain, dummyHash)
}

// Authenticate devuelve el usuario si username/password coinciden. Usuario inexistente,
// contraseña incorrecta, hash corrupto o error de almacenamiento dan (nil, false) por igual.
func (uc *AuthUseCase) Authenticate(ctx context.Context, username, plain string) (*entity.User, bool) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		uc.log.Error().Err(err).Msg("lookup de usuario falló durante login")
		burnVerify(plain)
		return nil, false
	}
	if user == nil {
		burnVerify(plain)
		return nil, false
	}
	ok, err := password.Verify(plain, user.PasswordHash)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("hash de contraseña ilegible")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	if password.NeedsRehash(user.PasswordHash) {
		uc.upgradeHash(ctx, user, plain)
	}
	return user, true
}

// upgradeHash migra un hash heredado a argon2id. Un fallo aquí no invalida el login.
func (uc *AuthUseCase) upgradeHash(ctx context.Context, user *entity.User, plain string) {
	hash, err := password.Hash(plain)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo recalcular el hash")
		return
	}
	if err := uc.userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo guardar el hash actualizado")
		return
	}
	user.PasswordHash = hash
	uc.log.Info().Str("user_id", user.ID).Msg("hash de contraseña migrado a argon2id")
}

// IssueToken firma un token con sub = username y vigencia ttl (ttl <= 0 usa la configurada).
func (uc *AuthUseCase) IssueToken(user *entity.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = uc.jwtCfg.TTL
	}
	return jwt.Generate(uc.jwtCfg.Secret, user.Username, uc.jwtCfg.Issuer, ttl)
}

// ResolveIdentity valida el token y carga el usuario con sus roles desde la BD, de modo que
// borrados y cambios de rol se aplican de inmediato. ErrUnauthorized ante cualquier fallo.
func (uc *AuthUseCase) ResolveIdentity(ctx context.Context, token string) (*entity.User, error) {
	username, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		if errors.Is(err, jwt.ErrEmptySecret) {
			uc.log.Error().Msg("JWT secret vacío")
		}
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// Login verifica credenciales y devuelve el token bearer.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.TokenRequest) (*dto.TokenResponse, error) {
	user, ok := uc.Authenticate(ctx, in.Username, in.Password)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.IssueToken(user, 0)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
