package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
	"github.com/invorya/bodega-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, registro de CEO y gestión de
// empleados. También resuelve el Principal por request.
type AuthUseCase struct {
	tx          repository.TxRunner
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx repository.TxRunner, userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{tx: tx, userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// ResolvePrincipal carga el usuario del token y construye su identidad.
// ErrNotFound si la identidad decodificada ya no existe (usuario borrado);
// ErrForbidden si está bloqueado. Los permisos se leen de la base en cada
// request porque pueden cambiar después de emitido el token.
func (uc *AuthUseCase) ResolvePrincipal(userID string) (*entity.Principal, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	p := user.Principal()
	if p.Blocked {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// Login verifica email/password y genera el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.DeletedAt != nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if user.BlockedAt != nil {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// RegisterCEO crea la empresa y su usuario CEO en un alta conjunta.
// ErrConflict si el nombre de empresa o el email ya existen.
func (uc *AuthUseCase) RegisterCEO(in dto.RegisterCEORequest) (*dto.LoginResponse, error) {
	if in.CompanyName == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	// Prechequeo para rechazar el caso común sin tocar nada; la unicidad real
	// la garantizan los índices dentro de la transacción.
	if existing, err := uc.userRepo.GetByEmail(in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrConflict
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.CompanyName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Permissions:  []string{"*"}, // el CEO nace con acceso total dentro de su empresa
		IsCEO:        true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Empresa y CEO son un alta conjunta: si el usuario no entra, la empresa
	// tampoco debe quedar huérfana.
	err = uc.tx.Run(func(r repository.TxRepos) error {
		if err := r.Companies.Create(company); err != nil {
			return err
		}
		return r.Users.Create(user)
	})
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// CreateEmployee da de alta un empleado en la empresa del principal.
// Exige is_ceo o root además del permiso users.create.
func (uc *AuthUseCase) CreateEmployee(p *entity.Principal, in dto.CreateEmployeeRequest) (*dto.UserResponse, error) {
	if err := Authorize(p, entity.PermUsersCreate); err != nil {
		return nil, err
	}
	if err := RequireCEOOrRoot(p); err != nil {
		return nil, err
	}
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    p.CompanyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Permissions:  in.Permissions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// DeleteEmployee borra (soft) un empleado de la empresa del principal.
// Un CEO no puede borrar a otro CEO; root sí.
func (uc *AuthUseCase) DeleteEmployee(p *entity.Principal, userID string) error {
	if err := Authorize(p, entity.PermUsersDelete); err != nil {
		return err
	}
	if err := RequireCEOOrRoot(p); err != nil {
		return err
	}
	target, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if target == nil || target.DeletedAt != nil {
		return domain.ErrNotFound
	}
	if err := RequireSameCompany(target.CompanyID, p); err != nil {
		return err
	}
	if target.IsCEO && !p.IsRoot {
		return domain.ErrForbidden
	}
	return uc.userRepo.SoftDelete(target.ID, time.Now().UTC())
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		Name:        u.Name,
		Permissions: u.Permissions,
		IsRoot:      u.IsRoot,
		IsCEO:       u.IsCEO,
		CreatedAt:   u.CreatedAt,
	}
}
