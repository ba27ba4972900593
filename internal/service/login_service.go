package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jskalc/vault-api/internal/cryptox"
	"github.com/jskalc/vault-api/internal/domain"
	"github.com/jskalc/vault-api/internal/dto"
	"github.com/jskalc/vault-api/internal/repository"
	"github.com/jskalc/vault-api/internal/utils"
)

// loginService implements LoginService interface
type loginService struct {
	loginRepo repository.LoginRepository
	cipher    *cryptox.FieldCipher
	logger    *zap.Logger
}

// NewLoginService creates a new login service
func NewLoginService(loginRepo repository.LoginRepository, cipher *cryptox.FieldCipher, logger *zap.Logger) LoginService {
	return &loginService{
		loginRepo: loginRepo,
		cipher:    cipher,
		logger:    logger,
	}
}

// Create stores a new login record for ownerID. The owner always comes from
// the authenticated principal, never from the request body.
func (s *loginService) Create(ctx context.Context, ownerID string, req *dto.CreateLoginRequest) (*domain.Login, error) {
	address := strings.TrimSpace(req.WebsiteAddress)

	login := &domain.Login{
		UserID:         ownerID,
		WebsiteName:    strings.TrimSpace(req.WebsiteName),
		WebsiteAddress: address,
		Domain:         utils.DeriveDomain(address),
		Username:       req.Username,
		Password:       req.Password,
	}
	if err := s.encrypt(login); err != nil {
		return nil, err
	}

	if err := s.loginRepo.Create(ctx, login); err != nil {
		return nil, fmt.Errorf("failed to create login: %w", err)
	}

	s.decrypt(login)
	return login, nil
}

// Get returns a single login record, enforcing ownership.
func (s *loginService) Get(ctx context.Context, principalID, loginID string) (*domain.Login, error) {
	login, err := s.authorize(ctx, principalID, loginID)
	if err != nil {
		return nil, err
	}

	s.decrypt(login)
	return login, nil
}

// List returns one page of the principal's logins plus the total count.
func (s *loginService) List(ctx context.Context, principalID string, page, perPage int) ([]*domain.Login, int, error) {
	total, err := s.loginRepo.CountByOwner(ctx, principalID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count logins: %w", err)
	}
	if total == 0 {
		return nil, 0, ErrNoLogins
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage

	logins, err := s.loginRepo.ListByOwner(ctx, principalID, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list logins: %w", err)
	}

	for _, login := range logins {
		s.decrypt(login)
	}
	return logins, total, nil
}

// Update applies a partial edit to an owned login record. Changing the
// website address recomputes the derived domain.
func (s *loginService) Update(ctx context.Context, principalID, loginID string, req *dto.UpdateLoginRequest) (*domain.Login, error) {
	login, err := s.authorize(ctx, principalID, loginID)
	if err != nil {
		return nil, err
	}
	s.decrypt(login)

	if req.WebsiteName != "" {
		login.WebsiteName = strings.TrimSpace(req.WebsiteName)
	}
	if req.WebsiteAddress != "" {
		address := strings.TrimSpace(req.WebsiteAddress)
		login.WebsiteAddress = address
		login.Domain = utils.DeriveDomain(address)
	}
	if req.Username != "" {
		login.Username = req.Username
	}
	if req.Password != "" {
		login.Password = req.Password
	}

	if err := s.encrypt(login); err != nil {
		return nil, err
	}
	if err := s.loginRepo.Update(ctx, login); err != nil {
		return nil, fmt.Errorf("failed to update login: %w", err)
	}

	s.decrypt(login)
	return login, nil
}

// Delete removes an owned login record.
func (s *loginService) Delete(ctx context.Context, principalID, loginID string) error {
	if _, err := s.authorize(ctx, principalID, loginID); err != nil {
		return err
	}

	if err := s.loginRepo.Delete(ctx, loginID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete login: %w", err)
	}

	return nil
}

// authorize fetches the record and checks ownership. Existence is checked
// before ownership so a missing record never reads as a permission error.
func (s *loginService) authorize(ctx context.Context, principalID, loginID string) (*domain.Login, error) {
	login, err := s.loginRepo.GetByID(ctx, loginID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get login: %w", err)
	}

	if login.UserID != principalID {
		s.logger.Warn("login access denied",
			zap.String("login_id", loginID),
			zap.String("principal_id", principalID))
		return nil, ErrForbidden
	}

	return login, nil
}

func (s *loginService) encrypt(login *domain.Login) error {
	fields := []*string{
		&login.WebsiteName,
		&login.WebsiteAddress,
		&login.Domain,
		&login.Username,
		&login.Password,
	}
	for _, field := range fields {
		ciphertext, err := s.cipher.EncryptField(*field)
		if err != nil {
			return fmt.Errorf("failed to encrypt field: %w", err)
		}
		*field = ciphertext
	}
	return nil
}

func (s *loginService) decrypt(login *domain.Login) {
	login.WebsiteName = s.cipher.DecryptField(login.WebsiteName)
	login.WebsiteAddress = s.cipher.DecryptField(login.WebsiteAddress)
	login.Domain = s.cipher.DecryptField(login.Domain)
	login.Username = s.cipher.DecryptField(login.Username)
	login.Password = s.cipher.DecryptField(login.Password)
}
