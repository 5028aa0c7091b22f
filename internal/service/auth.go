package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/ports"
	"github.com/megabox/megabox-web/internal/validation"
)

const (
	minPasswordLen = 8

	// MsgPasswordsMustMatch is shown when a password and its confirmation differ.
	MsgPasswordsMustMatch = "Passwords must match."

	queryUserInfo = "user-info"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	referralPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,64}$`)
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API     ports.AuthAPI
	Account ports.AccountAPI
	Claims  ports.TokenClaims
	// Provider runs the redirect flow in oidc and mock OAuth modes; nil in backend mode.
	Provider ports.AuthProvider
	Cache    *QueryCache
	Logger   *slog.Logger
}

// AuthService orchestrates sign-in, sign-up and identity resolution against the backend.
// It never writes cookies; the HTTP layer stores the token only after a successful result.
type AuthService struct {
	api      ports.AuthAPI
	account  ports.AccountAPI
	claims   ports.TokenClaims
	provider ports.AuthProvider
	cache    *QueryCache
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		api:      opts.API,
		account:  opts.Account,
		claims:   opts.Claims,
		provider: opts.Provider,
		cache:    opts.Cache,
		logger:   logger,
	}
}

// LoginResult is a freshly issued session.
type LoginResult struct {
	Token string
	Role  domainauth.Role
}

// HomePath is where the browser goes after signing in.
func (r LoginResult) HomePath() string {
	return r.Role.HomePath()
}

// Login exchanges credentials for a bearer token and reads the role from it.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	err := validation.New().
		Validate("email", email, validation.Email("Email")).
		Validate("password", password, validation.Required("Password", 256)).
		Err()
	if err != nil {
		return LoginResult{}, err
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}
	return s.sessionFor(ctx, token)
}

// sessionFor derives the role for a new token: the token claim first, then the identity.
func (s *AuthService) sessionFor(ctx context.Context, token string) (LoginResult, error) {
	if s.claims != nil {
		if role, err := s.claims.Role(token); err == nil && role.Valid() {
			return LoginResult{Token: token, Role: role}, nil
		}
	}
	id, err := s.ResolveIdentity(ctx, token)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, Role: id.Role}, nil
}

// SignupInput is the registration form.
type SignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (in SignupInput) validate() error {
	return validation.New().
		Validate("username", in.Username, validation.RequiredRange("Username", 3, 32), validation.Pattern("Username", usernamePattern)).
		Validate("email", in.Email, validation.Email("Email")).
		Validate("password", in.Password, validation.Password("Password", minPasswordLen)).
		Validate("confirmPassword", in.ConfirmPassword, validation.Matches(in.Password, MsgPasswordsMustMatch)).
		Err()
}

func (in SignupInput) request(ref string) ports.SignupRequest {
	return ports.SignupRequest{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		Password:     in.Password,
		ReferralCode: ref,
	}
}

// Signup registers an account. No session is created; the user confirms the e-mailed code next.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	return s.api.Signup(ctx, in.request(""))
}

// SignupWithReferral registers an account attributed to refCode.
func (s *AuthService) SignupWithReferral(ctx context.Context, in SignupInput, refCode string) error {
	refCode = strings.TrimSpace(refCode)
	if !referralPattern.MatchString(refCode) {
		return apperrors.ValidationField("ref", "This referral link is not valid.")
	}
	if err := in.validate(); err != nil {
		return err
	}
	return s.api.Signup(ctx, in.request(refCode))
}

// ConfirmOneTimeCode verifies the signup code sent to email.
func (s *AuthService) ConfirmOneTimeCode(ctx context.Context, code, email string) error {
	code, email = strings.TrimSpace(code), strings.TrimSpace(email)
	err := validation.New().
		Validate("email", email, validation.Email("Email")).
		Validate("code", code, validation.OneTimeCode("Code")).
		Err()
	if err != nil {
		return err
	}
	return s.api.ConfirmOneTimeCode(ctx, email, code)
}

// RequestPasswordReset asks the backend to e-mail a reset code.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validation.New().Validate("email", email, validation.Email("Email")).Err(); err != nil {
		return err
	}
	return s.api.ForgotPassword(ctx, email)
}

// ResetPasswordInput is the reset form.
type ResetPasswordInput struct {
	Email           string
	Code            string
	NewPassword     string
	ConfirmPassword string
}

// ResetPassword sets a new password. A mismatched confirmation never reaches the backend.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	in.Email, in.Code = strings.TrimSpace(in.Email), strings.TrimSpace(in.Code)
	err := validation.New().
		Validate("confirmPassword", in.ConfirmPassword, validation.Matches(in.NewPassword, MsgPasswordsMustMatch)).
		Validate("email", in.Email, validation.Email("Email")).
		Validate("code", in.Code, validation.OneTimeCode("Code")).
		Validate("newPassword", in.NewPassword, validation.Password("Password", minPasswordLen)).
		Err()
	if err != nil {
		return err
	}
	return s.api.ResetPassword(ctx, ports.ResetPasswordRequest{
		Email:       in.Email,
		Code:        in.Code,
		NewPassword: in.NewPassword,
	})
}

// Logout revokes token on a best-effort basis and drops its cached queries.
// It never fails: the caller clears the cookie regardless.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.api.Logout(ctx, token); err != nil {
		s.logger.InfoContext(ctx, "backend logout failed", "error", err)
	}
	s.cache.InvalidateToken(ctx, token)
}

// ResolveIdentity returns the backend's view of token's principal. The role falls back
// to the token claim when the payload omits it.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (domainauth.Identity, error) {
	if token == "" {
		return domainauth.Identity{}, apperrors.Unauthorized("Please sign in.")
	}
	id, err := Fetch(ctx, s.cache, token, Query[domainauth.Identity]{
		Key:   queryUserInfo,
		Fetch: func(ctx context.Context) (domainauth.Identity, error) { return s.account.UserInfo(ctx, token) },
	})
	if err != nil {
		return domainauth.Identity{}, err
	}
	// The token's role claim is unverified and only steers the post-login redirect.
	// An identity without a backend-reported role passes no RoleGate.
	if !id.Role.Valid() {
		id.Role = ""
	}
	return id, nil
}

// ForgetIdentity drops the cached identity so the next page sees fresh plan flags.
func (s *AuthService) ForgetIdentity(ctx context.Context, token string) {
	s.cache.Invalidate(ctx, token, queryUserInfo)
}

// OAuthEnabled reports whether this server runs the redirect flow itself.
func (s *AuthService) OAuthEnabled() bool {
	return s.provider != nil
}

// BeginLoginResult carries the provider redirect and the values to pin in cookies.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

var errOAuthDisabled = errors.New("oauth provider not configured")

// BeginOAuth starts the provider flow.
func (s *AuthService) BeginOAuth(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.provider == nil {
		return nil, errOAuthDisabled
	}
	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteOAuthInput groups the callback parameters and the pinned nonce.
type CompleteOAuthInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteOAuth finishes the provider flow and returns a platform session.
func (s *AuthService) CompleteOAuth(ctx context.Context, in CompleteOAuthInput) (LoginResult, error) {
	if s.provider == nil {
		return LoginResult{}, errOAuthDisabled
	}
	if in.Code == "" || in.State == "" || in.Nonce == "" {
		return LoginResult{}, apperrors.Validation("Sign-in link is incomplete. Please try again.")
	}
	ext, err := s.provider.Exchange(ctx, ports.ExchangeInput{Code: in.Code, State: in.State, Nonce: in.Nonce})
	if err != nil {
		return LoginResult{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "Sign-in failed. Please try again.")
	}

	token := ext.AccessToken
	if token == "" {
		token, err = s.api.ExchangeOAuth(ctx, ext.IDToken)
		if err != nil {
			return LoginResult{}, err
		}
	}
	return s.sessionFor(ctx, token)
}

// AcceptToken validates a token handed back by the backend's own OAuth redirect.
// The token is only returned once the backend has accepted it.
func (s *AuthService) AcceptToken(ctx context.Context, token string) (LoginResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return LoginResult{}, apperrors.Validation("Sign-in link is incomplete. Please try again.")
	}
	id, err := s.ResolveIdentity(ctx, token)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, Role: id.Role}, nil
}
