package service

import (
	"crypto/rand"
	"errors"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	otpRepo      repository.OtpRepository
	emailService *EmailService
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, otpRepo repository.OtpRepository, emailService *EmailService) *UserAuthService {
	return &UserAuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		otpRepo:      otpRepo,
		emailService: emailService,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.UserJWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 168
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// RegisterInput 注册输入
type RegisterInput struct {
	Email       string
	Phone       string
	Password    string
	DisplayName string
}

// Register 用户注册
func (s *UserAuthService) Register(input RegisterInput) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return nil, "", time.Time{}, ErrInvalidInput
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, "", time.Time{}, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}
	exist, err = s.userRepo.GetByPhone(phone)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrPhoneExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = resolveNicknameFromEmail(normalized)
	}
	user := &models.User{
		Email:        normalized,
		Phone:        phone,
		PasswordHash: string(hashedPassword),
		DisplayName:  displayName,
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Login 密码登录，identifier 支持邮箱或手机号
func (s *UserAuthService) Login(identifier, password string) (*models.User, string, time.Time, error) {
	user, err := s.resolveUser(identifier)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		return nil, "", time.Time{}, ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// RequestOtp 请求一次性验证码（login/reset），邮箱与手机号必须同属一个账号
func (s *UserAuthService) RequestOtp(email, phone, purpose, locale string) error {
	if s.emailService == nil {
		return ErrEmailServiceNotConfigured
	}
	purpose = strings.ToLower(strings.TrimSpace(purpose))
	if purpose != constants.OtpPurposeLogin && purpose != constants.OtpPurposeReset {
		return ErrInvalidInput
	}
	user, err := s.resolveUserByContact(email, phone)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		return ErrUserDisabled
	}
	if strings.TrimSpace(user.Locale) != "" {
		locale = user.Locale
	}

	// 发送间隔限制
	latest, err := s.otpRepo.GetLatest(user.ID, purpose)
	if err != nil {
		return err
	}
	interval := time.Duration(s.cfg.Otp.SendIntervalSeconds) * time.Second
	if latest != nil && interval > 0 && time.Since(latest.SentAt) < interval {
		return ErrOtpSendTooFrequent
	}

	code, err := generateNumericCode(s.cfg.Otp.Length)
	if err != nil {
		return err
	}
	now := time.Now()
	expireMinutes := s.cfg.Otp.ExpireMinutes
	if expireMinutes <= 0 {
		expireMinutes = 10
	}
	otp := &models.Otp{
		UserID:    user.ID,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: now.Add(time.Duration(expireMinutes) * time.Minute),
		SentAt:    now,
		CreatedAt: now,
	}
	if err := s.otpRepo.Create(otp); err != nil {
		return err
	}
	return s.emailService.SendOtp(user.Email, code, purpose, locale)
}

// VerifyOtpLogin 验证码登录，核销前同样要求邮箱与手机号双重匹配
func (s *UserAuthService) VerifyOtpLogin(email, phone, code string) (*models.User, string, time.Time, error) {
	user, err := s.resolveUserByContact(email, phone)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrNotFound
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		return nil, "", time.Time{}, ErrUserDisabled
	}
	if err := s.ConsumeOtp(user.ID, constants.OtpPurposeLogin, code); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// ResetPassword 验证码重置密码
func (s *UserAuthService) ResetPassword(email, phone, code, newPassword string) error {
	user, err := s.resolveUserByContact(email, phone)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	if err := s.ConsumeOtp(user.ID, constants.OtpPurposeReset, code); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	user.UpdatedAt = time.Now()
	return s.userRepo.Update(user)
}

// UpdateProfile 更新用户资料
func (s *UserAuthService) UpdateProfile(userID uint, displayName, locale *string) (*models.User, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	updated := false
	if displayName != nil {
		trimmed := strings.TrimSpace(*displayName)
		if trimmed != "" {
			user.DisplayName = trimmed
			updated = true
		}
	}
	if locale != nil {
		trimmed := strings.TrimSpace(*locale)
		if trimmed != "" {
			user.Locale = trimmed
			updated = true
		}
	}
	if !updated {
		return nil, ErrInvalidInput
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ConsumeOtp 校验并核销最新验证码：过期、已用、不匹配均拒绝
func (s *UserAuthService) ConsumeOtp(userID uint, purpose, code string) error {
	latest, err := s.otpRepo.GetLatest(userID, purpose)
	if err != nil {
		return err
	}
	if latest == nil {
		return ErrOtpInvalid
	}
	if latest.UsedAt != nil {
		return ErrOtpUsed
	}
	if time.Now().After(latest.ExpiresAt) {
		return ErrOtpExpired
	}
	if strings.TrimSpace(code) == "" || latest.Code != strings.TrimSpace(code) {
		return ErrOtpInvalid
	}
	return s.otpRepo.MarkUsed(latest.ID, time.Now())
}

// resolveUserByContact 验证码流程按 (邮箱, 手机号) 精确配对定位用户，缺一不可
func (s *UserAuthService) resolveUserByContact(email, phone string) (*models.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrInvalidInput
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Phone != phone {
		return nil, nil
	}
	return user, nil
}

func (s *UserAuthService) resolveUser(identifier string) (*models.User, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}
	if strings.Contains(trimmed, "@") {
		normalized, err := normalizeEmail(trimmed)
		if err != nil {
			return nil, err
		}
		return s.userRepo.GetByEmail(normalized)
	}
	return s.userRepo.GetByPhone(trimmed)
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}

func resolveNicknameFromEmail(email string) string {
	if idx := strings.Index(email, "@"); idx > 0 {
		return email[:idx]
	}
	return email
}

// generateNumericCode 生成纯数字验证码
func generateNumericCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	var builder strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		builder.WriteString(n.String())
	}
	return builder.String(), nil
}
