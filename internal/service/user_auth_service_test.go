package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openUserAuthTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Otp{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newUserAuthTestService(db *gorm.DB, cfg *config.Config) *UserAuthService {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if cfg.UserJWT.SecretKey == "" {
		cfg.UserJWT.SecretKey = "unit-test-user-jwt-secret"
	}
	// 邮件通道关闭，发送失败不影响验证码落库
	return NewUserAuthService(cfg,
		repository.NewUserRepository(db),
		repository.NewOtpRepository(db),
		NewEmailService(&cfg.Email),
	)
}

func TestRegisterAndLogin(t *testing.T) {
	db := openUserAuthTestDB(t, "user_register")
	svc := newUserAuthTestService(db, nil)

	user, token, expiresAt, err := svc.Register(RegisterInput{
		Email:    " Alice@Example.COM ",
		Phone:    "13800138000",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.DisplayName != "alice" {
		t.Fatalf("expected nickname derived from email, got %s", user.DisplayName)
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("expected valid token, got %q expiring %v", token, expiresAt)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// 邮箱与手机号均可登录
	if _, _, _, err := svc.Login("ALICE@example.com", "Sup3rSecret"); err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	if _, _, _, err := svc.Login("13800138000", "Sup3rSecret"); err != nil {
		t.Fatalf("login by phone failed: %v", err)
	}
	if _, _, _, err := svc.Login("alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got: %v", err)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	db := openUserAuthTestDB(t, "user_duplicates")
	svc := newUserAuthTestService(db, nil)

	if _, _, _, err := svc.Register(RegisterInput{Email: "bob@example.com", Phone: "13800138001", Password: "Sup3rSecret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "bob@example.com", Phone: "13800138002", Password: "Sup3rSecret"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected email exists, got: %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "bob2@example.com", Phone: "13800138001", Password: "Sup3rSecret"}); !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("expected phone exists, got: %v", err)
	}
}

func TestRegisterPasswordPolicy(t *testing.T) {
	db := openUserAuthTestDB(t, "user_policy")
	cfg := &config.Config{}
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireNumber: true,
	}
	svc := newUserAuthTestService(db, cfg)

	_, _, _, err := svc.Register(RegisterInput{Email: "carol@example.com", Phone: "13800138003", Password: "short"})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password, got: %v", err)
	}
	_, _, _, err = svc.Register(RegisterInput{Email: "carol@example.com", Phone: "13800138003", Password: "nonumbers"})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password for missing digit, got: %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "carol@example.com", Phone: "13800138003", Password: "longen0ugh"}); err != nil {
		t.Fatalf("register with valid password failed: %v", err)
	}
}

func TestOtpLoginFlow(t *testing.T) {
	db := openUserAuthTestDB(t, "user_otp_login")
	svc := newUserAuthTestService(db, nil)
	otpRepo := repository.NewOtpRepository(db)

	user, _, _, err := svc.Register(RegisterInput{Email: "dave@example.com", Phone: "13800138004", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// 邮件通道关闭时验证码仍然落库，发送错误向上返回
	if err := svc.RequestOtp("dave@example.com", "13800138004", constants.OtpPurposeLogin, constants.LocaleEnUS); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected email disabled error, got: %v", err)
	}

	otp, err := otpRepo.GetLatest(user.ID, constants.OtpPurposeLogin)
	if err != nil {
		t.Fatalf("load otp failed: %v", err)
	}
	if otp == nil {
		t.Fatalf("expected otp persisted")
	}
	if len(otp.Code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", otp.Code)
	}

	if _, _, _, err := svc.VerifyOtpLogin("dave@example.com", "13800138004", "999999x"); !errors.Is(err, ErrOtpInvalid) {
		t.Fatalf("expected otp invalid, got: %v", err)
	}

	logged, token, _, err := svc.VerifyOtpLogin("dave@example.com", "13800138004", otp.Code)
	if err != nil {
		t.Fatalf("otp login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("unexpected otp login result: %+v", logged)
	}

	// 验证码单次有效
	if _, _, _, err := svc.VerifyOtpLogin("dave@example.com", "13800138004", otp.Code); !errors.Is(err, ErrOtpUsed) {
		t.Fatalf("expected otp used, got: %v", err)
	}
}

func TestOtpRequiresExactContactPair(t *testing.T) {
	db := openUserAuthTestDB(t, "user_otp_pair")
	svc := newUserAuthTestService(db, nil)
	otpRepo := repository.NewOtpRepository(db)

	user, _, _, err := svc.Register(RegisterInput{Email: "judy@example.com", Phone: "13800138010", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// 邮箱或手机号任一不匹配都不能定位账号
	if err := svc.RequestOtp("judy@example.com", "13999999999", constants.OtpPurposeLogin, constants.LocaleEnUS); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for wrong phone, got: %v", err)
	}
	if err := svc.RequestOtp("other@example.com", "13800138010", constants.OtpPurposeLogin, constants.LocaleEnUS); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for wrong email, got: %v", err)
	}
	if err := svc.RequestOtp("judy@example.com", " ", constants.OtpPurposeLogin, constants.LocaleEnUS); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank phone, got: %v", err)
	}

	if err := svc.RequestOtp("judy@example.com", "13800138010", constants.OtpPurposeLogin, constants.LocaleEnUS); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected otp issued for exact pair, got: %v", err)
	}
	otp, err := otpRepo.GetLatest(user.ID, constants.OtpPurposeLogin)
	if err != nil || otp == nil {
		t.Fatalf("expected otp persisted, got otp=%v err=%v", otp, err)
	}

	// 核销同样要求双重匹配
	if _, _, _, err := svc.VerifyOtpLogin("judy@example.com", "13999999999", otp.Code); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on verify with wrong phone, got: %v", err)
	}
	if _, _, _, err := svc.VerifyOtpLogin("judy@example.com", "13800138010", otp.Code); err != nil {
		t.Fatalf("otp login with exact pair failed: %v", err)
	}
}

func TestConsumeOtpExpired(t *testing.T) {
	db := openUserAuthTestDB(t, "user_otp_expired")
	svc := newUserAuthTestService(db, nil)

	user, _, _, err := svc.Register(RegisterInput{Email: "erin@example.com", Phone: "13800138005", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	now := time.Now()
	otp := models.Otp{
		UserID:    user.ID,
		Purpose:   constants.OtpPurposeLogin,
		Code:      "123456",
		ExpiresAt: now.Add(-time.Minute),
		SentAt:    now.Add(-11 * time.Minute),
		CreatedAt: now.Add(-11 * time.Minute),
	}
	if err := db.Create(&otp).Error; err != nil {
		t.Fatalf("create otp failed: %v", err)
	}

	if err := svc.ConsumeOtp(user.ID, constants.OtpPurposeLogin, "123456"); !errors.Is(err, ErrOtpExpired) {
		t.Fatalf("expected otp expired, got: %v", err)
	}
	if err := svc.ConsumeOtp(user.ID, constants.OtpPurposeReset, "123456"); !errors.Is(err, ErrOtpInvalid) {
		t.Fatalf("expected no otp for other purpose, got: %v", err)
	}
}

func TestRequestOtpThrottle(t *testing.T) {
	db := openUserAuthTestDB(t, "user_otp_throttle")
	cfg := &config.Config{}
	cfg.Otp.SendIntervalSeconds = 60
	svc := newUserAuthTestService(db, cfg)

	if _, _, _, err := svc.Register(RegisterInput{Email: "frank@example.com", Phone: "13800138006", Password: "Sup3rSecret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.RequestOtp("frank@example.com", "13800138006", constants.OtpPurposeLogin, constants.LocaleEnUS); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected email disabled on first request, got: %v", err)
	}
	// 发送间隔内的重复请求在发信前被拦截
	if err := svc.RequestOtp("frank@example.com", "13800138006", constants.OtpPurposeLogin, constants.LocaleEnUS); !errors.Is(err, ErrOtpSendTooFrequent) {
		t.Fatalf("expected send too frequent, got: %v", err)
	}
}

func TestResetPasswordWithOtp(t *testing.T) {
	db := openUserAuthTestDB(t, "user_reset")
	svc := newUserAuthTestService(db, nil)

	user, _, _, err := svc.Register(RegisterInput{Email: "grace@example.com", Phone: "13800138007", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	now := time.Now()
	otp := models.Otp{
		UserID:    user.ID,
		Purpose:   constants.OtpPurposeReset,
		Code:      "654321",
		ExpiresAt: now.Add(10 * time.Minute),
		SentAt:    now,
		CreatedAt: now,
	}
	if err := db.Create(&otp).Error; err != nil {
		t.Fatalf("create otp failed: %v", err)
	}

	if err := svc.ResetPassword("grace@example.com", "13800138007", "654321", "N3wSecret!"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}

	if _, _, _, err := svc.Login("grace@example.com", "Sup3rSecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got: %v", err)
	}
	if _, _, _, err := svc.Login("grace@example.com", "N3wSecret!"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := openUserAuthTestDB(t, "user_profile")
	svc := newUserAuthTestService(db, nil)

	user, _, _, err := svc.Register(RegisterInput{Email: "heidi@example.com", Phone: "13800138008", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	name := "Heidi H"
	locale := constants.LocaleZhCN
	updated, err := svc.UpdateProfile(user.ID, &name, &locale)
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.DisplayName != "Heidi H" || updated.Locale != constants.LocaleZhCN {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	if _, err := svc.UpdateProfile(user.ID, nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty update, got: %v", err)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	db := openUserAuthTestDB(t, "user_disabled")
	svc := newUserAuthTestService(db, nil)

	user, _, _, err := svc.Register(RegisterInput{Email: "ivan@example.com", Phone: "13800138009", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if _, _, _, err := svc.Login("ivan@example.com", "Sup3rSecret"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected user disabled, got: %v", err)
	}
}
