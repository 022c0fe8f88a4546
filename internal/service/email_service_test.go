package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/i18n"
	"github.com/unimart/unimart/internal/models"

	"github.com/shopspring/decimal"
)

func TestBuildOtpContent(t *testing.T) {
	subject, body := buildOtpContent("123456", constants.OtpPurposeLogin, i18n.LocaleZhCN)
	if subject != "登录验证码" {
		t.Fatalf("unexpected subject: %s", subject)
	}
	if !strings.Contains(body, "123456") || !strings.Contains(body, "登录") {
		t.Fatalf("unexpected body: %s", body)
	}

	subject, body = buildOtpContent("654321", constants.OtpPurposeDelivery, i18n.LocaleEnUS)
	if subject != "Delivery Confirmation Code" {
		t.Fatalf("unexpected subject: %s", subject)
	}
	if !strings.Contains(body, "654321") || !strings.Contains(body, "delivery confirmation") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestBuildOrderStatusContent(t *testing.T) {
	input := OrderStatusEmailInput{
		OrderNo: "UM20260901000000123456",
		Status:  constants.OrderStatusOutForDelivery,
		Amount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(42.50)),
	}

	subject, body := buildOrderStatusContent(input, i18n.LocaleZhCN)
	if !strings.Contains(subject, "配送中") {
		t.Fatalf("unexpected zh subject: %s", subject)
	}
	if !strings.Contains(body, "UM20260901000000123456") || !strings.Contains(body, "42.50") {
		t.Fatalf("unexpected zh body: %s", body)
	}

	subject, body = buildOrderStatusContent(input, i18n.LocaleEnUS)
	if !strings.Contains(subject, "out for delivery") {
		t.Fatalf("unexpected en subject: %s", subject)
	}
	if !strings.Contains(body, "UM20260901000000123456") {
		t.Fatalf("unexpected en body: %s", body)
	}

	// 未知状态回退为原样文本
	input.Status = "weird_status"
	subject, _ = buildOrderStatusContent(input, i18n.LocaleEnUS)
	if !strings.Contains(subject, "weird_status") {
		t.Fatalf("expected raw status fallback, got %s", subject)
	}
}

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"zh-CN":  i18n.LocaleZhCN,
		"ZH":     i18n.LocaleZhCN,
		"zh-TW":  i18n.LocaleZhCN,
		"en-US":  i18n.LocaleEnUS,
		"fr-FR":  i18n.LocaleEnUS,
		"":       i18n.LocaleEnUS,
		"  zh  ": i18n.LocaleZhCN,
	}
	for input, want := range cases {
		if got := normalizeLocale(input); got != want {
			t.Fatalf("normalizeLocale(%q) want %s got %s", input, want, got)
		}
	}
}

func TestBuildEmailMessageHeaders(t *testing.T) {
	msg := buildEmailMessage("UniMart <noreply@unimart.example>", "user@example.com", "订单通知", "body-line")
	if !strings.Contains(msg, "From: UniMart <noreply@unimart.example>\r\n") {
		t.Fatalf("missing from header: %s", msg)
	}
	if !strings.Contains(msg, "To: user@example.com\r\n") {
		t.Fatalf("missing to header: %s", msg)
	}
	if !strings.Contains(msg, "Content-Type: text/plain; charset=UTF-8\r\n") {
		t.Fatalf("missing content type: %s", msg)
	}
	if !strings.HasSuffix(msg, "\r\nbody-line") {
		t.Fatalf("body should follow blank line: %s", msg)
	}
}

func TestSendTextEmailGuards(t *testing.T) {
	svc := NewEmailService(nil)
	if err := svc.SendOtp("user@example.com", "123456", constants.OtpPurposeLogin, i18n.LocaleEnUS); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected disabled error, got: %v", err)
	}

	cfg := &config.EmailConfig{Enabled: true}
	svc = NewEmailService(cfg)
	if err := svc.SendOtp("user@example.com", "123456", constants.OtpPurposeLogin, i18n.LocaleEnUS); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected not configured error, got: %v", err)
	}

	cfg.Host = "smtp.example.com"
	cfg.Port = 587
	cfg.From = "noreply@unimart.example"
	if err := svc.SendOtp("not-an-email", "123456", constants.OtpPurposeLogin, i18n.LocaleEnUS); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email, got: %v", err)
	}
}
