package utils

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

var (
	usernamePattern  = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	pureDigitPattern = regexp.MustCompile(`^[0-9]+$`)
	serviceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidateUsername checks if the username meets the requirements.
func ValidateUsername(username string) (bool, string) {
	if len(username) < 3 || len(username) > 64 {
		return false, "用户名长度需在 3 到 64 之间"
	}
	if !usernamePattern.MatchString(username) {
		return false, "用户名只能包含英文大小写、数字、下划线、点和短横线"
	}
	if pureDigitPattern.MatchString(username) {
		return false, "用户名不能为纯数字"
	}
	return true, ""
}

// ValidatePassword 只限制长度，密码策略交给部署方。
func ValidatePassword(password string) (bool, string) {
	if len(password) < 5 {
		return false, "密码最少5位"
	}
	if len(password) > 72 {
		return false, "密码最多72位"
	}
	return true, ""
}

func ValidateEmail(email string) (bool, string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, "邮箱不能为空"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false, "邮箱格式不正确"
	}
	return true, ""
}

// ValidateServiceName 服务名会参与结果文件命名，只允许安全字符。
func ValidateServiceName(name string) (bool, string) {
	if name == "" || len(name) > 128 {
		return false, "服务名长度需在 1 到 128 之间"
	}
	if !serviceNameRegex.MatchString(name) {
		return false, "服务名只能包含英文大小写、数字、下划线和短横线"
	}
	return true, ""
}

// ValidateServiceURL 要求绝对的 http/https 地址。
func ValidateServiceURL(raw string) (bool, string) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false, "服务地址必须是完整的 URL"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false, "服务地址仅支持 http 或 https"
	}
	return true, ""
}
