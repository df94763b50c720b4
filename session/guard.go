package session

import (
	"context"
	"crypto/subtle"
	"fmt"

	"finanzas/status"

	"golang.org/x/crypto/bcrypt"
)

// 会话标记
const (
	DefaultFlagKey = "finanzas_logged_in"
	FlagValue      = "true"
)

// TextBadCredentials 登录失败提示
const TextBadCredentials = "Usuario o contraseña incorrectos."

// FlagStore 保存登录标记的存储
type FlagStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Notifier 提示输出
type Notifier interface {
	Report(region status.Region, level status.Level, message string)
	Clear(region status.Region)
}

// Guard 本地登录门禁
// 凭据是配置里的固定账号，只用于界面入口，不是访问控制：远程接口本身不校验登录
type Guard struct {
	username string
	hash     []byte
	key      string
	store    FlagStore
	notify   Notifier
}

// NewGuard 启动时计算密码哈希
func NewGuard(username, password, flagKey string, store FlagStore, notify Notifier) (*Guard, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("session: hash password: %w", err)
	}
	if flagKey == "" {
		flagKey = DefaultFlagKey
	}
	return &Guard{username: username, hash: hash, key: flagKey, store: store, notify: notify}, nil
}

// With 返回使用另一存储的副本（网页端每个请求一个 cookie 存储）
func (g *Guard) With(store FlagStore) *Guard {
	cp := *g
	cp.store = store
	return &cp
}

// FlagKey 标记键名
func (g *Guard) FlagKey() string {
	return g.key
}

// IsAuthenticated 标记存在且为 "true"
func (g *Guard) IsAuthenticated(ctx context.Context) bool {
	if g.store == nil {
		return false
	}
	v, ok, err := g.store.Get(ctx, g.key)
	return err == nil && ok && v == FlagValue
}

// Check 仅比对凭据
func (g *Guard) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(g.hash, []byte(password)) == nil
	return userOK && passOK
}

// Login 凭据正确时写入标记并隐藏登录提示
// 凭据错误返回 false 并在登录区域显示提示；error 只表示存储失败
func (g *Guard) Login(ctx context.Context, username, password string) (bool, error) {
	if !g.Check(username, password) {
		g.report(status.LevelError, TextBadCredentials)
		return false, nil
	}
	if g.store == nil {
		return false, fmt.Errorf("session: no flag store")
	}
	if err := g.store.Set(ctx, g.key, FlagValue); err != nil {
		return false, fmt.Errorf("session: save flag: %w", err)
	}
	if g.notify != nil {
		g.notify.Clear(status.RegionLogin)
	}
	return true, nil
}

// Logout 删除标记
func (g *Guard) Logout(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	if err := g.store.Remove(ctx, g.key); err != nil {
		return fmt.Errorf("session: remove flag: %w", err)
	}
	return nil
}

func (g *Guard) report(level status.Level, msg string) {
	if g.notify != nil {
		g.notify.Report(status.RegionLogin, level, msg)
	}
}
