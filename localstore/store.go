package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// sqlite 驱动
	_ "modernc.org/sqlite"
)

// Store 本地键值存储，终端客户端用它保存登录标记
type Store struct {
	conn *sql.DB
}

// Open 打开（必要时创建）数据库文件
// ":memory:" 用于测试
func Open(path string) (*Store, error) {
	path = os.ExpandEnv(path)
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("localstore: create dir: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// Get 读取键，不存在时 ok 为 false
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set 写入或覆盖
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now())
	return err
}

// Remove 删除键，不存在时不报错
func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Close 关闭连接
func (s *Store) Close() error {
	return s.conn.Close()
}
