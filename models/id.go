package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RecordID 服务端签发的记录 ID
// 原样保存（数字或字符串），更新/删除时按原样回传
type RecordID struct {
	text    string
	numeric bool
}

// NewRecordID 由文本构造 ID，规范整数文本按数字回传，"007" 之类保持字符串
func NewRecordID(s string) RecordID {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	return RecordID{text: s, numeric: err == nil && strconv.FormatInt(n, 10) == s}
}

// Equal 按文本比较，不区分数字与字符串形式
func (id RecordID) Equal(other RecordID) bool {
	return id.text == other.text
}

// IntID 由整数构造 ID
func IntID(n int64) RecordID {
	return RecordID{text: strconv.FormatInt(n, 10), numeric: true}
}

// IsZero 是否为空 ID
func (id RecordID) IsZero() bool {
	return id.text == ""
}

func (id RecordID) String() string {
	return id.text
}

func (id *RecordID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = RecordID{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RecordID{text: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = RecordID{text: n.String(), numeric: true}
	return nil
}

func (id RecordID) MarshalJSON() ([]byte, error) {
	if id.text == "" {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.text), nil
	}
	return json.Marshal(id.text)
}
