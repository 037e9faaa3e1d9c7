package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"
)

// 自己定義常用的權限常量
const (
	// rw-r--r-- (擁有者讀寫，其他人唯讀)
	FileModeReadOnly fs.FileMode = 0644

	// rw------- (只有擁有者可讀寫)
	FileModePrivate fs.FileMode = 0600
)

// 特殊路徑: 標準輸出與標準錯誤
const (
	Stdout = "-"
	Stderr = "stderr"
)

// Journal 以 JSON Lines 格式匯出帳本紀錄
// 只寫不讀回，不作為狀態還原使用
type Journal struct {
	w io.Writer
	// file 只有在自己開啟檔案時才有值，用於 Sync/Close
	file *os.File
	mu   sync.Mutex
}

// New 包裝任意 io.Writer
func New(w io.Writer) *Journal {
	return &Journal{w: w}
}

// Open 開啟或建立一個 Journal 檔案
// path 為 "-" 時輸出到 stdout，"stderr" 時輸出到 stderr
// O_APPEND 每次寫入時自動跳到文件末尾
// O_CREATE 如果文件不存在則建立
func Open(path string) (*Journal, error) {
	switch path {
	case Stdout:
		return New(os.Stdout), nil
	case Stderr:
		return New(os.Stderr), nil
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FileModeReadOnly)
	if err != nil {
		return nil, err
	}
	return &Journal{w: file, file: file}, nil
}

// Write 寫入一筆資料
func (j *Journal) Write(v any) error {
	return j.WriteBatch([]any{v})
}

// WriteBatch 將多筆資料編碼後一次寫出，編碼失敗時一筆都不寫
func (j *Journal) WriteBatch(values []any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.w.Write(buf.Bytes()); err != nil {
		return err
	}
	if j.file != nil {
		return j.file.Sync()
	}
	return nil
}

// Close 關閉檔案，stdout 或外部 writer 不做任何事
func (j *Journal) Close() error {
	if j.file == nil {
		return nil
	}
	return j.file.Close()
}

// ReadAll 讀取 Journal 串流
// callback 接收每一行的原始 JSON，避免一次將所有資料載入記憶體
func ReadAll(r io.Reader, callback func(jsonRaw []byte) error) error {
	decoder := json.NewDecoder(r)
	for {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := callback(raw); err != nil {
			return err
		}
	}
}
