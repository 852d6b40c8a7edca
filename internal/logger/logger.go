// Package logger предоставляет io.Writer с ротацией файла логов
// по размеру и возрасту.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// RotateWriter пишет в файл и архивирует его, когда файл становится
// слишком большим или слишком старым.
type RotateWriter struct {
	filename    string
	maxSize     int64
	maxAge      time.Duration
	currentSize int64
	file        *os.File
	opened      time.Time
}

// NewRotateWriter создает писатель логов для указанного файла.
// maxSize — предельный размер файла в байтах, maxAge — предельный возраст.
// Нулевое значение отключает соответствующий критерий ротации.
func NewRotateWriter(filename string, maxSize int64, maxAge time.Duration) (*RotateWriter, error) {
	w := &RotateWriter{
		filename: filename,
		maxSize:  maxSize,
		maxAge:   maxAge,
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

// Write записывает данные, при необходимости предварительно ротируя файл.
func (w *RotateWriter) Write(p []byte) (int, error) {
	if w.file == nil {
		if err := w.open(); err != nil {
			return 0, err
		}
	}

	needRotate := (w.maxSize > 0 && w.currentSize+int64(len(p)) > w.maxSize) ||
		(w.maxAge > 0 && time.Since(w.opened) > w.maxAge)
	if needRotate {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.currentSize += int64(n)
	return n, err
}

// Close закрывает текущий файл логов.
func (w *RotateWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// rotate переименовывает текущий файл в архивный с меткой времени
// и открывает новый.
func (w *RotateWriter) rotate() error {
	if err := w.Close(); err != nil {
		return err
	}

	base := filepath.Base(w.filename)
	ext := filepath.Ext(base)
	stamp := time.Now().Format("2006-01-02_15-04-05")
	archived := filepath.Join(filepath.Dir(w.filename),
		fmt.Sprintf("%s_%s%s", base[:len(base)-len(ext)], stamp, ext))

	if err := os.Rename(w.filename, archived); err != nil && !os.IsNotExist(err) {
		return err
	}
	return w.open()
}

func (w *RotateWriter) open() error {
	if err := os.MkdirAll(filepath.Dir(w.filename), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(w.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	w.file = f
	w.currentSize = info.Size()
	w.opened = time.Now()
	return nil
}

// GetWriter создает io.Writer с ротацией для использования в log.SetOutput.
func GetWriter(filename string, maxSize int64, maxAge time.Duration) (io.Writer, error) {
	return NewRotateWriter(filename, maxSize, maxAge)
}
