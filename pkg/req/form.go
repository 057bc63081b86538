package req

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

var ErrMissingField = errors.New("missing field")

// Form возвращает значения обязательных полей формы.
// Поле считается отсутствующим, только если его нет в запросе; пустая строка допустима.
func Form(r *http.Request, fields ...string) (map[string]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(fields))
	for _, field := range fields {
		v, ok := r.PostForm[field]
		if !ok || len(v) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, field)
		}
		values[field] = v[0]
	}
	return values, nil
}

// MultipartForm как Form, но принимает и multipart/form-data. Размер тела ограничен maxBytes.
func MultipartForm(w http.ResponseWriter, r *http.Request, maxBytes int64, fields ...string) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	err := r.ParseMultipartForm(maxBytes)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	return Form(r, fields...)
}

// File читает необязательный файл формы. Пустое имя файла означает, что файла нет.
func File(r *http.Request, field string, maxBytes int64) (name string, content []byte, err error) {
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	if header.Filename == "" {
		return "", nil, nil
	}

	content, err = readLimited(f, maxBytes)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, content, nil
}

var ErrFileTooLarge = errors.New("file is too large")

func readLimited(f multipart.File, maxBytes int64) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > maxBytes {
		return nil, ErrFileTooLarge
	}
	return content, nil
}
