package req

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestForm(t *testing.T) {
	r := formRequest(url.Values{"username": {"alice"}, "password": {""}})

	values, err := Form(r, "username", "password")
	require.NoError(t, err)
	assert.Equal(t, "alice", values["username"])
	assert.Equal(t, "", values["password"])
}

func TestFormMissing(t *testing.T) {
	r := formRequest(url.Values{"username": {"alice"}})

	_, err := Form(r, "username", "password")
	require.ErrorIs(t, err, ErrMissingField)
	assert.Equal(t, "missing field: password", err.Error())
}

func multipartRequest(t *testing.T, fields map[string]string, fileField, fileName string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestMultipartFormAndFile(t *testing.T) {
	r := multipartRequest(t, map[string]string{"nickname": "Al"}, "profile_image", "me.png", []byte("png"))
	rec := httptest.NewRecorder()

	values, err := MultipartForm(rec, r, 1<<20, "nickname")
	require.NoError(t, err)
	assert.Equal(t, "Al", values["nickname"])

	name, content, err := File(r, "profile_image", 1024)
	require.NoError(t, err)
	assert.Equal(t, "me.png", name)
	assert.Equal(t, []byte("png"), content)
}

func TestFileAbsent(t *testing.T) {
	r := multipartRequest(t, map[string]string{"nickname": "Al"}, "", "", nil)
	rec := httptest.NewRecorder()

	_, err := MultipartForm(rec, r, 1<<20, "nickname")
	require.NoError(t, err)

	name, content, err := File(r, "profile_image", 1024)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Nil(t, content)
}

func TestFileTooLarge(t *testing.T) {
	r := multipartRequest(t, nil, "profile_image", "big.png", make([]byte, 64))
	rec := httptest.NewRecorder()

	_, err := MultipartForm(rec, r, 1<<20)
	require.NoError(t, err)

	_, _, err = File(r, "profile_image", 16)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestMultipartFormAcceptsURLEncoded(t *testing.T) {
	r := formRequest(url.Values{"nickname": {"Al"}, "intro": {""}})
	rec := httptest.NewRecorder()

	values, err := MultipartForm(rec, r, 1<<20, "nickname", "intro")
	require.NoError(t, err)
	assert.Equal(t, "Al", values["nickname"])

	name, _, err := File(r, "profile_image", 1024)
	require.NoError(t, err)
	assert.Empty(t, name)
}
