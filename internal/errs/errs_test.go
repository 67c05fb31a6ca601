package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeAuth, CodeOf(Auth("Invalid login credentials")))
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("no profile row")))
	assert.Equal(t, CodeGeneric, CodeOf(errors.New("plain error")))

	// Classification survives wrapping
	wrapped := fmt.Errorf("outer: %w", UploadTimeout("upload timed out"))
	assert.Equal(t, CodeUploadTimeout, CodeOf(wrapped))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("no row")))
	assert.False(t, IsNotFound(DataAccess("fetching row", errors.New("boom"))))
	assert.False(t, IsNotFound(nil))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := DataAccess("fetching feed", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUserMessagePassesAuthThrough(t *testing.T) {
	assert.Equal(t, "Invalid login credentials", UserMessage(Auth("Invalid login credentials")))

	// Backend internals never reach the user
	msg := UserMessage(DataAccess("fetching feed", errors.New("pq: relation missing")))
	assert.NotContains(t, msg, "pq")
	assert.Equal(t, "Something went wrong. Please try again.", msg)

	assert.Equal(t, "Image size too large. Please choose a smaller image.", UserMessage(UploadTooLarge("too big")))
	assert.Equal(t, "Upload took too long. Please try again with a smaller image.", UserMessage(UploadTimeout("slow")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, CodeAuth.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, CodeNotFound.HTTPStatus())
	assert.Equal(t, http.StatusRequestTimeout, CodeUploadTimeout.HTTPStatus())
	assert.Equal(t, http.StatusRequestEntityTooLarge, CodeUploadTooLarge.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, CodeDataAccess.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, CodeGeneric.HTTPStatus())
}
