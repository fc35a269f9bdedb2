package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takneev/artisan-studio/internal/ui/model"
	"github.com/takneev/artisan-studio/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client(), logging.Discard())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCheckAuthSendsMarkerAndRequestID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathCheckAuth, r.URL.Path)
		assert.Equal(t, MarkerValue, r.Header.Get(MarkerHeader))
		_, err := uuid.Parse(r.Header.Get(logging.RequestIDHeader))
		assert.NoError(t, err)
		writeJSON(w, http.StatusOK, map[string]any{
			"logged_in": true,
			"user":      map[string]string{"name": "Asha", "email": "asha@example.com"},
		})
	})

	session, err := client.CheckAuth(context.Background())
	require.NoError(t, err)
	assert.True(t, session.LoggedIn)
	require.NotNil(t, session.User)
	assert.Equal(t, "Asha", session.User.Name)
}

func TestUnauthorizedMapsToServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Please login first"})
	})

	_, err := client.MyArtworks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Please login first", msg)
}

func TestErrorKeyUsedWhenMessageMissing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
	})

	err := client.CreatePost(context.Background(), model.PostDraft{Description: "hi"})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Authentication required", apiErr.Message)
}

func TestHTMLErrorBodyYieldsStatusText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<html><body>boom</body></html>")
	})

	err := client.DeleteArtwork(context.Background(), "a1")
	_, ok := ServerMessage(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "500")
}

func TestSuccessFalseEnvelopeIsServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Invalid credentials"})
	})

	err := client.Login(context.Background(), model.Credentials{Email: "a@b.c", Password: "x"})
	msg, ok := ServerMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid credentials", msg)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, nil, nil)

	_, err := client.CheckAuth(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	_, ok := ServerMessage(err)
	assert.False(t, ok)
}

func TestSignupOmitsConfirmation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathSignup, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"name": "Asha", "email": "asha@example.com", "password": "pw"}, body)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	err := client.Signup(context.Background(), model.SignupForm{
		Name: "Asha", Email: "asha@example.com", Password: "pw", ConfirmPassword: "pw",
	})
	require.NoError(t, err)
}

func TestUploadArtworkMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathUploadArtwork, r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "Vase", r.FormValue("title"))
		assert.Equal(t, "pottery", r.FormValue("category"))
		assert.Equal(t, "clay", r.FormValue("material"))
		assert.Equal(t, "", r.FormValue("description"))
		assert.Equal(t, "1200", r.FormValue("price"))

		files := r.MultipartForm.File["files"]
		if !assert.Len(t, files, 2) {
			return
		}
		assert.Equal(t, "a.png", files[0].Filename)
		assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))
		assert.Equal(t, "notes.pdf", files[1].Filename)
		f, err := files[1].Open()
		if !assert.NoError(t, err) {
			return
		}
		data, _ := io.ReadAll(f)
		_ = f.Close()
		assert.Equal(t, "pdf-bytes", string(data))

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "ok"})
	})

	err := client.UploadArtwork(context.Background(),
		model.ArtworkFields{Title: "Vase", Category: "pottery", Material: "clay", Price: "1200"},
		[]model.Blob{
			&model.MemoryBlob{FileName: "a.png", MIME: "image/png", Data: []byte("png")},
			&model.MemoryBlob{FileName: "notes.pdf", MIME: "application/pdf", Data: []byte("pdf-bytes")},
		})
	require.NoError(t, err)
}

func TestMyArtworksDecodesPrices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"artworks":[
			{"id":"1","title":"Bowl","price":null,"files":["u/1.png"],"views":3,"likes":1},
			{"id":"2","title":"Rug","price":2500,"files":[],"views":0,"likes":0}
		]}`)
	})

	arts, err := client.MyArtworks(context.Background())
	require.NoError(t, err)
	require.Len(t, arts, 2)
	assert.False(t, arts[0].HasPrice())
	assert.True(t, arts[1].HasPrice())
	assert.Equal(t, 2500.0, *arts[1].Price)
}

func TestDeleteArtworkEscapesID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/delete-artwork/a%2Fb", r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	require.NoError(t, client.DeleteArtwork(context.Background(), "a/b"))
}

func TestSuggestPriceAndDescription(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Len(t, r.MultipartForm.File["file"], 1)
		assert.Empty(t, r.MultipartForm.Value["price"])
		switch r.URL.Path {
		case PathSuggestPrice:
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "price": "₹1,500"})
		case PathGenerateDescription:
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "description": "Hand thrown."})
		default:
			http.NotFound(w, r)
		}
	})
	img := &model.MemoryBlob{FileName: "a.png", MIME: "image/png", Data: []byte("png")}

	price, err := client.SuggestPrice(context.Background(), model.ArtworkFields{Title: "Bowl"}, img)
	require.NoError(t, err)
	assert.Equal(t, "₹1,500", price)

	desc, err := client.GenerateDescription(context.Background(), model.ArtworkFields{Title: "Bowl"}, img)
	require.NoError(t, err)
	assert.Equal(t, "Hand thrown.", desc)
}

func TestListPostsAcceptsBothShapes(t *testing.T) {
	bodies := []string{
		`[{"artist_name":"Asha","timestamp":"2024-01-02T10:00:00","description":"hello"}]`,
		`{"posts":[{"artist_name":"Asha","timestamp":"2024-01-02T10:00:00","description":"hello"}]}`,
	}
	for _, body := range bodies {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})
		posts, err := client.ListPosts(context.Background())
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Asha", posts[0].ArtistName)
	}
}

func TestCreatePostOptionalImage(t *testing.T) {
	var gotImage bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "new work", r.FormValue("description"))
		_, gotImage = r.MultipartForm.File["image"]
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, client.CreatePost(context.Background(), model.PostDraft{Description: "new work"}))
	assert.False(t, gotImage)

	img := &model.MemoryBlob{FileName: "p.jpg", MIME: "image/jpeg", Data: []byte("jpg")}
	require.NoError(t, client.CreatePost(context.Background(), model.PostDraft{Description: "new work", Image: img}))
	assert.True(t, gotImage)
}

func TestQRCodePath(t *testing.T) {
	if got := QRCodePath("abc 1"); got != "/api/generate-qr/abc%201" {
		t.Fatalf("unexpected path %q", got)
	}
}
