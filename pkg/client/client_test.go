package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerTokenSentOnEveryRequest(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Project{})
	}))
	defer srv.Close()

	c := New(srv.URL, "id-token-123")
	_, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer id-token-123", gotAuth)
}

func TestCreateProjectPostsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateProjectRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Thesis", req.Name)
		assert.Equal(t, "college", req.Category)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Project{ID: "p1", Name: req.Name, Category: req.Category})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	p, err := c.CreateProject(context.Background(), CreateProjectRequest{Name: "Thesis", Category: "college"})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
}

func TestUpdateProjectOmitsUnsetFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"category":"work"}`, string(body), "nil fields must not appear in the patch")
		json.NewEncoder(w).Encode(Project{ID: "p1", Category: "work"})
	}))
	defer srv.Close()

	category := "work"
	c := New(srv.URL, "tok")
	p, err := c.UpdateProject(context.Background(), "p1", UpdateProjectRequest{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, "work", p.Category)
}

func TestErrorEnvelopeDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "project not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.GetProject(context.Background(), "missing")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "project not found", apiErr.Message)
}

func TestAddTaskRefreshesList(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(Task{ID: "t1", Name: "Outline"})
		default:
			json.NewEncoder(w).Encode([]Task{{ID: "t1", Name: "Outline"}})
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	tasks, err := c.AddTask(context.Background(), "p1", AddTaskRequest{Name: "Outline"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, []string{"POST /api/projects/p1/tasks", "GET /api/projects/p1/tasks"}, paths)
}

func TestUploadAttachmentSendsMultipartFileField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/p1/attachments", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.pdf", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "pdf-bytes", string(data))

		json.NewEncoder(w).Encode(UploadResult{
			Message:  "File uploaded",
			FileName: "notes.pdf",
			FilePath: "/uploads/abc.pdf",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	res, err := c.UploadAttachment(context.Background(), "p1", "notes.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "File uploaded", res.Message)
	assert.Equal(t, "/uploads/abc.pdf", res.FilePath)
}

func TestLoadProjectPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/projects/p1":
			json.NewEncoder(w).Encode(Project{ID: "p1", Name: "Thesis"})
		case "/api/projects/p1/tasks":
			json.NewEncoder(w).Encode([]Task{{ID: "t1"}, {ID: "t2"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	p, tasks, err := c.LoadProjectPage(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Thesis", p.Name)
	assert.Len(t, tasks, 2)
}
