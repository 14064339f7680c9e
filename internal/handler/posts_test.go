package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/BloggingApp/post-editor/internal/dto"
	"github.com/BloggingApp/post-editor/internal/handler/handlertest"
	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/BloggingApp/post-editor/pkg/utils"
)

func token(t *testing.T, email string) string {
	t.Helper()

	tok, err := utils.EncodeJWT(email, time.Hour, handlertest.Secret)
	if err != nil {
		t.Fatalf("EncodeJWT: %v", err)
	}
	return tok
}

func request(t *testing.T, method, url, bearer string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, out.Bytes()
}

func TestPosts_PublicReads(t *testing.T) {
	t.Parallel()

	srv := handlertest.NewServer(t)
	srv.Posts.Seed(model.Post{ID: model.ID(2), Title: "hello", AuthorEmail: "ann@example.com"})

	resp, body := request(t, http.MethodGet, srv.APIURL()+"/posts", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d: %s", resp.StatusCode, body)
	}
	var list dto.PostsResponse
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Posts) != 1 || list.Posts[0].Title != "hello" {
		t.Fatalf("list = %+v", list.Posts)
	}

	resp, body = request(t, http.MethodGet, srv.APIURL()+"/posts/2", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d: %s", resp.StatusCode, body)
	}
	var single dto.PostResponse
	if err := json.Unmarshal(body, &single); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if single.Post.IDValue() != 2 {
		t.Fatalf("post = %+v", single.Post)
	}
}

func TestPosts_StatusCodes(t *testing.T) {
	t.Parallel()

	srv := handlertest.NewServer(t)
	srv.Posts.Seed(model.Post{ID: model.ID(1), Title: "one", AuthorEmail: "ann@example.com"})
	tok := token(t, "bob@example.com")

	cases := []struct {
		name   string
		method string
		path   string
		bearer string
		body   interface{}
		want   int
	}{
		{"missing post", http.MethodGet, "/posts/3", "", nil, http.StatusNotFound},
		{"bad id", http.MethodGet, "/posts/abc", "", nil, http.StatusBadRequest},
		{"anonymous create", http.MethodPost, "/posts", "", model.Post{ID: model.ID(5)}, http.StatusUnauthorized},
		{"forged token", http.MethodPost, "/posts", "not-a-jwt", model.Post{ID: model.ID(5)}, http.StatusUnauthorized},
		{"create without id", http.MethodPost, "/posts", tok, model.Post{Title: "x"}, http.StatusBadRequest},
		{"duplicate id", http.MethodPost, "/posts", tok, model.Post{ID: model.ID(1)}, http.StatusConflict},
		{"update missing", http.MethodPut, "/posts/9", tok, model.Post{ID: model.ID(9)}, http.StatusNotFound},
		{"update id mismatch", http.MethodPut, "/posts/1", tok, model.Post{ID: model.ID(2)}, http.StatusBadRequest},
		{"delete missing", http.MethodDelete, "/posts/9", tok, nil, http.StatusNotFound},
		{"anonymous delete", http.MethodDelete, "/posts/1", "", nil, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		resp, body := request(t, tc.method, srv.APIURL()+tc.path, tc.bearer, tc.body)
		if resp.StatusCode != tc.want {
			t.Fatalf("%s: status = %d, want %d: %s", tc.name, resp.StatusCode, tc.want, body)
		}
		var basic dto.BasicResponse
		if err := json.Unmarshal(body, &basic); err != nil {
			t.Fatalf("%s: decode error body: %v", tc.name, err)
		}
		if basic.Ok || basic.Details == "" {
			t.Fatalf("%s: error body = %+v", tc.name, basic)
		}
	}
}

func TestPosts_CreateFillsAuthorAndUpdatePreservesIt(t *testing.T) {
	t.Parallel()

	srv := handlertest.NewServer(t)
	tok := token(t, "ann@example.com")

	resp, body := request(t, http.MethodPost, srv.APIURL()+"/posts", tok, model.Post{ID: model.ID(0), Title: "first"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, body)
	}
	var created dto.PostResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Post.AuthorEmail != "ann@example.com" {
		t.Fatalf("author = %q", created.Post.AuthorEmail)
	}

	resp, body = request(t, http.MethodPost, srv.APIURL()+"/posts", tok, model.Post{ID: model.ID(1), Title: "forged", AuthorEmail: "victim@example.com"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, body)
	}
	resp, body = request(t, http.MethodGet, srv.APIURL()+"/posts/1", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d: %s", resp.StatusCode, body)
	}
	var stored dto.PostResponse
	if err := json.Unmarshal(body, &stored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stored.Post.AuthorEmail != "ann@example.com" {
		t.Fatalf("stored author = %q, want the token's email", stored.Post.AuthorEmail)
	}

	other := token(t, "bob@example.com")
	resp, body = request(t, http.MethodPut, srv.APIURL()+"/posts/0", other, model.Post{Title: "edited", AuthorEmail: "bob@example.com"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d: %s", resp.StatusCode, body)
	}
	var updated dto.PostResponse
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Post.Title != "edited" || updated.Post.AuthorEmail != "ann@example.com" {
		t.Fatalf("updated = %+v", updated.Post)
	}

	resp, body = request(t, http.MethodDelete, srv.APIURL()+"/posts/0", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d: %s", resp.StatusCode, body)
	}
	if srv.Posts.Len() != 1 {
		t.Fatalf("post not deleted")
	}
}
