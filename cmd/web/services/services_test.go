package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/clients/blogclient"
	"kalshield/models"
	"kalshield/querystate"
)

func newBackend(t *testing.T, mux *http.ServeMux) *blogclient.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return blogclient.New(blogclient.Options{BaseURL: srv.URL})
}

func postsJSON(from, n int) string {
	posts := make([]models.Post, 0, n)
	for i := from; i < from+n; i++ {
		posts = append(posts, models.Post{
			ID:      fmt.Sprintf("p%d", i),
			Title:   fmt.Sprintf("Post %d", i),
			Slug:    fmt.Sprintf("post-%d", i),
			Content: "<p>body</p>",
		})
	}
	b, _ := json.Marshal(map[string]any{"posts": posts, "totalPosts": 100, "lastMonthPosts": 7})
	return string(b)
}

var sess = auth.Session{UserID: "u1", Username: "neo", Email: "neo@example.com", BackendToken: "bt", IsAdmin: true}

// -------------------- search --------------------

func TestSearchLoadSendsQueryUnchanged(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/post/getposts", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, postsJSON(0, 9))
	})
	svc := NewSearchService(newBackend(t, mux))

	page, err := svc.Load(context.Background(), "searchTerm=xss&sort=asc&category=web-security")
	require.NoError(t, err)

	assert.Equal(t, "searchTerm=xss&sort=asc&category=web-security", gotQuery)
	assert.Equal(t, querystate.State{SearchTerm: "xss", Sort: "asc", Category: "web-security"}, page.State)
	assert.Len(t, page.Results.Items, 9)
	assert.True(t, page.Results.ShowMore)
	assert.Equal(t, "searchTerm=xss&sort=asc&category=web-security&startIndex=9", page.MoreParams().Encode())
}

func TestSearchLoadShortPageHidesShowMore(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/post/getposts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, postsJSON(0, 8))
	})
	svc := NewSearchService(newBackend(t, mux))

	page, err := svc.Load(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, page.Results.ShowMore)
	assert.Equal(t, querystate.DefaultState(), page.State)
}

func TestSearchLoadErrorKeepsState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/post/getposts", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	})
	svc := NewSearchService(newBackend(t, mux))

	page, err := svc.Load(context.Background(), "searchTerm=nmap")
	require.Error(t, err)
	assert.Equal(t, "nmap", page.State.SearchTerm)
	assert.True(t, page.Results.Empty())
	assert.False(t, page.Results.ShowMore)
}

func TestSearchShowMoreAppends(t *testing.T) {
	var gotStart string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/post/getposts", func(w http.ResponseWriter, r *http.Request) {
		gotStart = r.URL.Query().Get("startIndex")
		_, _ = io.WriteString(w, postsJSON(9, 9))
	})
	svc := NewSearchService(newBackend(t, mux))

	results := querystate.NewResults(mapPostCards(make([]models.Post, 9)))
	err := svc.ShowMore(context.Background(), "searchTerm=xss", &results)
	require.NoError(t, err)

	assert.Equal(t, "9", gotStart)
	assert.Len(t, results.Items, 18)
	assert.Equal(t, "p9", results.Items[9].ID)
	assert.True(t, results.ShowMore)
}

func TestSearchPageFromStartIndex(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/post/getposts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sort=asc&startIndex=18", r.URL.RawQuery)
		_, _ = io.WriteString(w, postsJSON(18, 2))
	})
	svc := NewSearchService(newBackend(t, mux))

	cards, more, err := svc.Page(context.Background(), "sort=asc&startIndex=18")
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.False(t, more)
}

func TestSearchSubmitURL(t *testing.T) {
	svc := NewSearchService(nil)

	got := svc.SubmitURL("", querystate.FormState("firewall", "", ""))
	assert.Equal(t, "/search?searchTerm=firewall&sort=desc&category=uncategorized", got)

	got = svc.SubmitURL("category=tutorials&ref=nav", querystate.FormState("nmap scan", "asc", "tutorials"))
	assert.Equal(t, "/search?category=tutorials&ref=nav&searchTerm=nmap+scan&sort=asc", got)

	got = svc.SubmitSearchTermURL("sort=asc", "burp")
	assert.Equal(t, "/search?sort=asc&searchTerm=burp", got)
}

// -------------------- reader & comments --------------------

func TestReaderLoadsPostRecentAndComments(t *testing.T) {
	var userCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/post/getposts", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("slug") != "" {
			_, _ = io.WriteString(w, `{"posts":[{"_id":"p1","slug":"intro","title":"Intro","content":"<p>hi</p><script>x()</script>"}]}`)
			return
		}
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, postsJSON(0, 3))
	})
	mux.HandleFunc("/api/comment/getPostComments/p1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"_id":"c1","userId":"u1","content":"first","likes":["u2"],"numberOfLikes":1},
			{"_id":"c2","userId":"u2","content":"second","likes":[]},
			{"_id":"c3","userId":"u1","content":"third"},
			{"_id":"c4","userId":"gone","content":"orphan"}]`)
	})
	mux.HandleFunc("/api/user/", func(w http.ResponseWriter, r *http.Request) {
		userCalls.Add(1)
		id := strings.TrimPrefix(r.URL.Path, "/api/user/")
		if id == "gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = fmt.Fprintf(w, `{"_id":%q,"username":"user-%s"}`, id, id)
	})
	client := newBackend(t, mux)
	svc := NewPostService(client, NewCommentService(client))

	viewer := auth.Session{UserID: "u2"}
	page, err := svc.Reader(context.Background(), "intro", &viewer)
	require.NoError(t, err)

	assert.Equal(t, "Intro", page.Post.Title)
	assert.NotContains(t, string(page.Post.Content), "script")
	assert.Len(t, page.Recent, 3)
	require.Len(t, page.Comments, 4)
	assert.Equal(t, int32(3), userCalls.Load(), "one lookup per distinct author")
	assert.Equal(t, "user-u1", page.Comments[0].AuthorName())
	assert.True(t, page.Comments[0].LikedByViewer)
	assert.False(t, page.Comments[0].CanModify)
	assert.True(t, page.Comments[1].CanModify)
	assert.Equal(t, "anonymous user", page.Comments[3].AuthorName())
}

func TestReaderNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/post/getposts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"posts":[]}`)
	})
	client := newBackend(t, mux)
	svc := NewPostService(client, NewCommentService(client))

	_, err := svc.Reader(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentValidation(t *testing.T) {
	svc := NewCommentService(nil)

	_, err := svc.Create(context.Background(), sess, "p1", "   ")
	assert.Equal(t, "Comment cannot be empty", VisitorMessage(err, ""))

	_, err = svc.Create(context.Background(), sess, "p1", strings.Repeat("a", 201))
	assert.Equal(t, "Comment must be 200 characters or less", VisitorMessage(err, ""))

	_, err = validateComment(strings.Repeat("é", 200))
	assert.NoError(t, err)
}

func TestCommentCreateUsesSessionAsAuthor(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/comment/create", func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("access_token"); assert.NoError(t, err) {
			assert.Equal(t, "bt", ck.Value)
		}
		_, _ = io.WriteString(w, `{"_id":"c9","userId":"u1","postId":"p1","content":"trimmed"}`)
	})
	svc := NewCommentService(newBackend(t, mux))

	cm, err := svc.Create(context.Background(), sess, "p1", "  trimmed  ")
	require.NoError(t, err)
	assert.Equal(t, "neo", cm.AuthorName())
	assert.True(t, cm.CanModify)
}

// -------------------- auth --------------------

func TestAuthSignIn(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "backend-jwt"})
		_, _ = io.WriteString(w, `{"_id":"u1","username":"neo","email":"neo@example.com"}`)
	})
	sessions, err := auth.NewSessionManager("secret", 0)
	require.NoError(t, err)
	svc := NewAuthService(newBackend(t, mux), sessions)

	_, _, err = svc.SignIn(context.Background(), " ", "pw")
	assert.Equal(t, "Please fill all the fields", VisitorMessage(err, ""))

	token, got, err := svc.SignIn(context.Background(), "neo@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "backend-jwt", got.BackendToken)

	parsed, err := sessions.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, got, parsed)
}

func TestAuthSignUpValidation(t *testing.T) {
	svc := NewAuthService(nil, nil)
	err := svc.SignUp(context.Background(), "neo", "  ", "pw")
	assert.Equal(t, "Please fill out all fields.", VisitorMessage(err, ""))
}

// -------------------- dashboard --------------------

func TestDashboardOverview(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]string{}
	mux := http.NewServeMux()
	record := func(r *http.Request) {
		mu.Lock()
		seen[r.URL.Path] = r.URL.RawQuery
		mu.Unlock()
	}
	mux.HandleFunc("/api/user/getusers", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_, _ = io.WriteString(w, `{"users":[{"_id":"u1"}],"totalUsers":10,"lastMonthUsers":2}`)
	})
	mux.HandleFunc("/api/post/getposts", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_, _ = io.WriteString(w, postsJSON(0, 5))
	})
	mux.HandleFunc("/api/comment/getcomments", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_, _ = io.WriteString(w, `{"comments":[],"totalComments":4,"lastMonthComments":1}`)
	})
	svc := NewDashboardService(newBackend(t, mux))

	stats, err := svc.Overview(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalUsers)
	assert.Equal(t, 100, stats.TotalPosts)
	assert.Equal(t, 4, stats.TotalComments)
	assert.Equal(t, 7, stats.LastMonthPosts)
	assert.Len(t, stats.Posts, 5)
	assert.Equal(t, map[string]string{
		"/api/user/getusers":       "limit=5",
		"/api/post/getposts":       "limit=5",
		"/api/comment/getcomments": "limit=5",
	}, seen)
}

func TestDashboardOverviewFailsWhenOneCallFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/getusers", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"message":"You are not allowed to see all users"}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})
	svc := NewDashboardService(newBackend(t, mux))

	_, err := svc.Overview(context.Background(), sess)
	assert.ErrorIs(t, err, blogclient.ErrForbidden)
}

func TestDashboardPostsUsesOwnerAndStartIndex(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/post/getposts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "startIndex=9&userId=u1", r.URL.RawQuery)
		_, _ = io.WriteString(w, postsJSON(9, 9))
	})
	svc := NewDashboardService(newBackend(t, mux))

	res, err := svc.Posts(context.Background(), sess, 9)
	require.NoError(t, err)
	assert.True(t, res.ShowMore)
}

// -------------------- profile & editor --------------------

type fakeUploader struct {
	name string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	f.name = name
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.test/" + name, nil
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

func TestProfileUpdateNoChanges(t *testing.T) {
	svc := NewProfileService(nil, nil, 0)
	_, err := svc.Update(context.Background(), sess, ProfileInput{Username: "neo", Email: "neo@example.com"})
	assert.Equal(t, "No changes made", VisitorMessage(err, ""))
}

func TestProfileUpdateSendsOnlyChanges(t *testing.T) {
	var body map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/update/u1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"_id":"u1","username":"neo","email":"new@example.com","profilePicture":"https://cdn.test/me.png"}`)
	})
	up := &fakeUploader{}
	svc := NewProfileService(newBackend(t, mux), up, 0)

	user, err := svc.Update(context.Background(), sess, ProfileInput{
		Username: "neo",
		Email:    "new@example.com",
		Picture:  &Upload{Name: "me.png", Body: bytes.NewReader(pngBytes)},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"email": "new@example.com", "profilePicture": "https://cdn.test/me.png"}, body)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "me.png", up.name)
}

func TestProfileUpdateRejectsLargeImage(t *testing.T) {
	svc := NewProfileService(nil, &fakeUploader{}, int64(len(pngBytes)))
	_, err := svc.Update(context.Background(), sess, ProfileInput{
		Picture: &Upload{Name: "huge.png", Body: bytes.NewReader(pngBytes)},
	})
	assert.Equal(t, "Could not upload image (File must be less than 2MB)", VisitorMessage(err, ""))
}

func TestEditorCreateDefaultsCategory(t *testing.T) {
	var got models.PostInput
	mux := http.NewServeMux()
	mux.HandleFunc("/api/post/create", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"_id":"p5","slug":"hello-world"}`)
	})
	svc := NewEditorService(newBackend(t, mux), nil, 0)

	post, err := svc.Create(context.Background(), sess, PostForm{Title: " Hello world ", Content: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, models.PostInput{Title: "Hello world", Content: "<p>x</p>", Category: "uncategorized"}, got)
}

func TestEditorImageFailure(t *testing.T) {
	svc := NewEditorService(nil, &fakeUploader{err: errors.New("bucket gone")}, 0)
	_, err := svc.Create(context.Background(), sess, PostForm{
		Title: "t",
		Image: &Upload{Name: "cover.png", Body: bytes.NewReader(pngBytes)},
	})
	assert.Equal(t, "Image upload failed", VisitorMessage(err, ""))
}

func TestEditorUploadsDisabled(t *testing.T) {
	svc := NewEditorService(nil, nil, 0)
	_, err := svc.Update(context.Background(), sess, "p1", PostForm{
		Image: &Upload{Name: "cover.png", Body: bytes.NewReader(pngBytes)},
	})
	assert.Equal(t, "Image uploads are not configured", VisitorMessage(err, ""))
}
