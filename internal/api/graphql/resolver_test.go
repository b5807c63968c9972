package graphql

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"

	"github.com/bloghub/blog-api/internal/api/identity"
)

func newTestResolver() (*Resolver, *stubBackend) {
	backend := newStubBackend()
	return NewResolver(backend, backend, zerolog.Nop()), backend
}

func authedCtx(userID string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: userID})
}

func assertCode(t *testing.T, err error, code int) *Error {
	t.Helper()
	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *graphql.Error, got %v", err)
	}
	if ae.Code != code {
		t.Fatalf("code = %d, want %d (message %q)", ae.Code, code, ae.Message)
	}
	return ae
}

func TestCreateUser(t *testing.T) {
	r, _ := newTestResolver()

	user, err := r.CreateUser(context.Background(), struct{ UserInput userInputArgs }{
		UserInput: userInputArgs{Email: "alice@example.com", Password: "pass123", Name: "Alice"},
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.Email() != "alice@example.com" || user.Name() != "Alice" {
		t.Fatalf("unexpected user: %s %s", user.Email(), user.Name())
	}
	if user.ID() == "" {
		t.Fatalf("expected non-empty id")
	}
}

func TestCreateUser_DuplicateIsConflict(t *testing.T) {
	r, backend := newTestResolver()
	backend.addUser("alice@example.com", "Alice")

	_, err := r.CreateUser(context.Background(), struct{ UserInput userInputArgs }{
		UserInput: userInputArgs{Email: "alice@example.com", Password: "pass123", Name: "Alice"},
	})
	assertCode(t, err, http.StatusConflict)
}

func TestCreateUser_ValidationCarriesData(t *testing.T) {
	r, _ := newTestResolver()

	_, err := r.CreateUser(context.Background(), struct{ UserInput userInputArgs }{
		UserInput: userInputArgs{Email: "alice@example.com", Password: "123", Name: "Alice"},
	})
	ae := assertCode(t, err, http.StatusBadRequest)
	if len(ae.Data) == 0 {
		t.Fatalf("validation error must carry per-field data")
	}
	ext := ae.Extensions()
	if ext["code"] != http.StatusBadRequest || ext["data"] == nil {
		t.Fatalf("extensions incomplete: %v", ext)
	}
}

func TestLogin(t *testing.T) {
	r, backend := newTestResolver()
	u := backend.addUser("alice@example.com", "Alice")

	auth, err := r.Login(context.Background(), struct{ Email, Password string }{
		Email: "alice@example.com", Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if auth.UserID() != u.ID || auth.Token() == "" {
		t.Fatalf("unexpected auth data: %s %s", auth.UserID(), auth.Token())
	}

	_, err = r.Login(context.Background(), struct{ Email, Password string }{
		Email: "alice@example.com", Password: "wrong",
	})
	assertCode(t, err, http.StatusUnauthorized)
}

func TestProtectedOperationsRequireIdentity(t *testing.T) {
	r, backend := newTestResolver()
	ctx := context.Background()

	checks := []struct {
		name string
		call func() error
	}{
		{"createPost", func() error {
			_, err := r.CreatePost(ctx, struct{ PostInput postInputArgs }{
				PostInput: postInputArgs{Title: "Valid title", Content: "Valid content"},
			})
			return err
		}},
		{"posts", func() error {
			_, err := r.Posts(ctx, struct{ Page *int32 }{})
			return err
		}},
		{"post", func() error {
			_, err := r.Post(ctx, struct{ ID gql.ID }{ID: "p1"})
			return err
		}},
		{"updatePost", func() error {
			_, err := r.UpdatePost(ctx, struct {
				ID        gql.ID
				PostInput postInputArgs
			}{ID: "p1", PostInput: postInputArgs{Title: "Valid title", Content: "Valid content"}})
			return err
		}},
		{"deletePost", func() error {
			_, err := r.DeletePost(ctx, struct{ ID gql.ID }{ID: "p1"})
			return err
		}},
		{"user", func() error {
			_, err := r.User(ctx)
			return err
		}},
		{"updateStatus", func() error {
			_, err := r.UpdateStatus(ctx, struct{ Status string }{Status: "x"})
			return err
		}},
	}
	for _, tc := range checks {
		t.Run(tc.name, func(t *testing.T) {
			assertCode(t, tc.call(), http.StatusUnauthorized)
		})
	}
	if len(backend.calls) != 0 {
		t.Fatalf("unauthenticated requests must not reach the service: %v", backend.calls)
	}
}

func TestCreatePost(t *testing.T) {
	r, backend := newTestResolver()
	u := backend.addUser("alice@example.com", "Alice")

	post, err := r.CreatePost(authedCtx(u.ID), struct{ PostInput postInputArgs }{
		PostInput: postInputArgs{Title: "First post", Content: "Hello world", ImageURL: "images/1.png"},
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.Title() != "First post" || post.ImageURL() != "images/1.png" {
		t.Fatalf("unexpected post: %s %s", post.Title(), post.ImageURL())
	}
	if post.Creator().ID() != gql.ID(u.ID) {
		t.Fatalf("creator not populated")
	}
	if _, err := time.Parse(time.RFC3339, post.CreatedAt()); err != nil {
		t.Fatalf("createdAt %q is not RFC3339: %v", post.CreatedAt(), err)
	}
}

func TestPosts_PaginationAndDefaults(t *testing.T) {
	r, backend := newTestResolver()
	u := backend.addUser("alice@example.com", "Alice")
	base := time.Now().UTC().Add(-time.Hour)
	for i := 1; i <= 5; i++ {
		backend.addPost(u.ID, "post-"+string(rune('0'+i)), base.Add(time.Duration(i)*time.Minute))
	}

	// Omitted page defaults to 1.
	page1, err := r.Posts(authedCtx(u.ID), struct{ Page *int32 }{})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}
	if page1.TotalPosts() != 5 {
		t.Fatalf("totalPosts = %d, want 5", page1.TotalPosts())
	}
	if got := page1.Posts(); len(got) != 2 || got[0].Title() != "post-5" {
		t.Fatalf("page 1 wrong: %d items", len(got))
	}

	three := int32(3)
	page3, err := r.Posts(authedCtx(u.ID), struct{ Page *int32 }{Page: &three})
	if err != nil {
		t.Fatalf("Posts(3) failed: %v", err)
	}
	if page3.TotalPosts() != 5 {
		t.Fatalf("totalPosts on page 3 = %d, want 5", page3.TotalPosts())
	}
	if got := page3.Posts(); len(got) != 1 || got[0].Title() != "post-1" {
		t.Fatalf("page 3 should hold only the oldest post")
	}
}

func TestPost_NotFound(t *testing.T) {
	r, backend := newTestResolver()
	u := backend.addUser("alice@example.com", "Alice")

	_, err := r.Post(authedCtx(u.ID), struct{ ID gql.ID }{ID: "missing"})
	assertCode(t, err, http.StatusNotFound)
}

func TestUpdatePost_NonCreatorForbidden(t *testing.T) {
	r, backend := newTestResolver()
	alice := backend.addUser("alice@example.com", "Alice")
	bob := backend.addUser("bob@example.com", "Bob")
	p := backend.addPost(alice.ID, "theirs", time.Now().UTC())

	_, err := r.UpdatePost(authedCtx(bob.ID), struct {
		ID        gql.ID
		PostInput postInputArgs
	}{ID: gql.ID(p.ID), PostInput: postInputArgs{Title: "Hijack title", Content: "Hijack body"}})
	assertCode(t, err, http.StatusForbidden)
}

func TestDeletePost(t *testing.T) {
	r, backend := newTestResolver()
	alice := backend.addUser("alice@example.com", "Alice")
	bob := backend.addUser("bob@example.com", "Bob")
	p := backend.addPost(alice.ID, "mine", time.Now().UTC())

	_, err := r.DeletePost(authedCtx(bob.ID), struct{ ID gql.ID }{ID: gql.ID(p.ID)})
	assertCode(t, err, http.StatusForbidden)

	ok, err := r.DeletePost(authedCtx(alice.ID), struct{ ID gql.ID }{ID: gql.ID(p.ID)})
	if err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if !ok {
		t.Fatalf("DeletePost must return true on success")
	}
}

func TestUser_StaleIdentityIs404(t *testing.T) {
	r, _ := newTestResolver()

	_, err := r.User(authedCtx("ghost"))
	assertCode(t, err, http.StatusNotFound)
}

func TestUpdateStatus(t *testing.T) {
	r, backend := newTestResolver()
	u := backend.addUser("alice@example.com", "Alice")

	updated, err := r.UpdateStatus(authedCtx(u.ID), struct{ Status string }{Status: "writing"})
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status() != "writing" {
		t.Fatalf("status = %q, want writing", updated.Status())
	}
}

func TestUserResolver_PostsLazyLoad(t *testing.T) {
	r, backend := newTestResolver()
	u := backend.addUser("alice@example.com", "Alice")
	backend.addPost(u.ID, "first", time.Now().UTC())

	user, err := r.User(authedCtx(u.ID))
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}
	posts, err := user.Posts(context.Background())
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Title() != "first" {
		t.Fatalf("unexpected user posts: %d", len(posts))
	}
}
