package graphql

import (
	"context"
	"time"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"

	"github.com/bloghub/blog-api/internal/api/identity"
	"github.com/bloghub/blog-api/internal/api/metrics"
	"github.com/bloghub/blog-api/internal/core/domain"
	"github.com/bloghub/blog-api/internal/core/ports"
)

// Resolver is the root resolver implementing every schema operation.
type Resolver struct {
	auth   ports.AuthService
	posts  ports.PostService
	logger zerolog.Logger
}

func NewResolver(auth ports.AuthService, posts ports.PostService, logger zerolog.Logger) *Resolver {
	return &Resolver{auth: auth, posts: posts, logger: logger}
}

// requireIdentity rejects unauthenticated access to protected operations. The
// auth gate never rejects on its own; this is the only enforcement point.
func requireIdentity(ctx context.Context) (string, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return "", wrapErr(domain.ErrNotAuthenticated)
	}
	return id.UserID, nil
}

// fail logs the underlying error and converts it to the response taxonomy.
func (r *Resolver) fail(op string, err error) error {
	wrapped := wrapErr(err)
	if wrapped.Code >= 500 {
		r.logger.Error().Err(err).Str("operation", op).Msg("resolver failed")
	} else {
		r.logger.Debug().Err(err).Str("operation", op).Msg("resolver rejected request")
	}
	metrics.GraphQLOperationsTotal.WithLabelValues(op, "error").Inc()
	return wrapped
}

func (r *Resolver) ok(op string) {
	metrics.GraphQLOperationsTotal.WithLabelValues(op, "ok").Inc()
}

type userInputArgs struct {
	Email    string
	Password string
	Name     string
}

type postInputArgs struct {
	Title    string
	Content  string
	ImageURL string
}

// CreateUser registers a new account.
func (r *Resolver) CreateUser(ctx context.Context, args struct{ UserInput userInputArgs }) (*UserResolver, error) {
	user, err := r.auth.Register(ctx, ports.RegisterInput{
		Email:    args.UserInput.Email,
		Password: args.UserInput.Password,
		Name:     args.UserInput.Name,
	})
	if err != nil {
		return nil, r.fail("createUser", err)
	}
	r.ok("createUser")
	return newUserResolver(*user, r.posts), nil
}

// Login verifies credentials and issues a bearer token.
func (r *Resolver) Login(ctx context.Context, args struct{ Email, Password string }) (*AuthDataResolver, error) {
	result, err := r.auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, r.fail("login", err)
	}
	r.ok("login")
	return &AuthDataResolver{userID: result.UserID, token: result.Token}, nil
}

// CreatePost creates a post owned by the authenticated user.
func (r *Resolver) CreatePost(ctx context.Context, args struct{ PostInput postInputArgs }) (*PostResolver, error) {
	userID, err := requireIdentity(ctx)
	if err != nil {
		return nil, r.fail("createPost", err)
	}

	created, err := r.posts.Create(ctx, userID, ports.PostInput{
		Title:    args.PostInput.Title,
		Content:  args.PostInput.Content,
		ImageURL: args.PostInput.ImageURL,
	})
	if err != nil {
		return nil, r.fail("createPost", err)
	}
	r.ok("createPost")
	return newPostResolver(created.Post, created.Creator, r.posts), nil
}

// Posts returns one page of the listing, newest first, with the total count.
func (r *Resolver) Posts(ctx context.Context, args struct{ Page *int32 }) (*PostDataResolver, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, r.fail("posts", err)
	}

	page := int32(1)
	if args.Page != nil {
		page = *args.Page
	}

	result, err := r.posts.ListPage(ctx, page)
	if err != nil {
		return nil, r.fail("posts", err)
	}
	r.ok("posts")
	return &PostDataResolver{page: *result, svc: r.posts}, nil
}

// Post returns a single post by id.
func (r *Resolver) Post(ctx context.Context, args struct{ ID gql.ID }) (*PostResolver, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, r.fail("post", err)
	}

	found, err := r.posts.Get(ctx, string(args.ID))
	if err != nil {
		return nil, r.fail("post", err)
	}
	r.ok("post")
	return newPostResolver(found.Post, found.Creator, r.posts), nil
}

// UpdatePost overwrites title and content of a post owned by the caller.
func (r *Resolver) UpdatePost(ctx context.Context, args struct {
	ID        gql.ID
	PostInput postInputArgs
}) (*PostResolver, error) {
	userID, err := requireIdentity(ctx)
	if err != nil {
		return nil, r.fail("updatePost", err)
	}

	updated, err := r.posts.Update(ctx, userID, string(args.ID), ports.PostInput{
		Title:    args.PostInput.Title,
		Content:  args.PostInput.Content,
		ImageURL: args.PostInput.ImageURL,
	})
	if err != nil {
		return nil, r.fail("updatePost", err)
	}
	r.ok("updatePost")
	return newPostResolver(updated.Post, updated.Creator, r.posts), nil
}

// DeletePost removes a post owned by the caller.
func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID gql.ID }) (bool, error) {
	userID, err := requireIdentity(ctx)
	if err != nil {
		return false, r.fail("deletePost", err)
	}

	if err := r.posts.Delete(ctx, userID, string(args.ID)); err != nil {
		return false, r.fail("deletePost", err)
	}
	r.ok("deletePost")
	return true, nil
}

// User returns the authenticated user's profile.
func (r *Resolver) User(ctx context.Context) (*UserResolver, error) {
	userID, err := requireIdentity(ctx)
	if err != nil {
		return nil, r.fail("user", err)
	}

	user, err := r.posts.CurrentUser(ctx, userID)
	if err != nil {
		return nil, r.fail("user", err)
	}
	r.ok("user")
	return newUserResolver(*user, r.posts), nil
}

// UpdateStatus overwrites the authenticated user's status.
func (r *Resolver) UpdateStatus(ctx context.Context, args struct{ Status string }) (*UserResolver, error) {
	userID, err := requireIdentity(ctx)
	if err != nil {
		return nil, r.fail("updateStatus", err)
	}

	user, err := r.posts.UpdateStatus(ctx, userID, args.Status)
	if err != nil {
		return nil, r.fail("updateStatus", err)
	}
	r.ok("updateStatus")
	return newUserResolver(*user, r.posts), nil
}

// UserResolver shapes a user for the response. Posts are resolved lazily so a
// profile lookup does not pay for the listing.
type UserResolver struct {
	user domain.User
	svc  ports.PostService
}

func newUserResolver(user domain.User, svc ports.PostService) *UserResolver {
	return &UserResolver{user: user, svc: svc}
}

func (u *UserResolver) ID() gql.ID     { return gql.ID(u.user.ID) }
func (u *UserResolver) Name() string   { return u.user.Name }
func (u *UserResolver) Email() string  { return u.user.Email }
func (u *UserResolver) Status() string { return u.user.Status }

func (u *UserResolver) Posts(ctx context.Context) ([]*PostResolver, error) {
	posts, err := u.svc.PostsByCreator(ctx, u.user.ID)
	if err != nil {
		return nil, wrapErr(err)
	}
	out := make([]*PostResolver, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResolver(p, u.user, u.svc))
	}
	return out, nil
}

// PostResolver shapes a post with its populated creator.
type PostResolver struct {
	post    domain.Post
	creator domain.User
	svc     ports.PostService
}

func newPostResolver(post domain.Post, creator domain.User, svc ports.PostService) *PostResolver {
	return &PostResolver{post: post, creator: creator, svc: svc}
}

func (p *PostResolver) ID() gql.ID       { return gql.ID(p.post.ID) }
func (p *PostResolver) Title() string    { return p.post.Title }
func (p *PostResolver) Content() string  { return p.post.Content }
func (p *PostResolver) ImageURL() string { return p.post.ImageURL }

func (p *PostResolver) Creator() *UserResolver {
	return newUserResolver(p.creator, p.svc)
}

func (p *PostResolver) CreatedAt() string { return p.post.CreatedAt.UTC().Format(time.RFC3339) }
func (p *PostResolver) UpdatedAt() string { return p.post.UpdatedAt.UTC().Format(time.RFC3339) }

// PostDataResolver is the paginated listing payload.
type PostDataResolver struct {
	page ports.PostPage
	svc  ports.PostService
}

func (d *PostDataResolver) Posts() []*PostResolver {
	out := make([]*PostResolver, 0, len(d.page.Posts))
	for _, item := range d.page.Posts {
		out = append(out, newPostResolver(item.Post, item.Creator, d.svc))
	}
	return out
}

func (d *PostDataResolver) TotalPosts() int32 { return int32(d.page.Total) }

// AuthDataResolver is the login payload.
type AuthDataResolver struct {
	userID string
	token  string
}

func (a *AuthDataResolver) UserID() string { return a.userID }
func (a *AuthDataResolver) Token() string  { return a.token }
