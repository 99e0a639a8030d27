package handler

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"quill/domain"
	"quill/paginate"
	"quill/store"
)

type PostDTO struct {
	ID         string
	Text       template.HTML
	Author     string
	GroupTitle string
	GroupSlug  string
	Image      string
	CreatedAt  string
}

type CommentDTO struct {
	Author    string
	Text      string
	CreatedAt string
}

func postDTO(p domain.Post) PostDTO {
	d := PostDTO{
		ID:        p.ID,
		Text:      safeMd(p.Text),
		Author:    sanitizerStrict.Sanitize(p.Author.Username),
		Image:     p.Image,
		CreatedAt: p.CreatedAt.Format(time.DateOnly),
	}
	if p.Group != nil {
		d.GroupTitle = sanitizerStrict.Sanitize(p.Group.Title)
		d.GroupSlug = p.Group.Slug
	}
	return d
}

func postDTOs(posts []domain.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, postDTO(p))
	}
	return out
}

// postListData is the context shared by every paginated post listing.
type postListData struct {
	Title     string
	Posts     []PostDTO
	Page      paginate.Page[domain.Post]
	User      *domain.User
	Group     *domain.Group
	Author    *domain.User
	Following bool
}

func (h *Handler) listData(c echo.Context, title string, posts []domain.Post) postListData {
	page := paginate.New(posts, PageSize, c.QueryParam("page"))
	return postListData{
		Title: title,
		Posts: postDTOs(page.Items),
		Page:  page,
		User:  h.currentUser(c),
	}
}

// GetPosts renders the home page with every post, newest first. The rendered
// body is cached for the configured window, so a request inside the window
// gets the exact bytes of a previous render. The body carries the caller's
// nav, so the key includes the caller identity; one user's page must never
// be served to another.
func (h *Handler) GetPosts(c echo.Context) error {
	userID := h.currentUserID(c)
	key := indexCacheKey(userID, parsePage(c.QueryParam("page")))
	if body, ok := h.Cache.Get(key); ok {
		return c.HTMLBlob(http.StatusOK, body)
	}

	posts, err := h.Store.AllPosts()
	if err != nil {
		return err
	}
	data := h.listData(c, "Latest updates", posts)

	// Out-of-range page numbers clamp during pagination. Re-key on the page
	// actually rendered so every such request shares the last page's entry.
	key = indexCacheKey(userID, data.Page.Number)
	if body, ok := h.Cache.Get(key); ok {
		return c.HTMLBlob(http.StatusOK, body)
	}

	buf := new(bytes.Buffer)
	if err := c.Echo().Renderer.Render(buf, "index.html", data, c); err != nil {
		return err
	}
	h.Cache.Set(key, buf.Bytes())
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func parsePage(raw string) int {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		number = 1
	}
	return number
}

func indexCacheKey(userID string, page int) string {
	if userID == "" {
		userID = "anon"
	}
	return "index:" + userID + ":page:" + strconv.Itoa(page)
}

func (h *Handler) GetGroupPosts(c echo.Context) error {
	group, err := h.Store.GroupBySlug(c.Param("slug"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	posts, err := h.Store.PostsByGroup(group.ID)
	if err != nil {
		return err
	}
	data := h.listData(c, group.Title, posts)
	data.Group = &group
	return c.Render(http.StatusOK, "group_list.html", data)
}

func (h *Handler) GetProfile(c echo.Context) error {
	author, err := h.Store.UserByUsername(c.Param("username"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	posts, err := h.Store.PostsByAuthor(author.ID)
	if err != nil {
		return err
	}
	data := h.listData(c, "Posts by "+author.Username, posts)
	data.Author = &author
	if data.User != nil {
		following, err := h.Store.Following(data.User.ID, author.ID)
		if err != nil {
			return err
		}
		data.Following = following
	}
	return c.Render(http.StatusOK, "profile.html", data)
}

type postDetailData struct {
	Post     PostDTO
	Comments []CommentDTO
	Form     domain.CommentForm
	User     *domain.User
}

func (h *Handler) GetPostDetail(c echo.Context) error {
	post, err := h.Store.PostByID(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	comments, err := h.Store.CommentsByPost(post.ID)
	if err != nil {
		return err
	}
	dtos := make([]CommentDTO, 0, len(comments))
	for _, comment := range comments {
		dtos = append(dtos, CommentDTO{
			Author:    sanitizerStrict.Sanitize(comment.Author.Username),
			Text:      sanitizerStrict.Sanitize(comment.Text),
			CreatedAt: comment.CreatedAt.Format(time.DateOnly),
		})
	}

	return c.Render(http.StatusOK, "post_detail.html", postDetailData{
		Post:     postDTO(post),
		Comments: dtos,
		User:     h.currentUser(c),
	})
}

type postFormData struct {
	Form   domain.PostForm
	Errors domain.FieldErrors
	Groups []domain.Group
	IsEdit bool
	PostID string
	User   *domain.User
}

func (h *Handler) renderPostForm(c echo.Context, form domain.PostForm, errs domain.FieldErrors, isEdit bool, postID string) error {
	groups, err := h.Store.Groups()
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "post_form.html", postFormData{
		Form:   form,
		Errors: errs,
		Groups: groups,
		IsEdit: isEdit,
		PostID: postID,
		User:   h.currentUser(c),
	})
}

func (h *Handler) GetNewPostForm(c echo.Context) error {
	return h.renderPostForm(c, domain.PostForm{}, nil, false, "")
}

// resolveGroup validates the optional group reference, recording a field
// error instead of failing the request when the group is unknown.
func (h *Handler) resolveGroup(groupID string, errs domain.FieldErrors) (*domain.Group, error) {
	if groupID == "" {
		return nil, nil
	}
	group, err := h.Store.GroupByID(groupID)
	if errors.Is(err, store.ErrNotFound) {
		errs["group"] = "Unknown group"
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// saveImage stores an uploaded image under the media directory and returns
// its stored filename. No upload means no error and an empty name.
func (h *Handler) saveImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(h.MediaDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

func (h *Handler) NewPost(c echo.Context) error {
	user := h.currentUser(c)
	if user == nil {
		return echo.ErrUnauthorized
	}

	form := domain.PostForm{
		Text:    c.FormValue("text"),
		GroupID: c.FormValue("group"),
	}
	errs := form.Validate()
	group, err := h.resolveGroup(form.GroupID, errs)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return h.renderPostForm(c, form, errs, false, "")
	}

	image, err := h.saveImage(c)
	if err != nil {
		return err
	}

	post := domain.Post{
		ID:        uuid.NewString(),
		Text:      form.Text,
		Image:     image,
		Author:    *user,
		Group:     group,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Store.CreatePost(post); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// GetEditPostForm pre-fills the edit form. Only the author may see it;
// anyone else lands back on the post.
func (h *Handler) GetEditPostForm(c echo.Context) error {
	post, err := h.Store.PostByID(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	form := domain.PostForm{Text: post.Text, Image: post.Image}
	if post.Group != nil {
		form.GroupID = post.Group.ID
	}

	user := h.currentUser(c)
	if user == nil || user.ID != post.Author.ID {
		return c.Redirect(http.StatusFound, "/posts/"+post.ID+"/")
	}
	return h.renderPostForm(c, form, nil, true, post.ID)
}

// EditPost applies an edit. The author check runs before any mutation; a
// non-author submission redirects to the post untouched.
func (h *Handler) EditPost(c echo.Context) error {
	post, err := h.Store.PostByID(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	form := domain.PostForm{
		Text:    c.FormValue("text"),
		GroupID: c.FormValue("group"),
	}

	user := h.currentUser(c)
	if user == nil || user.ID != post.Author.ID {
		return c.Redirect(http.StatusFound, "/posts/"+post.ID+"/")
	}

	errs := form.Validate()
	if _, err := h.resolveGroup(form.GroupID, errs); err != nil {
		return err
	}
	if len(errs) > 0 {
		return h.renderPostForm(c, form, errs, true, post.ID)
	}

	image, err := h.saveImage(c)
	if err != nil {
		return err
	}
	if image == "" {
		image = post.Image
	}

	if err := h.Store.UpdatePost(post.ID, form.Text, form.GroupID, image); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/posts/"+post.ID+"/")
}

// AddComment attaches a comment to a post. The route always redirects back
// to the post; an invalid submission creates nothing.
func (h *Handler) AddComment(c echo.Context) error {
	user := h.currentUser(c)
	if user == nil {
		return echo.ErrUnauthorized
	}

	post, err := h.Store.PostByID(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	form := domain.CommentForm{Text: c.FormValue("text")}
	if errs := form.Validate(); len(errs) == 0 {
		comment := domain.Comment{
			ID:        uuid.NewString(),
			PostID:    post.ID,
			Author:    *user,
			Text:      form.Text,
			CreatedAt: time.Now().UTC(),
		}
		if err := h.Store.CreateComment(comment); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusFound, "/posts/"+post.ID+"/")
}
