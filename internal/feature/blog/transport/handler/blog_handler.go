// Package handler はblogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	authentity "blog_backend/internal/feature/auth/domain/entity"
	authmw "blog_backend/internal/feature/auth/transport/middleware"
	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/transport/http/dto"
	"blog_backend/internal/feature/blog/usecase"
	"blog_backend/internal/platform/http/flash"
	"blog_backend/internal/platform/http/pathparam"
	"blog_backend/internal/platform/http/render"
)

// NoticeDuplicateTitle はタイトルが既に使われている場合に表示されます。
const NoticeDuplicateTitle = "A post with this title already exists."

// BlogUsecase はブログコンテンツ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type BlogUsecase interface {
	ListPosts(ctx context.Context) ([]entity.Post, error)
	GetPost(ctx context.Context, id uint) (*entity.Post, error)
	CreatePost(ctx context.Context, in usecase.PostInput, author *authentity.User) (*entity.Post, error)
	UpdatePost(ctx context.Context, id uint, in usecase.PostInput) (*entity.Post, error)
	DeletePost(ctx context.Context, id uint) error
	CreateComment(ctx context.Context, postID uint, author *authentity.User, text string) (*entity.Comment, error)
}

// BlogHandler はブログページのHTTPリクエストを処理します。
type BlogHandler struct {
	uc BlogUsecase
}

// NewBlogHandler は指定されたusecaseでBlogHandlerの新しいインスタンスを生成します。
func NewBlogHandler(uc BlogUsecase) *BlogHandler {
	return &BlogHandler{uc: uc}
}

// Index は全ての記事を表示します。
func (h *BlogHandler) Index(c *gin.Context) {
	posts, err := h.uc.ListPosts(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list posts")
		return
	}
	render.Page(c, http.StatusOK, "index", gin.H{"posts": dto.PostListResponse(posts)})
}

// About は静的なaboutページを表示します。
func (h *BlogHandler) About(c *gin.Context) {
	render.Page(c, http.StatusOK, "about", nil)
}

// Contact は静的なcontactページを表示します。
func (h *BlogHandler) Contact(c *gin.Context) {
	render.Page(c, http.StatusOK, "contact", nil)
}

// ShowPost は記事とコメント、空のコメントフォームを表示します。
//
// エンドポイント例:
// GET /post/:id
func (h *BlogHandler) ShowPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := h.uc.GetPost(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get post")
		return
	}
	render.Page(c, http.StatusOK, "post", gin.H{
		"post": dto.PostResponse(post),
		"form": dto.CommentForm{},
	})
}

// CreateComment はログインユーザーのコメントを追加し、記事ページへリダイレクトします。
// ルートはRequireLoginで保護されています。
func (h *BlogHandler) CreateComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var form dto.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		post, gerr := h.uc.GetPost(ctx, id)
		if gerr != nil {
			h.fail(c, gerr, "get post")
			return
		}
		render.Page(c, http.StatusUnprocessableEntity, "post", gin.H{
			"post":   dto.PostResponse(post),
			"form":   form,
			"errors": render.FieldErrors(err),
		})
		return
	}

	if _, err := h.uc.CreateComment(ctx, id, authmw.CurrentUser(c), form.Body); err != nil {
		h.fail(c, err, "create comment")
		return
	}
	render.Redirect(c, postPath(id))
}

// NewPostPage は空の記事エディターを表示します。
func (h *BlogHandler) NewPostPage(c *gin.Context) {
	render.Page(c, http.StatusOK, "make-post", gin.H{"form": dto.PostForm{}, "is_edit": false})
}

// CreatePost は管理者の記事を公開します。ルートはRequireAdminで保護されています。
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var form dto.PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.editor(c, http.StatusUnprocessableEntity, form, 0, render.FieldErrors(err))
		return
	}

	post, err := h.uc.CreatePost(c.Request.Context(), form.Input(), authmw.CurrentUser(c))
	if errors.Is(err, usecase.ErrDuplicateTitle) {
		h.duplicateTitle(c, form, 0)
		return
	}
	if err != nil {
		h.fail(c, err, "create post")
		return
	}
	log.Info().Uint("post_id", post.ID).Str("title", post.Title).Msg("post created")
	render.Redirect(c, "/")
}

// EditPostPage は記事の現在の値を入れたエディターを表示します。
func (h *BlogHandler) EditPostPage(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := h.uc.GetPost(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get post")
		return
	}
	h.editor(c, http.StatusOK, dto.PostFormFrom(post), id, nil)
}

// UpdatePost はエディターの内容を保存し、記事ページへリダイレクトします。
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var form dto.PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.editor(c, http.StatusUnprocessableEntity, form, id, render.FieldErrors(err))
		return
	}

	_, err := h.uc.UpdatePost(c.Request.Context(), id, form.Input())
	switch {
	case errors.Is(err, usecase.ErrDuplicateTitle):
		h.duplicateTitle(c, form, id)
		return
	case errors.Is(err, usecase.ErrAuthorNotFound):
		h.editor(c, http.StatusUnprocessableEntity, form, id, map[string]string{"author_id": "Unknown author."})
		return
	case err != nil:
		h.fail(c, err, "update post")
		return
	}
	log.Info().Uint("post_id", id).Msg("post updated")
	render.Redirect(c, postPath(id))
}

// DeletePost は記事をコメントごと削除し、トップページへリダイレクトします。
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := h.uc.DeletePost(c.Request.Context(), id); err != nil {
		h.fail(c, err, "delete post")
		return
	}
	log.Info().Uint("post_id", id).Msg("post deleted")
	render.Redirect(c, "/")
}

// editor はmake-postページを表示します。postID が0以外なら編集画面です。
func (h *BlogHandler) editor(c *gin.Context, status int, form dto.PostForm, postID uint, fieldErrors map[string]string) {
	data := gin.H{"form": form, "is_edit": postID != 0}
	if postID != 0 {
		data["post_id"] = postID
	}
	if fieldErrors != nil {
		data["errors"] = fieldErrors
	}
	render.Page(c, status, "make-post", data)
}

func (h *BlogHandler) duplicateTitle(c *gin.Context, form dto.PostForm, postID uint) {
	log.Warn().Str("title", form.Title).Msg("duplicate post title")
	flash.Add(c, NoticeDuplicateTitle)
	h.editor(c, http.StatusConflict, form, postID, map[string]string{"title": NoticeDuplicateTitle})
}

// fail はusecaseのエラーをエラーレスポンスに変換します。
func (h *BlogHandler) fail(c *gin.Context, err error, op string) {
	if errors.Is(err, usecase.ErrPostNotFound) {
		render.Error(c, http.StatusNotFound, "post not found")
		return
	}
	log.Error().Err(err).Str("op", op).Str("path", c.Request.URL.Path).Msg("blog request failed")
	render.InternalError(c)
}

// postID は :id パスパラメータをバインドします。不正なIDは404を返します。
func postID(c *gin.Context) (uint, bool) {
	id, err := pathparam.ID(c, "id")
	if err != nil {
		render.Error(c, http.StatusNotFound, "post not found")
		return 0, false
	}
	return id, true
}

func postPath(id uint) string {
	return fmt.Sprintf("/post/%d", id)
}
