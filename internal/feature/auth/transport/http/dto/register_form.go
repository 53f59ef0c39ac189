// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterForm は POST /register のリクエストボディです。
// パスワードはbcryptの上限に合わせて72文字までです。
type RegisterForm struct {
	Name     string `form:"name" json:"name" binding:"required,max=250"`
	Email    string `form:"email" json:"email" binding:"required,email,max=255"`
	Password string `form:"password" json:"password" binding:"required,min=5,max=72"`
}

// Redacted は再表示用にパスワードを空にしたフォームを返します。
func (f RegisterForm) Redacted() RegisterForm {
	f.Password = ""
	return f
}
