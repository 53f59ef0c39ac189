package dto

// LoginForm は/loginエンドポイントのフォームボディを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type LoginForm struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Redacted はパスワードを空にしたフォームを返します。
func (f LoginForm) Redacted() LoginForm {
	f.Password = ""
	return f
}
