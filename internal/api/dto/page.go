package dto

// IndexPage - данные главной страницы
type IndexPage struct {
	Nickname  string
	Balance   int
	AvatarURL string
	Result    *DrawView
	Message   string // например, нехватка средств
}

// DrawView - результат розыгрыша: одна метка или список
type DrawView struct {
	Single string
	Labels []string
}

type MyPage struct {
	Username  string
	Nickname  string
	Bio       string
	Balance   int
	AvatarURL string
}

// AuthPage - форма входа или регистрации
type AuthPage struct {
	Error string
}
