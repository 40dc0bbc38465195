package model

type ContextKey string

const (
	// SubjectKey は認証済みトークンの subject を格納するキー
	SubjectKey ContextKey = "subject"
)
