package model

type UserRole string

const (
	Viewer  UserRole = "viewer"
	Creator UserRole = "creator"
	Admin   UserRole = "admin"
)

// User 用户身份由外部认证服务签发，这里只保留声明解析所需的最小字段。
// 本服务不负责注册/登录流程。
type User struct {
	UUIDBase
	Email       string   `gorm:"uniqueIndex;size:191" json:"email"`
	DisplayName string   `gorm:"size:64" json:"displayName"`
	Role        UserRole `gorm:"size:16;default:viewer" json:"role"`
}

func (User) TableName() string {
	return "users"
}
