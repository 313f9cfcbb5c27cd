// Package entities определяет сущности домена.
package entities

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Значения профиля по умолчанию.
const (
	DefaultUserName   = "Жак-Ив Кусто"
	DefaultUserAbout  = "Исследователь"
	DefaultUserAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// Ограничения на поля профиля и карточки.
const (
	MinTextLength     = 2
	MaxTextLength     = 30
	MinPasswordLength = 6
	MaxPasswordBytes  = 72 // предел bcrypt: более длинный пароль не хэшируется
)

// ImageURLPattern - шаблон ссылки на изображение (аватар, карточка).
var ImageURLPattern = regexp.MustCompile(`https?://.*\.(?:png|jpg)`)

// ObjectIDPattern - шаблон идентификатора записи: 24 шестнадцатеричных символа.
var ObjectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Ошибки домена пользователя.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidUser  = errors.New("invalid user")
)

// User - пользователь. PasswordHash никогда не сериализуется наружу.
type User struct {
	ID           string
	Name         string
	About        string
	Avatar       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser создает пользователя, подставляя значения профиля по умолчанию.
func NewUser(name, about, avatar, email, passwordHash string) *User {
	if name == "" {
		name = DefaultUserName
	}
	if about == "" {
		about = DefaultUserAbout
	}
	if avatar == "" {
		avatar = DefaultUserAvatar
	}
	return &User{
		Name:         name,
		About:        about,
		Avatar:       avatar,
		Email:        email,
		PasswordHash: passwordHash,
	}
}

// Validate проверяет пользователя по схеме хранения.
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Name, validation.Required, validation.RuneLength(MinTextLength, MaxTextLength)),
		validation.Field(&u.About, validation.Required, validation.RuneLength(MinTextLength, MaxTextLength)),
		validation.Field(&u.Avatar, validation.Required, validation.Match(ImageURLPattern).Error("must be a link to a png or jpg image")),
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.PasswordHash, validation.Required),
	)
}

// ValidateProfile проверяет новые имя и описание по схеме хранения.
func ValidateProfile(name, about string) error {
	return validation.Errors{
		"name":  validation.Validate(name, validation.Required, validation.RuneLength(MinTextLength, MaxTextLength)),
		"about": validation.Validate(about, validation.Required, validation.RuneLength(MinTextLength, MaxTextLength)),
	}.Filter()
}

// ValidateAvatar проверяет новую ссылку на аватар по схеме хранения.
func ValidateAvatar(avatar string) error {
	return validation.Errors{
		"avatar": validation.Validate(avatar, validation.Required, validation.Match(ImageURLPattern).Error("must be a link to a png or jpg image")),
	}.Filter()
}
