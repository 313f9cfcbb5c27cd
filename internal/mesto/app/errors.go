// Package app реализует прикладную логику: выдачу учетных данных,
// профили, карточки и проверку владельца.
package app

// Сообщения отказов, которые видит клиент.
const (
	MsgEmailTaken         = "user with this email already exists"
	MsgInvalidSignupData  = "invalid data passed when creating a user"
	MsgInvalidCredentials = "incorrect email or password"
	MsgUserNotFound       = "user with the specified id not found"
	MsgInvalidProfileData = "invalid data passed when updating the profile"
	MsgInvalidAvatarData  = "invalid data passed when updating the avatar"
	MsgInvalidCardData    = "invalid data passed when creating a card"
	MsgCardNotFound       = "card with the specified id not found"
	MsgForeignCard        = "you cannot delete another user's card"
)
