package validation

import (
	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"mesto/internal/mesto/domain/entities"
)

var errNotString = ozzo.NewError("validation_is_string", "must be a string")

// isString идет первым в каждом списке правил: остальные правила
// рассчитаны на строковое значение.
var isString = ozzo.By(func(value interface{}) error {
	if _, ok := value.(string); !ok {
		return errNotString
	}
	return nil
})

func text() []ozzo.Rule {
	return []ozzo.Rule{isString, ozzo.Required, ozzo.RuneLength(entities.MinTextLength, entities.MaxTextLength)}
}

func imageURL() []ozzo.Rule {
	return []ozzo.Rule{isString, ozzo.Required, ozzo.Match(entities.ImageURLPattern).Error("must be a link to a png or jpg image")}
}

func email() []ozzo.Rule {
	return []ozzo.Rule{isString, ozzo.Required, is.EmailFormat}
}

func password() []ozzo.Rule {
	return []ozzo.Rule{isString, ozzo.Required, ozzo.RuneLength(entities.MinPasswordLength, 0)}
}

// newPassword дополнительно ограничивает длину в байтах: bcrypt не хэширует
// пароли длиннее entities.MaxPasswordBytes.
func newPassword() []ozzo.Rule {
	return append(password(), ozzo.Length(0, entities.MaxPasswordBytes))
}

func objectID() []ozzo.Rule {
	return []ozzo.Rule{isString, ozzo.Required, ozzo.Match(entities.ObjectIDPattern).Error("must be a 24-character hex string")}
}

// authHeaders требует заголовок authorization и пропускает остальные.
func authHeaders() *Schema {
	return Lenient(ozzo.Key("authorization", isString, ozzo.Required))
}

func idParam(name string) *Schema {
	return Lenient(ozzo.Key(name, objectID()...))
}

// Наборы правил маршрутов.
var (
	SignupRules = RuleSet{
		Name: "signup",
		Body: Strict(
			ozzo.Key("name", text()...).Optional(),
			ozzo.Key("about", text()...).Optional(),
			ozzo.Key("avatar", imageURL()...).Optional(),
			ozzo.Key("email", email()...),
			ozzo.Key("password", newPassword()...),
		),
	}

	SigninRules = RuleSet{
		Name: "signin",
		Body: Strict(
			ozzo.Key("email", email()...),
			ozzo.Key("password", password()...),
		),
	}

	AuthorizedRules = RuleSet{
		Name:    "authorized",
		Headers: authHeaders(),
	}

	UserByIDRules = RuleSet{
		Name:    "user-by-id",
		Headers: authHeaders(),
		Params:  idParam("userId"),
	}

	UpdateProfileRules = RuleSet{
		Name:    "update-profile",
		Headers: authHeaders(),
		Body: Strict(
			ozzo.Key("name", text()...),
			ozzo.Key("about", text()...),
		),
	}

	UpdateAvatarRules = RuleSet{
		Name:    "update-avatar",
		Headers: authHeaders(),
		Body:    Strict(ozzo.Key("avatar", imageURL()...)),
	}

	CreateCardRules = RuleSet{
		Name:    "create-card",
		Headers: authHeaders(),
		Body: Strict(
			ozzo.Key("name", text()...),
			ozzo.Key("link", imageURL()...),
		),
	}

	CardByIDRules = RuleSet{
		Name:    "card-by-id",
		Headers: authHeaders(),
		Params:  idParam("cardId"),
	}
)
