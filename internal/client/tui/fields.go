package tui

import "github.com/mkalinin/gopherkeeper/internal/models"

// Field identifies one editable input of the add-secret form.
type Field string

const (
	FieldKind     Field = "kind"
	FieldTitle    Field = "title"
	FieldLogin    Field = "login"
	FieldPassword Field = "password"
	FieldURL      Field = "url"
	FieldContent  Field = "content"
	FieldHolder   Field = "holder"
	FieldNumber   Field = "number"
	FieldExpiry   Field = "expiry"
	FieldCVV      Field = "cvv"
)

// fieldsFor returns the ordered editable fields for a secret kind. The kind
// selector is part of the cycle, so Tab wraps through it too.
func fieldsFor(kind models.SecretKind) []Field {
	switch kind {
	case models.KindNote:
		return []Field{FieldKind, FieldTitle, FieldContent}
	case models.KindCard:
		return []Field{FieldKind, FieldTitle, FieldHolder, FieldNumber, FieldExpiry, FieldCVV}
	default:
		return []Field{FieldKind, FieldTitle, FieldLogin, FieldPassword, FieldURL}
	}
}

// secretFields are the sensitive fields masked on the secrets screen until
// the user toggles reveal.
var secretFields = map[Field]bool{
	FieldPassword: true,
	FieldNumber:   true,
	FieldCVV:      true,
}

// payloadField reads the named field out of a payload for display.
func payloadField(p models.SecretPayload, f Field) string {
	switch f {
	case FieldKind:
		return string(p.Kind)
	case FieldTitle:
		return p.Title
	case FieldLogin:
		return p.Login
	case FieldPassword:
		return p.Password
	case FieldURL:
		return p.URL
	case FieldContent:
		return p.Content
	case FieldHolder:
		return p.Holder
	case FieldNumber:
		return p.Number
	case FieldExpiry:
		return p.Expiry
	case FieldCVV:
		return p.CVV
	}
	return ""
}
