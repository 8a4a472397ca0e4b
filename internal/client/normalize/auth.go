package normalize

import "github.com/dmitrijs2005/courtside/internal/client/models"

// Token returns the credential carried by an auth response, looking at
// the top level and inside a data envelope.
func Token(raw any) string {
	for _, m := range []map[string]any{object(raw), object(object(raw)["data"])} {
		if t := str(m, "token", "accessToken", "access_token"); t != "" {
			return t
		}
	}
	return ""
}

// Identity extracts the user of an auth or /me response. The user may sit
// under "user", inside a data envelope, or be the document itself. ok is
// false when no identifying field is present.
func (n *Normalizer) Identity(raw any) (models.User, bool) {
	doc := Entity(raw)
	m := object(doc)
	if inner := object(m["user"]); inner != nil {
		m = inner
	}
	if m == nil || (id(m) == "" && str(m, "username", "email") == "") {
		return models.User{}, false
	}
	return n.User(m), true
}
