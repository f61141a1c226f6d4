package accountlink

import "net/http"

// Permission names granted to an account link.
const (
	PermissionEmail        = "kaleron/email"
	PermissionSendComment  = "krio/send-comment"
	PermissionReadComments = "krio/read-comments"
	// PermissionLike gates both likes and dislikes.
	PermissionLike = "krio/like"
)

// operation describes how one endpoint is dispatched.
type operation struct {
	permission string // "" when the link may always call it
	method     string
	decodes    bool // GET answers carry a payload, POST answers are status only
}

var operations = map[Endpoint]operation{
	Info:         {method: http.MethodGet, decodes: true},
	RemoveLink:   {method: http.MethodPost},
	GetEmail:     {permission: PermissionEmail, method: http.MethodGet, decodes: true},
	SendComment:  {permission: PermissionSendComment, method: http.MethodPost},
	ReadComments: {permission: PermissionReadComments, method: http.MethodGet, decodes: true},
	Like:         {permission: PermissionLike, method: http.MethodPost},
	Dislike:      {permission: PermissionLike, method: http.MethodPost},
}

// RequiredPermission returns the permission e is gated by, if any.
func RequiredPermission(e Endpoint) (string, bool) {
	op, ok := operations[e]
	if !ok || op.permission == "" {
		return "", false
	}
	return op.permission, true
}
