package auth

import "fmt"

// UserType is the closed role enumeration used for access control.
type UserType string

const (
	UserTypeSystemAdmin UserType = "system_admin"
	UserTypePortalAdmin UserType = "portal_admin"
	UserTypeClientAdmin UserType = "client_admin"
	UserTypeChatUser    UserType = "chat_user"
)

// ParseUserType validates a raw role value against the enumeration.
// Unknown values fail closed: callers must not authenticate a request
// whose role cannot be parsed.
func ParseUserType(s string) (UserType, error) {
	switch ut := UserType(s); ut {
	case UserTypeSystemAdmin, UserTypePortalAdmin, UserTypeClientAdmin, UserTypeChatUser:
		return ut, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUserType, s)
	}
}

// Valid reports whether the value is a member of the enumeration.
func (u UserType) Valid() bool {
	_, err := ParseUserType(string(u))
	return err == nil
}

func (u UserType) String() string {
	return string(u)
}
