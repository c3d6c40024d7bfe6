package domain

// User is the identity the external provider vouches for. The engine treats it opaquely.
type User struct {
	Id          string
	DisplayName string
	AvatarURL   string
}
