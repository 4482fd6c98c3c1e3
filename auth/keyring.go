package auth

import (
	"github.com/lectio-cli/lectio/constant"
	"github.com/zalando/go-keyring"
)

// SetPassword persists the password of username to the system keyring.
func SetPassword(username, password string) error {
	return keyring.Set(constant.Lectio, username, password)
}

// GetPassword retrieves the password of username from the system keyring.
func GetPassword(username string) (string, error) {
	return keyring.Get(constant.Lectio, username)
}

// DeletePassword removes the stored password of username.
func DeletePassword(username string) error {
	return keyring.Delete(constant.Lectio, username)
}
