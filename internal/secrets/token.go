package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups the app's secrets in the OS keychain.
	KeyringService = "seekwatch"
	tokenAccount   = "telegram:token"
)

// GetTelegramToken looks the bot token up in the OS keychain. Used as a
// fallback when neither env nor config carries one.
func GetTelegramToken() (string, error) {
	tok, err := keyring.Get(KeyringService, tokenAccount)
	if err != nil || strings.TrimSpace(tok) == "" {
		return "", errors.New("telegram token not found in keychain")
	}
	return tok, nil
}

func SetTelegramToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, tokenAccount, token)
}

func DeleteTelegramToken() error {
	return keyring.Delete(KeyringService, tokenAccount)
}

// ResolveTelegramToken decides the token for this run: env and config win,
// the OS keychain is a last resort, and dry-run never touches the keychain
// at all. lookup defaults to GetTelegramToken; keychain failures degrade to
// an empty token for validation to reject.
func ResolveTelegramToken(configured string, dryRun bool, lookup func() (string, error)) string {
	if strings.TrimSpace(configured) != "" || dryRun {
		return configured
	}
	if lookup == nil {
		lookup = GetTelegramToken
	}
	tok, err := lookup()
	if err != nil {
		return configured
	}
	return tok
}
