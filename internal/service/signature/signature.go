package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Verifier проверяет подписи уведомлений платежных провайдеров.
// Канонизация общая для всех каналов: поля payload (кроме самой подписи)
// сортируются по ключу, склеиваются в "k=v&k=v" и подписываются
// HMAC-SHA256 секретом провайдера.
type Verifier struct {
	secrets map[string]string
}

func New(secrets map[string]string) *Verifier {
	return &Verifier{
		secrets: secrets,
	}
}

func canonical(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}
	return strings.Join(pairs, "&")
}

// Sign возвращает hex-подпись канонизированного payload.
func (v *Verifier) Sign(provider string, fields map[string]string) (string, error) {
	secret, ok := v.secrets[provider]
	if !ok {
		return "", fmt.Errorf("no secret configured for provider %q", provider)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(canonical(fields)))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify сравнивает подпись за константное время.
func (v *Verifier) Verify(provider string, fields map[string]string, signature string) bool {
	expected, err := v.Sign(provider, fields)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(signature), []byte(expected))
}
