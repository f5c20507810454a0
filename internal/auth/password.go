package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Пароль хранится как hex(scrypt).hex(соль), соль случайная на каждый пароль.
// Сверка пересчитывает scrypt с сохранённой солью и сравнивает за постоянное время.

const (
	saltLength = 16
	keyLength  = 64

	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

var ErrBadHashFormat = errors.New("неверный формат хеша пароля")

func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("генерация соли: %w", err)
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("вычисление scrypt: %w", err)
	}

	return hex.EncodeToString(derived) + "." + hex.EncodeToString(salt), nil
}

func VerifyPassword(password, stored string) (bool, error) {
	hashed, salt, ok := strings.Cut(stored, ".")
	if !ok {
		return false, ErrBadHashFormat
	}

	hashedBytes, err := hex.DecodeString(hashed)
	if err != nil {
		return false, ErrBadHashFormat
	}
	saltBytes, err := hex.DecodeString(salt)
	if err != nil {
		return false, ErrBadHashFormat
	}

	derived, err := scrypt.Key([]byte(password), saltBytes, scryptN, scryptR, scryptP, len(hashedBytes))
	if err != nil {
		return false, fmt.Errorf("вычисление scrypt: %w", err)
	}

	return subtle.ConstantTimeCompare(hashedBytes, derived) == 1, nil
}

// DummyCompare сжигает столько же времени, сколько настоящая сверка.
// Вызывается при логине с несуществующим именем, чтобы по времени ответа
// нельзя было перебирать имена пользователей.
func DummyCompare(password string) {
	salt := make([]byte, saltLength)
	_, _ = scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
}
