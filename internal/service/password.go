package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost es el work factor de bcrypt para todos los hashes.
const passwordCost = 10

const (
	generatedPasswordLength = 12
	generatedPasswordChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@#$%^&*()_+[]{}|;:,.<>?"
)

// HashPassword devuelve el hash bcrypt de password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara en tiempo constante password con el hash guardado.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GeneratePassword arma una contraseña aleatoria para cuentas de Google.
func GeneratePassword() (string, error) {
	max := big.NewInt(int64(len(generatedPasswordChars)))
	var b strings.Builder
	b.Grow(generatedPasswordLength)
	for i := 0; i < generatedPasswordLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(generatedPasswordChars[n.Int64()])
	}
	return b.String(), nil
}

// GenerateUsername usa la parte local del email mas un sufijo de 4 digitos.
func GenerateUsername(email string) (string, error) {
	prefix, _, _ := strings.Cut(email, "@")
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", prefix, 1000+n.Int64()), nil
}
