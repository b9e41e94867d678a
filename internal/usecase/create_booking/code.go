package create_booking

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/abhi96256/Appoinment/internal/domain"
)

const confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomCodeGenerator коды подтверждения из A-Z0-9 длиной domain.ConfirmationCodeLength
type RandomCodeGenerator struct{}

// Generate возвращает новый код подтверждения
func (RandomCodeGenerator) Generate() (string, error) {
	max := big.NewInt(int64(len(confirmationAlphabet)))
	code := make([]byte, domain.ConfirmationCodeLength)

	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate confirmation code: %w", err)
		}
		code[i] = confirmationAlphabet[n.Int64()]
	}

	return string(code), nil
}
