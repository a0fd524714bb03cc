package bcrypt

import "golang.org/x/crypto/bcrypt"

type IBcrypt interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashPassword string, password string) error
	IsHashed(value string) bool
}

type bcryptService struct {
	cost int
}

func New() IBcrypt {
	return &bcryptService{
		cost: bcrypt.DefaultCost,
	}
}

func NewWithCost(cost int) IBcrypt {
	return &bcryptService{
		cost: cost,
	}
}

func (b *bcryptService) HashPassword(password string) (string, error) {
	result, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

func (b *bcryptService) ComparePassword(hashPassword string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashPassword), []byte(password))
}

// IsHashed reports whether value already is a bcrypt hash, so seed data may
// carry either plaintext demo passwords or hashes.
func (b *bcryptService) IsHashed(value string) bool {
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}
