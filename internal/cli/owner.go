package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/samaan/internal/security"
	"github.com/terraincognita07/samaan/internal/services"
)

const generatedOwnerPasswordLength = 16

// CreateOwner creates the owner account. An empty password is replaced by a
// generated one, which is printed.
func CreateOwner(auth *services.AuthService, email string, password string, out io.Writer) error {
	generated := password == ""
	if generated {
		value, err := security.TemporaryPassword(generatedOwnerPasswordLength)
		if err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
		password = value
	}

	user, err := auth.CreateOwner(email, password)
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		return fmt.Errorf("invalid email address %q", email)
	case errors.Is(err, services.ErrWeakPassword):
		return fmt.Errorf("password must be at least %d characters and mix upper case, lower case and digits", services.MinPasswordLength)
	case errors.Is(err, services.ErrOwnerAlreadyExists):
		return errors.New("an owner account already exists; use reset-password instead")
	case err != nil:
		return fmt.Errorf("create owner: %w", err)
	}

	fmt.Fprintf(out, "Owner %s created\n", user.Email)
	if generated {
		fmt.Fprintf(out, "Password: %s\n", password)
	}
	return nil
}
