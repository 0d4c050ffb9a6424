package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/samaan/internal/services"
)

// ResetPassword replaces the password of email with a temporary one and
// prints it. The user must change it on next login.
func ResetPassword(auth *services.AuthService, email string, out io.Writer) error {
	temporaryPassword, err := auth.ResetPassword(email)
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		return fmt.Errorf("invalid email address %q", email)
	case errors.Is(err, services.ErrUserNotFound):
		return fmt.Errorf("user %s not found", services.NormalizeAuthEmail(email))
	case err != nil:
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "User must change password on next login.")
	return nil
}
